// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package security

import (
	"net/http"
)

// Header names.
const (
	HeaderContentSecurityPolicy        = "Content-Security-Policy"
	HeaderContentTypeOptions           = "X-Content-Type-Options"
	HeaderFrameOptions                 = "X-Frame-Options"
	HeaderCrossOriginOpenerPolicy      = "Cross-Origin-Opener-Policy"
	HeaderCrossOriginResourcePolicy    = "Cross-Origin-Resource-Policy"
	HeaderOriginAgentCluster           = "Origin-Agent-Cluster"
	HeaderReferrerPolicy               = "Referrer-Policy"
	HeaderStrictTransportSecurity      = "Strict-Transport-Security"
	HeaderDNSPrefetchControl           = "X-DNS-Prefetch-Control"
	HeaderDownloadOptions              = "X-Download-Options"
	HeaderPermittedCrossDomainPolicies = "X-Permitted-Cross-Domain-Policies"
	HeaderXSSProtection                = "X-XSS-Protection"
	headerPoweredBy                    = "X-Powered-By"
)

// Headers is the immutable set of protective headers written on every response.
type Headers struct {
	policy Policy
	values http.Header
}

// NewHeaders builds the header set for a policy.
func NewHeaders(policy Policy) *Headers {
	values := http.Header{}
	values.Set(HeaderContentSecurityPolicy, policy.String())
	values.Set(HeaderContentTypeOptions, "nosniff")
	values.Set(HeaderFrameOptions, "DENY")
	values.Set(HeaderCrossOriginOpenerPolicy, "same-origin")
	values.Set(HeaderCrossOriginResourcePolicy, "same-origin")
	values.Set(HeaderOriginAgentCluster, "?1")
	values.Set(HeaderReferrerPolicy, "no-referrer")
	values.Set(HeaderStrictTransportSecurity, "max-age=15552000; includeSubDomains")
	values.Set(HeaderDNSPrefetchControl, "off")
	values.Set(HeaderDownloadOptions, "noopen")
	values.Set(HeaderPermittedCrossDomainPolicies, "none")
	values.Set(HeaderXSSProtection, "0")

	return &Headers{
		policy: policy,
		values: values,
	}
}

// Policy returns the Content-Security-Policy the headers were built from.
func (h *Headers) Policy() Policy {
	return h.policy
}

// Values returns a copy of the header set.
func (h *Headers) Values() http.Header {
	return h.values.Clone()
}

// Apply overwrites dst with the protective headers.
func (h *Headers) Apply(dst http.Header) {
	for name, vals := range h.values {
		dst[name] = append([]string(nil), vals...)
	}
	dst.Del(headerPoweredBy)
}

// Middleware sets the protective headers before next runs and again when the
// response status is committed.
func (h *Headers) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.Apply(w.Header())
		next.ServeHTTP(&headerWriter{ResponseWriter: w, headers: h}, r)
	})
}

// headerWriter re-applies the protective headers when the status is written.
type headerWriter struct {
	http.ResponseWriter
	headers     *Headers
	wroteHeader bool
}

func (w *headerWriter) WriteHeader(statusCode int) {
	if !w.wroteHeader {
		w.headers.Apply(w.ResponseWriter.Header())
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *headerWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

// Unwrap exposes the underlying writer to http.ResponseController.
func (w *headerWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// Flush supports streaming handlers behind the middleware.
func (w *headerWriter) Flush() {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}
