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

package body

import (
	"bytes"
	"compress/gzip"
	"compress/zlib"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"

	"github.com/devsecops/zero-trust-pipeline/pkg/defaults"
	"github.com/devsecops/zero-trust-pipeline/pkg/errors"
)

// MediaTypeJSON is the only media type the middleware parses.
const MediaTypeJSON = "application/json"

// ErrorHandler writes the response for a body that could not be parsed.
// err is always a *errors.StructuredError.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// Option configures the JSON middleware.
type Option func(*parser)

// WithLimit sets the maximum decoded body size in bytes.
// Non-positive values keep the default.
func WithLimit(limit int64) Option {
	return func(p *parser) {
		if limit > 0 {
			p.limit = limit
		}
	}
}

// WithErrorHandler replaces the default plain-text error responder.
func WithErrorHandler(h ErrorHandler) Option {
	return func(p *parser) {
		if h != nil {
			p.onError = h
		}
	}
}

type parser struct {
	limit   int64
	onError ErrorHandler
}

// JSON returns middleware that parses application/json request bodies.
func JSON(opts ...Option) func(http.Handler) http.Handler {
	p := &parser{
		limit:   defaults.BodyLimit,
		onError: defaultErrorHandler,
	}
	for _, opt := range opts {
		opt(p)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			params, ok := jsonRequest(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			payload, err := p.read(r, params)
			if err != nil {
				p.onError(w, r, err)
				return
			}

			r.Body = io.NopCloser(bytes.NewReader(payload.Raw))
			r.ContentLength = int64(len(payload.Raw))
			r.Header.Set("Content-Length", strconv.Itoa(len(payload.Raw)))
			r.Header.Del("Content-Encoding")

			next.ServeHTTP(w, r.WithContext(WithPayload(r.Context(), payload)))
		})
	}
}

// jsonRequest reports whether r carries a body declared as application/json.
func jsonRequest(r *http.Request) (map[string]string, bool) {
	if !hasBody(r) {
		return nil, false
	}
	mediaType, params, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || mediaType != MediaTypeJSON {
		return nil, false
	}
	return params, true
}

func hasBody(r *http.Request) bool {
	return r.ContentLength != 0 ||
		len(r.TransferEncoding) > 0 ||
		r.Header.Get("Content-Length") != "" ||
		r.Header.Get("Transfer-Encoding") != ""
}

func (p *parser) read(r *http.Request, params map[string]string) (*Payload, error) {
	if r.Body == nil {
		r.Body = http.NoBody
	}
	defer r.Body.Close()

	charset := strings.ToLower(strings.TrimSpace(params["charset"]))
	if charset == "" {
		charset = "utf-8"
	}
	if !strings.HasPrefix(charset, "utf-") {
		return nil, errors.NewWithContext(errors.ErrCodeUnsupportedMediaType,
			fmt.Sprintf("unsupported charset %q", strings.ToUpper(charset)),
			map[string]any{"charset": charset})
	}

	encoding := strings.ToLower(strings.TrimSpace(r.Header.Get("Content-Encoding")))
	if (encoding == "" || encoding == "identity") && r.ContentLength > p.limit {
		return nil, p.tooLarge()
	}

	reader, err := decodeContent(r.Body, encoding)
	if err != nil {
		return nil, err
	}

	raw, err := io.ReadAll(io.LimitReader(reader, p.limit+1))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidRequest, "failed to read request body", err)
	}
	if int64(len(raw)) > p.limit {
		return nil, p.tooLarge()
	}

	if charset != "utf-8" {
		if raw, err = transcode(raw, charset); err != nil {
			return nil, err
		}
		r.Header.Set("Content-Type", MediaTypeJSON+"; charset=utf-8")
	}

	value, err := parse(raw)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidRequest, "malformed JSON request body", err)
	}

	return &Payload{Raw: raw, Value: value}, nil
}

func (p *parser) tooLarge() error {
	return errors.NewWithContext(errors.ErrCodePayloadTooLarge, "request entity too large",
		map[string]any{"limit": p.limit})
}

func decodeContent(body io.Reader, encoding string) (io.Reader, error) {
	switch encoding {
	case "", "identity":
		return body, nil
	case "gzip":
		zr, err := gzip.NewReader(body)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidRequest, "invalid gzip request body", err)
		}
		return zr, nil
	case "deflate":
		zr, err := zlib.NewReader(body)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidRequest, "invalid deflate request body", err)
		}
		return zr, nil
	default:
		return nil, errors.NewWithContext(errors.ErrCodeUnsupportedMediaType,
			fmt.Sprintf("unsupported content encoding %q", encoding),
			map[string]any{"encoding": encoding})
	}
}

// transcode converts a UTF-16 (or other utf-*) body to UTF-8.
func transcode(raw []byte, charset string) ([]byte, error) {
	enc, err := htmlindex.Get(charset)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnsupportedMediaType,
			fmt.Sprintf("unsupported charset %q", strings.ToUpper(charset)), err)
	}
	out, _, err := transform.Bytes(enc.NewDecoder(), raw)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidRequest, "failed to decode request body charset", err)
	}
	return out, nil
}

func defaultErrorHandler(w http.ResponseWriter, _ *http.Request, err error) {
	code := errors.CodeOf(err)
	http.Error(w, err.Error(), errors.HTTPStatus(code))
}
