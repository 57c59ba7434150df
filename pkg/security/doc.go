// Package security holds the protective response headers sent on every
// response, including the Content-Security-Policy.
//
// A Policy is an ordered list of CSP directives. Headers combines a Policy
// with the fixed anti-sniffing, anti-framing and isolation headers and is
// immutable once built:
//
//	headers := security.NewHeaders(security.DefaultPolicy())
//	handler := headers.Middleware(mux)
//
// The middleware sets the headers before the wrapped handler runs and
// re-asserts them when the response status is written, so a handler cannot
// drop or weaken them.
package security
