// Package body decodes JSON request bodies before route handlers run.
//
// The JSON middleware only acts on requests whose Content-Type media type is
// application/json and that carry a body. It enforces a UTF charset, accepts
// identity, gzip and deflate content encodings, caps the decoded size, and
// requires the top-level value to be an object or an array. An empty body
// decodes to an empty object.
//
// Failures are reported through an ErrorHandler and the wrapped handler is
// never invoked:
//
//   - malformed or non object/array JSON: INVALID_REQUEST (400)
//   - decoded body above the limit: PAYLOAD_TOO_LARGE (413)
//   - unsupported charset or content encoding: UNSUPPORTED_MEDIA_TYPE (415)
//
// On success the parsed value is available through FromContext, and the
// request body is replaced with the decoded bytes so downstream handlers can
// read or re-decode it:
//
//	mw := body.JSON(body.WithLimit(64 << 10))
//	mux := mw(handler)
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//	    if p, ok := body.FromContext(r.Context()); ok {
//	        _ = p.Value // map[string]any or []any
//	    }
//	}
package body
