// Package errors provides structured error types for better observability
// and programmatic error handling across the application.
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeUnavailable,
//	    "failed to bind listener",
//	    err,
//	    map[string]any{
//	        "address": addr,
//	    },
//	)
//
// HTTP layers map codes to status codes with [HTTPStatus].
package errors
