package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	ztperrors "github.com/devsecops/zero-trust-pipeline/pkg/errors"
	"github.com/devsecops/zero-trust-pipeline/pkg/serializer"
)

// WriteError writes the JSON error envelope. A request ID is generated when the
// request context carries none.
func WriteError(w http.ResponseWriter, r *http.Request, statusCode int,
	code ztperrors.ErrorCode, message string, retryable bool, details map[string]any) {

	requestID := RequestIDFromContext(r.Context())
	if requestID == "" {
		requestID = uuid.New().String()
	}

	errResp := ErrorResponse{
		Code:      string(code),
		Message:   message,
		Details:   details,
		RequestID: requestID,
		Timestamp: time.Now().UTC(),
		Retryable: retryable,
	}

	serializer.RespondJSON(w, statusCode, errResp)
}

// WriteStructuredError maps err onto the error envelope using its error code.
// Causes of client errors are appended to the message; 5xx causes are not exposed.
func WriteStructuredError(w http.ResponseWriter, r *http.Request, err error) {
	var se *ztperrors.StructuredError
	if !errors.As(err, &se) {
		WriteError(w, r, http.StatusInternalServerError, ztperrors.ErrCodeInternal,
			"Internal server error", true, nil)
		return
	}

	status := ztperrors.HTTPStatus(se.Code)
	message := se.Message
	if se.Cause != nil && status < http.StatusInternalServerError {
		message = se.Message + ": " + se.Cause.Error()
	}

	WriteError(w, r, status, se.Code, message, status >= http.StatusInternalServerError, se.Context)
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	WriteError(w, r, http.StatusNotFound, ztperrors.ErrCodeNotFound,
		"Cannot "+r.Method+" "+r.URL.Path, false, nil)
}

func (s *Server) handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	WriteError(w, r, http.StatusMethodNotAllowed, ztperrors.ErrCodeMethodNotAllowed,
		"Method not allowed", false, map[string]any{"method": r.Method})
}
