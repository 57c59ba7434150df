package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/devsecops/zero-trust-pipeline/pkg/body"
	ztperrors "github.com/devsecops/zero-trust-pipeline/pkg/errors"
	"github.com/devsecops/zero-trust-pipeline/pkg/serializer"
	"github.com/devsecops/zero-trust-pipeline/pkg/server"
)

// Status is the document returned by GET /api.
type Status struct {
	Name      string    `json:"name" yaml:"name"`
	Version   string    `json:"version" yaml:"version"`
	Message   string    `json:"message" yaml:"message"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
	Routes    []string  `json:"routes" yaml:"routes"`
}

// EchoResponse is returned by POST /api/echo.
type EchoResponse struct {
	Received any `json:"received" yaml:"received"`
}

// NewRouter returns the router mounted under /api. Paths are relative to the
// mount point.
func NewRouter() http.Handler {
	r := chi.NewRouter()

	r.NotFound(handleNotFound)
	r.MethodNotAllowed(handleMethodNotAllowed)

	r.Get("/", handleStatus)
	r.Post("/echo", handleEcho)

	return r
}

func handleStatus(w http.ResponseWriter, r *http.Request) {
	slog.Debug("handling api status",
		"method", r.Method,
		"remote_addr", r.RemoteAddr,
	)

	serializer.Respond(w, r, http.StatusOK, Status{
		Name:      name,
		Version:   version,
		Message:   "DevSecOps Zero Trust CI/CD Pipeline API",
		Timestamp: time.Now().UTC(),
		Routes: []string{
			"GET /api",
			"POST /api/echo",
		},
	})
}

func handleEcho(w http.ResponseWriter, r *http.Request) {
	payload, ok := body.FromContext(r.Context())
	if !ok {
		server.WriteError(w, r, http.StatusBadRequest, ztperrors.ErrCodeInvalidRequest,
			"request body must be application/json", false,
			map[string]any{"contentType": r.Header.Get("Content-Type")})
		return
	}

	serializer.Respond(w, r, http.StatusOK, EchoResponse{Received: payload.Value})
}

func handleNotFound(w http.ResponseWriter, r *http.Request) {
	server.WriteError(w, r, http.StatusNotFound, ztperrors.ErrCodeNotFound,
		"Cannot "+r.Method+" "+mountedPath(r), false, nil)
}

func handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	server.WriteError(w, r, http.StatusMethodNotAllowed, ztperrors.ErrCodeMethodNotAllowed,
		"Method not allowed", false, map[string]any{"method": r.Method})
}

// mountedPath restores the /api prefix removed by the server.
func mountedPath(r *http.Request) string {
	if r.URL.Path == "/" {
		return "/api"
	}
	return "/api" + r.URL.Path
}
