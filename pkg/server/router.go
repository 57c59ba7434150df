package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/devsecops/zero-trust-pipeline/pkg/body"
	"github.com/devsecops/zero-trust-pipeline/pkg/serializer"
)

const apiPrefix = "/api"

// rootPage is served on GET / when the root page is enabled.
const rootPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>DevSecOps Zero Trust CI/CD Pipeline</title>
</head>
<body>
<h1>DevSecOps Zero Trust CI/CD Pipeline</h1>
<p>Status: <strong>Running</strong></p>
<p>Try the <a href="/api">/api</a> endpoint for the secure JSON API.</p>
</body>
</html>
`

// setupRoutes configures all HTTP routes and middleware
func (s *Server) setupRoutes() http.Handler {
	r := chi.NewRouter()

	// Security headers wrap everything else, including error responses.
	r.Use(
		s.headers.Middleware,
		s.tracingMiddleware,
		s.metricsMiddleware,
		s.requestIDMiddleware,
		s.panicRecoveryMiddleware,
		s.loggingMiddleware,
		body.JSON(
			body.WithLimit(s.config.BodyLimit),
			body.WithErrorHandler(WriteStructuredError),
		),
	)

	r.NotFound(s.handleNotFound)
	r.MethodNotAllowed(s.handleMethodNotAllowed)

	// System endpoints (no rate limiting)
	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)
	r.Handle("/metrics", promhttp.Handler())

	if s.config.RootPage {
		r.Get("/", s.handleRoot)
		r.Head("/", s.handleRoot)
	}

	if s.apiRouter != nil {
		r.Mount(apiPrefix, s.rateLimitMiddleware(stripAPIPrefix(s.apiRouter)))
	}

	return r
}

// handleRoot serves GET and HEAD /. The HTTP server drops the body for HEAD.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	slog.Debug("handling root page",
		"path", r.URL.Path,
		"method", r.Method,
		"remote_addr", r.RemoteAddr,
		"user_agent", r.UserAgent(),
	)

	serializer.RespondHTML(w, http.StatusOK, rootPage)
}

// stripAPIPrefix removes /api from the request path before it reaches the
// mounted router. A bare /api becomes /.
func stripAPIPrefix(next http.Handler) http.Handler {
	return http.StripPrefix(apiPrefix, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "" {
			r.URL.Path = "/"
		}
		next.ServeHTTP(w, r)
	}))
}
