package api

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/devsecops/zero-trust-pipeline/pkg/logging"
	"github.com/devsecops/zero-trust-pipeline/pkg/server"
)

const (
	name           = "ztpd"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags to reflect actual version info
	// e.g., -X "github.com/devsecops/zero-trust-pipeline/pkg/api.version=1.0.0"
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Serve starts the API server and blocks until shutdown.
// It reads configuration, configures logging, mounts the API router, and
// handles graceful shutdown. Returns an error if the configuration is invalid,
// the port cannot be bound, or the server fails.
func Serve() error {
	ctx := context.Background()

	cfg, err := server.NewConfig()
	if err != nil {
		logging.SetDefaultStructuredLogger(name, version)
		slog.Error("invalid configuration", "error", err)
		return err
	}

	logging.SetDefaultStructuredLoggerWithLevel(name, version, cfg.LogLevel)
	slog.Info("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
	)

	// Continue traces started by upstream pipeline stages.
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	s := newServer(cfg)

	if err := s.Run(ctx); err != nil {
		slog.Error("server exited with error", "error", err)
		return err
	}

	return nil
}

// newServer assembles the server with the application router mounted.
func newServer(cfg *server.Config, opts ...server.Option) *server.Server {
	base := []server.Option{
		server.WithConfig(cfg),
		server.WithName(name),
		server.WithVersion(version),
		server.WithAPIRouter(NewRouter()),
	}
	return server.New(append(base, opts...)...)
}
