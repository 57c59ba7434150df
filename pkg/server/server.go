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

package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"

	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	ztperrors "github.com/devsecops/zero-trust-pipeline/pkg/errors"
	"github.com/devsecops/zero-trust-pipeline/pkg/security"
)

// Server represents the HTTP server
type Server struct {
	config         *Config
	httpServer     *http.Server
	headers        *security.Headers
	rateLimiter    *rate.Limiter
	apiRouter      http.Handler
	tracerProvider trace.TracerProvider
	stdout         io.Writer

	mu       sync.RWMutex
	ready    bool
	listener net.Listener
}

// Option is a functional option for configuring Server instances.
type Option func(*Server)

// WithConfig replaces the server configuration. Options applied after it
// still override individual fields.
func WithConfig(cfg *Config) Option {
	return func(s *Server) {
		if cfg != nil {
			c := *cfg
			s.config = &c
		}
	}
}

// WithName sets the server name reported in logs.
func WithName(name string) Option {
	return func(s *Server) {
		s.config.Name = name
	}
}

// WithVersion sets the server version reported in logs.
func WithVersion(version string) Option {
	return func(s *Server) {
		s.config.Version = version
	}
}

// WithRootPage enables or disables the informational page on GET /.
func WithRootPage(enabled bool) Option {
	return func(s *Server) {
		s.config.RootPage = enabled
	}
}

// WithAPIRouter mounts h under /api. Requests reach h with the /api prefix
// removed, the parsed JSON body in their context and everything else intact.
func WithAPIRouter(h http.Handler) Option {
	return func(s *Server) {
		s.apiRouter = h
	}
}

// WithPolicy overrides the Content-Security-Policy.
func WithPolicy(p security.Policy) Option {
	return func(s *Server) {
		s.headers = security.NewHeaders(p)
	}
}

// WithTracerProvider sets the provider used for request spans.
// The global provider is used when none is given.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(s *Server) {
		s.tracerProvider = tp
	}
}

// WithOutput sets where the startup confirmation line is written.
func WithOutput(w io.Writer) Option {
	return func(s *Server) {
		if w != nil {
			s.stdout = w
		}
	}
}

// New creates a new server instance
func New(opts ...Option) *Server {
	s := &Server{
		config:  defaultConfig(),
		headers: security.NewHeaders(security.DefaultPolicy()),
		stdout:  os.Stdout,
	}

	for _, opt := range opts {
		opt(s)
	}

	s.rateLimiter = rate.NewLimiter(rate.Limit(s.config.RateLimit), s.config.RateLimitBurst)

	s.httpServer = &http.Server{
		Addr:              net.JoinHostPort(s.config.Address, strconv.Itoa(s.config.Port)),
		Handler:           s.setupRoutes(),
		ReadTimeout:       s.config.ReadTimeout,
		ReadHeaderTimeout: s.config.ReadHeaderTimeout,
		WriteTimeout:      s.config.WriteTimeout,
		IdleTimeout:       s.config.IdleTimeout,
	}

	return s
}

// Handler returns the fully assembled request pipeline.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Config returns a copy of the effective configuration.
func (s *Server) Config() Config {
	return *s.config
}

// SetReady marks the server as ready to serve traffic
func (s *Server) SetReady(ready bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ready = ready
}

func (s *Server) isReady() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

// Addr returns the bound listener address, or an empty string before Start
// has bound the port.
func (s *Server) Addr() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// listen binds the configured address. Nothing is served until it succeeds.
func (s *Server) listen(ctx context.Context) (net.Listener, error) {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", s.httpServer.Addr)
	if err != nil {
		return nil, ztperrors.WrapWithContext(ztperrors.ErrCodeUnavailable, "failed to bind listener", err,
			map[string]any{"address": s.httpServer.Addr})
	}
	return ln, nil
}

// Start binds the listener and serves until ctx is cancelled or the server
// fails. A bind failure is returned before any request is accepted.
func (s *Server) Start(ctx context.Context) error {
	ln, err := s.listen(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.listener = ln
	s.ready = true
	s.mu.Unlock()

	port := s.config.Port
	if addr, ok := ln.Addr().(*net.TCPAddr); ok {
		port = addr.Port
	}
	fmt.Fprintln(s.stdout, s.config.StartupMessage(port))

	slog.Info("server listening",
		slog.String("address", ln.Addr().String()),
		slog.Bool("rootPage", s.config.RootPage),
		slog.Bool("apiRouter", s.apiRouter != nil),
	)

	// Start server in goroutine
	errChan := make(chan error, 1)
	go func() {
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	// Wait for context cancellation or server error
	select {
	case <-ctx.Done():
		return s.Shutdown(context.Background())
	case err := <-errChan:
		s.SetReady(false)
		return ztperrors.Wrap(ztperrors.ErrCodeInternal, "server failed", err)
	}
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.SetReady(false)

	shutdownCtx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	slog.Info("shutting down server", slog.Duration("timeout", s.config.ShutdownTimeout))
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return ztperrors.Wrap(ztperrors.ErrCodeTimeout, "graceful shutdown did not complete", err)
	}
	return nil
}

// Run starts the server with graceful shutdown on SIGINT and SIGTERM.
func (s *Server) Run(ctx context.Context) error {
	slog.Info("starting server",
		slog.String("name", s.config.Name),
		slog.String("version", s.config.Version),
		slog.String("address", s.httpServer.Addr),
		slog.Any("rateLimit", s.config.RateLimit),
		slog.Int("rateLimitBurst", s.config.RateLimitBurst),
		slog.Int64("bodyLimit", s.config.BodyLimit),
		slog.Duration("readTimeout", s.config.ReadTimeout),
		slog.Duration("writeTimeout", s.config.WriteTimeout),
		slog.Duration("idleTimeout", s.config.IdleTimeout),
		slog.Duration("shutdownTimeout", s.config.ShutdownTimeout),
	)

	// Setup graceful shutdown
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return s.Start(gctx)
	})

	if err := g.Wait(); err != nil {
		slog.Error("server error", slog.String("error", err.Error()))
		return fmt.Errorf("server error: %w", err)
	}

	slog.Info("server stopped gracefully")
	return nil
}
