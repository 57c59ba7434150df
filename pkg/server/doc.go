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

// Package server implements the hardened HTTP bootstrap of the zero trust
// pipeline service.
//
// # Architecture
//
// Every request passes through one pipeline, outermost first:
//
//   - Security headers (package security): CSP and protective headers
//   - Tracing spans (OpenTelemetry otelhttp)
//   - Prometheus request metrics
//   - Request ID tracking
//   - Panic recovery
//   - Request logging
//   - JSON body parsing (package body)
//   - Routing (chi)
//
// Security headers are applied before any downstream stage runs, so error
// responses produced by later stages (400, 404, 413, 415, 429, 500) carry
// them as well.
//
// # Usage
//
// Basic server startup:
//
//	cfg, err := server.NewConfig()
//	if err != nil {
//	    return err
//	}
//
//	s := server.New(
//	    server.WithConfig(cfg),
//	    server.WithAPIRouter(apiRouter),
//	)
//	return s.Run(ctx)
//
// Start binds the listener before serving anything. A port that cannot be
// bound yields a SERVICE_UNAVAILABLE structured error. Once bound, a single
// confirmation line is written to stdout:
//
//	Server is running securely on port 3000
//
// or, with the root page disabled:
//
//	Server running on port 3000
//
// # Endpoints
//
// GET / - Informational HTML page (when ROOT_PAGE is true)
//
// /api, /api/* - Mounted API router, rate limited
//
// GET /health - Liveness probe, always 200
//
// GET /ready - Readiness probe, 503 until the listener is bound
//
// GET /metrics - Prometheus metrics
//
// # Configuration
//
// Configuration is read from the environment once by NewConfig:
//
//	PORT                 listening port (default 3000)
//	ADDRESS              bind host (default all interfaces)
//	ROOT_PAGE            serve the root page (default true)
//	LOG_LEVEL            debug, info, warn, error
//	RATE_LIMIT           /api requests per second (default 100)
//	RATE_LIMIT_BURST     token bucket burst (default 200)
//	BODY_LIMIT           maximum decoded JSON body in bytes (default 102400)
//	READ_TIMEOUT, READ_HEADER_TIMEOUT, WRITE_TIMEOUT, IDLE_TIMEOUT, SHUTDOWN_TIMEOUT
//
// # Error Handling
//
// Errors are returned as a JSON envelope:
//
//	{
//	  "code": "INVALID_REQUEST",
//	  "message": "malformed JSON request body: unexpected EOF",
//	  "requestId": "550e8400-e29b-41d4-a716-446655440000",
//	  "timestamp": "2025-01-01T00:00:00Z",
//	  "retryable": false
//	}
package server
