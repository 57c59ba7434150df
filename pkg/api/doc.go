// Package api provides the application layer of the zero trust pipeline service.
//
// This package acts as a thin wrapper around the reusable pkg/server package,
// configuring it with the application name, version and the router mounted
// under /api.
//
// # Usage
//
// To start the API server:
//
//	package main
//
//	import (
//	    "log"
//	    "github.com/devsecops/zero-trust-pipeline/pkg/api"
//	)
//
//	func main() {
//	    if err := api.Serve(); err != nil {
//	        log.Fatal(err)
//	    }
//	}
//
// # Architecture
//
// The API layer is responsible for:
//   - Reading configuration from the environment
//   - Configuring structured logging with application name and version
//   - Supplying the /api router
//   - Delegating server lifecycle management to pkg/server
//
// # Endpoints
//
// Application endpoints (rate limited):
//   - GET /api       - Service status document (JSON, or YAML with Accept: application/yaml)
//   - POST /api/echo - Returns the parsed JSON request body under "received"
//
// System endpoints are provided by pkg/server.
//
// Example:
//
//	curl -X POST http://localhost:3000/api/echo \
//	  -H "Content-Type: application/json" \
//	  -d '{"stage":"build"}'
//
// # Configuration
//
// See pkg/server for the environment variables. Version information is set at
// build time using ldflags:
//
//	go build -ldflags="-X 'github.com/devsecops/zero-trust-pipeline/pkg/api.version=1.0.0'"
package api
