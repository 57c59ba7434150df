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

// Package defaults provides centralized configuration constants for the
// zero trust pipeline server.
//
// This package defines the listening port, request size limits, rate limits
// and HTTP server timeouts used across the codebase. Centralizing these values
// ensures consistency and makes tuning easier.
//
// # Categories
//
//   - Server: listening port and HTTP server timeouts
//   - Request: JSON body limits
//   - Rate limiting: token bucket sizing for the API router
//
// # Usage
//
// Import and use constants directly:
//
//	import "github.com/devsecops/zero-trust-pipeline/pkg/defaults"
//
//	ctx, cancel := context.WithTimeout(ctx, defaults.ServerShutdownTimeout)
//	defer cancel()
package defaults
