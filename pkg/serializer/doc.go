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

// Package serializer encodes HTTP responses.
//
// The package supports three response formats:
//   - JSON: machine-readable structured data (default)
//   - YAML: human-readable structured data, selected via the Accept header
//   - HTML: fixed documents such as the informational root page
//
// For HTTP responses:
//
//	serializer.RespondJSON(w, http.StatusOK, data)
//	serializer.Respond(w, r, http.StatusOK, data) // negotiates JSON or YAML
//
// Structured responses are encoded into a buffer before any header is
// written, so an encoding failure never produces a partial response.
package serializer
