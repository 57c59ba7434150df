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

package serializer

import (
	"mime"
	"net/http"
	"strconv"
	"strings"
)

// Format represents the response format type
type Format string

const (
	// FormatJSON outputs data in JSON format
	FormatJSON Format = "json"
	// FormatYAML outputs data in YAML format
	FormatYAML Format = "yaml"
)

// Content types written for each format.
const (
	ContentTypeJSON = "application/json"
	ContentTypeYAML = "application/yaml"
	ContentTypeHTML = "text/html; charset=utf-8"
)

// IsUnknown reports whether f is not a supported format.
func (f Format) IsUnknown() bool {
	switch f {
	case FormatJSON, FormatYAML:
		return false
	default:
		return true
	}
}

// ContentType returns the media type written for the format.
func (f Format) ContentType() string {
	if f == FormatYAML {
		return ContentTypeYAML
	}
	return ContentTypeJSON
}

// SupportedFormats returns a list of all supported response formats.
func SupportedFormats() []string {
	return []string{
		string(FormatJSON),
		string(FormatYAML),
	}
}

// FormatFromRequest picks the response format from the request Accept header.
// The recognized media range with the highest q-value wins, ties going to the
// earliest; ranges with q=0 are excluded. Anything else yields JSON.
func FormatFromRequest(r *http.Request) Format {
	best, bestQ := FormatJSON, 0.0

	for _, part := range strings.Split(r.Header.Get("Accept"), ",") {
		mediaType, params, err := mime.ParseMediaType(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		f, ok := formatForMediaType(mediaType)
		if !ok {
			continue
		}
		q := 1.0
		if v, ok := params["q"]; ok {
			if q, err = strconv.ParseFloat(v, 64); err != nil {
				continue
			}
		}
		if q > bestQ {
			best, bestQ = f, q
		}
	}

	return best
}

func formatForMediaType(mediaType string) (Format, bool) {
	switch mediaType {
	case "application/yaml", "application/x-yaml", "text/yaml", "text/x-yaml":
		return FormatYAML, true
	case "application/json", "application/*", "*/*":
		return FormatJSON, true
	default:
		return "", false
	}
}
