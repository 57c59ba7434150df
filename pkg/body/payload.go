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

package body

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
)

type contextKey struct{}

// Payload is a parsed JSON request body.
type Payload struct {
	// Raw holds the body bytes after content decoding.
	Raw []byte
	// Value is the decoded value: map[string]any or []any, with numbers as json.Number.
	Value any
}

// FromContext returns the payload parsed for the request, if any.
func FromContext(ctx context.Context) (*Payload, bool) {
	p, ok := ctx.Value(contextKey{}).(*Payload)
	return p, ok && p != nil
}

// WithPayload stores p in ctx.
func WithPayload(ctx context.Context, p *Payload) context.Context {
	return context.WithValue(ctx, contextKey{}, p)
}

// ErrNoPayload is returned by Decode when the request had no JSON body.
var ErrNoPayload = errors.New("request has no JSON body")

// Decode unmarshals the request's parsed JSON body into v.
func Decode(ctx context.Context, v any) error {
	p, ok := FromContext(ctx)
	if !ok {
		return ErrNoPayload
	}
	if len(p.Raw) == 0 {
		return json.Unmarshal([]byte("{}"), v)
	}
	return json.Unmarshal(p.Raw, v)
}

// jsonWhitespace is the insignificant whitespace permitted by RFC 8259.
const jsonWhitespace = " \t\r\n"

// parse decodes raw as a single strict JSON document. Only a zero-length body
// is treated as an empty object.
func parse(raw []byte) (any, error) {
	if len(raw) == 0 {
		return map[string]any{}, nil
	}

	lead := bytes.TrimLeft(raw, jsonWhitespace)
	if len(lead) == 0 || (lead[0] != '{' && lead[0] != '[') {
		return nil, errNotObjectOrArray
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errTrailingData
	}

	return v, nil
}

var (
	errNotObjectOrArray = errors.New("top-level JSON value must be an object or array")
	errTrailingData     = errors.New("unexpected data after top-level JSON value")
)
