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

package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPolicy_String(t *testing.T) {
	want := "default-src 'self';script-src 'self';object-src 'none';upgrade-insecure-requests"
	assert.Equal(t, want, DefaultPolicy().String())
}

func TestDefaultPolicy_Directives(t *testing.T) {
	p := DefaultPolicy()

	directives := p.Directives()
	require.Len(t, directives, 4)

	names := make([]string, 0, len(directives))
	for _, d := range directives {
		names = append(names, d.Name)
	}
	assert.Equal(t, []string{
		DirectiveDefaultSrc,
		DirectiveScriptSrc,
		DirectiveObjectSrc,
		DirectiveUpgradeInsecureRequests,
	}, names)

	src, ok := p.Sources(DirectiveObjectSrc)
	require.True(t, ok)
	assert.Equal(t, []string{SourceNone}, src)

	src, ok = p.Sources(DirectiveUpgradeInsecureRequests)
	require.True(t, ok)
	assert.Empty(t, src)

	_, ok = p.Sources("style-src")
	assert.False(t, ok)
}

func TestPolicy_Immutable(t *testing.T) {
	p := DefaultPolicy()
	before := p.String()

	directives := p.Directives()
	directives[0].Sources[0] = "https://evil.example"
	directives[1].Name = "img-src"

	src, _ := p.Sources(DirectiveDefaultSrc)
	src[0] = "*"

	assert.Equal(t, before, p.String())
}

func TestNewPolicy(t *testing.T) {
	tests := []struct {
		name       string
		directives []Directive
		want       string
		wantErr    bool
	}{
		{
			name: "normalizes names",
			directives: []Directive{
				{Name: " Default-Src ", Sources: []string{"'self'", "https://cdn.example"}},
			},
			want: "default-src 'self' https://cdn.example",
		},
		{
			name:       "empty policy",
			directives: nil,
			want:       "",
		},
		{
			name:       "empty name",
			directives: []Directive{{Name: ""}},
			wantErr:    true,
		},
		{
			name: "duplicate name",
			directives: []Directive{
				{Name: "default-src", Sources: []string{"'self'"}},
				{Name: "DEFAULT-SRC", Sources: []string{"'none'"}},
			},
			wantErr: true,
		},
		{
			name:       "separator in source",
			directives: []Directive{{Name: "script-src", Sources: []string{"'self';object-src *"}}},
			wantErr:    true,
		},
		{
			name:       "empty source",
			directives: []Directive{{Name: "script-src", Sources: []string{" "}}},
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewPolicy(tt.directives...)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.String())
		})
	}
}
