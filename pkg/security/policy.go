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
	"fmt"
	"strings"
)

// Directive names used by the default policy.
const (
	DirectiveDefaultSrc              = "default-src"
	DirectiveScriptSrc               = "script-src"
	DirectiveObjectSrc               = "object-src"
	DirectiveUpgradeInsecureRequests = "upgrade-insecure-requests"
)

// Source tokens.
const (
	SourceSelf = "'self'"
	SourceNone = "'none'"
)

// Directive is a single CSP directive and its allowed sources, in order.
// Value-less directives such as upgrade-insecure-requests have no sources.
type Directive struct {
	Name    string
	Sources []string
}

// Policy is an immutable, ordered Content-Security-Policy.
type Policy struct {
	directives []Directive
}

// NewPolicy builds a policy from directives. Names are lower-cased; a
// duplicate name, an empty name or a source containing a separator is rejected.
func NewPolicy(directives ...Directive) (Policy, error) {
	seen := make(map[string]bool, len(directives))
	out := make([]Directive, 0, len(directives))

	for _, d := range directives {
		name := strings.ToLower(strings.TrimSpace(d.Name))
		if name == "" || strings.ContainsAny(name, " ;,") {
			return Policy{}, fmt.Errorf("invalid directive name %q", d.Name)
		}
		if seen[name] {
			return Policy{}, fmt.Errorf("duplicate directive %q", name)
		}
		seen[name] = true

		sources := make([]string, 0, len(d.Sources))
		for _, src := range d.Sources {
			src = strings.TrimSpace(src)
			if src == "" || strings.ContainsAny(src, " ;,") {
				return Policy{}, fmt.Errorf("invalid source %q for directive %q", src, name)
			}
			sources = append(sources, src)
		}
		out = append(out, Directive{Name: name, Sources: sources})
	}

	return Policy{directives: out}, nil
}

// DefaultPolicy returns the policy applied to every response:
// default-src 'self'; script-src 'self'; object-src 'none'; upgrade-insecure-requests.
func DefaultPolicy() Policy {
	p, err := NewPolicy(
		Directive{Name: DirectiveDefaultSrc, Sources: []string{SourceSelf}},
		Directive{Name: DirectiveScriptSrc, Sources: []string{SourceSelf}},
		Directive{Name: DirectiveObjectSrc, Sources: []string{SourceNone}},
		Directive{Name: DirectiveUpgradeInsecureRequests},
	)
	if err != nil {
		panic(err)
	}
	return p
}

// Directives returns a copy of the policy's directives.
func (p Policy) Directives() []Directive {
	out := make([]Directive, len(p.directives))
	for i, d := range p.directives {
		out[i] = Directive{Name: d.Name, Sources: append([]string(nil), d.Sources...)}
	}
	return out
}

// Sources returns the sources of a directive and whether it is present.
func (p Policy) Sources(name string) ([]string, bool) {
	name = strings.ToLower(name)
	for _, d := range p.directives {
		if d.Name == name {
			return append([]string(nil), d.Sources...), true
		}
	}
	return nil, false
}

// String renders the header value, directives joined by ';'.
func (p Policy) String() string {
	parts := make([]string, 0, len(p.directives))
	for _, d := range p.directives {
		if len(d.Sources) == 0 {
			parts = append(parts, d.Name)
			continue
		}
		parts = append(parts, d.Name+" "+strings.Join(d.Sources, " "))
	}
	return strings.Join(parts, ";")
}
