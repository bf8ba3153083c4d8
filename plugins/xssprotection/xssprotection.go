// Copyright 2024 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// 	https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package xssprotection emits the X-XSS-Protection header.
package xssprotection

import (
	"fmt"

	"github.com/google/go-safeheaders/safeheaders"
)

const headerName = "X-XSS-Protection"

// Policy is an X-XSS-Protection policy.
type Policy string

const (
	// Disabled emits no header. The zero Policy is Disabled too.
	Disabled Policy = "Disabled"
	// FilterDisabled emits "0".
	FilterDisabled Policy = "FilterDisabled"
	// FilterEnabled emits "1", or "1; mode=block" in block mode.
	FilterEnabled Policy = "FilterEnabled"
)

// Plugin emits the X-XSS-Protection header.
type Plugin struct {
	Policy    Policy
	BlockMode bool
}

// Override replaces the policy and block mode for a route.
type Override struct {
	Policy    Policy
	BlockMode bool
}

// Match implements safeheaders.Override.
func (Override) Match(k safeheaders.Kind) bool {
	return k == safeheaders.KindXXSSProtection
}

// Kind implements safeheaders.Plugin.
func (p *Plugin) Kind() safeheaders.Kind {
	return safeheaders.KindXXSSProtection
}

// Apply implements safeheaders.Plugin.
func (p *Plugin) Apply(r *safeheaders.Response, overrides []safeheaders.Override) error {
	if !safeheaders.Enabled(true, overrides) {
		return nil
	}
	policy, block := p.Policy, p.BlockMode
	for _, o := range overrides {
		if o, ok := o.(Override); ok {
			policy, block = o.Policy, o.BlockMode
		}
	}

	var value string
	switch policy {
	case Disabled, "":
		return nil
	case FilterDisabled:
		value = "0"
	case FilterEnabled:
		value = "1"
		if block {
			value = "1; mode=block"
		}
	default:
		return &safeheaders.ConfigError{Header: headerName, Attribute: "policy", Err: fmt.Errorf("unknown policy %q", string(policy))}
	}
	h := r.Header()
	if err := h.Set(headerName, value); err != nil {
		return err
	}
	h.MarkImmutable(headerName)
	return nil
}
