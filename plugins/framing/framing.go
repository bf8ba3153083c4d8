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

// Package framing emits the X-Frame-Options header.
package framing

import (
	"fmt"

	"github.com/google/go-safeheaders/safeheaders"
)

const headerName = "X-Frame-Options"

// Policy is an X-Frame-Options policy.
type Policy string

const (
	// Disabled emits no header. The zero Policy is Disabled too.
	Disabled   Policy = "Disabled"
	Deny       Policy = "Deny"
	SameOrigin Policy = "SameOrigin"
)

// Plugin emits the X-Frame-Options header.
type Plugin struct {
	Policy Policy
}

// Override replaces the policy for a route.
type Override struct {
	Policy Policy
}

// Match implements safeheaders.Override.
func (Override) Match(k safeheaders.Kind) bool {
	return k == safeheaders.KindXFrameOptions
}

// Kind implements safeheaders.Plugin.
func (p *Plugin) Kind() safeheaders.Kind {
	return safeheaders.KindXFrameOptions
}

// Apply writes the header for the last policy declared. A disabling
// safeheaders.Toggle suppresses the header whatever the policy.
func (p *Plugin) Apply(r *safeheaders.Response, overrides []safeheaders.Override) error {
	if !safeheaders.Enabled(true, overrides) {
		return nil
	}
	policy := p.Policy
	for _, o := range overrides {
		if o, ok := o.(Override); ok {
			policy = o.Policy
		}
	}

	var value string
	switch policy {
	case Disabled, "":
		return nil
	case Deny:
		value = "Deny"
	case SameOrigin:
		value = "SameOrigin"
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
