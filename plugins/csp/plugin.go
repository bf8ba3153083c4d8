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

package csp

import (
	"errors"
	"fmt"

	"github.com/google/go-safeheaders/safeheaders"
)

const (
	headerCSP                 = "Content-Security-Policy"
	headerCSPReportOnly       = "Content-Security-Policy-Report-Only"
	headerXCSP                = "X-Content-Security-Policy"
	headerXCSPReportOnly      = "X-Content-Security-Policy-Report-Only"
	headerWebKitCSP           = "X-WebKit-CSP"
	headerWebKitCSPReportOnly = "X-WebKit-CSP-Report-Only"
)

// Plugin emits the Content-Security-Policy header, or the report-only
// variant, from a base Policy and the route's overrides.
type Plugin struct {
	// Policy is the base policy. It is only read.
	Policy Policy
	// ReportOnly emits Content-Security-Policy-Report-Only instead of
	// Content-Security-Policy.
	ReportOnly bool
}

// Kind implements safeheaders.Plugin.
func (p *Plugin) Kind() safeheaders.Kind {
	return kindFor(p.ReportOnly)
}

// Apply resolves the effective policy and writes it. The legacy headers carry
// the same value as the main one.
func (p *Plugin) Apply(r *safeheaders.Response, overrides []safeheaders.Override) error {
	name, xName, webKitName := headerCSP, headerXCSP, headerWebKitCSP
	if p.ReportOnly {
		name, xName, webKitName = headerCSPReportOnly, headerXCSPReportOnly, headerWebKitCSPReportOnly
	}

	a := NewAggregator(p.Policy)
	for _, o := range overrides {
		switch o := o.(type) {
		case Override:
			if err := a.SetDirective(o); err != nil {
				return &safeheaders.ConfigError{Header: name, Attribute: "directive", Err: err}
			}
		case PolicyOverride:
			a.SetPolicy(o)
		case safeheaders.Toggle:
			a.SetEnabled(o.Enabled)
		}
	}
	if !a.IsEnabled() {
		return nil
	}

	policy := a.Snapshot()
	value, err := policy.Serialize()
	if err != nil {
		attr := "policy"
		var derr *DirectiveError
		if errors.As(err, &derr) {
			attr = derr.Directive.String()
		}
		return &safeheaders.ConfigError{Header: name, Attribute: attr, Err: err}
	}
	if value == "" {
		return nil
	}

	h := r.Header()
	set := []string{name}
	if policy.XContentSecurityPolicyHeader {
		set = append(set, xName)
	}
	if policy.XWebKitCSPHeader {
		set = append(set, webKitName)
	}
	for _, n := range set {
		if err := h.Set(n, value); err != nil {
			return fmt.Errorf("%s: %v", n, err)
		}
		h.MarkImmutable(n)
	}
	return nil
}
