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

// Policy is a Content-Security-Policy: the configuration of every directive
// plus policy-wide switches. A Policy used as base configuration is never
// modified.
type Policy struct {
	// Enabled switches the whole policy. When false no CSP header is emitted,
	// whatever the directives say.
	Enabled bool
	// Directives holds the configured directives. Missing directives are
	// inherited.
	Directives map[Directive]DirectiveConfig
	// XContentSecurityPolicyHeader also emits the value under the legacy
	// X-Content-Security-Policy header name.
	XContentSecurityPolicyHeader bool
	// XWebKitCSPHeader also emits the value under the legacy X-WebKit-CSP
	// header name.
	XWebKitCSPHeader bool
}

// Directive returns the configuration of d. Directives that were never
// configured are reported as Inherited.
func (p Policy) Directive(d Directive) DirectiveConfig {
	c, ok := p.Directives[d]
	if !ok {
		return DirectiveConfig{Inherited: true}
	}
	return c
}

func (p Policy) clone() Policy {
	dirs := make(map[Directive]DirectiveConfig, len(p.Directives))
	for d, c := range p.Directives {
		dirs[d] = c.clone()
	}
	p.Directives = dirs
	return p
}

// Aggregator collects the overrides of one response on top of a base Policy.
// Directive overrides are only resolved by Snapshot.
type Aggregator struct {
	base    Policy
	policy  []PolicyOverride
	pending []Override

	snapshot *Policy
}

// NewAggregator returns an Aggregator for base. base is not modified.
func NewAggregator(base Policy) *Aggregator {
	return &Aggregator{base: base}
}

// SetDirective records a directive override. Overrides are applied in the
// order they are recorded. An override naming an unknown directive is not
// recorded and a *DirectiveError is returned.
func (a *Aggregator) SetDirective(o Override) error {
	if !o.Directive.valid() {
		return &DirectiveError{Directive: o.Directive, Err: errUnknownDirective}
	}
	a.pending = append(a.pending, o)
	a.snapshot = nil
	return nil
}

// SetPolicy records a policy-wide override.
func (a *Aggregator) SetPolicy(o PolicyOverride) {
	a.policy = append(a.policy, o)
	a.snapshot = nil
}

// SetEnabled switches the whole policy on or off.
func (a *Aggregator) SetEnabled(enabled bool) {
	a.SetPolicy(PolicyOverride{Enabled: &enabled})
}

// IsEnabled reports whether any CSP header should be emitted.
func (a *Aggregator) IsEnabled() bool {
	enabled := a.base.Enabled
	for _, o := range a.policy {
		if o.Enabled != nil {
			enabled = *o.Enabled
		}
	}
	return enabled
}

// Snapshot returns the effective policy: every directive present, with all
// recorded overrides resolved in order. The returned Policy is owned by the
// caller.
func (a *Aggregator) Snapshot() Policy {
	if a.snapshot != nil {
		return a.snapshot.clone()
	}
	p := Policy{
		Enabled:                      a.IsEnabled(),
		Directives:                   make(map[Directive]DirectiveConfig, numDirectives),
		XContentSecurityPolicyHeader: a.base.XContentSecurityPolicyHeader,
		XWebKitCSPHeader:             a.base.XWebKitCSPHeader,
	}
	for _, o := range a.policy {
		if o.XContentSecurityPolicyHeader != nil {
			p.XContentSecurityPolicyHeader = *o.XContentSecurityPolicyHeader
		}
		if o.XWebKitCSPHeader != nil {
			p.XWebKitCSPHeader = *o.XWebKitCSPHeader
		}
	}
	for _, d := range Directives() {
		p.Directives[d] = a.base.Directive(d).clone()
	}
	for _, o := range a.pending {
		c := p.Directives[o.Directive]
		p.Directives[o.Directive] = Resolve(&c, o)
	}
	a.snapshot = &p
	return p.clone()
}
