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
	"github.com/google/go-safeheaders/safeheaders"
)

// Op is what an Override does to a directive.
type Op int

const (
	// Merge adds the override's flags and sources to the directive.
	Merge Op = iota
	// Replace replaces the directive with the override's configuration.
	Replace
	// Disable removes the directive. It is not emitted and does not fall
	// back to default-src.
	Disable
)

// Override changes one directive of the enforced or of the report-only
// policy.
type Override struct {
	Directive Directive
	Op        Op
	// Config is ignored by Disable.
	Config DirectiveConfig
	// ReportOnly targets the Content-Security-Policy-Report-Only policy.
	ReportOnly bool
}

// Match implements safeheaders.Override.
func (o Override) Match(k safeheaders.Kind) bool {
	return k == kindFor(o.ReportOnly)
}

// PolicyOverride changes policy-wide settings. Nil fields are left as they
// are.
type PolicyOverride struct {
	Enabled                      *bool
	XContentSecurityPolicyHeader *bool
	XWebKitCSPHeader             *bool
	ReportOnly                   bool
}

// Match implements safeheaders.Override.
func (o PolicyOverride) Match(k safeheaders.Kind) bool {
	return k == kindFor(o.ReportOnly)
}

// Append returns a Merge override adding sources to d.
func Append(d Directive, sources ...string) Override {
	return Override{Directive: d, Op: Merge, Config: DirectiveConfig{Sources: sources}}
}

// Set returns a Replace override.
func Set(d Directive, c DirectiveConfig) Override {
	return Override{Directive: d, Op: Replace, Config: c}
}

// Remove returns a Disable override.
func Remove(d Directive) Override {
	return Override{Directive: d, Op: Disable}
}

// Resolve returns the effective configuration of a directive after applying
// o to base. A nil or inherited base is treated as empty.
//
// Merge ORs the flags and appends the override's sources after the base's,
// keeping duplicates. Applying several overrides is done by feeding each
// result into the next call, in declaration order; the order matters.
func Resolve(base *DirectiveConfig, o Override) DirectiveConfig {
	switch o.Op {
	case Disable:
		return DirectiveConfig{}
	case Replace:
		c := o.Config.clone()
		c.Inherited = false
		return c
	}

	var b DirectiveConfig
	if base != nil && !base.Inherited {
		b = *base
	}
	add := o.Config
	return DirectiveConfig{
		None:         b.None || add.None,
		Self:         b.Self || add.Self,
		UnsafeInline: b.UnsafeInline || add.UnsafeInline,
		UnsafeEval:   b.UnsafeEval || add.UnsafeEval,
		Enabled:      b.Enabled || add.Enabled,
		Sources:      append(b.allSources(), add.allSources()...),
	}
}

func kindFor(reportOnly bool) safeheaders.Kind {
	if reportOnly {
		return safeheaders.KindCSPReportOnly
	}
	return safeheaders.KindCSP
}
