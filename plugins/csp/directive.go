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

// Package csp computes Content-Security-Policy headers from a base policy
// and per-route directive overrides.
package csp

// Directive is one named policy axis of a Content-Security-Policy.
type Directive int

// Directives, in serialization order.
const (
	DefaultSrc Directive = iota
	ScriptSrc
	ObjectSrc
	StyleSrc
	ImgSrc
	MediaSrc
	FrameSrc
	FontSrc
	ConnectSrc
	Sandbox
	PluginTypes
	BlockAllMixedContent
	UpgradeInsecureRequests
	ReportURI

	numDirectives
)

// directiveInfo describes which tokens a directive accepts.
type directiveInfo struct {
	name string
	// keywords is set for fetch directives accepting 'none' and 'self'.
	keywords     bool
	unsafeInline bool
	unsafeEval   bool
	// valueless directives are emitted by name alone when enabled and take
	// no sources.
	valueless bool
	// bare directives may be emitted by name alone when enabled, but also
	// accept tokens.
	bare bool
}

var directives = [numDirectives]directiveInfo{
	DefaultSrc:              {name: "default-src", keywords: true},
	ScriptSrc:               {name: "script-src", keywords: true, unsafeInline: true, unsafeEval: true},
	ObjectSrc:               {name: "object-src", keywords: true},
	StyleSrc:                {name: "style-src", keywords: true, unsafeInline: true},
	ImgSrc:                  {name: "img-src", keywords: true},
	MediaSrc:                {name: "media-src", keywords: true},
	FrameSrc:                {name: "frame-src", keywords: true},
	FontSrc:                 {name: "font-src", keywords: true},
	ConnectSrc:              {name: "connect-src", keywords: true},
	Sandbox:                 {name: "sandbox", bare: true},
	PluginTypes:             {name: "plugin-types"},
	BlockAllMixedContent:    {name: "block-all-mixed-content", valueless: true},
	UpgradeInsecureRequests: {name: "upgrade-insecure-requests", valueless: true},
	ReportURI:               {name: "report-uri"},
}

// Directives returns every directive in serialization order.
func Directives() []Directive {
	out := make([]Directive, 0, numDirectives)
	for d := DefaultSrc; d < numDirectives; d++ {
		out = append(out, d)
	}
	return out
}

func (d Directive) valid() bool {
	return d >= 0 && d < numDirectives
}

// String returns the directive name as it appears in the header.
func (d Directive) String() string {
	if !d.valid() {
		return "unknown-directive"
	}
	return directives[d].name
}

// ParseDirective returns the Directive with the given header name.
func ParseDirective(name string) (Directive, bool) {
	for d := DefaultSrc; d < numDirectives; d++ {
		if directives[d].name == name {
			return d, true
		}
	}
	return 0, false
}

// DirectiveConfig is the configuration of one directive.
//
// Which fields are meaningful depends on the directive: None and Self only
// apply to fetch directives, UnsafeInline to script-src and style-src,
// UnsafeEval to script-src. Fields that do not apply are ignored.
//
// The sandbox directive takes its allow-* flags as Sources, plugin-types
// takes media types, report-uri takes URIs.
type DirectiveConfig struct {
	None         bool
	Self         bool
	UnsafeInline bool
	UnsafeEval   bool

	// Source is a single source, emitted before Sources.
	Source string
	// Sources are emitted in order. Duplicates are kept.
	Sources []string

	// Enabled emits value-less directives (sandbox, block-all-mixed-content,
	// upgrade-insecure-requests) even without any token.
	Enabled bool

	// Inherited is set when the directive was never configured. An inherited
	// directive is not emitted, so browsers fall back to default-src.
	Inherited bool
}

func (c DirectiveConfig) clone() DirectiveConfig {
	c.Sources = append([]string(nil), c.Sources...)
	return c
}

// allSources returns Source followed by Sources.
func (c DirectiveConfig) allSources() []string {
	var out []string
	if c.Source != "" {
		out = append(out, c.Source)
	}
	return append(out, c.Sources...)
}
