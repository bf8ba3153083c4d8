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

// Package staticheaders emits headers with a fixed value.
package staticheaders

import (
	"github.com/google/go-safeheaders/safeheaders"
)

// Plugin sets one header to a fixed value when enabled.
type Plugin struct {
	Enabled bool

	kind  safeheaders.Kind
	name  string
	value string
}

// NoSniff returns a plugin setting X-Content-Type-Options: nosniff.
func NoSniff(enabled bool) *Plugin {
	return &Plugin{Enabled: enabled, kind: safeheaders.KindXContentTypeOptions, name: "X-Content-Type-Options", value: "nosniff"}
}

// NoOpen returns a plugin setting X-Download-Options: noopen.
func NoOpen(enabled bool) *Plugin {
	return &Plugin{Enabled: enabled, kind: safeheaders.KindXDownloadOptions, name: "X-Download-Options", value: "noopen"}
}

// Kind implements safeheaders.Plugin.
func (p *Plugin) Kind() safeheaders.Kind {
	return p.kind
}

// Apply implements safeheaders.Plugin.
func (p *Plugin) Apply(r *safeheaders.Response, overrides []safeheaders.Override) error {
	if !safeheaders.Enabled(p.Enabled, overrides) {
		return nil
	}
	h := r.Header()
	if err := h.Set(p.name, p.value); err != nil {
		return err
	}
	h.MarkImmutable(p.name)
	return nil
}
