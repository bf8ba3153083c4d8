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

// Package hsts emits the Strict-Transport-Security header.
package hsts

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/google/go-safeheaders/safeheaders"
)

const headerName = "Strict-Transport-Security"

// Plugin implements the Strict-Transport-Security header.
type Plugin struct {
	// The time that the browser should remember that a site is only to be
	// accessed using HTTPS. Whole seconds are used; a MaxAge below one second
	// disables the header.
	MaxAge time.Duration

	// IncludeSubDomains adds the includeSubDomains directive.
	IncludeSubDomains bool

	// Preload adds the preload directive. This should only be enabled if
	// this site should be added to the browser HSTS preload list. See
	// https://hstspreload.org/ for more info.
	Preload bool

	// HTTPSOnly only sends the header on requests received over TLS.
	HTTPSOnly bool
}

// NewPlugin creates a new HSTS plugin with safe defaults.
func NewPlugin() *Plugin {
	return &Plugin{MaxAge: 63072000 * time.Second, IncludeSubDomains: true} // two years in seconds
}

// Kind implements safeheaders.Plugin.
func (p *Plugin) Kind() safeheaders.Kind {
	return safeheaders.KindHSTS
}

// Apply writes "max-age=<seconds>[; includeSubDomains][; preload]".
func (p *Plugin) Apply(r *safeheaders.Response, overrides []safeheaders.Override) error {
	if !safeheaders.Enabled(true, overrides) {
		return nil
	}
	if p.MaxAge < 0 {
		return &safeheaders.ConfigError{Header: headerName, Attribute: "max-age", Err: errors.New("negative duration")}
	}
	seconds := int64(p.MaxAge / time.Second)
	if seconds == 0 {
		return nil
	}
	if p.HTTPSOnly && !r.TLS() {
		return nil
	}

	var value strings.Builder
	value.WriteString("max-age=")
	value.WriteString(strconv.FormatInt(seconds, 10))
	if p.IncludeSubDomains {
		value.WriteString("; includeSubDomains")
	}
	if p.Preload {
		value.WriteString("; preload")
	}
	h := r.Header()
	if err := h.Set(headerName, value.String()); err != nil {
		return err
	}
	h.MarkImmutable(headerName)
	return nil
}
