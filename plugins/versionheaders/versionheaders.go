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

// Package versionheaders removes headers revealing the server software and
// its version.
package versionheaders

import (
	"github.com/google/go-safeheaders/safeheaders"
)

// DefaultServerHeader is the Server value used when none is configured.
const DefaultServerHeader = "Webserver 1.0"

// VersionHeaders are the headers removed from responses.
var VersionHeaders = []string{
	"X-Powered-By",
	"X-AspNet-Version",
	"X-AspNetMvc-Version",
	"X-Runtime",
	"X-Generator",
}

// Plugin removes VersionHeaders and replaces the Server header.
type Plugin struct {
	Enabled bool
	// ServerHeader replaces the Server header. DefaultServerHeader is used
	// if empty.
	ServerHeader string
}

// Kind implements safeheaders.Plugin.
func (p *Plugin) Kind() safeheaders.Kind {
	return safeheaders.KindSuppressVersion
}

// Apply implements safeheaders.Plugin.
func (p *Plugin) Apply(r *safeheaders.Response, overrides []safeheaders.Override) error {
	if !safeheaders.Enabled(p.Enabled, overrides) {
		return nil
	}
	h := r.Header()
	for _, name := range VersionHeaders {
		if err := h.Del(name); err != nil {
			return err
		}
	}
	server := p.ServerHeader
	if server == "" {
		server = DefaultServerHeader
	}
	if err := h.Set("Server", server); err != nil {
		return err
	}
	h.MarkImmutable("Server")
	return nil
}
