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

// Package nocache emits headers preventing responses from being cached.
package nocache

import (
	"strings"

	"github.com/google/go-safeheaders/safeheaders"
)

// BundleHandler is the handler name whose responses are never marked
// no-cache. Bundles are versioned and meant to be cached.
const BundleHandler = "BundleHandler"

var exemptSuffixes = []string{"ScriptResource.axd", "WebResource.axd"}

// Plugin sets Cache-Control, Pragma and Expires so that neither browsers
// nor intermediaries cache the response.
type Plugin struct {
	Enabled bool
}

// Kind implements safeheaders.Plugin.
func (p *Plugin) Kind() safeheaders.Kind {
	return safeheaders.KindNoCache
}

// Apply implements safeheaders.Plugin.
func (p *Plugin) Apply(r *safeheaders.Response, overrides []safeheaders.Override) error {
	if !safeheaders.Enabled(p.Enabled, overrides) {
		return nil
	}
	if r.HandlerName() == BundleHandler {
		return nil
	}
	path := r.Path()
	for _, s := range exemptSuffixes {
		if strings.HasSuffix(path, s) {
			return nil
		}
	}

	h := r.Header()
	for _, kv := range [][2]string{
		{"Cache-Control", "no-cache, no-store, must-revalidate"},
		{"Expires", "-1"},
		{"Pragma", "no-cache"},
	} {
		if err := h.Set(kv[0], kv[1]); err != nil {
			return err
		}
		h.MarkImmutable(kv[0])
	}
	return nil
}
