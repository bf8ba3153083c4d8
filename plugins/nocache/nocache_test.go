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

package nocache_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-safeheaders/plugins/nocache"
	"github.com/google/go-safeheaders/safeheaders"
	"github.com/google/go-safeheaders/safeheaders/safeheaderstest"
)

var noCacheHeaders = map[string][]string{
	"Cache-Control": {"no-cache, no-store, must-revalidate"},
	"Expires":       {"-1"},
	"Pragma":        {"no-cache"},
}

func TestNoCache(t *testing.T) {
	tests := []struct {
		name        string
		enabled     bool
		target      string
		handler     string
		overrides   []safeheaders.Override
		wantHeaders map[string][]string
	}{
		{
			name:        "Enabled",
			enabled:     true,
			target:      "/account",
			handler:     "account",
			wantHeaders: noCacheHeaders,
		},
		{
			name:        "Unnamed handler",
			enabled:     true,
			target:      "/account",
			wantHeaders: noCacheHeaders,
		},
		{
			name:        "Disabled",
			target:      "/account",
			wantHeaders: map[string][]string{},
		},
		{
			name:        "Bundle handler",
			enabled:     true,
			target:      "/bundles/app.js",
			handler:     nocache.BundleHandler,
			wantHeaders: map[string][]string{},
		},
		{
			name:        "Script resource",
			enabled:     true,
			target:      "/ScriptResource.axd",
			wantHeaders: map[string][]string{},
		},
		{
			name:        "Web resource",
			enabled:     true,
			target:      "/assets/WebResource.axd?d=1",
			wantHeaders: map[string][]string{},
		},
		{
			name:        "Disabled by toggle",
			enabled:     true,
			target:      "/account",
			overrides:   []safeheaders.Override{safeheaders.Disable(safeheaders.KindNoCache)},
			wantHeaders: map[string][]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := safeheaderstest.NewResponseRecorder(tt.target)
			rr.SetHandlerName(tt.handler)
			p := &nocache.Plugin{Enabled: tt.enabled}
			if err := p.Apply(rr.Response, tt.overrides); err != nil {
				t.Fatalf("Apply() got err: %v want: nil", err)
			}
			if diff := cmp.Diff(tt.wantHeaders, map[string][]string(rr.Header())); diff != "" {
				t.Errorf("rr.Header() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestHeadersImmutable(t *testing.T) {
	rr := safeheaderstest.NewResponseRecorder("/")
	p := &nocache.Plugin{Enabled: true}
	if err := p.Apply(rr.Response, nil); err != nil {
		t.Fatalf("Apply() got err: %v want: nil", err)
	}
	for _, name := range []string{"Cache-Control", "Expires", "Pragma"} {
		if err := rr.Response.Header().Set(name, "x"); err == nil {
			t.Errorf("Header().Set(%q) got: nil want: error", name)
		}
	}
}
