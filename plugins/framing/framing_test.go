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

package framing_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-safeheaders/plugins/framing"
	"github.com/google/go-safeheaders/safeheaders"
	"github.com/google/go-safeheaders/safeheaders/safeheaderstest"
)

func TestXFrameOptions(t *testing.T) {
	tests := []struct {
		name        string
		policy      framing.Policy
		overrides   []safeheaders.Override
		wantHeaders map[string][]string
	}{
		{
			name:        "Deny",
			policy:      framing.Deny,
			wantHeaders: map[string][]string{"X-Frame-Options": {"Deny"}},
		},
		{
			name:        "SameOrigin",
			policy:      framing.SameOrigin,
			wantHeaders: map[string][]string{"X-Frame-Options": {"SameOrigin"}},
		},
		{
			name:        "Disabled",
			policy:      framing.Disabled,
			wantHeaders: map[string][]string{},
		},
		{
			name:        "Unset",
			wantHeaders: map[string][]string{},
		},
		{
			name:        "Route override",
			policy:      framing.Deny,
			overrides:   []safeheaders.Override{framing.Override{Policy: framing.SameOrigin}},
			wantHeaders: map[string][]string{"X-Frame-Options": {"SameOrigin"}},
		},
		{
			name:   "Last route override wins",
			policy: framing.Disabled,
			overrides: []safeheaders.Override{
				framing.Override{Policy: framing.SameOrigin},
				framing.Override{Policy: framing.Deny},
			},
			wantHeaders: map[string][]string{"X-Frame-Options": {"Deny"}},
		},
		{
			name:        "Disabled by toggle",
			policy:      framing.Deny,
			overrides:   []safeheaders.Override{safeheaders.Disable(safeheaders.KindXFrameOptions)},
			wantHeaders: map[string][]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := safeheaderstest.NewResponseRecorder("/")
			p := &framing.Plugin{Policy: tt.policy}
			if err := p.Apply(rr.Response, tt.overrides); err != nil {
				t.Fatalf("Apply() got err: %v want: nil", err)
			}
			if diff := cmp.Diff(tt.wantHeaders, map[string][]string(rr.Header())); diff != "" {
				t.Errorf("rr.Header() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestUnknownPolicy(t *testing.T) {
	rr := safeheaderstest.NewResponseRecorder("/")
	p := &framing.Plugin{Policy: "AllowFrom"}
	err := p.Apply(rr.Response, nil)
	var cerr *safeheaders.ConfigError
	if !errors.As(err, &cerr) {
		t.Fatalf("Apply() got err: %v want: *safeheaders.ConfigError", err)
	}
	if cerr.Header != "X-Frame-Options" || cerr.Attribute != "policy" {
		t.Errorf("ConfigError got: %s/%s want: X-Frame-Options/policy", cerr.Header, cerr.Attribute)
	}
}

func TestOverrideMatch(t *testing.T) {
	o := framing.Override{Policy: framing.Deny}
	if !o.Match(safeheaders.KindXFrameOptions) {
		t.Error("o.Match(KindXFrameOptions) got: false want: true")
	}
	if o.Match(safeheaders.KindCSP) {
		t.Error("o.Match(KindCSP) got: true want: false")
	}
}

func TestHeadersImmutable(t *testing.T) {
	rr := safeheaderstest.NewResponseRecorder("/")
	p := &framing.Plugin{Policy: framing.Deny}
	if err := p.Apply(rr.Response, nil); err != nil {
		t.Fatalf("Apply() got err: %v want: nil", err)
	}
	for _, name := range []string{"X-Frame-Options"} {
		if err := rr.Response.Header().Set(name, "x"); err == nil {
			t.Errorf("Header().Set(%q) got: nil want: error", name)
		}
	}
}
