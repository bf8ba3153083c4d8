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
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestSnapshotWithoutOverrides(t *testing.T) {
	base := Policy{
		Enabled: true,
		Directives: map[Directive]DirectiveConfig{
			DefaultSrc: {Self: true},
		},
	}
	got := NewAggregator(base).Snapshot()

	if len(got.Directives) != len(Directives()) {
		t.Fatalf("len(Snapshot().Directives) got: %d want: %d", len(got.Directives), len(Directives()))
	}
	if diff := cmp.Diff(DirectiveConfig{Self: true}, got.Directives[DefaultSrc], cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("default-src mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(DirectiveConfig{Inherited: true}, got.Directives[ScriptSrc], cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("script-src mismatch (-want +got):\n%s", diff)
	}
}

func TestSnapshotAppliesOverridesInOrder(t *testing.T) {
	base := Policy{
		Enabled: true,
		Directives: map[Directive]DirectiveConfig{
			DefaultSrc: {Self: true},
			ScriptSrc:  {Self: true, Sources: []string{"a.com"}},
			ImgSrc:     {Sources: []string{"img.com"}},
		},
	}
	a := NewAggregator(base)
	a.SetDirective(Append(ScriptSrc, "b.com"))
	a.SetDirective(Append(ScriptSrc, "c.com"))
	a.SetDirective(Remove(ImgSrc))
	a.SetDirective(Append(StyleSrc, "style.com"))

	got, err := a.Snapshot().Serialize()
	if err != nil {
		t.Fatalf("Serialize() got err: %v", err)
	}
	want := "default-src 'self'; script-src 'self' a.com b.com c.com; style-src style.com"
	if got != want {
		t.Errorf("Snapshot().Serialize() got: %q want: %q", got, want)
	}

	if diff := cmp.Diff([]string{"a.com"}, base.Directives[ScriptSrc].Sources); diff != "" {
		t.Errorf("base policy was modified (-want +got):\n%s", diff)
	}
}

func TestSnapshotIsRecomputedAfterOverride(t *testing.T) {
	a := NewAggregator(Policy{Enabled: true})
	a.SetDirective(Append(ScriptSrc, "a.com"))
	first := a.Snapshot()
	a.SetDirective(Append(ScriptSrc, "b.com"))
	second := a.Snapshot()

	if diff := cmp.Diff([]string{"a.com"}, first.Directives[ScriptSrc].Sources); diff != "" {
		t.Errorf("first snapshot mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"a.com", "b.com"}, second.Directives[ScriptSrc].Sources); diff != "" {
		t.Errorf("second snapshot mismatch (-want +got):\n%s", diff)
	}
}

func TestSnapshotIsNotShared(t *testing.T) {
	a := NewAggregator(Policy{
		Enabled:    true,
		Directives: map[Directive]DirectiveConfig{DefaultSrc: {Self: true}},
	})
	a.SetDirective(Append(ScriptSrc, "a.com"))

	s := a.Snapshot()
	s.Directives[DefaultSrc] = DirectiveConfig{Sources: []string{"evil.example"}}
	s.Directives[ScriptSrc].Sources[0] = "evil.example"

	got, err := a.Snapshot().Serialize()
	if err != nil {
		t.Fatalf("Serialize() got err: %v", err)
	}
	if want := "default-src 'self'; script-src a.com"; got != want {
		t.Errorf("Snapshot().Serialize() got: %q want: %q", got, want)
	}
}

func TestSetDirectiveUnknown(t *testing.T) {
	a := NewAggregator(Policy{Enabled: true})
	err := a.SetDirective(Append(Directive(99), "a.com"))
	var derr *DirectiveError
	if !errors.As(err, &derr) {
		t.Fatalf("SetDirective() got err: %v want: *DirectiveError", err)
	}
	if !errors.Is(err, errUnknownDirective) {
		t.Errorf("SetDirective() got err: %v want: %v", err, errUnknownDirective)
	}
	if got := len(a.pending); got != 0 {
		t.Errorf("pending overrides got: %d want: 0", got)
	}
}

func TestAggregatorEnabled(t *testing.T) {
	yes, no := true, false
	tests := []struct {
		name     string
		base     bool
		policies []PolicyOverride
		want     bool
	}{
		{name: "Base enabled", base: true, want: true},
		{name: "Base disabled", base: false, want: false},
		{name: "Disabled by override", base: true, policies: []PolicyOverride{{Enabled: &no}}, want: false},
		{name: "Enabled by override", base: false, policies: []PolicyOverride{{Enabled: &yes}}, want: true},
		{name: "Last override wins", base: true, policies: []PolicyOverride{{Enabled: &no}, {}, {Enabled: &yes}}, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewAggregator(Policy{Enabled: tt.base})
			for _, o := range tt.policies {
				a.SetPolicy(o)
			}
			if got := a.IsEnabled(); got != tt.want {
				t.Errorf("IsEnabled() got: %v want: %v", got, tt.want)
			}
			if got := a.Snapshot().Enabled; got != tt.want {
				t.Errorf("Snapshot().Enabled got: %v want: %v", got, tt.want)
			}
		})
	}
}

func TestAggregatorLegacyHeaders(t *testing.T) {
	yes, no := true, false
	a := NewAggregator(Policy{Enabled: true, XContentSecurityPolicyHeader: true})
	a.SetPolicy(PolicyOverride{XContentSecurityPolicyHeader: &no, XWebKitCSPHeader: &yes})
	got := a.Snapshot()
	if got.XContentSecurityPolicyHeader {
		t.Error("XContentSecurityPolicyHeader got: true want: false")
	}
	if !got.XWebKitCSPHeader {
		t.Error("XWebKitCSPHeader got: false want: true")
	}
}
