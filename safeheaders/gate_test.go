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

package safeheaders

import (
	"net/http/httptest"
	"testing"
)

func TestGateTryClaim(t *testing.T) {
	g := NewGate()
	if !g.TryClaim(KindCSP) {
		t.Fatal("first g.TryClaim(KindCSP) got: false want: true")
	}
	if g.TryClaim(KindCSP) {
		t.Error("second g.TryClaim(KindCSP) got: true want: false")
	}
	if !g.TryClaim(KindHSTS) {
		t.Error("g.TryClaim(KindHSTS) got: false want: true")
	}
	if !g.Claimed(KindCSP) {
		t.Error("g.Claimed(KindCSP) got: false want: true")
	}
}

func TestGatePerResponse(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	first := NewResponse(httptest.NewRecorder(), req)
	if !first.Gate().TryClaim(KindXFrameOptions) {
		t.Fatal("first.Gate().TryClaim() got: false want: true")
	}
	if first.Gate().TryClaim(KindXFrameOptions) {
		t.Fatal("first.Gate().TryClaim() twice got: true want: false")
	}
	second := NewResponse(httptest.NewRecorder(), req)
	if !second.Gate().TryClaim(KindXFrameOptions) {
		t.Error("second.Gate().TryClaim() got: false want: true")
	}
}
