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

// Override is a per-route declaration that changes how a header is computed.
type Override interface {
	// Match reports whether this Override is meant for the given Kind.
	Match(Kind) bool
}

// Toggle enables or disables the header of the given Kind. It is understood
// by every plugin in this module.
type Toggle struct {
	Kind    Kind
	Enabled bool
}

// Match implements Override.
func (t Toggle) Match(k Kind) bool {
	return t.Kind == k
}

// Disable returns a Toggle that disables the header of kind k.
func Disable(k Kind) Toggle {
	return Toggle{Kind: k}
}

// Enable returns a Toggle that enables the header of kind k.
func Enable(k Kind) Toggle {
	return Toggle{Kind: k, Enabled: true}
}

// Enabled folds every Toggle in overrides into def, in order. The last
// Toggle wins.
func Enabled(def bool, overrides []Override) bool {
	for _, o := range overrides {
		if t, ok := o.(Toggle); ok {
			def = t.Enabled
		}
	}
	return def
}

func matching(k Kind, overrides []Override) []Override {
	var out []Override
	for _, o := range overrides {
		if o != nil && o.Match(k) {
			out = append(out, o)
		}
	}
	return out
}
