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

// Plugin computes and writes the header(s) of one Kind.
type Plugin interface {
	// Kind returns the header kind this plugin decides.
	Kind() Kind

	// Apply computes the effective header value from the plugin's base
	// configuration and the overrides, in order, and writes it to the
	// response. Overrides are already filtered to the ones matching Kind.
	// An empty value must not be written.
	Apply(r *Response, overrides []Override) error
}
