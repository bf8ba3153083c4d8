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
	"fmt"
)

// ConfigError reports a configuration value that a header cannot be computed
// from. It aborts the computation of that header only.
type ConfigError struct {
	// Header is the name of the header being computed.
	Header string
	// Attribute names the setting at fault, e.g. "policy" or "script-src".
	Attribute string
	Err       error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: invalid %s: %v", e.Header, e.Attribute, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
