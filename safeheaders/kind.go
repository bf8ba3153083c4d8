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

// Kind identifies one logical header decision. A Kind can cover more than one
// header name: KindCSP also controls the legacy X-Content-Security-Policy and
// X-WebKit-CSP headers carrying the same value.
type Kind string

const (
	KindCSP                 Kind = "Content-Security-Policy"
	KindCSPReportOnly       Kind = "Content-Security-Policy-Report-Only"
	KindHSTS                Kind = "Strict-Transport-Security"
	KindXFrameOptions       Kind = "X-Frame-Options"
	KindXContentTypeOptions Kind = "X-Content-Type-Options"
	KindXXSSProtection      Kind = "X-XSS-Protection"
	KindXDownloadOptions    Kind = "X-Download-Options"
	KindSuppressVersion     Kind = "Suppress-Version-Headers"
	KindNoCache             Kind = "No-Cache-Headers"
)

func (k Kind) String() string {
	return string(k)
}
