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

// Package safeheaders computes and applies HTTP security response headers.
//
// Every response gets its own Response value, which carries a Gate. The Gate
// guarantees that each logical header (a Kind) is decided at most once per
// response, no matter how many pipeline stages ask for it. A Dispatcher maps
// each Kind to the Plugin that computes it and runs the plugin for the first
// stage that claims the Kind.
//
// Stages pass Override values to the Dispatcher. Overrides are narrower,
// per-route declarations (disable a header, replace or extend a CSP directive,
// change the X-Frame-Options policy, ...). They are applied in the order they
// are given, which must be the order in which the routing layer declared
// them.
//
// A typical setup uses the Dispatcher as net/http middleware:
//
//	d := safeheaders.NewDispatcher(
//		&csp.Plugin{Policy: policy},
//		&hsts.Plugin{MaxAge: 365 * 24 * time.Hour, IncludeSubDomains: true},
//		&framing.Plugin{Policy: framing.Deny},
//	)
//	r := chi.NewRouter()
//	r.Use(d.Handler)
//	r.With(safeheaders.Overrides(framing.Override{Policy: framing.SameOrigin})).
//		Get("/embed", embedHandler)
//
// The Dispatcher runs the global stage right before the response status is
// written, after all route-level overrides have been recorded.
package safeheaders
