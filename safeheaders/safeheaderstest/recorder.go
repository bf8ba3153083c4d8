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

// Package safeheaderstest provides helpers to test safeheaders plugins.
package safeheaderstest

import (
	"net/http"
	"net/http/httptest"

	"github.com/google/go-safeheaders/safeheaders"
)

// ResponseRecorder encapsulates a safeheaders.Response that records header
// mutations for later inspection in tests. The safeheaders.Response should
// be passed to plugins and dispatchers under test.
type ResponseRecorder struct {
	*safeheaders.Response
	rec *httptest.ResponseRecorder
}

// NewResponseRecorder creates a ResponseRecorder for a GET request to
// target. A target with scheme "https" yields a TLS request.
func NewResponseRecorder(target string) *ResponseRecorder {
	return NewResponseRecorderFromRequest(httptest.NewRequest(http.MethodGet, target, nil))
}

// NewResponseRecorderFromRequest creates a ResponseRecorder for req.
func NewResponseRecorderFromRequest(req *http.Request) *ResponseRecorder {
	rec := httptest.NewRecorder()
	return &ResponseRecorder{
		Response: safeheaders.NewResponse(rec, req),
		rec:      rec,
	}
}

// Header returns the recorded response headers.
func (r *ResponseRecorder) Header() http.Header {
	return r.rec.Header()
}
