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
	"net/http"
)

// Response is the per-response state shared by every stage that touches the
// headers of one response: the header collection, the Gate and the override
// descriptors recorded so far.
//
// A Response is created once per request and dropped with it. It is not safe
// for concurrent use.
type Response struct {
	header Header
	gate   *Gate
	req    *http.Request

	handler   string
	overrides []Override
}

// NewResponse creates the per-response state for a response written through
// rw for the request req.
func NewResponse(rw http.ResponseWriter, req *http.Request) *Response {
	return &Response{
		header: newHeader(rw.Header()),
		gate:   NewGate(),
		req:    req,
	}
}

// Header returns the collection of headers that will be set on the response.
func (r *Response) Header() Header {
	return r.header
}

// Gate returns the Gate of this response.
func (r *Response) Gate() *Gate {
	return r.gate
}

// Request returns the request this response answers.
func (r *Response) Request() *http.Request {
	return r.req
}

// Path returns the path of the request URL, or "" if unknown.
func (r *Response) Path() string {
	if r.req == nil || r.req.URL == nil {
		return ""
	}
	return r.req.URL.Path
}

// TLS reports whether the request was received over TLS.
func (r *Response) TLS() bool {
	return r.req != nil && r.req.TLS != nil
}

// HandlerName returns the identity of the handler serving the request, as
// declared by the routing layer. It is "" when no handler was declared.
func (r *Response) HandlerName() string {
	return r.handler
}

// SetHandlerName records the identity of the handler serving the request.
func (r *Response) SetHandlerName(name string) {
	r.handler = name
}

// AddOverrides records override descriptors. They are kept in the order in
// which they were added.
func (r *Response) AddOverrides(overrides ...Override) {
	r.overrides = append(r.overrides, overrides...)
}

// Overrides returns the override descriptors recorded so far.
func (r *Response) Overrides() []Override {
	return append([]Override(nil), r.overrides...)
}
