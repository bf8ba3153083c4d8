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
	"errors"
	"fmt"
	"net/http"
	"net/textproto"
)

// ErrImmutable is returned when writing a header that a plugin already
// decided for the response.
var ErrImmutable = errors.New("immutable header")

// Header gives plugins and handlers access to the response headers. Once a
// plugin writes a header it marks it immutable, and from then on Set, Add
// and Del on that name fail with ErrImmutable. Names are canonicalized with
// textproto.CanonicalMIMEHeaderKey.
//
// The lock only covers writes made through Header; writes made directly on
// the http.ResponseWriter are not checked.
type Header struct {
	wrapped   http.Header
	immutable map[string]bool
}

func newHeader(h http.Header) Header {
	return Header{wrapped: h, immutable: map[string]bool{}}
}

// MarkImmutable locks the header with the given name.
func (h Header) MarkImmutable(name string) {
	h.immutable[textproto.CanonicalMIMEHeaderKey(name)] = true
}

// IsImmutable reports whether a plugin locked the header with the given name.
func (h Header) IsImmutable(name string) bool {
	return h.immutable[textproto.CanonicalMIMEHeaderKey(name)]
}

// writable returns the canonical name, or an error wrapping ErrImmutable.
func (h Header) writable(name string) (string, error) {
	name = textproto.CanonicalMIMEHeaderKey(name)
	if h.immutable[name] {
		return "", fmt.Errorf("%w: %s", ErrImmutable, name)
	}
	return name, nil
}

// Set replaces the values of the named header.
func (h Header) Set(name, value string) error {
	name, err := h.writable(name)
	if err != nil {
		return err
	}
	h.wrapped.Set(name, value)
	return nil
}

// Add appends a value to the named header.
func (h Header) Add(name, value string) error {
	name, err := h.writable(name)
	if err != nil {
		return err
	}
	h.wrapped.Add(name, value)
	return nil
}

// Del removes the named header. Plugins suppressing headers, such as
// version headers, use it before the response is committed.
func (h Header) Del(name string) error {
	name, err := h.writable(name)
	if err != nil {
		return err
	}
	h.wrapped.Del(name)
	return nil
}

// Get returns the first value of the named header, or "".
func (h Header) Get(name string) string {
	return h.wrapped.Get(name)
}

// Values returns every value of the named header.
func (h Header) Values(name string) []string {
	return h.wrapped.Values(name)
}
