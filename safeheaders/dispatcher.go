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

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"
	"go.uber.org/multierr"
)

// Dispatcher is the entry point used by pipeline stages to apply headers.
// It is configured once and is safe for concurrent use afterwards; all the
// per-response state lives in Response.
type Dispatcher struct {
	// Logger to use. The global zerolog logger is used if nil.
	Logger *zerolog.Logger
	// Metrics is optional.
	Metrics *Metrics

	plugins map[Kind]Plugin
	order   []Kind
}

// NewDispatcher creates a Dispatcher applying the given plugins. ApplyAll
// runs them in the order given.
func NewDispatcher(plugins ...Plugin) *Dispatcher {
	d := &Dispatcher{plugins: map[Kind]Plugin{}}
	for _, p := range plugins {
		d.Register(p)
	}
	return d
}

// Register adds a plugin. It panics if a plugin for the same Kind was
// already registered.
func (d *Dispatcher) Register(p Plugin) {
	k := p.Kind()
	if _, ok := d.plugins[k]; ok {
		panic(fmt.Sprintf("safeheaders: plugin for %s already registered", k))
	}
	if d.plugins == nil {
		d.plugins = map[Kind]Plugin{}
	}
	d.plugins[k] = p
	d.order = append(d.order, k)
}

// Kinds returns the registered kinds in registration order.
func (d *Dispatcher) Kinds() []Kind {
	return append([]Kind(nil), d.order...)
}

// Apply decides the header of kind k for r. The first call for a given kind
// and response computes and writes the header; every later call is a no-op
// and does not look at its overrides.
//
// The plugin sees the overrides recorded on r by route middleware first,
// then the ones given here, keeping only those matching k.
// A configuration error aborts this header only and is returned.
func (d *Dispatcher) Apply(r *Response, k Kind, overrides ...Override) error {
	p, ok := d.plugins[k]
	if !ok {
		return fmt.Errorf("safeheaders: no plugin registered for %s", k)
	}
	logger := d.logger(r)
	if !r.gate.TryClaim(k) {
		logger.Trace().Stringer("kind", k).Msg("header already applied")
		d.Metrics.skipped(k)
		return nil
	}

	if err := p.Apply(r, matching(k, append(r.Overrides(), overrides...))); err != nil {
		d.Metrics.failed(k)
		ev := logger.Error().Err(err).Stringer("kind", k)
		var cerr *ConfigError
		if errors.As(err, &cerr) {
			ev = ev.Str("header", cerr.Header).Str("attribute", cerr.Attribute)
		}
		ev.Msg("cannot apply header")
		return err
	}
	d.Metrics.applied(k)
	return nil
}

// ApplyAll calls Apply for every registered kind. A failure for one kind
// does not prevent the others; all failures are combined in the returned
// error.
func (d *Dispatcher) ApplyAll(r *Response, overrides ...Override) error {
	var err error
	for _, k := range d.order {
		err = multierr.Append(err, d.Apply(r, k, overrides...))
	}
	return err
}

// logger returns the request logger when one was installed with hlog, and
// the dispatcher's logger otherwise.
func (d *Dispatcher) logger(r *Response) *zerolog.Logger {
	if r.req != nil {
		if l := hlog.FromRequest(r.req); l.GetLevel() != zerolog.Disabled {
			return l
		}
	}
	if d.Logger != nil {
		return d.Logger
	}
	return &log.Logger
}
