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
	"bufio"
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/rs/zerolog/hlog"
)

type ctxKey struct{}

// ResponseFromContext returns the Response installed by Dispatcher.Handler,
// or nil if there is none.
func ResponseFromContext(ctx context.Context) *Response {
	r, _ := ctx.Value(ctxKey{}).(*Response)
	return r
}

// Handler returns middleware that creates the per-response state and runs
// the global stage: ApplyAll with every override recorded for the response.
//
// The global stage runs right before the status line is written, or after
// next returns if next wrote nothing. Stages run by next itself, through
// Apply, claim their kinds first; they still see the recorded overrides.
func (d *Dispatcher) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		resp := NewResponse(w, req)
		cw := &commitWriter{
			ResponseWriter: w,
			commit: func() {
				// Failures are logged by Apply and must not stop the response.
				_ = d.ApplyAll(resp)
			},
		}
		next.ServeHTTP(cw, req.WithContext(context.WithValue(req.Context(), ctxKey{}, resp)))
		cw.commitOnce()
	})
}

// Overrides returns middleware recording override descriptors for the
// requests it serves. Use it on routes or route groups; descriptors from
// outer groups are recorded before the ones of inner groups.
func Overrides(overrides ...Override) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if resp := ResponseFromContext(req.Context()); resp != nil {
				resp.AddOverrides(overrides...)
			} else {
				hlog.FromRequest(req).Warn().Msg("safeheaders: overrides declared without Dispatcher.Handler")
			}
			next.ServeHTTP(w, req)
		})
	}
}

// Named returns middleware declaring the identity of the handler serving the
// requests.
func Named(name string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if resp := ResponseFromContext(req.Context()); resp != nil {
				resp.SetHandlerName(name)
			}
			next.ServeHTTP(w, req)
		})
	}
}

// commitWriter runs commit once, before anything reaches the client.
type commitWriter struct {
	http.ResponseWriter
	commit    func()
	committed bool
}

func (w *commitWriter) commitOnce() {
	if w.committed {
		return
	}
	w.committed = true
	w.commit()
}

func (w *commitWriter) WriteHeader(code int) {
	w.commitOnce()
	w.ResponseWriter.WriteHeader(code)
}

func (w *commitWriter) Write(b []byte) (int, error) {
	w.commitOnce()
	return w.ResponseWriter.Write(b)
}

func (w *commitWriter) Flush() {
	w.commitOnce()
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (w *commitWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("safeheaders: underlying ResponseWriter does not support hijacking")
	}
	return h.Hijack()
}

// Unwrap is used by http.ResponseController.
func (w *commitWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
