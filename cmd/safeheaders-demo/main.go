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

// Command safeheaders-demo serves a few pages showing how global security
// headers combine with per-route overrides.
package main

import (
	"flag"
	"io"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/google/safehtml"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"

	"github.com/google/go-safeheaders/config"
	"github.com/google/go-safeheaders/plugins/csp"
	"github.com/google/go-safeheaders/plugins/cspreport"
	"github.com/google/go-safeheaders/plugins/framing"
	"github.com/google/go-safeheaders/plugins/nocache"
	"github.com/google/go-safeheaders/safeheaders"
)

func main() {
	addr := flag.String("addr", "localhost:8080", "address to listen on")
	configPath := flag.String("config", "", "path to a YAML configuration file, built-in defaults are used if empty")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	level := zerolog.InfoLevel
	if *debug {
		level = zerolog.TraceLevel
	}
	log.Logger = log.Level(level).Output(zerolog.ConsoleWriter{Out: os.Stdout})

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			log.Fatal().Err(err).Str("path", *configPath).Msg("cannot load configuration")
		}
	}
	d, err := cfg.Dispatcher()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	reg := prometheus.NewRegistry()
	d.Metrics = safeheaders.NewMetrics(reg)

	log.Info().Str("addr", *addr).Msg("listening")
	if err := http.ListenAndServe(*addr, newRouter(d, reg)); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func newRouter(d *safeheaders.Dispatcher, reg *prometheus.Registry) http.Handler {
	r := chi.NewRouter()
	r.Use(hlog.NewHandler(log.Logger))
	r.Use(d.Handler)

	r.Get("/", page("Default headers."))

	// Frames from a video provider, and may itself be framed by the same origin.
	r.With(safeheaders.Overrides(
		framing.Override{Policy: framing.SameOrigin},
		csp.Append(csp.FrameSrc, "https://www.youtube-nocookie.com"),
	)).Get("/embed", page("Embedding page."))

	r.With(safeheaders.Overrides(safeheaders.Disable(safeheaders.KindCSP))).
		Get("/legacy", page("No Content-Security-Policy on this page."))

	r.With(safeheaders.Named(nocache.BundleHandler)).
		Get("/bundle.js", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "text/javascript; charset=utf-8")
			io.WriteString(w, "console.log('bundle');\n")
		})

	// The handler decides CSP itself; the global stage leaves it alone.
	r.Get("/eval", func(w http.ResponseWriter, req *http.Request) {
		resp := safeheaders.ResponseFromContext(req.Context())
		if resp != nil {
			if err := d.Apply(resp, safeheaders.KindCSP, csp.Override{
				Directive: csp.ScriptSrc,
				Op:        csp.Merge,
				Config:    csp.DirectiveConfig{Self: true, UnsafeEval: true},
			}); err != nil {
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}
		}
		page("This page may use eval.")(w, req)
	})

	r.Method(http.MethodPost, config.DefaultReportURI, cspreport.Handler(cspreport.LogAndCount(cspreport.NewCounter(reg))))
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	return r
}

func page(text string) http.HandlerFunc {
	body := safehtml.HTMLEscaped(text)
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		io.WriteString(w, body.String())
	}
}
