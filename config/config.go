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

// Package config loads security header settings from YAML and builds a
// safeheaders.Dispatcher from them.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/google/go-safeheaders/plugins/csp"
	"github.com/google/go-safeheaders/plugins/framing"
	"github.com/google/go-safeheaders/plugins/hsts"
	"github.com/google/go-safeheaders/plugins/nocache"
	"github.com/google/go-safeheaders/plugins/staticheaders"
	"github.com/google/go-safeheaders/plugins/versionheaders"
	"github.com/google/go-safeheaders/plugins/xssprotection"
	"github.com/google/go-safeheaders/safeheaders"
)

// Config holds the global security header settings.
type Config struct {
	CSP                    CSP             `yaml:"csp"`
	CSPReportOnly          CSP             `yaml:"cspReportOnly"`
	HSTS                   HSTS            `yaml:"hsts"`
	XFrameOptions          XFrameOptions   `yaml:"xFrameOptions"`
	XXSSProtection         XXSSProtection  `yaml:"xXssProtection"`
	XContentTypeOptions    Toggle          `yaml:"xContentTypeOptions"`
	XDownloadOptions       Toggle          `yaml:"xDownloadOptions"`
	SuppressVersionHeaders SuppressVersion `yaml:"suppressVersionHeaders"`
	NoCacheHeaders         Toggle          `yaml:"noCacheHeaders"`
}

// CSP configures one Content-Security-Policy mode. Directives are keyed by
// their header name, e.g. "script-src".
type CSP struct {
	Enabled                      bool                 `yaml:"enabled"`
	XContentSecurityPolicyHeader bool                 `yaml:"xContentSecurityPolicyHeader"`
	XWebKitCSPHeader             bool                 `yaml:"xWebKitCspHeader"`
	Directives                   map[string]Directive `yaml:"directives"`
}

// Directive configures one CSP directive.
type Directive struct {
	None         bool     `yaml:"none"`
	Self         bool     `yaml:"self"`
	UnsafeInline bool     `yaml:"unsafeInline"`
	UnsafeEval   bool     `yaml:"unsafeEval"`
	Enabled      bool     `yaml:"enabled"`
	Source       string   `yaml:"source"`
	Sources      []string `yaml:"sources"`
}

type HSTS struct {
	MaxAge            time.Duration `yaml:"maxAge"`
	IncludeSubDomains bool          `yaml:"includeSubDomains"`
	Preload           bool          `yaml:"preload"`
	HTTPSOnly         bool          `yaml:"httpsOnly"`
}

type XFrameOptions struct {
	Policy framing.Policy `yaml:"policy"`
}

type XXSSProtection struct {
	Policy    xssprotection.Policy `yaml:"policy"`
	BlockMode bool                 `yaml:"blockMode"`
}

type Toggle struct {
	Enabled bool `yaml:"enabled"`
}

type SuppressVersion struct {
	Enabled      bool   `yaml:"enabled"`
	ServerHeader string `yaml:"serverHeader"`
}

// DefaultReportURI is the report-uri of the Default policy.
const DefaultReportURI = "/csp-report"

// Default returns a conservative baseline: a same-origin CSP reporting to
// DefaultReportURI, one year of HSTS, X-Frame-Options Deny, nosniff, noopen
// and version suppression.
func Default() *Config {
	return &Config{
		CSP: CSP{
			Enabled: true,
			Directives: map[string]Directive{
				"default-src": {Self: true},
				"object-src":  {None: true},
				"report-uri":  {Sources: []string{DefaultReportURI}},
			},
		},
		HSTS:                   HSTS{MaxAge: 365 * 24 * time.Hour, IncludeSubDomains: true},
		XFrameOptions:          XFrameOptions{Policy: framing.Deny},
		XXSSProtection:         XXSSProtection{Policy: xssprotection.FilterDisabled},
		XContentTypeOptions:    Toggle{Enabled: true},
		XDownloadOptions:       Toggle{Enabled: true},
		SuppressVersionHeaders: SuppressVersion{Enabled: true},
	}
}

// Load reads and parses the YAML file at path.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(b)
}

// Parse parses a YAML document. Unknown fields and unknown CSP directive
// names are rejected. An empty document disables every header.
func Parse(b []byte) (*Config, error) {
	var c Config
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: %w", err)
	}
	for mode, p := range map[string]CSP{"csp": c.CSP, "cspReportOnly": c.CSPReportOnly} {
		if _, err := p.Policy(); err != nil {
			return nil, fmt.Errorf("config: %s: %w", mode, err)
		}
	}
	return &c, nil
}

// Policy converts c to a csp.Policy.
func (c CSP) Policy() (csp.Policy, error) {
	p := csp.Policy{
		Enabled:                      c.Enabled,
		XContentSecurityPolicyHeader: c.XContentSecurityPolicyHeader,
		XWebKitCSPHeader:             c.XWebKitCSPHeader,
		Directives:                   make(map[csp.Directive]csp.DirectiveConfig, len(c.Directives)),
	}
	for name, d := range c.Directives {
		dir, ok := csp.ParseDirective(name)
		if !ok {
			return csp.Policy{}, fmt.Errorf("unknown directive %q", name)
		}
		p.Directives[dir] = csp.DirectiveConfig{
			None:         d.None,
			Self:         d.Self,
			UnsafeInline: d.UnsafeInline,
			UnsafeEval:   d.UnsafeEval,
			Enabled:      d.Enabled,
			Source:       d.Source,
			Sources:      append([]string(nil), d.Sources...),
		}
	}
	return p, nil
}

// Plugins returns one plugin per header kind, in the order the global stage
// applies them.
func (c *Config) Plugins() ([]safeheaders.Plugin, error) {
	enforce, err := c.CSP.Policy()
	if err != nil {
		return nil, fmt.Errorf("config: csp: %w", err)
	}
	reportOnly, err := c.CSPReportOnly.Policy()
	if err != nil {
		return nil, fmt.Errorf("config: cspReportOnly: %w", err)
	}
	return []safeheaders.Plugin{
		&versionheaders.Plugin{Enabled: c.SuppressVersionHeaders.Enabled, ServerHeader: c.SuppressVersionHeaders.ServerHeader},
		&nocache.Plugin{Enabled: c.NoCacheHeaders.Enabled},
		&hsts.Plugin{
			MaxAge:            c.HSTS.MaxAge,
			IncludeSubDomains: c.HSTS.IncludeSubDomains,
			Preload:           c.HSTS.Preload,
			HTTPSOnly:         c.HSTS.HTTPSOnly,
		},
		staticheaders.NoSniff(c.XContentTypeOptions.Enabled),
		&framing.Plugin{Policy: c.XFrameOptions.Policy},
		&xssprotection.Plugin{Policy: c.XXSSProtection.Policy, BlockMode: c.XXSSProtection.BlockMode},
		staticheaders.NoOpen(c.XDownloadOptions.Enabled),
		&csp.Plugin{Policy: enforce},
		&csp.Plugin{Policy: reportOnly, ReportOnly: true},
	}, nil
}

// Dispatcher builds a Dispatcher applying every header configured in c.
func (c *Config) Dispatcher() (*safeheaders.Dispatcher, error) {
	plugins, err := c.Plugins()
	if err != nil {
		return nil, err
	}
	return safeheaders.NewDispatcher(plugins...), nil
}
