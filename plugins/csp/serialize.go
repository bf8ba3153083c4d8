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

package csp

import (
	"errors"
	"fmt"
	"strings"
)

// DirectiveError reports a directive configuration that cannot be
// serialized.
type DirectiveError struct {
	Directive Directive
	Err       error
}

func (e *DirectiveError) Error() string {
	return fmt.Sprintf("%s: %v", e.Directive, e.Err)
}

func (e *DirectiveError) Unwrap() error {
	return e.Err
}

var (
	errNoneWithSources  = errors.New("'none' cannot be combined with other sources")
	errValueless        = errors.New("directive takes no sources")
	errUnknownDirective = errors.New("unknown directive")
)

var sandboxFlags = map[string]bool{
	"allow-downloads":                         true,
	"allow-forms":                             true,
	"allow-modals":                            true,
	"allow-orientation-lock":                  true,
	"allow-pointer-lock":                      true,
	"allow-popups":                            true,
	"allow-popups-to-escape-sandbox":          true,
	"allow-presentation":                      true,
	"allow-same-origin":                       true,
	"allow-scripts":                           true,
	"allow-top-navigation":                    true,
	"allow-top-navigation-by-user-activation": true,
}

// Serialize returns the header value of p. Directives are emitted in the
// fixed order of the Directive constants, each as "name token...". Blocks are
// separated by "; " and there is no trailing separator. A policy producing
// no directive serializes to "".
//
// Serialize does not look at p.Enabled.
func (p Policy) Serialize() (string, error) {
	var b strings.Builder
	for _, d := range Directives() {
		tokens, emit, err := directiveTokens(d, p.Directive(d))
		if err != nil {
			return "", &DirectiveError{Directive: d, Err: err}
		}
		if !emit {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("; ")
		}
		b.WriteString(d.String())
		for _, t := range tokens {
			b.WriteByte(' ')
			b.WriteString(t)
		}
	}
	return b.String(), nil
}

// directiveTokens validates c and returns the tokens of directive d, and
// whether the directive is emitted at all.
func directiveTokens(d Directive, c DirectiveConfig) ([]string, bool, error) {
	if c.Inherited {
		return nil, false, nil
	}
	info := directives[d]
	sources := c.allSources()
	for _, s := range sources {
		if s == "" || strings.ContainsAny(s, " \t\r\n;,") {
			return nil, false, fmt.Errorf("invalid source %q", s)
		}
	}

	switch {
	case info.valueless:
		if len(sources) > 0 {
			return nil, false, errValueless
		}
		return nil, c.Enabled, nil
	case d == Sandbox:
		for _, s := range sources {
			if !sandboxFlags[s] {
				return nil, false, fmt.Errorf("unknown sandbox flag %q", s)
			}
		}
		return sources, c.Enabled || len(sources) > 0, nil
	case d == PluginTypes:
		for _, s := range sources {
			if i := strings.IndexByte(s, '/'); i <= 0 || i == len(s)-1 {
				return nil, false, fmt.Errorf("invalid media type %q", s)
			}
		}
		return sources, len(sources) > 0, nil
	case !info.keywords:
		return sources, len(sources) > 0, nil
	}

	unsafeInline := info.unsafeInline && c.UnsafeInline
	unsafeEval := info.unsafeEval && c.UnsafeEval
	if c.None {
		if c.Self || unsafeInline || unsafeEval || len(sources) > 0 {
			return nil, false, errNoneWithSources
		}
		return []string{"'none'"}, true, nil
	}

	var tokens []string
	if c.Self {
		tokens = append(tokens, "'self'")
	}
	if unsafeInline {
		tokens = append(tokens, "'unsafe-inline'")
	}
	if unsafeEval {
		tokens = append(tokens, "'unsafe-eval'")
	}
	tokens = append(tokens, sources...)
	return tokens, len(tokens) > 0, nil
}
