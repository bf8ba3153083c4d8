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

// Package cspreport receives the violation reports browsers send to the
// report-uri of a Content-Security-Policy.
package cspreport

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/hlog"
)

// maxReportSize bounds the request body read for one delivery.
const maxReportSize = 64 << 10

// Report is a CSP violation report as specified by
// https://www.w3.org/TR/CSP3/#deprecated-serialize-violation
type Report struct {
	// BlockedURL is the URL of the resource that was blocked from loading.
	BlockedURL string
	// Disposition is "enforce" or "report", depending on whether the
	// Content-Security-Policy or the report-only header was violated.
	Disposition        string
	DocumentURL        string
	EffectiveDirective string
	OriginalPolicy     string
	Referrer           string
	// Sample is the first 40 characters of the inline script, event handler,
	// or style that caused the violation.
	Sample string
	// StatusCode is the HTTP status code of the document.
	StatusCode uint
	// ViolatedDirective is kept equal to EffectiveDirective for CSP3 reports.
	ViolatedDirective string
	SourceFile        string
	LineNumber        uint
	ColumnNumber      uint
}

// Handler returns an http.Handler passing every CSP violation report it
// receives to h. It accepts POST requests with either the
// application/csp-report or the application/reports+json content type and
// responds with 204 No Content. Non-CSP reports of a reports+json delivery
// are ignored.
func Handler(h func(*http.Request, Report)) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}
		b, err := io.ReadAll(io.LimitReader(r.Body, maxReportSize))
		if err != nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}

		var reports []Report
		switch r.Header.Get("Content-Type") {
		case "application/csp-report":
			var rep Report
			rep, err = parseDeprecated(b)
			reports = []Report{rep}
		case "application/reports+json":
			reports, err = parseReports(b)
		default:
			http.Error(w, http.StatusText(http.StatusUnsupportedMediaType), http.StatusUnsupportedMediaType)
			return
		}
		if err != nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		for _, rep := range reports {
			h(r, rep)
		}
		w.WriteHeader(http.StatusNoContent)
	})
}

// LogAndCount returns a report callback logging each report with the request
// logger and counting it in c, labeled by effective directive and
// disposition. c may be nil.
func LogAndCount(c *prometheus.CounterVec) func(*http.Request, Report) {
	return func(r *http.Request, rep Report) {
		hlog.FromRequest(r).Warn().
			Str("document", rep.DocumentURL).
			Str("blocked", rep.BlockedURL).
			Str("directive", rep.EffectiveDirective).
			Str("disposition", rep.Disposition).
			Msg("csp violation")
		if c != nil {
			c.WithLabelValues(rep.EffectiveDirective, rep.Disposition).Inc()
		}
	}
}

// NewCounter returns the counter used by LogAndCount, registered with reg
// if reg is not nil.
func NewCounter(reg prometheus.Registerer) *prometheus.CounterVec {
	c := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "safeheaders_csp_violations_total",
		Help: "Number of CSP violation reports received",
	}, []string{"directive", "disposition"})
	if reg != nil {
		reg.MustRegister(c)
	}
	return c
}

// parseDeprecated parses a report delivered with the report-uri mechanism.
// CSP2 wraps the report in a "csp-report" key, CSP3 does not; both are
// accepted.
func parseDeprecated(b []byte) (Report, error) {
	r := struct {
		CSPReport          json.RawMessage `json:"csp-report"`
		BlockedURL         string          `json:"blocked-uri"`
		Disposition        string          `json:"disposition"`
		DocumentURL        string          `json:"document-uri"`
		EffectiveDirective string          `json:"effective-directive"`
		OriginalPolicy     string          `json:"original-policy"`
		Referrer           string          `json:"referrer"`
		Sample             string          `json:"script-sample"`
		StatusCode         uint            `json:"status-code"`
		ViolatedDirective  string          `json:"violated-directive"`
		SourceFile         string          `json:"source-file"`
		LineNo             uint            `json:"lineno"`
		LineNumber         uint            `json:"line-number"`
		ColNo              uint            `json:"colno"`
		ColumnNumber       uint            `json:"column-number"`
	}{}
	if err := json.Unmarshal(b, &r); err != nil {
		return Report{}, err
	}
	if len(r.CSPReport) != 0 {
		if err := json.Unmarshal(r.CSPReport, &r); err != nil {
			return Report{}, err
		}
	}

	ln := r.LineNo
	if ln == 0 {
		ln = r.LineNumber
	}
	cn := r.ColNo
	if cn == 0 {
		cn = r.ColumnNumber
	}
	return Report{
		BlockedURL:         r.BlockedURL,
		Disposition:        r.Disposition,
		DocumentURL:        r.DocumentURL,
		EffectiveDirective: r.EffectiveDirective,
		OriginalPolicy:     r.OriginalPolicy,
		Referrer:           r.Referrer,
		Sample:             r.Sample,
		StatusCode:         r.StatusCode,
		ViolatedDirective:  r.ViolatedDirective,
		SourceFile:         r.SourceFile,
		LineNumber:         ln,
		ColumnNumber:       cn,
	}, nil
}

// parseReports parses a Reporting API delivery, keeping the csp-violation
// reports only. See https://w3c.github.io/webappsec-csp/#reporting
func parseReports(b []byte) ([]Report, error) {
	var deliveries []struct {
		Type string `json:"type"`
		Body struct {
			BlockedURL         string `json:"blockedURL"`
			Disposition        string `json:"disposition"`
			DocumentURL        string `json:"documentURL"`
			EffectiveDirective string `json:"effectiveDirective"`
			OriginalPolicy     string `json:"originalPolicy"`
			Referrer           string `json:"referrer"`
			Sample             string `json:"sample"`
			StatusCode         uint   `json:"statusCode"`
			SourceFile         string `json:"sourceFile"`
			LineNumber         uint   `json:"lineNumber"`
			ColumnNumber       uint   `json:"columnNumber"`
		} `json:"body"`
	}
	if err := json.Unmarshal(b, &deliveries); err != nil {
		return nil, err
	}
	var out []Report
	for _, d := range deliveries {
		if d.Type != "csp-violation" {
			continue
		}
		m := d.Body
		out = append(out, Report{
			BlockedURL:         m.BlockedURL,
			Disposition:        m.Disposition,
			DocumentURL:        m.DocumentURL,
			EffectiveDirective: m.EffectiveDirective,
			OriginalPolicy:     m.OriginalPolicy,
			Referrer:           m.Referrer,
			Sample:             m.Sample,
			StatusCode:         m.StatusCode,
			ViolatedDirective:  m.EffectiveDirective,
			SourceFile:         m.SourceFile,
			LineNumber:         m.LineNumber,
			ColumnNumber:       m.ColumnNumber,
		})
	}
	return out, nil
}
