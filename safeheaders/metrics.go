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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts header decisions per Kind.
type Metrics struct {
	Applied *prometheus.CounterVec
	Skipped *prometheus.CounterVec
	Errors  *prometheus.CounterVec
}

// NewMetrics creates the counters and registers them with reg. A nil reg
// leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Applied: f.NewCounterVec(prometheus.CounterOpts{
			Name: "safeheaders_applied_total",
			Help: "Number of header decisions computed, by header kind",
		}, []string{"kind"}),
		Skipped: f.NewCounterVec(prometheus.CounterOpts{
			Name: "safeheaders_skipped_total",
			Help: "Number of header applications skipped because the header was already decided for the response",
		}, []string{"kind"}),
		Errors: f.NewCounterVec(prometheus.CounterOpts{
			Name: "safeheaders_errors_total",
			Help: "Number of header computations aborted by a configuration error",
		}, []string{"kind"}),
	}
}

func (m *Metrics) applied(k Kind) {
	if m != nil {
		m.Applied.WithLabelValues(string(k)).Inc()
	}
}

func (m *Metrics) skipped(k Kind) {
	if m != nil {
		m.Skipped.WithLabelValues(string(k)).Inc()
	}
}

func (m *Metrics) failed(k Kind) {
	if m != nil {
		m.Errors.WithLabelValues(string(k)).Inc()
	}
}
