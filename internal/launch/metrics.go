// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package launch

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "ultivm"

// Metrics are the prometheus collectors of the launcher. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	launches           *prometheus.CounterVec
	validationFailures prometheus.Counter
	duration           prometheus.Histogram
}

// NewMetrics creates the launcher [Metrics] and registers them with the given
// registerer.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		launches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "launches_total",
			Help:      "Number of finished launches by outcome.",
		}, []string{"outcome"}),
		validationFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "validation_failures_total",
			Help:      "Number of launches rejected because of invalid arguments.",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "launch_duration_seconds",
			Help:      "Duration of launches from validation to hypervisor exit.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 10, 8),
		}),
	}

	for _, collector := range []prometheus.Collector{
		m.launches,
		m.validationFailures,
		m.duration,
	} {
		err := reg.Register(collector)
		if err != nil {
			return nil, fmt.Errorf("register metrics: %w", err)
		}
	}

	return m, nil
}

func (m *Metrics) observe(outcome *Outcome, duration time.Duration) {
	if m == nil {
		return
	}

	m.launches.WithLabelValues(outcome.outcomeLabel()).Inc()
	m.duration.Observe(duration.Seconds())
}

func (m *Metrics) validationFailed() {
	if m == nil {
		return
	}

	m.validationFailures.Inc()
}
