// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package flow

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics are the Prometheus collectors of flow invocations.
type Metrics struct {
	invocations *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	inFlight    *prometheus.GaugeVec
}

// NewMetrics creates the flow collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		invocations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "talentflow",
			Subsystem: "flow",
			Name:      "invocations_total",
			Help:      "Flow invocations by flow and outcome.",
		}, []string{"flow", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "talentflow",
			Subsystem: "flow",
			Name:      "duration_seconds",
			Help:      "Flow invocation latency.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		}, []string{"flow"}),
		inFlight: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "talentflow",
			Subsystem: "flow",
			Name:      "in_flight",
			Help:      "Flow invocations in progress.",
		}, []string{"flow"}),
	}
	reg.MustRegister(m.invocations, m.duration, m.inFlight)
	return m
}

func (m *Metrics) start(flowName string) {
	if m == nil {
		return
	}
	m.inFlight.WithLabelValues(flowName).Inc()
}

func (m *Metrics) finish(flowName string, err *Error, d time.Duration) {
	if m == nil {
		return
	}
	m.inFlight.WithLabelValues(flowName).Dec()
	m.invocations.WithLabelValues(flowName, outcome(err)).Inc()
	m.duration.WithLabelValues(flowName).Observe(d.Seconds())
}

func outcome(err *Error) string {
	if err == nil {
		return "succeeded"
	}
	return strings.ToLower(string(err.Kind))
}
