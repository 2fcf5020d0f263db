// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package metrics owns the Prometheus collectors of the auth broker and the
// /metrics exposition handler.
//
// All methods are safe to call on a nil *Metrics, in which case they do
// nothing. This keeps handlers and workers usable in tests without a
// registry.
package metrics

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "auth_broker"

// Access gate decisions, used as the "decision" label of gate_decisions_total.
const (
	DecisionAllowed      = "allowed"
	DecisionMissingToken = "missing_token"
	DecisionInvalidToken = "invalid_token"
	DecisionRoleDenied   = "role_denied"
	DecisionError        = "error"
)

// Metrics groups the broker collectors registered on one registry.
type Metrics struct {
	registry *prometheus.Registry

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpInflight        prometheus.Gauge

	gateDecisionsTotal *prometheus.CounterVec
	tokensPurgedTotal  prometheus.Counter
}

// New creates the collectors and registers them, together with the Go
// runtime and process collectors, on a fresh registry.
func New() (*Metrics, error) {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of processed HTTP requests.",
		}, []string{"method", "route", "status"}),

		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Latency of HTTP requests.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),

		httpInflight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_inflight_requests",
			Help:      "HTTP requests currently being served.",
		}),

		gateDecisionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "gate_decisions_total",
			Help:      "Access gate decisions by outcome.",
		}, []string{"decision"}),

		tokensPurgedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tokens_purged_total",
			Help:      "Expired tokens removed by the cleanup worker.",
		}),
	}

	for _, c := range []prometheus.Collector{
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.httpInflight,
		m.gateDecisionsTotal,
		m.tokensPurgedTotal,
	} {
		if err := register(m.registry, c); err != nil {
			return nil, fmt.Errorf("error registering collector: %w", err)
		}
	}

	return m, nil
}

// register ignores collectors that are already registered.
func register(reg prometheus.Registerer, c prometheus.Collector) error {
	if err := reg.Register(c); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			return nil
		}
		return err
	}
	return nil
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry, e.g. for gathering in tests.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// ObserveRequest records a finished HTTP request. route is the matched
// route pattern, never the raw path.
func (m *Metrics) ObserveRequest(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}

	m.httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func (m *Metrics) RequestStarted() {
	if m != nil {
		m.httpInflight.Inc()
	}
}

func (m *Metrics) RequestFinished() {
	if m != nil {
		m.httpInflight.Dec()
	}
}

// RecordGateDecision counts one access gate outcome.
func (m *Metrics) RecordGateDecision(decision string) {
	if m != nil {
		m.gateDecisionsTotal.WithLabelValues(decision).Inc()
	}
}

// AddPurgedTokens counts tokens removed by the cleanup worker.
func (m *Metrics) AddPurgedTokens(n int64) {
	if m != nil && n > 0 {
		m.tokensPurgedTotal.Add(float64(n))
	}
}
