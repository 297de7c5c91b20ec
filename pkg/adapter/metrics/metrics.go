// Copyright (c) 2025 The Vastarion Garage Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package metrics instruments the REST API with prometheus counters
// and histograms and exposes the standard /metrics handler.
// Metrics are labeled by the route template (e.g., /vehicles/:vin),
// not the raw URL path, so high-cardinality VINs do not blow up the
// label space.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry bundles the HTTP metrics of one engine instance. Keeping
// them on an instance (instead of package level variables with a
// MustRegister init) lets parallel test suites instantiate separate
// registries without duplicate-registration panics.
type Registry struct {
	registry *prometheus.Registry

	inFlight  prometheus.Gauge
	requests  *prometheus.CounterVec
	durations *prometheus.HistogramVec
}

// New instantiates a Registry with the HTTP request metrics
// registered on a fresh prometheus registry.
func New() *Registry {
	m := &Registry{
		registry: prometheus.NewRegistry(),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "http_in_flight_requests",
			Help: "In-flight HTTP requests.",
		}),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests.",
			},
			[]string{"method", "route", "status"},
		),
		durations: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latencies in seconds.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route", "status"},
		),
	}
	m.registry.MustRegister(m.inFlight, m.requests, m.durations)
	return m
}

// Middleware returns a gin middleware measuring request counts,
// latencies, and the in-flight gauge.
func (m *Registry) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.inFlight.Inc()
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())
		m.durations.WithLabelValues(
			c.Request.Method, route, status,
		).Observe(duration)
		m.requests.WithLabelValues(
			c.Request.Method, route, status,
		).Inc()
		m.inFlight.Dec()
	}
}

// Handler returns the prometheus exposition handler of this registry,
// wrapped for gin.
func (m *Registry) Handler() gin.HandlerFunc {
	h := promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
	return gin.WrapH(h)
}
