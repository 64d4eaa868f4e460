// Package metrics exposes Prometheus collectors for Megam API traffic.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/rajesh-rajagopal/megam-api/httpx"
)

// Metrics holds the client-side request collectors.
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	TransportErrors *prometheus.CounterVec
}

// New creates the collectors under namespace (e.g. "megam").
func New(namespace string) *Metrics {
	return &Metrics{
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "api",
				Name:      "requests_total",
				Help:      "Total number of API requests that received a response",
			},
			[]string{"method", "code"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "api",
				Name:      "request_duration_seconds",
				Help:      "API request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method"},
		),
		TransportErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "api",
				Name:      "transport_errors_total",
				Help:      "Total number of API requests that failed before a response arrived",
			},
			[]string{"method"},
		),
	}
}

// Register adds all collectors to reg.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{m.RequestsTotal, m.RequestDuration, m.TransportErrors} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// AfterHook records every exchange made through an httpx.Client.
func (m *Metrics) AfterHook() httpx.AfterHook {
	return func(req *http.Request, resp *httpx.Response, err error, dur time.Duration) {
		m.RequestDuration.WithLabelValues(req.Method).Observe(dur.Seconds())
		if resp == nil {
			m.TransportErrors.WithLabelValues(req.Method).Inc()
			return
		}
		m.RequestsTotal.WithLabelValues(req.Method, strconv.Itoa(resp.StatusCode)).Inc()
	}
}
