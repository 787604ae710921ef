// Package metrics exposes Prometheus counters for store activity.
package metrics

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/foliocms/folio-core/internal/core/domain"
)

const (
	// Namespace prefixes every metric name
	Namespace = "folio"

	LoginSuccess = "success"
	LoginFailure = "failure"
)

// Metrics holds the counters for one process
type Metrics struct {
	Changes       *prometheus.CounterVec
	LoginAttempts *prometheus.CounterVec
	Subscribers   prometheus.GaugeFunc

	gatherer prometheus.Gatherer
}

// NewMetrics creates and registers the metrics on reg. A nil reg uses a
// fresh registry so tests and multiple servers do not collide.
// subscribers reports the live change-stream subscriber count; it may be nil.
func NewMetrics(reg *prometheus.Registry, subscribers func() int) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	factory := promauto.With(reg)

	m := &Metrics{gatherer: reg}

	m.Changes = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "store_changes_total",
			Help:      "Total number of persisted store changes",
		},
		[]string{"store", "kind"},
	)

	m.LoginAttempts = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "login_attempts_total",
			Help:      "Total number of admin login attempts",
		},
		[]string{"result"},
	)

	if subscribers != nil {
		m.Subscribers = factory.NewGaugeFunc(
			prometheus.GaugeOpts{
				Namespace: Namespace,
				Name:      "change_subscribers",
				Help:      "Number of active change-stream subscribers",
			},
			func() float64 { return float64(subscribers()) },
		)
	}

	return m
}

// ObserveChange counts a persisted change. It has the signature of a
// notifier hook.
func (m *Metrics) ObserveChange(_ context.Context, event domain.ChangeEvent) {
	m.Changes.WithLabelValues(string(event.Store), string(event.Kind)).Inc()
}

// ObserveLogin counts a login attempt
func (m *Metrics) ObserveLogin(success bool) {
	result := LoginFailure
	if success {
		result = LoginSuccess
	}
	m.LoginAttempts.WithLabelValues(result).Inc()
}

// Handler serves the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
