// Package metrics defines the prometheus collectors exported on /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics. A nil *Metrics records nothing.
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Business metrics
	TodoComputations *prometheus.CounterVec
	TodoContacts     *prometheus.GaugeVec
	OutreachLogged   *prometheus.CounterVec
	LoginAttempts    *prometheus.CounterVec
	DigestRuns       *prometheus.CounterVec
}

// New creates the collectors and registers them with reg
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		TodoComputations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "todo_computations_total",
				Help: "Total number of to-do list computations",
			},
			[]string{"result"}, // success, error
		),
		TodoContacts: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "todo_contacts",
				Help: "Number of contacts in each to-do list at the last computation",
			},
			[]string{"list"}, // due_today, rollover, next_business_day
		),
		OutreachLogged: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "outreach_logged_total",
				Help: "Total number of outreach events logged",
			},
			[]string{"method"},
		),
		LoginAttempts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "login_attempts_total",
				Help: "Total number of login attempts",
			},
			[]string{"status"}, // success, failed
		),
		DigestRuns: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "digest_runs_total",
				Help: "Total number of daily digest runs",
			},
			[]string{"result"},
		),
	}
}

// RecordHTTPRequest records one served request
func (m *Metrics) RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordTodo records a successful to-do computation and the list sizes it produced
func (m *Metrics) RecordTodo(dueToday, rollovers, nextBusinessDay int) {
	if m == nil {
		return
	}
	m.TodoComputations.WithLabelValues("success").Inc()
	m.TodoContacts.WithLabelValues("due_today").Set(float64(dueToday))
	m.TodoContacts.WithLabelValues("rollover").Set(float64(rollovers))
	m.TodoContacts.WithLabelValues("next_business_day").Set(float64(nextBusinessDay))
}

// RecordTodoFailure records a to-do computation that could not load its inputs
func (m *Metrics) RecordTodoFailure() {
	if m == nil {
		return
	}
	m.TodoComputations.WithLabelValues("error").Inc()
}

// RecordOutreach counts a logged outreach event
func (m *Metrics) RecordOutreach(method string) {
	if m == nil {
		return
	}
	m.OutreachLogged.WithLabelValues(method).Inc()
}

// RecordLogin counts a login attempt
func (m *Metrics) RecordLogin(success bool) {
	if m == nil {
		return
	}
	status := "failed"
	if success {
		status = "success"
	}
	m.LoginAttempts.WithLabelValues(status).Inc()
}

// RecordDigest counts a digest run by result
func (m *Metrics) RecordDigest(result string) {
	if m == nil {
		return
	}
	m.DigestRuns.WithLabelValues(result).Inc()
}
