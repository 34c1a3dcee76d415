// Package metrics owns the Prometheus registry and the application collectors.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "icebreaker"

// Assignment variants.
const (
	VariantRoom   = "room"
	VariantMember = "member"
)

// Metrics groups the application collectors behind a private registry.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	roomsCreated       prometheus.Counter
	answersSubmitted   prometheus.Counter
	assignments        *prometheus.CounterVec
	assignmentDuration *prometheus.HistogramVec
	parseFailures      *prometheus.CounterVec
	generationTasks    *prometheus.CounterVec
	httpRequests       *prometheus.CounterVec
	httpDuration       *prometheus.HistogramVec
}

// New creates the collectors and registers them, together with the Go
// runtime and process collectors, on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		roomsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rooms_created_total",
			Help:      "Rooms created.",
		}),
		answersSubmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "answers_submitted_total",
			Help:      "Participant answers accepted.",
		}),
		assignments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "assignments_total",
			Help:      "Role assignments produced, by variant and source (ai or fallback).",
		}, []string{"variant", "source"}),
		assignmentDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "assignment_duration_seconds",
			Help:      "Time spent producing one assignment set, model call included.",
			Buckets:   []float64{0.05, 0.25, 1, 2.5, 5, 10, 20, 40, 60, 120},
		}, []string{"variant"}),
		parseFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "model_parse_failures_total",
			Help:      "Model responses rejected by the parser, by failure kind.",
		}, []string{"variant", "kind"}),
		generationTasks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generation_tasks_total",
			Help:      "Room generation tasks, by outcome.",
		}, []string{"outcome"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests, by method, route pattern and status code.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency, by method and route pattern.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.roomsCreated,
		m.answersSubmitted,
		m.assignments,
		m.assignmentDuration,
		m.parseFailures,
		m.generationTasks,
		m.httpRequests,
		m.httpDuration,
	)
	return m
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{EnableOpenMetrics: true})
}

func (m *Metrics) RoomCreated() {
	if m == nil {
		return
	}
	m.roomsCreated.Inc()
}

func (m *Metrics) AnswerSubmitted() {
	if m == nil {
		return
	}
	m.answersSubmitted.Inc()
}

// ObserveAssignment records one produced assignment set.
func (m *Metrics) ObserveAssignment(variant, source string, d time.Duration) {
	if m == nil {
		return
	}
	m.assignments.WithLabelValues(variant, source).Inc()
	m.assignmentDuration.WithLabelValues(variant).Observe(d.Seconds())
}

func (m *Metrics) ParseFailure(variant, kind string) {
	if m == nil {
		return
	}
	m.parseFailures.WithLabelValues(variant, kind).Inc()
}

// GenerationTask records the outcome of a room generation task
// (completed, failed, rejected).
func (m *Metrics) GenerationTask(outcome string) {
	if m == nil {
		return
	}
	m.generationTasks.WithLabelValues(outcome).Inc()
}

// ObserveHTTP records one served request. route is the matched pattern,
// never the raw path, to keep label cardinality bounded.
func (m *Metrics) ObserveHTTP(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}
