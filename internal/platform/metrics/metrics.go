// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package metrics exposes Prometheus collectors for the sign-in flow and the HTTP layer.

Collectors:

  - signin_submissions_total{outcome}: resolved submissions (success, not_found, ...).
  - signin_submission_duration_seconds{outcome}: time from Submitting entry to resolution.
  - signin_blocked_submissions_total: submissions stopped by field validation.
  - signin_actions_total{action}: social, reset and signup simulations.
  - signin_http_requests_total / signin_http_request_duration_seconds.

A nil [*Recorder] is a valid no-op so tests and tools can skip instrumentation.
*/
package metrics

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "signin"

// unmatchedRoute labels requests no route pattern matched.
const unmatchedRoute = "unmatched"

// Recorder records sign-in domain events.
type Recorder struct {
	Submissions *prometheus.CounterVec
	Duration    *prometheus.HistogramVec
	Blocked     prometheus.Counter
	Actions     *prometheus.CounterVec
}

// NewRecorder builds the domain collectors and registers them with reg.
// A nil registerer falls back to [prometheus.DefaultRegisterer].
func NewRecorder(reg prometheus.Registerer) (*Recorder, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	submissions, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "submissions_total",
		Help:      "Resolved sign-in submissions partitioned by outcome.",
	}, []string{"outcome"}))
	if err != nil {
		return nil, err
	}

	duration, err := register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "submission_duration_seconds",
		Help:      "Time spent in the Submitting state partitioned by outcome.",
		Buckets:   []float64{0.05, 0.25, 0.5, 1, 1.5, 2, 3, 5},
	}, []string{"outcome"}))
	if err != nil {
		return nil, err
	}

	blocked, err := register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "blocked_submissions_total",
		Help:      "Submissions rejected by field validation before authentication.",
	}))
	if err != nil {
		return nil, err
	}

	actions, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "actions_total",
		Help:      "Auxiliary page actions (social, reset, signup).",
	}, []string{"action"}))
	if err != nil {
		return nil, err
	}

	return &Recorder{
		Submissions: submissions,
		Duration:    duration,
		Blocked:     blocked,
		Actions:     actions,
	}, nil
}

// ObserveSubmission records a resolved submission.
func (r *Recorder) ObserveSubmission(outcome string, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.Submissions.WithLabelValues(outcome).Inc()
	r.Duration.WithLabelValues(outcome).Observe(elapsed.Seconds())
}

// ObserveBlocked records a submission stopped by validation.
func (r *Recorder) ObserveBlocked() {
	if r == nil {
		return
	}
	r.Blocked.Inc()
}

// ObserveAction records an auxiliary action.
func (r *Recorder) ObserveAction(action string) {
	if r == nil {
		return
	}
	r.Actions.WithLabelValues(action).Inc()
}

// # HTTP Instrumentation

// HTTPMetrics instruments chi routes.
type HTTPMetrics struct {
	Requests *prometheus.CounterVec
	Duration *prometheus.HistogramVec
}

// NewHTTPMetrics builds the HTTP collectors and registers them with reg.
func NewHTTPMetrics(reg prometheus.Registerer) (*HTTPMetrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	requests, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests partitioned by method, route, and status code.",
	}, []string{"method", "route", "status"}))
	if err != nil {
		return nil, err
	}

	duration, err := register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latencies partitioned by method, route, and status code.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "status"}))
	if err != nil {
		return nil, err
	}

	return &HTTPMetrics{Requests: requests, Duration: duration}, nil
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (recorder *statusRecorder) WriteHeader(code int) {
	recorder.status = code
	recorder.ResponseWriter.WriteHeader(code)
}

// Middleware records every request once the route pattern is resolved.
func (m *HTTPMetrics) Middleware(next http.Handler) http.Handler {
	if m == nil {
		return next
	}

	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		start := time.Now()
		wrapped := &statusRecorder{ResponseWriter: writer, status: http.StatusOK}

		next.ServeHTTP(wrapped, request)

		// Use the pattern rather than the raw path to keep label cardinality bounded.
		route := unmatchedRoute
		if routeContext := chi.RouteContext(request.Context()); routeContext != nil {
			if pattern := routeContext.RoutePattern(); pattern != "" {
				route = pattern
			}
		}

		labels := prometheus.Labels{
			"method": request.Method,
			"route":  route,
			"status": strconv.Itoa(wrapped.status),
		}
		m.Requests.With(labels).Inc()
		m.Duration.With(labels).Observe(time.Since(start).Seconds())
	})
}

// Handler serves the registry in the Prometheus exposition format.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// register adds collector to reg, reusing an identical collector that is
// already registered.
func register[C prometheus.Collector](reg prometheus.Registerer, collector C) (C, error) {
	err := reg.Register(collector)
	if err == nil {
		return collector, nil
	}

	var already prometheus.AlreadyRegisteredError
	if !errors.As(err, &already) {
		return collector, fmt.Errorf("metrics: register collector: %w", err)
	}

	existing, ok := already.ExistingCollector.(C)
	if !ok {
		return collector, fmt.Errorf("metrics: existing collector has unexpected type %T", already.ExistingCollector)
	}
	return existing, nil
}
