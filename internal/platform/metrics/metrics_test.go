// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/signin/internal/platform/metrics"
)

/*
TestRecorder_Observations checks every domain collector.
*/
func TestRecorder_Observations(t *testing.T) {
	registry := prometheus.NewRegistry()
	recorder, err := metrics.NewRecorder(registry)
	require.NoError(t, err)

	recorder.ObserveSubmission("success", 1500*time.Millisecond)
	recorder.ObserveSubmission("not_found", 10*time.Millisecond)
	recorder.ObserveSubmission("success", 0)
	recorder.ObserveBlocked()
	recorder.ObserveAction("social")

	assert.Equal(t, 2.0, testutil.ToFloat64(recorder.Submissions.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(recorder.Submissions.WithLabelValues("not_found")))
	assert.Equal(t, 1.0, testutil.ToFloat64(recorder.Blocked))
	assert.Equal(t, 1.0, testutil.ToFloat64(recorder.Actions.WithLabelValues("social")))
	assert.Equal(t, 2, testutil.CollectAndCount(recorder.Duration))
}

/*
TestRecorder_ReRegistration reuses collectors instead of failing.
*/
func TestRecorder_ReRegistration(t *testing.T) {
	registry := prometheus.NewRegistry()

	first, err := metrics.NewRecorder(registry)
	require.NoError(t, err)
	second, err := metrics.NewRecorder(registry)
	require.NoError(t, err)

	first.ObserveBlocked()
	assert.Equal(t, 1.0, testutil.ToFloat64(second.Blocked))
}

/*
TestRecorder_NilIsNoop ensures an unconfigured recorder never panics.
*/
func TestRecorder_NilIsNoop(t *testing.T) {
	var recorder *metrics.Recorder

	assert.NotPanics(t, func() {
		recorder.ObserveSubmission("success", time.Second)
		recorder.ObserveBlocked()
		recorder.ObserveAction("signup")
	})
}

/*
TestHTTPMetrics_RoutePattern labels requests by chi pattern.
*/
func TestHTTPMetrics_RoutePattern(t *testing.T) {
	registry := prometheus.NewRegistry()
	httpMetrics, err := metrics.NewHTTPMetrics(registry)
	require.NoError(t, err)

	router := chi.NewRouter()
	router.Use(httpMetrics.Middleware)
	router.Get("/sessions/{id}", func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusAccepted)
	})

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/sessions/abc", nil))
	require.Equal(t, http.StatusAccepted, recorder.Code)

	labels := prometheus.Labels{"method": http.MethodGet, "route": "/sessions/{id}", "status": "202"}
	assert.Equal(t, 1.0, testutil.ToFloat64(httpMetrics.Requests.With(labels)))
}

/*
TestHTTPMetrics_UnmatchedRoute folds unknown paths into a single label value.
*/
func TestHTTPMetrics_UnmatchedRoute(t *testing.T) {
	registry := prometheus.NewRegistry()
	httpMetrics, err := metrics.NewHTTPMetrics(registry)
	require.NoError(t, err)

	router := chi.NewRouter()
	router.Use(httpMetrics.Middleware)
	router.Get("/sessions/{id}", func(writer http.ResponseWriter, request *http.Request) {})

	for _, path := range []string{"/random/1", "/random/2", "/wp-admin.php"} {
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusNotFound, recorder.Code)
	}

	labels := prometheus.Labels{"method": http.MethodGet, "route": "unmatched", "status": "404"}
	assert.Equal(t, 3.0, testutil.ToFloat64(httpMetrics.Requests.With(labels)))
	assert.Equal(t, 1, testutil.CollectAndCount(httpMetrics.Requests))
}
