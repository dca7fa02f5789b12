// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/signin/internal/api"
	platformredis "github.com/taibuivan/signin/internal/platform/redis"
)

type readinessBody struct {
	Code string `json:"code"`
	Data struct {
		Status string `json:"status"`
		Checks []struct {
			Name  string `json:"name"`
			OK    bool   `json:"ok"`
			Error string `json:"error"`
		} `json:"checks"`
	} `json:"data"`
}

func readiness(t *testing.T, deps api.HealthDependencies) (int, readinessBody) {
	t.Helper()

	_, handler := api.NewHealthHandlers(deps, quietLogger())
	recorder := httptest.NewRecorder()
	handler(recorder, httptest.NewRequest(http.MethodGet, "/ready", nil))

	var body readinessBody
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return recorder.Code, body
}

/*
TestReadiness_MemoryOnly is ready without checks when Redis is not configured.
*/
func TestReadiness_MemoryOnly(t *testing.T) {
	status, body := readiness(t, api.HealthDependencies{})

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ready", body.Data.Status)
	assert.Empty(t, body.Data.Checks)
}

/*
TestReadiness_Redis follows the Redis ping: ready while up, degraded once closed.
*/
func TestReadiness_Redis(t *testing.T) {
	server := miniredis.RunT(t)

	client, err := platformredis.NewClient(context.Background(), "redis://"+server.Addr(), quietLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	deps := api.HealthDependencies{
		CheckCache: func() error { return platformredis.Ping(context.Background(), client) },
	}

	status, body := readiness(t, deps)
	assert.Equal(t, http.StatusOK, status)
	require.Len(t, body.Data.Checks, 1)
	assert.True(t, body.Data.Checks[0].OK)

	server.Close()

	status, body = readiness(t, deps)
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, "SERVICE_UNAVAILABLE", body.Code)
	assert.Equal(t, "degraded", body.Data.Status)
	require.Len(t, body.Data.Checks, 1)
	assert.Equal(t, "redis", body.Data.Checks[0].Name)
	assert.False(t, body.Data.Checks[0].OK)
	assert.NotEmpty(t, body.Data.Checks[0].Error)
}

/*
TestReadiness_RememberDegraded reports a memory-served remembered identity
without failing readiness.
*/
func TestReadiness_RememberDegraded(t *testing.T) {
	degraded := false
	deps := api.HealthDependencies{RememberDegraded: func() bool { return degraded }}

	status, body := readiness(t, deps)
	assert.Equal(t, http.StatusOK, status)
	require.Len(t, body.Data.Checks, 1)
	assert.Equal(t, "remembered_identity", body.Data.Checks[0].Name)
	assert.True(t, body.Data.Checks[0].OK)

	degraded = true

	status, body = readiness(t, deps)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ready", body.Data.Status)
	require.Len(t, body.Data.Checks, 1)
	assert.False(t, body.Data.Checks[0].OK)
	assert.Equal(t, "serving from memory", body.Data.Checks[0].Error)
}
