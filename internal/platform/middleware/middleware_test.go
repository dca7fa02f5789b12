// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/taibuivan/signin/internal/platform/constants"
	"github.com/taibuivan/signin/internal/platform/ctxutil"
	"github.com/taibuivan/signin/internal/platform/middleware"
	"github.com/taibuivan/signin/internal/platform/respond"
)

type stubConfig struct {
	dev     bool
	origins []string
}

func (c stubConfig) IsDevelopment() bool      { return c.dev }
func (c stubConfig) AllowedOrigins() []string { return c.origins }

/*
TestRequestID_GeneratesAndPropagates keeps a client ID and mints one otherwise.
*/
func TestRequestID_GeneratesAndPropagates(t *testing.T) {
	var seen string
	handler := middleware.RequestID()(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = ctxutil.GetRequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(constants.HeaderXRequestID, "client-id")
	handler.ServeHTTP(rec, req)
	assert.Equal(t, "client-id", seen)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, seen)
	assert.NotEqual(t, "client-id", seen)
	assert.Equal(t, seen, rec.Header().Get(constants.HeaderXRequestID))
}

/*
TestLanguage_Negotiation stores the matched catalog language in the context.
*/
func TestLanguage_Negotiation(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   language.Tag
	}{
		{"vietnamese", "vi-VN,vi;q=0.9", language.Vietnamese},
		{"english", "en-US", language.English},
		{"unsupported_falls_back", "ja", language.English},
		{"missing_falls_back", "", language.English},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got language.Tag
			handler := middleware.Language(language.English)(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
				got = ctxutil.GetLanguage(r.Context(), language.Und)
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set(constants.HeaderAcceptLanguage, tt.header)
			}
			handler.ServeHTTP(httptest.NewRecorder(), req)

			base, _ := got.Base()
			wantBase, _ := tt.want.Base()
			assert.Equal(t, wantBase, base)
		})
	}
}

/*
TestCORS_AllowList only echoes origins from the allow-list outside development.
*/
func TestCORS_AllowList(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	handler := middleware.CORS(stubConfig{origins: []string{"https://app.example.com"}})(next)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(constants.HeaderOrigin, "https://app.example.com")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, "https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set(constants.HeaderOrigin, "https://evil.example.com")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

/*
TestRateLimit_Burst rejects requests past the burst from a single IP.
*/
func TestRateLimit_Burst(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	handler := middleware.RateLimit(ctx)(next)

	limited := 0
	var rejected *httptest.ResponseRecorder
	for range constants.DefaultRateLimitBurst + 5 {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(constants.HeaderXRealIP, "10.0.0.1")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code == http.StatusTooManyRequests {
			limited++
			rejected = rec
		}
	}

	assert.Positive(t, limited)
	require.NotNil(t, rejected)
	assert.Equal(t, "1", rejected.Header().Get(constants.HeaderRetryAfter))

	var body respond.ErrorEnvelope
	require.NoError(t, json.Unmarshal(rejected.Body.Bytes(), &body))
	assert.Equal(t, "RATE_LIMITED", body.Code)
	assert.Equal(t, "Too many requests. Try again in 1s.", body.Error)
}

/*
TestPanicRecovery_Returns500 converts a panic into a JSON error.
*/
func TestPanicRecovery_Returns500(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := middleware.PanicRecovery(logger)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "INTERNAL_ERROR")
}
