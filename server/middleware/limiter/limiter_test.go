// Copyright 2024 - 2026, the Inkwell contributors
// SPDX-License-Identifier: AGPL-3.0-only

package limiter

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"codeberg.org/inkwell/inkwell/config"
	"codeberg.org/inkwell/inkwell/server/middleware"
)

func newTestHandler() http.Handler {
	return middleware.Wrap(Evaluate, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func doRequest(handler http.Handler, remoteAddr, path string) int {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.RemoteAddr = remoteAddr

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	return rr.Code
}

func TestEvaluate_EnforcesBurst(t *testing.T) {
	config.Global.Limiter.RequestsPerSecond = 1
	config.Global.Limiter.Burst = 2

	handler := newTestHandler()

	assert.Equal(t, http.StatusOK, doRequest(handler, "192.0.2.10:1234", "/"))
	assert.Equal(t, http.StatusOK, doRequest(handler, "192.0.2.10:1234", "/"))
	assert.Equal(t, http.StatusTooManyRequests, doRequest(handler, "192.0.2.10:1234", "/"))

	// A different host has its own budget.
	assert.Equal(t, http.StatusOK, doRequest(handler, "192.0.2.20:1234", "/"))
}

func TestEvaluate_ExemptsStaticAssets(t *testing.T) {
	config.Global.Limiter.RequestsPerSecond = 1
	config.Global.Limiter.Burst = 1

	handler := newTestHandler()

	for range 5 {
		assert.Equal(t, http.StatusOK, doRequest(handler, "192.0.2.30:1234", "/css/style.css"))
	}
}

func TestCleanup_DropsExpiredLimiters(t *testing.T) {
	config.Global.Limiter.RequestsPerSecond = 1
	config.Global.Limiter.Burst = 1

	base := time.Now()
	timeNow = func() time.Time { return base }

	t.Cleanup(func() { timeNow = time.Now })

	getOrCreate("198.51.100.1")

	// Not yet expired.
	cleanup()

	_, ok := limiters.Load("198.51.100.1")
	assert.True(t, ok)

	timeNow = func() time.Time { return base.Add(limiterExpiryDuration + time.Minute) }

	cleanup()

	_, ok = limiters.Load("198.51.100.1")
	assert.False(t, ok)
}

func TestClientHost(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "203.0.113.5:4321"
	assert.Equal(t, "203.0.113.5", clientHost(req))

	req.RemoteAddr = "203.0.113.5"
	assert.Equal(t, "203.0.113.5", clientHost(req))
}
