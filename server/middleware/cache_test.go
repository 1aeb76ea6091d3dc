// Copyright 2024 - 2026, the Inkwell contributors
// SPDX-License-Identifier: AGPL-3.0-only

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/inkwell/inkwell/core/pagecache"
)

func newCountingHandler(calls *int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*calls++

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("<p>rendered</p>"))
	})
}

func TestCachePages_HitAfterMiss(t *testing.T) {
	cache, err := pagecache.New(8, false)
	require.NoError(t, err)

	calls := 0
	handler := Wrap(CachePages(cache), newCountingHandler(&calls))

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/posts/hello", nil))

	assert.Equal(t, "MISS", first.Header().Get("X-Cache"))
	assert.Equal(t, "<p>rendered</p>", first.Body.String())

	second := httptest.NewRecorder()
	handler.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/posts/hello", nil))

	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
	assert.Equal(t, "<p>rendered</p>", second.Body.String())
	assert.Equal(t, 1, calls, "handler should only render once")
}

func TestCachePages_SkipsNonGet(t *testing.T) {
	cache, err := pagecache.New(8, false)
	require.NoError(t, err)

	calls := 0
	handler := Wrap(CachePages(cache), newCountingHandler(&calls))

	for range 2 {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/posts/hello", nil))
		assert.Empty(t, rr.Header().Get("X-Cache"))
	}

	assert.Equal(t, 2, calls)
}

func TestCachePages_SkipsErrorResponses(t *testing.T) {
	cache, err := pagecache.New(8, false)
	require.NoError(t, err)

	handler := Wrap(CachePages(cache), http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/posts/missing", nil))

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Zero(t, cache.Len())
}

func TestCacheablePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path     string
		expected bool
	}{
		{"/", true},
		{"/posts/hello", true},
		{"/tags", true},
		{"/feed.xml", false},
		{"/css/style.css", false},
		{"/img/avatar.png", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, cacheablePath(tt.path), tt.path)
	}
}
