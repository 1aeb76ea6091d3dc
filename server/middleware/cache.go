// Copyright 2024 - 2026, the Inkwell contributors
// SPDX-License-Identifier: AGPL-3.0-only

package middleware

import (
	"maps"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/rs/zerolog/log"

	"codeberg.org/inkwell/inkwell/config"
	"codeberg.org/inkwell/inkwell/core/pagecache"
)

// staticPrefixes are asset paths that the file server handles; their
// responses are cheap to produce and never enter the page cache.
var staticPrefixes = []string{"/css/", "/img/", "/icons/"}

// CachePages returns a middleware that serves rendered HTML pages from cache.
//
// Only successful GET responses with an HTML content type are stored. Requests
// are keyed by the full request URI, so query parameters produce distinct
// entries. The middleware is a no-op in development so that template and
// content changes show up immediately.
func CachePages(cache *pagecache.Cache) Middleware {
	return func(w http.ResponseWriter, r *http.Request, next http.Handler) {
		if cache == nil || r.Method != http.MethodGet ||
			!cacheablePath(r.URL.Path) || config.Global.Development.InDevelopment {
			next.ServeHTTP(w, r)

			return
		}

		key := r.URL.RequestURI()

		if body, ok := cache.Get(key); ok {
			headers := w.Header()
			headers.Set("Content-Type", "text/html; charset=utf-8")
			headers.Set("X-Cache", "HIT")

			w.WriteHeader(http.StatusOK)

			if _, err := w.Write(body); err != nil {
				log.Err(err).Str("path", key).Msg("Failed to write cached response body")
			}

			return
		}

		recorder := httptest.NewRecorder()
		next.ServeHTTP(recorder, r)

		if recorder.Code == http.StatusOK &&
			strings.HasPrefix(recorder.Header().Get("Content-Type"), "text/html") {
			cache.Add(key, recorder.Body.Bytes())
		}

		maps.Copy(w.Header(), recorder.Header())
		w.Header().Set("X-Cache", "MISS")

		if recorder.Code == 0 {
			recorder.Code = http.StatusOK
		}

		w.WriteHeader(recorder.Code)

		if _, err := recorder.Body.WriteTo(w); err != nil {
			log.Err(err).Str("path", key).Msg("Failed to write response body")
		}
	}
}

// cacheablePath reports whether path is a rendered page rather than a static
// asset or the feed, which sets its own content type.
func cacheablePath(path string) bool {
	for _, prefix := range staticPrefixes {
		if strings.HasPrefix(path, prefix) {
			return false
		}
	}

	return path != "/feed.xml"
}
