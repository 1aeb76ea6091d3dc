// Copyright 2024 - 2026, the Inkwell contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package limiter provides host-based rate limiting for HTTP requests.

Each remote host gets its own token bucket, created on first request
and dropped again after a period of inactivity.
*/
package limiter

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"codeberg.org/inkwell/inkwell/config"
)

const (
	// limiterExpiryDuration is how long to keep idle limiters in memory before cleanup.
	limiterExpiryDuration = time.Hour

	// cleanupInterval is the interval between limiter cleanup runs.
	cleanupInterval = 5 * time.Minute
)

var (
	limiters sync.Map   // In-memory storage for rate limiters, keyed by remote host.
	timeNow  = time.Now // Wrapper for time.Now, which allows us to mock it in tests.
)

// limiterWrapper holds a rate limiter and additional metadata.
type limiterWrapper struct {
	limiter    *rate.Limiter
	host       string // Associated remote host
	lastAccess time.Time
	mu         sync.Mutex // mutex for operations on this limiter
}

// exemptPrefixes are asset paths never counted against a host's budget;
// a single page view pulls in several of them at once.
var exemptPrefixes = []string{"/css/", "/img/", "/icons/"}

// Init starts the background cleanup goroutine.
//
// Call once at startup, before the first request is served.
func Init() {
	go func() {
		ticker := time.NewTicker(cleanupInterval)
		defer ticker.Stop()

		for range ticker.C {
			cleanup()
		}
	}()
}

// Evaluate is a middleware that enforces the configured per-host rate limit,
// responding with 429 Too Many Requests once a host's budget is exhausted.
func Evaluate(w http.ResponseWriter, r *http.Request, next http.Handler) {
	if isExempt(r.URL.Path) {
		next.ServeHTTP(w, r)

		return
	}

	host := clientHost(r)

	if !getOrCreate(host).Allow() {
		log.Warn().
			Str("host", host).
			Str("path", r.URL.Path).
			Msg("Rate limit exceeded")

		w.Header().Set("Retry-After", "1")
		http.Error(w, "Too Many Requests", http.StatusTooManyRequests)

		return
	}

	next.ServeHTTP(w, r)
}

func isExempt(path string) bool {
	for _, prefix := range exemptPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}

	return false
}

// clientHost extracts the remote host from a request, falling back to the
// raw RemoteAddr when it carries no port.
func clientHost(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return host
}

// getOrCreate returns the limiter for host, creating it on first use.
func getOrCreate(host string) *rate.Limiter {
	now := timeNow()

	if v, ok := limiters.Load(host); ok {
		wrapper, ok := v.(*limiterWrapper)
		if ok {
			wrapper.mu.Lock()
			wrapper.lastAccess = now
			wrapper.mu.Unlock()

			return wrapper.limiter
		}
	}

	wrapper := &limiterWrapper{
		limiter: rate.NewLimiter(
			rate.Limit(config.Global.Limiter.RequestsPerSecond),
			config.Global.Limiter.Burst,
		),
		host:       host,
		lastAccess: now,
	}

	// LoadOrStore resolves the race between two first requests from one host.
	actual, _ := limiters.LoadOrStore(host, wrapper)
	if stored, ok := actual.(*limiterWrapper); ok {
		return stored.limiter
	}

	return wrapper.limiter
}

// cleanup drops limiters that have not been used for limiterExpiryDuration.
func cleanup() {
	cutoff := timeNow().Add(-limiterExpiryDuration)
	removed := 0

	limiters.Range(func(key, value any) bool {
		wrapper, ok := value.(*limiterWrapper)
		if !ok {
			limiters.Delete(key)

			return true
		}

		wrapper.mu.Lock()
		expired := wrapper.lastAccess.Before(cutoff)
		wrapper.mu.Unlock()

		if expired {
			limiters.Delete(key)

			removed++
		}

		return true
	})

	if removed > 0 {
		log.Debug().Int("removed", removed).Msg("Cleaned up expired rate limiters")
	}
}
