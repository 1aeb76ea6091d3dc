// Copyright 2024 - 2026, the Inkwell contributors
// SPDX-License-Identifier: AGPL-3.0-only

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNormalizeURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name             string
		requestURL       string
		expectedStatus   int
		expectedLocation string
		shouldRedirect   bool
	}{
		{
			name:           "Root path should not redirect",
			requestURL:     "/",
			expectedStatus: http.StatusOK,
			shouldRedirect: false,
		},
		{
			name:           "Path without trailing slash should not redirect",
			requestURL:     "/posts/hello-world",
			expectedStatus: http.StatusOK,
			shouldRedirect: false,
		},
		{
			name:             "Path with trailing slash should redirect",
			requestURL:       "/posts/hello-world/",
			expectedStatus:   http.StatusPermanentRedirect,
			expectedLocation: "/posts/hello-world",
			shouldRedirect:   true,
		},
		{
			name:             "Query parameters should be preserved in trailing slash redirect",
			requestURL:       "/tags/go/?page=2",
			expectedStatus:   http.StatusPermanentRedirect,
			expectedLocation: "/tags/go?page=2",
			shouldRedirect:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			// Create a test handler that returns 200 OK
			nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})

			handler := Wrap(NormalizeURL, nextHandler)

			req := httptest.NewRequest(http.MethodGet, tt.requestURL, nil)
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d", tt.expectedStatus, w.Code)
			}

			if tt.shouldRedirect {
				location := w.Header().Get("Location")
				if location != tt.expectedLocation {
					t.Errorf("Expected location %q, got %q", tt.expectedLocation, location)
				}
			} else {
				if location := w.Header().Get("Location"); location != "" {
					t.Errorf("Expected no Location header, got %q", location)
				}
			}
		})
	}
}

func TestHasTrailingSlash(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path     string
		expected bool
	}{
		{"/", false},
		{"/posts", false},
		{"/posts/", true},
		{"/tags/ruby/", true},
		{"/tags/ruby", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)

			result := hasTrailingSlash(req)
			if result != tt.expected {
				t.Errorf("hasTrailingSlash(%q) = %v, expected %v", tt.path, result, tt.expected)
			}
		})
	}
}
