// Copyright 2024 - 2026, the Inkwell contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import "time"

const (
	// Default HTTP cache max age in seconds.
	defaultHTTPCacheMaxAgeSeconds = 60
	// Default HTTP cache stale while revalidate in seconds.
	defaultHTTPCacheStaleWhileRevalidateSeconds = 120

	// Default page cache capacity in entries.
	defaultPageCacheSize = 256

	// Default GitHub metadata refresh interval in minutes.
	defaultProjectsRefreshMinutes = 30

	// Default limiter budget.
	defaultLimiterRequestsPerSecond = 5
	defaultLimiterBurst             = 20

	// Default number of posts on the index page and in the Atom feed.
	defaultIndexPosts = 10
	defaultFeedPosts  = 20
)

// SetDefaults populates the configuration with default values.
func (cfg *ServerConfig) SetDefaults() {
	cfg.Basic.Host = "localhost"
	cfg.Basic.Port = "8484"

	cfg.Site.Title = "Inkwell"
	cfg.Site.Author = "Anonymous"
	cfg.Site.RawBaseURL = "http://localhost:8484"

	cfg.Content.Dir = "./content"
	cfg.Content.ProjectsFile = "projects.yaml"
	cfg.Content.IndexPosts = defaultIndexPosts
	cfg.Content.FeedPosts = defaultFeedPosts

	cfg.HTTPCache.MaxAge = defaultHTTPCacheMaxAgeSeconds * time.Second
	cfg.HTTPCache.StaleWhileRevalidate = defaultHTTPCacheStaleWhileRevalidateSeconds * time.Second

	cfg.PageCache.Enabled = true
	cfg.PageCache.Size = defaultPageCacheSize
	cfg.PageCache.Compress = true

	cfg.Projects.GitHubStars = false
	cfg.Projects.RefreshInterval = defaultProjectsRefreshMinutes * time.Minute

	cfg.Limiter.Enabled = false
	cfg.Limiter.RequestsPerSecond = defaultLimiterRequestsPerSecond
	cfg.Limiter.Burst = defaultLimiterBurst

	cfg.Instance.RepoURL = "https://codeberg.org/inkwell/inkwell"

	cfg.Log.Level = "info"
	cfg.Log.Outputs = []string{"/dev/stderr"}
	cfg.Log.Format = "console"
}
