// Copyright 2024 - 2026, the Inkwell contributors
// SPDX-License-Identifier: AGPL-3.0-only

package projects

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"

	"codeberg.org/inkwell/inkwell/core/audit"
	"codeberg.org/inkwell/inkwell/core/idgen"
)

const (
	githubAPIBase = "https://api.github.com"

	// githubRequestTimeout bounds a single metadata fetch.
	githubRequestTimeout = 10 * time.Second

	// maxGithubResponseBytes guards against absurd response sizes.
	maxGithubResponseBytes = 1 << 20
)

var (
	errNotGitHubRepo     = errors.New("repo URL is not a github.com repository")
	errGithubBadStatus   = errors.New("github API returned a non-200 status")
	errGithubMissingStar = errors.New("github API response has no stargazers_count")
)

// Enricher fills Project.Stars from the GitHub API, remembering results for
// a refresh interval so the projects page never fans out on every render.
type Enricher struct {
	client   *http.Client
	apiBase  string
	interval time.Duration

	mu      sync.Mutex
	fetched time.Time
	stars   map[string]int // repo URL -> star count
}

// NewEnricher creates an Enricher that refreshes at most every interval.
func NewEnricher(interval time.Duration) *Enricher {
	return &Enricher{
		client:   &http.Client{Timeout: githubRequestTimeout},
		apiBase:  githubAPIBase,
		interval: interval,
		stars:    map[string]int{},
	}
}

// Enrich fills Stars on every GitHub-hosted project in list, refreshing the
// cached counts when they are stale. Fetch failures are logged and leave the
// affected project's count at its last known value; the page renders anyway.
func (e *Enricher) Enrich(ctx context.Context, list []Project) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if time.Since(e.fetched) >= e.interval {
		for i := range list {
			stars, err := e.fetchStars(ctx, list[i].RepoURL)
			if err != nil {
				if !errors.Is(err, errNotGitHubRepo) {
					log.Warn().
						Err(err).
						Str("repo", list[i].RepoURL).
						Msg("Failed to fetch GitHub metadata")
				}

				continue
			}

			e.stars[list[i].RepoURL] = stars
		}

		e.fetched = time.Now()
	}

	for i := range list {
		list[i].Stars = e.stars[list[i].RepoURL]
	}
}

// fetchStars queries the GitHub repos API for one repository.
func (e *Enricher) fetchStars(ctx context.Context, repoURL string) (int, error) {
	ownerRepo, err := ownerRepoFrom(repoURL)
	if err != nil {
		return 0, err
	}

	apiURL := e.apiBase + "/repos/" + ownerRepo

	span := audit.Span{
		Destination: audit.ToGitHub,
		RequestID:   idgen.Make(),
		Method:      http.MethodGet,
		URL:         apiURL,
	}

	ctx = span.Begin(ctx)
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, githubRequestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to build github request: %w", err)
	}

	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := e.client.Do(req)
	if err != nil {
		span.Error = err
		span.Log()

		return 0, fmt.Errorf("github request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxGithubResponseBytes))
	if err != nil {
		return 0, fmt.Errorf("failed to read github response: %w", err)
	}

	span.StatusCode = resp.StatusCode
	span.BodySize = len(body)
	span.Log()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("%w: %d for %s", errGithubBadStatus, resp.StatusCode, ownerRepo)
	}

	stars := gjson.GetBytes(body, "stargazers_count")
	if !stars.Exists() {
		return 0, errGithubMissingStar
	}

	return int(stars.Int()), nil
}

// ownerRepoFrom extracts "owner/repo" from a github.com repository URL.
func ownerRepoFrom(repoURL string) (string, error) {
	parsed, err := url.Parse(repoURL)
	if err != nil || parsed.Host != "github.com" {
		return "", fmt.Errorf("%w: %q", errNotGitHubRepo, repoURL)
	}

	parts := strings.Split(strings.Trim(parsed.Path, "/"), "/")

	const ownerRepoParts = 2
	if len(parts) != ownerRepoParts || parts[0] == "" || parts[1] == "" {
		return "", fmt.Errorf("%w: %q", errNotGitHubRepo, repoURL)
	}

	return parts[0] + "/" + parts[1], nil
}
