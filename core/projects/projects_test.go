// Copyright 2024 - 2026, the Inkwell contributors
// SPDX-License-Identifier: AGPL-3.0-only

package projects

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const projectsYAML = `
- name: zeta
  description: A thing
  repo: https://github.com/me/zeta
  language: Go
- name: Alpha
  description: Another thing
  repo: https://codeberg.org/me/alpha
  language: Crystal
  pinned: true
- name: beta
  repo: https://github.com/me/beta
  language: Go
`

func writeProjectsFile(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "projects.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	return path
}

func TestLoad(t *testing.T) {
	t.Parallel()

	list, err := Load(writeProjectsFile(t, projectsYAML))
	require.NoError(t, err)
	require.Len(t, list, 3)

	// Pinned first, then case-insensitive by name.
	assert.Equal(t, "Alpha", list[0].Name)
	assert.Equal(t, "beta", list[1].Name)
	assert.Equal(t, "zeta", list[2].Name)
}

func TestLoad_MissingFileIsEmpty(t *testing.T) {
	t.Parallel()

	list, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestLoad_MalformedYAML(t *testing.T) {
	t.Parallel()

	_, err := Load(writeProjectsFile(t, "{not yaml"))
	require.Error(t, err)
}

func TestEnricher(t *testing.T) {
	t.Parallel()

	var hits int

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++

		switch r.URL.Path {
		case "/repos/me/zeta":
			w.Write([]byte(`{"stargazers_count": 42, "description": "A thing"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	enricher := NewEnricher(time.Hour)
	enricher.apiBase = server.URL

	list := []Project{
		{Name: "zeta", RepoURL: "https://github.com/me/zeta"},
		{Name: "alpha", RepoURL: "https://codeberg.org/me/alpha"},
		{Name: "gone", RepoURL: "https://github.com/me/gone"},
	}

	enricher.Enrich(context.Background(), list)

	assert.Equal(t, 42, list[0].Stars)
	assert.Zero(t, list[1].Stars, "non-GitHub repos are left alone")
	assert.Zero(t, list[2].Stars, "fetch failures are non-fatal")

	// Within the refresh interval the cache answers without new requests.
	firstRoundHits := hits

	enricher.Enrich(context.Background(), list)
	assert.Equal(t, firstRoundHits, hits)
	assert.Equal(t, 42, list[0].Stars)
}

func TestOwnerRepoFrom(t *testing.T) {
	t.Parallel()

	got, err := ownerRepoFrom("https://github.com/me/zeta")
	require.NoError(t, err)
	assert.Equal(t, "me/zeta", got)

	for _, bad := range []string{
		"https://codeberg.org/me/alpha",
		"https://github.com/me",
		"https://github.com/",
		"::invalid::",
	} {
		_, err := ownerRepoFrom(bad)
		assert.ErrorIs(t, err, errNotGitHubRepo, bad)
	}
}
