// Copyright 2024 - 2026, the Inkwell contributors
// SPDX-License-Identifier: AGPL-3.0-only

package routes

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/inkwell/inkwell/config"
	"codeberg.org/inkwell/inkwell/core/content"
	"codeberg.org/inkwell/inkwell/server/request_context"
)

// setupHandlers loads the testdata site and configures the globals the
// handlers read. Tests in this package share config.Global and therefore
// don't run in parallel.
func setupHandlers(t *testing.T, aboutHTML string) *Handlers {
	t.Helper()

	config.Global.SetDefaults()
	config.Global.Site.Title = "Inkwell"
	config.Global.Site.Author = "Test Author"
	config.Global.Site.Description = "Notes on software"
	config.Global.Site.RawBaseURL = "https://example.com"

	parsed, err := url.Parse(config.Global.Site.RawBaseURL)
	require.NoError(t, err)

	config.Global.Site.BaseURL = *parsed

	site, err := content.Load("testdata/site", false)
	require.NoError(t, err)

	return New(site, nil, nil, aboutHTML)
}

// doGet runs a handler directly, with a populated request context and any
// path variables the route would have provided.
func doGet(t *testing.T, handler func(http.ResponseWriter, *http.Request) error, target string, pathVars map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, target, nil)
	req = req.WithContext(request_context.WithRequestContext(req.Context(), req))

	for name, value := range pathVars {
		req.SetPathValue(name, value)
	}

	rr := httptest.NewRecorder()
	require.NoError(t, handler(rr, req))

	return rr
}

func TestIndexPage(t *testing.T) {
	h := setupHandlers(t, "")

	rr := doGet(t, h.IndexPage, "/", nil)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "text/html")

	body := rr.Body.String()
	assert.Contains(t, body, "First post")
	assert.Contains(t, body, "Second post")

	// Newest first.
	assert.Less(t, strings.Index(body, "Second post"), strings.Index(body, "First post"))
}

func TestPostPage(t *testing.T) {
	h := setupHandlers(t, "")

	rr := doGet(t, h.PostPage, "/posts/first-post", map[string]string{"slug": "first-post"})

	assert.Equal(t, http.StatusOK, rr.Code)

	body := rr.Body.String()
	assert.Contains(t, body, "<h1>First post</h1>")
	assert.Contains(t, body, "Section one")
	assert.Contains(t, body, `class="toc"`, "two headings should produce a table of contents")

	// Tags in display order: case-insensitive alphabetical.
	assert.Less(t, strings.Index(body, ">ai</a>"), strings.Index(body, ">AWS</a>"))
	assert.Less(t, strings.Index(body, ">AWS</a>"), strings.Index(body, ">Ruby</a>"))
}

func TestPostPage_NotFound(t *testing.T) {
	h := setupHandlers(t, "")

	rr := doGet(t, h.PostPage, "/posts/missing", map[string]string{"slug": "missing"})

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestTagsPage(t *testing.T) {
	h := setupHandlers(t, "")

	rr := doGet(t, h.TagsPage, "/tags", nil)

	assert.Equal(t, http.StatusOK, rr.Code)

	body := rr.Body.String()

	// ai < AWS < go < Ruby, ignoring case.
	for _, pair := range [][2]string{{">ai</a>", ">AWS</a>"}, {">AWS</a>", ">go</a>"}, {">go</a>", ">Ruby</a>"}} {
		assert.Less(t, strings.Index(body, pair[0]), strings.Index(body, pair[1]),
			"%s should precede %s", pair[0], pair[1])
	}
}

func TestTagPage(t *testing.T) {
	h := setupHandlers(t, "")

	rr := doGet(t, h.TagPage, "/tags/go", map[string]string{"tag": "go"})

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Second post")
	assert.NotContains(t, rr.Body.String(), "First post")
}

func TestTagPage_UnknownTag(t *testing.T) {
	h := setupHandlers(t, "")

	rr := doGet(t, h.TagPage, "/tags/nope", map[string]string{"tag": "nope"})

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestFeedPage(t *testing.T) {
	h := setupHandlers(t, "")

	rr := doGet(t, h.FeedPage, "/feed.xml", nil)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "application/atom+xml")

	body := rr.Body.String()
	assert.Contains(t, body, `<feed xmlns="http://www.w3.org/2005/Atom">`)
	assert.Contains(t, body, "https://example.com/posts/second-post")
	assert.Contains(t, body, "<title>Second post</title>")
	assert.Contains(t, body, `term="Ruby"`)
}

func TestAboutPage(t *testing.T) {
	h := setupHandlers(t, "<p>Hand-written about text.</p>")

	rr := doGet(t, h.AboutPage, "/about", nil)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Hand-written about text.")
}

func TestProjectsPage_Empty(t *testing.T) {
	h := setupHandlers(t, "")

	rr := doGet(t, h.ProjectsPage, "/projects", nil)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Nothing to show yet.")
}
