// Copyright 2024 - 2026, the Inkwell contributors
// SPDX-License-Identifier: AGPL-3.0-only

package content

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSiteDir = "testdata/site"

func TestLoad(t *testing.T) {
	t.Parallel()

	site, err := Load(testSiteDir, false)
	require.NoError(t, err)

	// The draft is excluded, the two published posts remain, newest first.
	posts := site.Posts()
	require.Len(t, posts, 2)
	assert.Equal(t, "custom-slug", posts[0].Slug)
	assert.Equal(t, "hello-world", posts[1].Slug)

	post, ok := site.Post("hello-world")
	require.True(t, ok)
	assert.Equal(t, "Hello, world", post.Title)
	assert.Equal(t, []string{"Ruby", "ai", "AWS"}, post.Tags)
	assert.Contains(t, post.HTML, "<h2 id=\"getting-started\">")
	assert.Contains(t, post.Excerpt, "first paragraph of the first post")

	_, ok = site.Post("wip")
	assert.False(t, ok, "draft must not be served")
}

func TestLoad_IncludeDrafts(t *testing.T) {
	t.Parallel()

	site, err := Load(testSiteDir, true)
	require.NoError(t, err)

	require.Len(t, site.Posts(), 3)

	post, ok := site.Post("wip")
	require.True(t, ok)
	assert.True(t, post.Draft)
}

func TestLoad_TagTable(t *testing.T) {
	t.Parallel()

	site, err := Load(testSiteDir, false)
	require.NoError(t, err)

	tags := site.Tags()
	assert.Len(t, tags, 4)
	assert.Len(t, tags["ai"], 2, "both published posts carry ai")
	assert.Len(t, tags["Ruby"], 1)
	assert.Empty(t, site.TaggedPosts("infrastructure"), "draft-only tags are absent")
	assert.Empty(t, site.TaggedPosts("ruby"), "tag lookup is case-exact")

	// Posts within a tag stay newest first.
	ai := site.TaggedPosts("ai")
	require.Len(t, ai, 2)
	assert.True(t, ai[0].Date.After(ai[1].Date))
}

func TestLoad_Recent(t *testing.T) {
	t.Parallel()

	site, err := Load(testSiteDir, false)
	require.NoError(t, err)

	assert.Len(t, site.Recent(1), 1)
	assert.Len(t, site.Recent(10), 2, "n larger than post count is clamped")
}

func TestLoad_FailsLoudly(t *testing.T) {
	t.Parallel()

	writePost := func(t *testing.T, dir, name, body string) {
		t.Helper()
		require.NoError(t, os.MkdirAll(filepath.Join(dir, "posts"), 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "posts", name), []byte(body), 0o644))
	}

	t.Run("missing title", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writePost(t, dir, "bad.md", "---\ndate: 2024-01-01\n---\n\nbody\n")

		_, err := Load(dir, false)
		require.ErrorIs(t, err, ErrMissingTitle)
	})

	t.Run("missing front matter", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writePost(t, dir, "bad.md", "just a body\n")

		_, err := Load(dir, false)
		require.ErrorIs(t, err, ErrNoFrontMatter)
	})

	t.Run("bad date", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writePost(t, dir, "bad.md", "---\ntitle: x\ndate: someday\n---\n\nbody\n")

		_, err := Load(dir, false)
		require.ErrorIs(t, err, ErrInvalidDate)
	})

	t.Run("duplicate slug", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writePost(t, dir, "a.md", "---\ntitle: a\ndate: 2024-01-01\nslug: same\n---\n\nbody\n")
		writePost(t, dir, "b.md", "---\ntitle: b\ndate: 2024-01-02\nslug: same\n---\n\nbody\n")

		_, err := Load(dir, false)
		require.ErrorIs(t, err, errDuplicateSlug)
	})
}

func TestSplitFrontMatter(t *testing.T) {
	t.Parallel()

	yamlBlock, body, err := splitFrontMatter("---\ntitle: x\n---\n\nbody text\n")
	require.NoError(t, err)
	assert.Equal(t, "title: x", yamlBlock)
	assert.Equal(t, "\nbody text\n", body)

	// Windows line endings are tolerated.
	_, _, err = splitFrontMatter("---\r\ntitle: x\r\n---\r\nbody\r\n")
	require.NoError(t, err)

	_, _, err = splitFrontMatter("body first\n---\ntitle: x\n---\n")
	require.ErrorIs(t, err, errFrontMatterTop)

	_, _, err = splitFrontMatter("---\ntitle: x\n")
	require.ErrorIs(t, err, errUnclosedYAML)
}

func TestParseDate(t *testing.T) {
	t.Parallel()

	for _, value := range []string{"2024-03-10", "2024-06-01 09:30", "2024-03-10T12:00:00Z"} {
		_, err := parseDate(value)
		assert.NoError(t, err, value)
	}

	_, err := parseDate("10/03/2024")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestDedupeTags(t *testing.T) {
	t.Parallel()

	got := dedupeTags([]string{" go ", "go", "Go", "", "web"})
	assert.Equal(t, []string{"go", "Go", "web"}, got)
}
