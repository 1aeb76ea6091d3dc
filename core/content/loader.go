// Copyright 2024 - 2026, the Inkwell contributors
// SPDX-License-Identifier: AGPL-3.0-only

package content

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// postsSubdir is the directory under the content dir that holds post files.
const postsSubdir = "posts"

// loaderParallelism bounds concurrent post parsing. Parsing is CPU-bound;
// a small constant is plenty for a personal site.
const loaderParallelism = 8

var errDuplicateSlug = errors.New("duplicate post slug")

// Load reads every Markdown post under dir and returns the assembled Site.
//
// Draft posts are kept only when includeDrafts is set (development mode).
// Any malformed post fails the whole load: serving a site with silently
// missing posts is worse than not starting.
func Load(dir string, includeDrafts bool) (*Site, error) {
	postsDir := filepath.Join(dir, postsSubdir)

	entries, err := os.ReadDir(postsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read posts directory %q: %w", postsDir, err)
	}

	var (
		mu    sync.Mutex
		posts []*Post
	)

	var group errgroup.Group

	group.SetLimit(loaderParallelism)

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}

		group.Go(func() error {
			post, err := loadPost(filepath.Join(postsDir, entry.Name()))
			if err != nil {
				return fmt.Errorf("post %q: %w", entry.Name(), err)
			}

			if post.Draft && !includeDrafts {
				log.Debug().
					Str("slug", post.Slug).
					Msg("Skipping draft post")

				return nil
			}

			mu.Lock()
			posts = append(posts, post)
			mu.Unlock()

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	// Newest first; ties broken by slug so the order is stable across loads.
	slices.SortFunc(posts, func(a, b *Post) int {
		if c := b.Date.Compare(a.Date); c != 0 {
			return c
		}

		return strings.Compare(a.Slug, b.Slug)
	})

	bySlug := make(map[string]*Post, len(posts))

	for _, post := range posts {
		if _, exists := bySlug[post.Slug]; exists {
			return nil, fmt.Errorf("%w: %q", errDuplicateSlug, post.Slug)
		}

		bySlug[post.Slug] = post
	}

	site := &Site{
		posts:  posts,
		bySlug: bySlug,
		byTag:  buildTagTable(posts),
	}

	log.Info().
		Int("posts", len(site.posts)).
		Int("tags", len(site.byTag)).
		Msg("Loaded site content")

	return site, nil
}

// loadPost reads, parses, and renders a single post file.
func loadPost(path string) (*Post, error) {
	raw, err := os.ReadFile(path) // #nosec G304 -- paths come from walking the configured content dir
	if err != nil {
		return nil, fmt.Errorf("failed to read post: %w", err)
	}

	yamlBlock, body, err := splitFrontMatter(string(raw))
	if err != nil {
		return nil, err
	}

	fm, err := parseFrontMatter(yamlBlock)
	if err != nil {
		return nil, err
	}

	date, err := parseDate(fm.Date)
	if err != nil {
		return nil, err
	}

	renderedHTML, err := renderMarkdown(body)
	if err != nil {
		return nil, err
	}

	slug := fm.Slug
	if slug == "" {
		slug = strings.TrimSuffix(filepath.Base(path), ".md")
	}

	return &Post{
		Slug:        slug,
		Title:       fm.Title,
		Date:        date,
		Tags:        dedupeTags(fm.Tags),
		Description: fm.Description,
		Draft:       fm.Draft,
		HTML:        renderedHTML,
		Excerpt:     extractExcerpt(renderedHTML),
		Headings:    extractHeadings(renderedHTML),
	}, nil
}

// dedupeTags trims each tag and drops exact duplicates, preserving the
// authored order. Case-variants are distinct tags and both survive.
func dedupeTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))

	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" || seen[tag] {
			continue
		}

		seen[tag] = true

		out = append(out, tag)
	}

	return out
}
