// Copyright 2024 - 2026, the Inkwell contributors
// SPDX-License-Identifier: AGPL-3.0-only

package content

import (
	"strings"

	"codeberg.org/inkwell/inkwell/core/tagindex"
)

// Site is the loaded, read-only view of all authored content.
//
// It is built once at startup and never mutated afterwards, so it is safe
// for concurrent reads from request handlers.
type Site struct {
	posts  []*Post // sorted by date, newest first
	bySlug map[string]*Post
	byTag  tagindex.TagTable[[]*Post]
}

// Posts returns all posts, newest first. Callers must not modify the slice.
func (s *Site) Posts() []*Post {
	return s.posts
}

// Recent returns at most n of the newest posts.
func (s *Site) Recent(n int) []*Post {
	if n > len(s.posts) {
		n = len(s.posts)
	}

	return s.posts[:n]
}

// Post looks up a post by its slug.
func (s *Site) Post(slug string) (*Post, bool) {
	post, ok := s.bySlug[slug]

	return post, ok
}

// Tags returns the tag table: tag name to the posts carrying that tag,
// each post list newest first. Iteration order of the table is arbitrary;
// use tagindex.SortedNames for display.
func (s *Site) Tags() tagindex.TagTable[[]*Post] {
	return s.byTag
}

// TaggedPosts returns the posts carrying the given tag, newest first.
// The lookup is exact: tag names differing only by case are distinct tags.
func (s *Site) TaggedPosts(tag string) []*Post {
	return s.byTag[tag]
}

// buildTagTable indexes posts by tag. Tag names are used as authored,
// trimmed of surrounding whitespace only; empty tags are dropped.
func buildTagTable(posts []*Post) tagindex.TagTable[[]*Post] {
	table := make(tagindex.TagTable[[]*Post])

	for _, post := range posts {
		for _, tag := range post.Tags {
			tag = strings.TrimSpace(tag)
			if tag == "" {
				continue
			}

			table[tag] = append(table[tag], post)
		}
	}

	return table
}
