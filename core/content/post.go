// Copyright 2024 - 2026, the Inkwell contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package content loads the authored site content: Markdown posts with YAML
front matter. It renders post bodies to HTML once at startup and exposes
the loaded site as an immutable, read-only view, including the tag table
consumed by the tag index pages.
*/
package content

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
)

// front matter parse errors.
var (
	ErrNoFrontMatter  = errors.New("post has no front matter block")
	ErrMissingTitle   = errors.New("post front matter is missing a title")
	ErrMissingDate    = errors.New("post front matter is missing a date")
	ErrInvalidDate    = errors.New("post front matter has an unparseable date")
	errUnclosedYAML   = errors.New("front matter block is not closed")
	errFrontMatterTop = errors.New("front matter must be the first thing in the file")
)

// frontMatterDelimiter separates the YAML block from the Markdown body.
const frontMatterDelimiter = "---"

// acceptedDateLayouts are tried in order when parsing the front matter date.
var acceptedDateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04",
	time.DateOnly,
}

// Heading is one entry of a post's table of contents.
type Heading struct {
	Level int
	ID    string
	Text  string
}

// Post is a single blog post, fully rendered and ready to serve.
type Post struct {
	// Slug is the URL path segment of the post, unique site-wide.
	Slug string

	Title       string
	Date        time.Time
	Tags        []string
	Description string
	Draft       bool

	// HTML is the rendered post body. It comes from the author's own
	// Markdown and is trusted.
	HTML string

	// Excerpt is the plain text of the first paragraph, for the index
	// page and the Atom feed.
	Excerpt string

	// Headings lists the h2/h3 anchors of the rendered body.
	Headings []Heading
}

// frontMatter is the YAML block authors put at the top of a post file.
type frontMatter struct {
	Title       string   `yaml:"title"`
	Date        string   `yaml:"date"`
	Tags        []string `yaml:"tags"`
	Description string   `yaml:"description"`
	Draft       bool     `yaml:"draft"`
	Slug        string   `yaml:"slug"`
}

// splitFrontMatter separates the leading YAML block from the Markdown body.
func splitFrontMatter(raw string) (yamlBlock, body string, err error) {
	// Normalize line endings first so the delimiter scan below is simple.
	raw = strings.ReplaceAll(raw, "\r\n", "\n")

	if !strings.HasPrefix(raw, frontMatterDelimiter+"\n") {
		if strings.Contains(raw, "\n"+frontMatterDelimiter+"\n") {
			return "", "", errFrontMatterTop
		}

		return "", "", ErrNoFrontMatter
	}

	rest := strings.TrimPrefix(raw, frontMatterDelimiter+"\n")

	end := strings.Index(rest, "\n"+frontMatterDelimiter+"\n")
	if end < 0 {
		// Allow a file that is nothing but front matter.
		if strings.HasSuffix(rest, "\n"+frontMatterDelimiter) {
			return strings.TrimSuffix(rest, "\n"+frontMatterDelimiter), "", nil
		}

		return "", "", errUnclosedYAML
	}

	return rest[:end], rest[end+len("\n"+frontMatterDelimiter+"\n"):], nil
}

// parseFrontMatter decodes and validates the YAML block.
func parseFrontMatter(yamlBlock string) (frontMatter, error) {
	var fm frontMatter

	if err := yaml.Unmarshal([]byte(yamlBlock), &fm); err != nil {
		return frontMatter{}, fmt.Errorf("failed to parse front matter YAML: %w", err)
	}

	if strings.TrimSpace(fm.Title) == "" {
		return frontMatter{}, ErrMissingTitle
	}

	if strings.TrimSpace(fm.Date) == "" {
		return frontMatter{}, ErrMissingDate
	}

	return fm, nil
}

// parseDate accepts the date formats authors actually use.
func parseDate(value string) (time.Time, error) {
	for _, layout := range acceptedDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, value)
}
