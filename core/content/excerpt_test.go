// Copyright 2024 - 2026, the Inkwell contributors
// SPDX-License-Identifier: AGPL-3.0-only

package content

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractExcerpt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "first paragraph only",
			html: "<p>First paragraph.</p><p>Second paragraph.</p>",
			want: "First paragraph.",
		},
		{
			name: "inline markup is flattened",
			html: "<p>Uses <code>go-yaml</code> and <em>templ</em>.</p>",
			want: "Uses go-yaml and templ.",
		},
		{
			name: "no paragraph",
			html: "<h2>Heading only</h2>",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, extractExcerpt(tt.html))
		})
	}
}

func TestExtractExcerpt_Truncates(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("word ", 100)

	got := extractExcerpt("<p>" + long + "</p>")
	assert.True(t, strings.HasSuffix(got, "…"))
	assert.LessOrEqual(t, len([]rune(got)), maxExcerptRunes+1)
	assert.NotContains(t, got, "  ", "no split words or double spaces")
}

func TestExtractHeadings(t *testing.T) {
	t.Parallel()

	html := `<h1 id="ignored">Title</h1>` +
		`<h2 id="setup">Setup</h2><p>text</p>` +
		`<h3 id="details">Details <code>here</code></h3>` +
		`<h2>No anchor</h2>`

	got := extractHeadings(html)

	assert.Equal(t, []Heading{
		{Level: 2, ID: "setup", Text: "Setup"},
		{Level: 3, ID: "details", Text: "Details here"},
	}, got)
}

func TestTruncateOnWord(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "short", truncateOnWord("short", 10))
	assert.Equal(t, "one two…", truncateOnWord("one two three", 9))
}
