// Copyright 2024 - 2026, the Inkwell contributors
// SPDX-License-Identifier: AGPL-3.0-only

package views

import (
	"context"
	"fmt"
	"io"
	"net/url"

	"github.com/a-h/templ"

	"codeberg.org/inkwell/inkwell/core/content"
)

// TagEntry is one row on the tags page.
type TagEntry struct {
	Name  string
	Count int
}

// TagsData holds the data for the all-tags page.
type TagsData struct {
	// Tags is already in display order.
	Tags        []TagEntry
	CurrentPath string
}

// Tags renders the tag index: every tag in use, with post counts.
func Tags(data TagsData) templ.Component {
	body := templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<h1>Tags</h1>`); err != nil {
			return err
		}

		if len(data.Tags) == 0 {
			_, err := io.WriteString(w, `<p class="empty">No tags yet.</p>`)

			return err
		}

		if _, err := io.WriteString(w, `<ul class="tag-index">`); err != nil {
			return err
		}

		for _, entry := range data.Tags {
			if _, err := fmt.Fprintf(w, `<li><a href="/tags/%s">%s</a> <span class="count">%d</span></li>`,
				url.PathEscape(entry.Name),
				templ.EscapeString(entry.Name),
				entry.Count,
			); err != nil {
				return err
			}
		}

		_, err := io.WriteString(w, `</ul>`)

		return err
	})

	return Document("Tags", data.CurrentPath, body)
}

// TagData holds the data for a single tag's page.
type TagData struct {
	Tag         string
	Posts       []*content.Post
	CurrentPath string
}

// Tag renders the posts carrying one tag, newest first.
func Tag(data TagData) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<h1>Tagged “%s”</h1>`,
			templ.EscapeString(data.Tag)); err != nil {
			return err
		}

		return postList(data.Posts).Render(ctx, w)
	})

	return Document(data.Tag, data.CurrentPath, body)
}
