// Copyright 2024 - 2026, the Inkwell contributors
// SPDX-License-Identifier: AGPL-3.0-only

package views

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"codeberg.org/inkwell/inkwell/core/content"
	"codeberg.org/inkwell/inkwell/server/template"
)

// PostData holds the data for a single post page.
type PostData struct {
	Post        *content.Post
	CurrentPath string
}

// Post renders a full post: metadata, an optional table of contents, and the
// rendered body.
func Post(data PostData) templ.Component {
	post := data.Post

	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		relative := template.RelativeTime(post.Date)

		if _, err := fmt.Fprintf(w, `<article>
<header>
<h1>%s</h1>
<p class="post-meta"><time datetime="%s" title="%s %s">%s</time></p>
</header>`,
			templ.EscapeString(post.Title),
			post.Date.Format("2006-01-02"),
			templ.EscapeString(relative.Value),
			templ.EscapeString(relative.Description),
			template.NaturalDate(post.Date),
		); err != nil {
			return err
		}

		if err := tableOfContents(post.Headings).Render(ctx, w); err != nil {
			return err
		}

		// post.HTML was produced by the markdown renderer at load time and is
		// trusted author content.
		if err := templ.Raw(post.HTML).Render(ctx, w); err != nil {
			return err
		}

		if err := tagLinks(post.Tags).Render(ctx, w); err != nil {
			return err
		}

		_, err := io.WriteString(w, `</article>`)

		return err
	})

	return Document(post.Title, data.CurrentPath, body)
}

// tableOfContents renders a nav of the post's h2/h3 headings. Posts with
// fewer than two headings don't get one; a single entry is just noise.
func tableOfContents(headings []content.Heading) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if len(headings) < 2 {
			return nil
		}

		if _, err := io.WriteString(w, `<nav class="toc"><h2>Contents</h2><ul>`); err != nil {
			return err
		}

		for _, heading := range headings {
			if _, err := fmt.Fprintf(w, `<li class="toc-level-%d"><a href="#%s">%s</a></li>`,
				heading.Level,
				templ.EscapeString(heading.ID),
				templ.EscapeString(heading.Text),
			); err != nil {
				return err
			}
		}

		_, err := io.WriteString(w, `</ul></nav>`)

		return err
	})
}
