// Copyright 2024 - 2026, the Inkwell contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package views contains the site's page components.

Components are built directly on templ.ComponentFunc rather than generated
from .templ sources; the markup is small enough that the indirection of a
template language buys nothing here.
*/
package views

import (
	"context"
	"fmt"
	"io"
	"net/url"

	"github.com/a-h/templ"

	"codeberg.org/inkwell/inkwell/config"
	"codeberg.org/inkwell/inkwell/core/content"
	"codeberg.org/inkwell/inkwell/server/template"
)

// navEntry is one link in the site header.
type navEntry struct {
	label string
	path  string
}

var navEntries = []navEntry{
	{"Posts", "/"},
	{"Tags", "/tags"},
	{"Projects", "/projects"},
	{"About", "/about"},
}

// Document wraps a page body in the site chrome: head, header navigation,
// and footer. currentPath is used to highlight the active section.
func Document(title, currentPath string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		site := config.Global.Site

		pageTitle := site.Title
		if title != "" {
			pageTitle = title + " · " + site.Title
		}

		if _, err := fmt.Fprintf(w, `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>%s</title>
<meta name="description" content="%s">
<link rel="stylesheet" href="/css/style.css">
<link rel="icon" href="/img/favicon.svg" type="image/svg+xml">
<link rel="alternate" type="application/atom+xml" title="%s" href="/feed.xml">
</head>
<body>
<header class="site-header">
<a class="site-title" href="/">%s</a>
<nav>`,
			templ.EscapeString(pageTitle),
			templ.EscapeString(site.Description),
			templ.EscapeString(site.Title),
			templ.EscapeString(site.Title),
		); err != nil {
			return err
		}

		for _, entry := range navEntries {
			current := ""

			// The index doubles as the posts listing, so both "/" and
			// "/posts/..." light up the first entry.
			if entry.path == currentPath ||
				(entry.path == "/" && template.IsFirstPathPart(currentPath, "/posts")) ||
				(entry.path != "/" && template.IsFirstPathPart(currentPath, entry.path)) {
				current = ` aria-current="page"`
			}

			if _, err := fmt.Fprintf(w, `<a href="%s"%s>%s</a>`,
				entry.path, current, templ.EscapeString(entry.label)); err != nil {
				return err
			}
		}

		if _, err := fmt.Fprintf(w, `<a href="/feed.xml" class="feed-link" title="Atom feed">%s</a>`,
			template.RenderIcon("rss", "icon")); err != nil {
			return err
		}

		if _, err := io.WriteString(w, `</nav>
</header>
<main>`); err != nil {
			return err
		}

		if err := body.Render(ctx, w); err != nil {
			return err
		}

		_, err := fmt.Fprintf(w, `</main>
<footer class="site-footer">
<p>© %s</p>
</footer>
</body>
</html>`, templ.EscapeString(site.Author))

		return err
	})
}

// postList renders a list of post summaries, shared by the index and
// per-tag pages.
func postList(posts []*content.Post) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<ul class="post-list">`); err != nil {
			return err
		}

		for _, post := range posts {
			if _, err := fmt.Fprintf(w, `<li>
<time datetime="%s">%s</time>
<a href="/posts/%s">%s</a>`,
				post.Date.Format("2006-01-02"),
				template.NaturalDate(post.Date),
				templ.EscapeString(post.Slug),
				templ.EscapeString(post.Title),
			); err != nil {
				return err
			}

			if post.Excerpt != "" {
				if _, err := fmt.Fprintf(w, `<p class="excerpt">%s</p>`,
					templ.EscapeString(post.Excerpt)); err != nil {
					return err
				}
			}

			if err := tagLinks(post.Tags).Render(ctx, w); err != nil {
				return err
			}

			if _, err := io.WriteString(w, `</li>`); err != nil {
				return err
			}
		}

		_, err := io.WriteString(w, `</ul>`)

		return err
	})
}

// tagLinks renders a post's tags, in display order, as links to their tag pages.
func tagLinks(tags []string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if len(tags) == 0 {
			return nil
		}

		if _, err := io.WriteString(w, `<ul class="tag-list">`); err != nil {
			return err
		}

		for _, tag := range template.SortTags(tags) {
			if _, err := fmt.Fprintf(w, `<li><a href="/tags/%s">%s</a></li>`,
				url.PathEscape(tag), templ.EscapeString(tag)); err != nil {
				return err
			}
		}

		_, err := io.WriteString(w, `</ul>`)

		return err
	})
}
