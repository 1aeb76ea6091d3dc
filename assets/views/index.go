// Copyright 2024 - 2026, the Inkwell contributors
// SPDX-License-Identifier: AGPL-3.0-only

package views

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"codeberg.org/inkwell/inkwell/config"
	"codeberg.org/inkwell/inkwell/core/content"
)

// IndexData holds the data for the index page.
type IndexData struct {
	Posts       []*content.Post
	CurrentPath string
}

// Index renders the front page: the most recent posts, newest first.
func Index(data IndexData) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<section class="intro"><p>%s</p></section>`,
			templ.EscapeString(config.Global.Site.Description)); err != nil {
			return err
		}

		if len(data.Posts) == 0 {
			_, err := io.WriteString(w, `<p class="empty">Nothing published yet.</p>`)

			return err
		}

		return postList(data.Posts).Render(ctx, w)
	})

	return Document("", data.CurrentPath, body)
}
