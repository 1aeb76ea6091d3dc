// Copyright 2024 - 2026, the Inkwell contributors
// SPDX-License-Identifier: AGPL-3.0-only

package views

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"codeberg.org/inkwell/inkwell/config"
)

// AboutData holds the data for the about page.
type AboutData struct {
	// HTML is the rendered body of the site's about.md, if one exists.
	HTML        string
	CurrentPath string
}

// About renders the about page. When no about.md is present in the content
// directory, it falls back to the configured site description.
func About(data AboutData) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<h1>About</h1>`); err != nil {
			return err
		}

		if data.HTML != "" {
			return templ.Raw(data.HTML).Render(ctx, w)
		}

		site := config.Global.Site

		_, err := fmt.Fprintf(w, `<p>%s</p><p>%s</p><p class="version">Running Inkwell %s.</p>`,
			templ.EscapeString(site.Author),
			templ.EscapeString(site.Description),
			templ.EscapeString(config.BuildVersion),
		)

		return err
	})

	return Document("About", data.CurrentPath, body)
}
