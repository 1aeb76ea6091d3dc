// Copyright 2024 - 2026, the Inkwell contributors
// SPDX-License-Identifier: AGPL-3.0-only

package views

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// ErrorData holds the data for the error page.
type ErrorData struct {
	Title      string
	Error      string
	StatusCode int
}

// Error renders the generic error page.
func Error(data ErrorData) templ.Component {
	body := templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<section class="error-page">
<h1>%d</h1>
<p>%s</p>`,
			data.StatusCode,
			templ.EscapeString(data.Title),
		); err != nil {
			return err
		}

		if data.Error != "" {
			if _, err := fmt.Fprintf(w, `<pre class="error-detail">%s</pre>`,
				templ.EscapeString(data.Error)); err != nil {
				return err
			}
		}

		_, err := io.WriteString(w, `<p><a href="/">Back to the front page</a></p></section>`)

		return err
	})

	return Document(data.Title, "", body)
}
