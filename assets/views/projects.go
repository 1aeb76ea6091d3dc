// Copyright 2024 - 2026, the Inkwell contributors
// SPDX-License-Identifier: AGPL-3.0-only

package views

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"codeberg.org/inkwell/inkwell/core/projects"
	"codeberg.org/inkwell/inkwell/server/template"
)

// ProjectsData holds the data for the projects page.
type ProjectsData struct {
	Projects    []projects.Project
	CurrentPath string
}

// Projects renders the projects showcase, pinned entries first.
func Projects(data ProjectsData) templ.Component {
	body := templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<h1>Projects</h1>`); err != nil {
			return err
		}

		if len(data.Projects) == 0 {
			_, err := io.WriteString(w, `<p class="empty">Nothing to show yet.</p>`)

			return err
		}

		if _, err := io.WriteString(w, `<ul class="project-list">`); err != nil {
			return err
		}

		for _, project := range data.Projects {
			class := "project"
			if project.Pinned {
				class = "project pinned"
			}

			if _, err := fmt.Fprintf(w, `<li class="%s">
<h2><a href="%s" rel="noopener">%s</a></h2>
<p>%s</p>`,
				class,
				templ.EscapeString(project.RepoURL),
				templ.EscapeString(project.Name),
				templ.EscapeString(project.Description),
			); err != nil {
				return err
			}

			if project.Language != "" {
				if _, err := fmt.Fprintf(w, `<span class="language">%s</span>`,
					templ.EscapeString(project.Language)); err != nil {
					return err
				}
			}

			if project.Stars > 0 {
				if _, err := fmt.Fprintf(w, `<span class="stars">%s %s</span>`,
					template.RenderIcon("star", "icon"),
					template.PrettyNumber(project.Stars)); err != nil {
					return err
				}
			}

			if _, err := io.WriteString(w, `</li>`); err != nil {
				return err
			}
		}

		_, err := io.WriteString(w, `</ul>`)

		return err
	})

	return Document("Projects", data.CurrentPath, body)
}
