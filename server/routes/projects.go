// Copyright 2024 - 2026, the Inkwell contributors
// SPDX-License-Identifier: AGPL-3.0-only

package routes

import (
	"net/http"
	"slices"

	"codeberg.org/inkwell/inkwell/assets/views"
)

// ProjectsPage is the handler for the projects showcase.
func (h *Handlers) ProjectsPage(w http.ResponseWriter, r *http.Request) error {
	setPublicCache(w)

	// Enrich mutates star counts, so work on a copy; h.projects itself stays
	// untouched for concurrent requests.
	list := slices.Clone(h.projects)

	if h.enricher != nil {
		h.enricher.Enrich(r.Context(), list)
	}

	pageData := views.ProjectsData{
		Projects:    list,
		CurrentPath: currentPath(r),
	}

	return render(w, r, views.Projects(pageData))
}
