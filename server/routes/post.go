// Copyright 2024 - 2026, the Inkwell contributors
// SPDX-License-Identifier: AGPL-3.0-only

package routes

import (
	"net/http"

	"codeberg.org/inkwell/inkwell/assets/views"
	"codeberg.org/inkwell/inkwell/server/utils"
)

// PostPage is the handler for a single post.
func (h *Handlers) PostPage(w http.ResponseWriter, r *http.Request) error {
	slug := utils.GetPathVar(r, "slug")

	post, ok := h.site.Post(slug)
	if !ok {
		// CatchError replaces the response with the themed 404 page.
		w.WriteHeader(http.StatusNotFound)

		return nil
	}

	setPublicCache(w)

	pageData := views.PostData{
		Post:        post,
		CurrentPath: currentPath(r),
	}

	return render(w, r, views.Post(pageData))
}
