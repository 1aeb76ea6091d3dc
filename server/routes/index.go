// Copyright 2024 - 2026, the Inkwell contributors
// SPDX-License-Identifier: AGPL-3.0-only

package routes

import (
	"net/http"

	"codeberg.org/inkwell/inkwell/assets/views"
	"codeberg.org/inkwell/inkwell/config"
)

// IndexPage is the handler for the front page.
func (h *Handlers) IndexPage(w http.ResponseWriter, r *http.Request) error {
	setPublicCache(w)

	pageData := views.IndexData{
		Posts:       h.site.Recent(config.Global.Content.IndexPosts),
		CurrentPath: currentPath(r),
	}

	return render(w, r, views.Index(pageData))
}
