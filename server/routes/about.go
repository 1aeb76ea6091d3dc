// Copyright 2024 - 2026, the Inkwell contributors
// SPDX-License-Identifier: AGPL-3.0-only

package routes

import (
	"net/http"

	"codeberg.org/inkwell/inkwell/assets/views"
)

// AboutPage is the handler for the /about page.
func (h *Handlers) AboutPage(w http.ResponseWriter, r *http.Request) error {
	setPublicCache(w)

	pageData := views.AboutData{
		HTML:        h.aboutHTML,
		CurrentPath: currentPath(r),
	}

	return render(w, r, views.About(pageData))
}
