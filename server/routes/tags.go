// Copyright 2024 - 2026, the Inkwell contributors
// SPDX-License-Identifier: AGPL-3.0-only

package routes

import (
	"net/http"

	"codeberg.org/inkwell/inkwell/assets/views"
	"codeberg.org/inkwell/inkwell/server/template"
	"codeberg.org/inkwell/inkwell/server/utils"
)

// TagsPage is the handler for the tag index.
func (h *Handlers) TagsPage(w http.ResponseWriter, r *http.Request) error {
	setPublicCache(w)

	table := h.site.Tags()

	names, err := template.VisibleTags(table)
	if err != nil {
		return err
	}

	entries := make([]views.TagEntry, 0, len(names))
	for _, name := range names {
		entries = append(entries, views.TagEntry{
			Name:  name,
			Count: len(table[name]),
		})
	}

	pageData := views.TagsData{
		Tags:        entries,
		CurrentPath: currentPath(r),
	}

	return render(w, r, views.Tags(pageData))
}

// TagPage is the handler for a single tag's listing.
func (h *Handlers) TagPage(w http.ResponseWriter, r *http.Request) error {
	tag := utils.GetPathVar(r, "tag")

	posts := h.site.TaggedPosts(tag)
	if len(posts) == 0 {
		w.WriteHeader(http.StatusNotFound)

		return nil
	}

	setPublicCache(w)

	pageData := views.TagData{
		Tag:         tag,
		Posts:       posts,
		CurrentPath: currentPath(r),
	}

	return render(w, r, views.Tag(pageData))
}
