// Copyright 2024 - 2026, the Inkwell contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package routes contains the HTTP handlers for every page the site serves.

Page handlers are methods on Handlers, which carries the loaded site content;
nothing here reaches for mutable package state.
*/
package routes

import (
	"codeberg.org/inkwell/inkwell/core/content"
	"codeberg.org/inkwell/inkwell/core/projects"
)

// Handlers holds the state the page handlers render from. All of it is
// read-only after startup except the enricher, which synchronizes internally.
type Handlers struct {
	site      *content.Site
	projects  []projects.Project
	enricher  *projects.Enricher
	aboutHTML string
}

// New assembles the page handlers.
func New(site *content.Site, projectList []projects.Project, enricher *projects.Enricher, aboutHTML string) *Handlers {
	return &Handlers{
		site:      site,
		projects:  projectList,
		enricher:  enricher,
		aboutHTML: aboutHTML,
	}
}
