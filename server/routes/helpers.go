// Copyright 2024 - 2026, the Inkwell contributors
// SPDX-License-Identifier: AGPL-3.0-only

package routes

import (
	"fmt"
	"net/http"

	"github.com/a-h/templ"
	"github.com/mitchellh/go-server-timing"

	"codeberg.org/inkwell/inkwell/config"
	"codeberg.org/inkwell/inkwell/server/request_context"
)

// setPublicCache marks the response as shared-cacheable using the configured
// durations.
func setPublicCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d, stale-while-revalidate=%d",
		int(config.Global.HTTPCache.MaxAge.Seconds()),
		int(config.Global.HTTPCache.StaleWhileRevalidate.Seconds())))
}

// render writes a page component as the HTML response, timing the render
// when Server-Timing collection is active for this request.
func render(w http.ResponseWriter, r *http.Request, component templ.Component) error {
	if timing := servertiming.FromContext(r.Context()); timing != nil {
		metric := timing.NewMetric("render").Start()
		defer metric.Stop()
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	return component.Render(r.Context(), w)
}

// currentPath returns the request path recorded in the request context,
// used by the layout to highlight the active nav section.
func currentPath(r *http.Request) string {
	return request_context.FromRequest(r).CommonData.CurrentPath
}
