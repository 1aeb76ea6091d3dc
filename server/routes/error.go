package routes

import (
	"net/http"

	"codeberg.org/inkwell/inkwell/assets/views"
	"codeberg.org/inkwell/inkwell/server/request_context"
)

// ErrorPage renders an error page.
func ErrorPage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-store")

	ctx := request_context.FromRequest(r)

	errorDetail := ""
	if ctx.RequestError != nil {
		errorDetail = ctx.RequestError.Error()
	}

	title := "Something went wrong"
	if ctx.StatusCode == http.StatusNotFound {
		title = "Page not found"
	}

	pageData := views.ErrorData{
		Title:      title,
		Error:      errorDetail,
		StatusCode: ctx.StatusCode,
	}

	views.Error(pageData).Render(r.Context(), w)
}
