package web

import (
	"net/http"
)

func NotFoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := NewPage(
			"Not Found",
			"",
			"",
			[]string{"templates/pages/404.html"},
			nil,
		)
		page.RenderStatus(w, r, http.StatusNotFound)
	}
}
