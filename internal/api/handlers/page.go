package handlers

import (
	"bytes"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/Fantasim/viteassets/internal/config"
	"github.com/Fantasim/viteassets/internal/httputil"
)

// PageData is passed to server-rendered page templates.
type PageData struct {
	Title string
	Path  string
}

// PageHandler renders the named template. Output is buffered: a template error
// yields a 500 with no partial body.
func PageHandler(tmpl *template.Template, name, title string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var buf bytes.Buffer
		data := PageData{Title: title, Path: r.URL.Path}

		if err := tmpl.ExecuteTemplate(&buf, name, data); err != nil {
			slog.Error("failed to render page",
				"template", name,
				"path", r.URL.Path,
				"error", err,
			)
			httputil.Error(w, http.StatusInternalServerError, config.ErrorTemplateRender, "failed to render page")
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", config.CacheControlNoCache)
		if _, err := buf.WriteTo(w); err != nil {
			slog.Warn("failed to write page", "template", name, "error", err)
		}
	}
}
