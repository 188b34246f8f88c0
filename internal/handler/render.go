// Package handler contains the HTTP page handlers: the auth forms and the
// dashboard. Handlers parse forms, call the service layer, and render
// templates or redirect — no business rules, no API calls of their own.
package handler

import (
	"html/template"
	"log/slog"
	"net/http"
	"path/filepath"

	"github.com/mohmadimran/books-manager-frontend/internal/books"
)

// pageFuncs are helpers available to all templates.
var pageFuncs = template.FuncMap{
	"joinTags": books.JoinTags,
}

// parsePage compiles one page together with the shared base layout.
//
// TEMPLATE COMPOSITION:
// base.html defines the shell (navbar, error box slot) with a
// {{template "content" .}} placeholder; each page file fills it with
// {{define "content"}}...{{end}}. Parsing base + page as a pair keeps each
// page's "content" block from colliding with the others.
func parsePage(templateDir, page string) (*template.Template, error) {
	return template.New("base.html").Funcs(pageFuncs).ParseFiles(
		filepath.Join(templateDir, "base.html"),
		filepath.Join(templateDir, page),
	)
}

// renderHTML executes the base template and writes the page. Template
// execution failures are logged and turned into a plain 500 — by the time
// execution fails, part of the body may already be written, so this is
// best effort.
func renderHTML(w http.ResponseWriter, logger *slog.Logger, tmpl *template.Template, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, "base", data); err != nil {
		logger.Error("failed to render template", slog.String("error", err.Error()))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
