// Package handler contains HTTP request handlers for the campus portal.
//
// HANDLER RESPONSIBILITIES:
// 1. Parse the incoming HTTP request (query params, body, headers)
// 2. Call the service layer
// 3. Write the HTTP response (status code, headers, body)
//
// Handlers should NOT contain business logic — they are the "glue" between
// HTTP and the services.
package handler

import (
	"html/template"
	"log/slog"
	"net/http"
	"path/filepath"
)

// PagesHandler renders the portal's HTML pages.
//
// It holds parsed templates so we don't re-parse them on every request.
//
// TEMPLATE COMPOSITION:
// base.html defines the page shell with a {{template "content" .}}
// placeholder; each page file defines {{define "content"}}...{{end}} to fill
// it. Because every page defines the same "content" block, each page gets
// its own template set (base + that page) instead of one combined parse.
type PagesHandler struct {
	pages  map[string]*template.Template
	logger *slog.Logger
}

// pageFiles maps page names to their template files under the template dir.
var pageFiles = map[string]string{
	"home":   "home.html",
	"login":  "login.html",
	"signup": "signup.html",
	"events": "events.html",
}

// pageTitles are passed to base.html as {{.Title}}.
var pageTitles = map[string]string{
	"home":   "Campus Portal",
	"login":  "Login — Campus Portal",
	"signup": "Sign Up — Campus Portal",
	"events": "Events Calendar — Campus Portal",
}

// NewPagesHandler parses all page templates up front. A broken template is
// a startup error, not a runtime 500.
func NewPagesHandler(templateDir string, logger *slog.Logger) (*PagesHandler, error) {
	pages := make(map[string]*template.Template, len(pageFiles))
	for name, file := range pageFiles {
		tmpl, err := template.ParseFiles(
			filepath.Join(templateDir, "base.html"),
			filepath.Join(templateDir, file),
		)
		if err != nil {
			return nil, err
		}
		pages[name] = tmpl
	}

	return &PagesHandler{
		pages:  pages,
		logger: logger,
	}, nil
}

// HandleHome serves GET /.
func (h *PagesHandler) HandleHome(w http.ResponseWriter, r *http.Request) {
	h.render(w, "home")
}

// HandleLogin serves GET /login.
func (h *PagesHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	h.render(w, "login")
}

// HandleSignup serves GET /signup.
func (h *PagesHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	h.render(w, "signup")
}

// HandleEvents serves GET /events.
func (h *PagesHandler) HandleEvents(w http.ResponseWriter, r *http.Request) {
	h.render(w, "events")
}

func (h *PagesHandler) render(w http.ResponseWriter, name string) {
	data := map[string]any{
		"Title": pageTitles[name],
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	if err := h.pages[name].ExecuteTemplate(w, "base", data); err != nil {
		h.logger.Error("failed to render template",
			slog.String("page", name),
			slog.String("error", err.Error()),
		)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
