// Package handler provides HTTP request handlers for the blog pages.
package handler

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/inkpress/inkpress/internal/auth"
	"github.com/inkpress/inkpress/internal/middleware"
	"github.com/inkpress/inkpress/internal/model"
)

// getRequestID pulls the request ID injected by the middleware chain.
func getRequestID(r *http.Request) string {
	return middleware.GetRequestID(r.Context())
}

//go:embed templates
var templateFS embed.FS

// EntryStore is the persistence surface the entry handlers need.
// Satisfied by *repository.Repository.
type EntryStore interface {
	EntryByID(ctx context.Context, id int64) (*model.Entry, error)
	EntryBySlug(ctx context.Context, slug string) (*model.Entry, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	RecentEntries(ctx context.Context, limit int) ([]*model.Entry, error)
	AllEntries(ctx context.Context) ([]*model.Entry, error)
	CreateEntry(ctx context.Context, entry *model.Entry) error
	UpdateEntry(ctx context.Context, id int64, title, markdown, html string) error
}

// AuthorStore is the persistence surface the auth handlers need.
// Satisfied by *repository.Repository.
type AuthorStore interface {
	AuthorByEmail(ctx context.Context, email string) (*model.Author, error)
	AnyAuthorExists(ctx context.Context) (bool, error)
	CreateAuthor(ctx context.Context, email, name, hashedPassword string) (int64, error)
}

// Templates holds the parsed page templates. Each page template is parsed
// together with the shared layout so pages only define content blocks.
type Templates struct {
	pages map[string]*template.Template
}

// pageNames lists every page template under templates/.
var pageNames = []string{
	"home", "archive", "entry", "compose", "login", "create_author", "error",
}

// templateFuncs are helpers available to every page template.
var templateFuncs = template.FuncMap{
	// rendered marks the stored, goldmark-produced HTML as safe so the
	// auto-escaper does not re-escape it. Only the html column goes
	// through this; everything else stays escaped.
	"rendered": func(s string) template.HTML { return template.HTML(s) },
}

// NewTemplates parses the embedded page templates.
func NewTemplates() (*Templates, error) {
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		t, err := template.New(name).Funcs(templateFuncs).ParseFS(templateFS,
			"templates/layout.html",
			"templates/partials/*.html",
			"templates/"+name+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		pages[name] = t
	}
	return &Templates{pages: pages}, nil
}

// pageData is the payload every template receives.
type pageData struct {
	Title         string
	CurrentAuthor *model.Author
	Entry         *model.Entry
	Entries       []*model.Entry
	Error         string
	Next          string
}

// Render writes the named page to w with the given status code.
func (t *Templates) Render(w io.Writer, name string, data *pageData) error {
	page, ok := t.pages[name]
	if !ok {
		return fmt.Errorf("unknown template %q", name)
	}
	return page.ExecuteTemplate(w, "layout", data)
}

// renderPage executes a page template with the current author filled in.
// Render failures at this point mean the response is already committed,
// so they are only logged.
func renderPage(w http.ResponseWriter, r *http.Request, logger *slog.Logger, t *Templates, status int, name string, data *pageData) {
	if data == nil {
		data = &pageData{}
	}
	data.CurrentAuthor = auth.AuthorFromContext(r.Context())

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := t.Render(w, name, data); err != nil {
		logger.Error("template render failed", "template", name, "error", err)
	}
}

// renderError serves the standard error page for a status code.
func renderError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, t *Templates, status int, message string) {
	if message == "" {
		message = http.StatusText(status)
	}
	renderPage(w, r, logger, t, status, "error", &pageData{
		Title: fmt.Sprintf("%d %s", status, http.StatusText(status)),
		Error: message,
	})
}

// nextPath returns a safe same-site redirect target from the next form
// value, falling back to the site root. Absolute and scheme-relative URLs
// are rejected to keep the login flow from becoming an open redirect.
func nextPath(raw string) string {
	if raw == "" || !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") {
		return "/"
	}
	return raw
}
