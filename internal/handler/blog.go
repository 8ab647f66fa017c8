package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/inkpress/inkpress/internal/repository"
)

const (
	homeEntryLimit = 5
	feedEntryLimit = 10
)

// BlogHandler serves the public read-only pages: home, archive, entry.
type BlogHandler struct {
	entries   EntryStore
	templates *Templates
	logger    *slog.Logger
}

// NewBlogHandler creates a new BlogHandler.
func NewBlogHandler(entries EntryStore, templates *Templates, logger *slog.Logger) *BlogHandler {
	return &BlogHandler{
		entries:   entries,
		templates: templates,
		logger:    logger,
	}
}

// Home handles GET /. An empty blog bounces straight to the compose form
// so the first visit after setup leads somewhere useful.
func (h *BlogHandler) Home(w http.ResponseWriter, r *http.Request) {
	entries, err := h.entries.RecentEntries(r.Context(), homeEntryLimit)
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	if len(entries) == 0 {
		http.Redirect(w, r, "/compose", http.StatusFound)
		return
	}

	renderPage(w, r, h.logger, h.templates, http.StatusOK, "home", &pageData{
		Title:   "Home",
		Entries: entries,
	})
}

// Archive handles GET /archive.
func (h *BlogHandler) Archive(w http.ResponseWriter, r *http.Request) {
	entries, err := h.entries.AllEntries(r.Context())
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	renderPage(w, r, h.logger, h.templates, http.StatusOK, "archive", &pageData{
		Title:   "Archive",
		Entries: entries,
	})
}

// Entry handles GET /entry/{slug}.
func (h *BlogHandler) Entry(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	entry, err := h.entries.EntryBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, repository.ErrEntryNotFound) {
			renderError(w, r, h.logger, h.templates, http.StatusNotFound, "entry not found")
			return
		}
		h.serverError(w, r, err)
		return
	}

	renderPage(w, r, h.logger, h.templates, http.StatusOK, "entry", &pageData{
		Title: entry.Title,
		Entry: entry,
	})
}

func (h *BlogHandler) serverError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Error("internal_error",
		"request_id", getRequestID(r),
		"error", err,
	)
	renderError(w, r, h.logger, h.templates, http.StatusInternalServerError, "")
}
