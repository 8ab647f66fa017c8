package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/inkpress/inkpress/internal/auth"
	"github.com/inkpress/inkpress/internal/markdown"
	"github.com/inkpress/inkpress/internal/model"
	"github.com/inkpress/inkpress/internal/repository"
	"github.com/inkpress/inkpress/internal/slug"
)

// slugRetryLimit bounds the collision-probe loop. In practice one or two
// rounds suffice; the bound only guards against a probe that can never
// settle (e.g. a store error reported as a collision).
const slugRetryLimit = 32

// ComposeHandler serves the entry compose form and processes submissions.
type ComposeHandler struct {
	entries   EntryStore
	renderer  *markdown.Renderer
	templates *Templates
	logger    *slog.Logger
}

// NewComposeHandler creates a new ComposeHandler.
func NewComposeHandler(entries EntryStore, renderer *markdown.Renderer, templates *Templates, logger *slog.Logger) *ComposeHandler {
	return &ComposeHandler{
		entries:   entries,
		renderer:  renderer,
		templates: templates,
		logger:    logger,
	}
}

// composeForm carries the compose submission fields.
type composeForm struct {
	Title    string
	Markdown string
}

// Validate checks the form fields.
func (f composeForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&f.Markdown, validation.Required),
	)
}

// Show handles GET /compose. With an id query parameter the referenced
// entry is loaded for editing; otherwise a blank form is served.
func (h *ComposeHandler) Show(w http.ResponseWriter, r *http.Request) {
	var entry *model.Entry

	if raw := r.URL.Query().Get("id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			renderError(w, r, h.logger, h.templates, http.StatusNotFound, "entry not found")
			return
		}

		entry, err = h.entries.EntryByID(r.Context(), id)
		if err != nil {
			if errors.Is(err, repository.ErrEntryNotFound) {
				renderError(w, r, h.logger, h.templates, http.StatusNotFound, "entry not found")
				return
			}
			h.serverError(w, r, err)
			return
		}
	}

	renderPage(w, r, h.logger, h.templates, http.StatusOK, "compose", &pageData{
		Title: "Compose",
		Entry: entry,
	})
}

// Submit handles POST /compose: create a new entry, or update the entry
// named by the id form field. Either way the submitted markdown is
// re-rendered to HTML so the stored html column never drifts from its
// source. Ends in a redirect to the entry's page.
func (h *ComposeHandler) Submit(w http.ResponseWriter, r *http.Request) {
	author := auth.AuthorFromContext(r.Context())
	if author == nil {
		http.Redirect(w, r, "/auth/login?next=%2Fcompose", http.StatusFound)
		return
	}

	if err := r.ParseForm(); err != nil {
		renderError(w, r, h.logger, h.templates, http.StatusBadRequest, "malformed form submission")
		return
	}

	form := composeForm{
		Title:    r.PostFormValue("title"),
		Markdown: r.PostFormValue("markdown"),
	}
	if err := form.Validate(); err != nil {
		renderPage(w, r, h.logger, h.templates, http.StatusBadRequest, "compose", &pageData{
			Title: "Compose",
			Error: err.Error(),
			Entry: &model.Entry{Title: form.Title, Markdown: form.Markdown},
		})
		return
	}

	html, err := h.renderer.Render(form.Markdown)
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	var entrySlug string
	if raw := r.PostFormValue("id"); raw != "" {
		entrySlug, err = h.update(r, raw, form, html)
	} else {
		entrySlug, err = h.create(r, author, form, html)
	}

	if err != nil {
		if errors.Is(err, repository.ErrEntryNotFound) {
			renderError(w, r, h.logger, h.templates, http.StatusNotFound, "entry not found")
			return
		}
		h.serverError(w, r, err)
		return
	}

	http.Redirect(w, r, "/entry/"+entrySlug, http.StatusSeeOther)
}

// update edits an existing entry in place. The slug is kept even when the
// title changes, so links to the entry stay stable forever.
func (h *ComposeHandler) update(r *http.Request, rawID string, form composeForm, html string) (string, error) {
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return "", repository.ErrEntryNotFound
	}

	entry, err := h.entries.EntryByID(r.Context(), id)
	if err != nil {
		return "", err
	}

	if err := h.entries.UpdateEntry(r.Context(), id, form.Title, form.Markdown, html); err != nil {
		return "", err
	}

	h.logger.Info("entry_updated", "entry_id", id, "slug", entry.Slug)
	return entry.Slug, nil
}

// create inserts a new entry owned by the current author, deriving a free
// slug from the title first. Collisions append a literal -2 until the
// probe finds no match; a second collision therefore yields -2-2. The
// database's unique constraint backstops the probe's check-then-insert
// race, and a constraint hit re-enters the same suffix loop.
func (h *ComposeHandler) create(r *http.Request, author *model.Author, form composeForm, html string) (string, error) {
	candidate := slug.Generate(form.Title)

	for attempt := 0; attempt < slugRetryLimit; attempt++ {
		exists, err := h.entries.SlugExists(r.Context(), candidate)
		if err != nil {
			return "", err
		}
		if exists {
			candidate += "-2"
			continue
		}

		entry := &model.Entry{
			AuthorID: author.ID,
			Title:    form.Title,
			Slug:     candidate,
			Markdown: form.Markdown,
			HTML:     html,
		}
		err = h.entries.CreateEntry(r.Context(), entry)
		if errors.Is(err, repository.ErrSlugExists) {
			// Lost the race to a concurrent submission with the same title.
			candidate += "-2"
			continue
		}
		if err != nil {
			return "", err
		}

		h.logger.Info("entry_created", "entry_id", entry.ID, "slug", entry.Slug)
		return entry.Slug, nil
	}

	return "", errors.New("could not find a free slug")
}

func (h *ComposeHandler) serverError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Error("internal_error",
		"request_id", getRequestID(r),
		"error", err,
	)
	renderError(w, r, h.logger, h.templates, http.StatusInternalServerError, "")
}
