package handler

import (
	"errors"
	"log/slog"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/inkpress/inkpress/internal/auth"
	"github.com/inkpress/inkpress/internal/repository"
)

// Login form error strings. These are rendered inline in the form; their
// exact wording is relied on by the templates and tests.
const (
	errEmailNotFound     = "email not found"
	errIncorrectPassword = "incorrect password"
)

// AuthHandler serves the author-creation, login and logout flows.
type AuthHandler struct {
	authors   AuthorStore
	hasher    *auth.Hasher
	sessions  *auth.Sessions
	templates *Templates
	logger    *slog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authors AuthorStore, hasher *auth.Hasher, sessions *auth.Sessions, templates *Templates, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authors:   authors,
		hasher:    hasher,
		sessions:  sessions,
		templates: templates,
		logger:    logger,
	}
}

// createForm carries the first-author creation fields.
type createForm struct {
	Email    string
	Name     string
	Password string
}

func (f createForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Email, validation.Required, is.Email),
		validation.Field(&f.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&f.Password, validation.Required, validation.Length(8, 72)),
	)
}

// loginForm carries the login fields.
type loginForm struct {
	Email    string
	Password string
}

func (f loginForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Email, validation.Required),
		validation.Field(&f.Password, validation.Required),
	)
}

// ShowCreate handles GET /auth/create.
func (h *AuthHandler) ShowCreate(w http.ResponseWriter, r *http.Request) {
	renderPage(w, r, h.logger, h.templates, http.StatusOK, "create_author", &pageData{
		Title: "Create author",
		Next:  nextPath(r.URL.Query().Get("next")),
	})
}

// Create handles POST /auth/create. The flow is single-admin bootstrap:
// it only ever succeeds while the authors table is empty. On success the
// new author is logged in immediately.
func (h *AuthHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		renderError(w, r, h.logger, h.templates, http.StatusBadRequest, "malformed form submission")
		return
	}

	exists, err := h.authors.AnyAuthorExists(r.Context())
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	if exists {
		renderError(w, r, h.logger, h.templates, http.StatusBadRequest, "author already created")
		return
	}

	form := createForm{
		Email:    r.PostFormValue("email"),
		Name:     r.PostFormValue("name"),
		Password: r.PostFormValue("password"),
	}
	if err := form.Validate(); err != nil {
		renderPage(w, r, h.logger, h.templates, http.StatusBadRequest, "create_author", &pageData{
			Title: "Create author",
			Error: err.Error(),
			Next:  nextPath(r.PostFormValue("next")),
		})
		return
	}

	hashed, err := h.hasher.Hash(r.Context(), form.Password)
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	id, err := h.authors.CreateAuthor(r.Context(), form.Email, form.Name, hashed)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			renderError(w, r, h.logger, h.templates, http.StatusBadRequest, "author already created")
			return
		}
		h.serverError(w, r, err)
		return
	}

	if err := h.sessions.Login(w, id); err != nil {
		h.serverError(w, r, err)
		return
	}

	h.logger.Info("author_created", "author_id", id)
	http.Redirect(w, r, nextPath(r.PostFormValue("next")), http.StatusSeeOther)
}

// ShowLogin handles GET /auth/login. While no author exists yet there is
// nothing to log in to, so the visitor is sent to the creation form.
func (h *AuthHandler) ShowLogin(w http.ResponseWriter, r *http.Request) {
	exists, err := h.authors.AnyAuthorExists(r.Context())
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	if !exists {
		http.Redirect(w, r, "/auth/create", http.StatusFound)
		return
	}

	renderPage(w, r, h.logger, h.templates, http.StatusOK, "login", &pageData{
		Title: "Login",
		Next:  nextPath(r.URL.Query().Get("next")),
	})
}

// Login handles POST /auth/login. Lookup and verification failures
// re-render the form with an inline message instead of an error page.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		renderError(w, r, h.logger, h.templates, http.StatusBadRequest, "malformed form submission")
		return
	}

	form := loginForm{
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
	}
	next := nextPath(r.PostFormValue("next"))

	if err := form.Validate(); err != nil {
		h.rerenderLogin(w, r, err.Error(), next)
		return
	}

	author, err := h.authors.AuthorByEmail(r.Context(), form.Email)
	if err != nil {
		if errors.Is(err, repository.ErrAuthorNotFound) {
			h.rerenderLogin(w, r, errEmailNotFound, next)
			return
		}
		h.serverError(w, r, err)
		return
	}

	ok, err := h.hasher.Verify(r.Context(), form.Password, author.HashedPassword)
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	if !ok {
		h.logger.Warn("login_failed", "author_id", author.ID, "request_id", getRequestID(r))
		h.rerenderLogin(w, r, errIncorrectPassword, next)
		return
	}

	if err := h.sessions.Login(w, author.ID); err != nil {
		h.serverError(w, r, err)
		return
	}

	h.logger.Info("login_succeeded", "author_id", author.ID)
	http.Redirect(w, r, next, http.StatusSeeOther)
}

// Logout handles GET /auth/logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Logout(w)
	http.Redirect(w, r, nextPath(r.URL.Query().Get("next")), http.StatusFound)
}

func (h *AuthHandler) serverError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Error("internal_error",
		"request_id", getRequestID(r),
		"error", err,
	)
	renderError(w, r, h.logger, h.templates, http.StatusInternalServerError, "")
}

func (h *AuthHandler) rerenderLogin(w http.ResponseWriter, r *http.Request, message, next string) {
	renderPage(w, r, h.logger, h.templates, http.StatusBadRequest, "login", &pageData{
		Title: "Login",
		Error: message,
		Next:  next,
	})
}
