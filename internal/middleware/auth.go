package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/inkpress/inkpress/internal/auth"
	"github.com/inkpress/inkpress/internal/model"
	"github.com/inkpress/inkpress/internal/repository"
)

// AuthorLookup resolves author ids to author records.
// Satisfied by *repository.Repository.
type AuthorLookup interface {
	AuthorByID(ctx context.Context, id int64) (*model.Author, error)
}

// SessionConfig holds configuration for the session middleware.
type SessionConfig struct {
	Logger   *slog.Logger
	Sessions *auth.Sessions
	Authors  AuthorLookup
}

// CurrentAuthor resolves the signed session cookie to an author record
// and stores it in the request context, once per request, before any
// handler runs. A missing, tampered or stale cookie simply leaves the
// request anonymous; that is the normal state for visitors, not an error.
func CurrentAuthor(cfg SessionConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := cfg.Sessions.AuthorID(r)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			author, err := cfg.Authors.AuthorByID(r.Context(), id)
			if err != nil {
				if !errors.Is(err, repository.ErrAuthorNotFound) {
					cfg.Logger.Error("author lookup failed",
						slog.String("request_id", GetRequestID(r.Context())),
						slog.String("error", err.Error()),
					)
				}
				// Cookie references no author; treat as anonymous.
				next.ServeHTTP(w, r)
				return
			}

			ctx := auth.ContextWithAuthor(r.Context(), author)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuthor guards routes that need a logged-in author. Anonymous
// requests are redirected to the login form with the original URL in the
// next parameter, mirroring a browser login flow rather than a bare 401.
func RequireAuthor() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if auth.AuthorFromContext(r.Context()) == nil {
				login := "/auth/login?next=" + url.QueryEscape(r.URL.RequestURI())
				http.Redirect(w, r, login, http.StatusFound)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
