package auth

import (
	"context"

	"github.com/inkpress/inkpress/internal/model"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

// authorContextKey is the context key for the current author.
const authorContextKey contextKey = "current_author"

// ContextWithAuthor adds the resolved author to the context.
func ContextWithAuthor(ctx context.Context, author *model.Author) context.Context {
	return context.WithValue(ctx, authorContextKey, author)
}

// AuthorFromContext retrieves the current author from the context.
// Returns nil for anonymous requests.
func AuthorFromContext(ctx context.Context) *model.Author {
	author, ok := ctx.Value(authorContextKey).(*model.Author)
	if !ok {
		return nil
	}
	return author
}
