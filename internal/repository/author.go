package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/inkpress/inkpress/internal/model"
)

// Common errors for author repository operations.
var (
	ErrAuthorNotFound = errors.New("author not found")
	ErrEmailExists    = errors.New("email already exists")
)

// AuthorByID retrieves an author by id.
func (r *Repository) AuthorByID(ctx context.Context, id int64) (*model.Author, error) {
	query := `
		SELECT id, email, name, hashed_password
		FROM authors
		WHERE id = $1
	`

	var author model.Author
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&author.ID,
		&author.Email,
		&author.Name,
		&author.HashedPassword,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to get author by id: %w", err)
	}

	return &author, nil
}

// AuthorByEmail retrieves an author by email address.
func (r *Repository) AuthorByEmail(ctx context.Context, email string) (*model.Author, error) {
	query := `
		SELECT id, email, name, hashed_password
		FROM authors
		WHERE email = $1
	`

	var author model.Author
	err := r.pool.QueryRow(ctx, query, email).Scan(
		&author.ID,
		&author.Email,
		&author.Name,
		&author.HashedPassword,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to get author by email: %w", err)
	}

	return &author, nil
}

// AnyAuthorExists reports whether at least one author row exists.
// The first-author bootstrap flow is only open while this is false.
func (r *Repository) AnyAuthorExists(ctx context.Context) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM authors)`).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check for authors: %w", err)
	}
	return exists, nil
}

// CreateAuthor inserts a new author and returns the generated id.
func (r *Repository) CreateAuthor(ctx context.Context, email, name, hashedPassword string) (int64, error) {
	query := `
		INSERT INTO authors (email, name, hashed_password)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	var id int64
	err := r.pool.QueryRow(ctx, query, email, name, hashedPassword).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrEmailExists
		}
		return 0, fmt.Errorf("failed to create author: %w", err)
	}

	return id, nil
}
