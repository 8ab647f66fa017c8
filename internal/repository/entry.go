package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/inkpress/inkpress/internal/model"
)

// Common errors for entry repository operations.
var (
	ErrEntryNotFound = errors.New("entry not found")
	ErrSlugExists    = errors.New("slug already exists")
)

const entryColumns = `id, author_id, title, slug, markdown, html, published, updated`

// EntryByID retrieves an entry by id.
func (r *Repository) EntryByID(ctx context.Context, id int64) (*model.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM entries WHERE id = $1`

	entry, err := scanEntry(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrEntryNotFound
		}
		return nil, fmt.Errorf("failed to get entry by id: %w", err)
	}
	return entry, nil
}

// EntryBySlug retrieves an entry by its slug.
func (r *Repository) EntryBySlug(ctx context.Context, slug string) (*model.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM entries WHERE slug = $1`

	entry, err := scanEntry(r.pool.QueryRow(ctx, query, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrEntryNotFound
		}
		return nil, fmt.Errorf("failed to get entry by slug: %w", err)
	}
	return entry, nil
}

// SlugExists reports whether any entry already uses the given slug.
func (r *Repository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM entries WHERE slug = $1)`, slug).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check slug: %w", err)
	}
	return exists, nil
}

// RecentEntries returns the most recently published entries, newest first.
func (r *Repository) RecentEntries(ctx context.Context, limit int) ([]*model.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM entries ORDER BY published DESC LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent entries: %w", err)
	}
	defer rows.Close()

	return collectEntries(rows)
}

// AllEntries returns every entry, newest first.
func (r *Repository) AllEntries(ctx context.Context) ([]*model.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM entries ORDER BY published DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	defer rows.Close()

	return collectEntries(rows)
}

// CreateEntry inserts a new entry and fills in its generated id and
// timestamps. Published and updated are both set to the database's
// current time.
func (r *Repository) CreateEntry(ctx context.Context, entry *model.Entry) error {
	query := `
		INSERT INTO entries (author_id, title, slug, markdown, html, published, updated)
		VALUES ($1, $2, $3, $4, $5, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING id, published, updated
	`

	err := r.pool.QueryRow(ctx, query,
		entry.AuthorID,
		entry.Title,
		entry.Slug,
		entry.Markdown,
		entry.HTML,
	).Scan(&entry.ID, &entry.Published, &entry.Updated)

	if err != nil {
		if isUniqueViolation(err) {
			return ErrSlugExists
		}
		return fmt.Errorf("failed to create entry: %w", err)
	}

	return nil
}

// UpdateEntry rewrites an entry's title, markdown and rendered html and
// refreshes its updated timestamp. The slug and published time are never
// touched on edit.
func (r *Repository) UpdateEntry(ctx context.Context, id int64, title, markdown, html string) error {
	query := `
		UPDATE entries
		SET title = $1, markdown = $2, html = $3, updated = CURRENT_TIMESTAMP
		WHERE id = $4
	`

	tag, err := r.pool.Exec(ctx, query, title, markdown, html, id)
	if err != nil {
		return fmt.Errorf("failed to update entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrEntryNotFound
	}

	return nil
}

// scanEntry binds one row to an Entry.
func scanEntry(row pgx.Row) (*model.Entry, error) {
	var entry model.Entry
	err := row.Scan(
		&entry.ID,
		&entry.AuthorID,
		&entry.Title,
		&entry.Slug,
		&entry.Markdown,
		&entry.HTML,
		&entry.Published,
		&entry.Updated,
	)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func collectEntries(rows pgx.Rows) ([]*model.Entry, error) {
	entries := make([]*model.Entry, 0)
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read entries: %w", err)
	}
	return entries, nil
}

// isUniqueViolation checks if the error is a PostgreSQL unique constraint violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	// PostgreSQL error code 23505 is unique_violation
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
