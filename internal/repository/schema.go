package repository

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
)

//go:embed schema.sql
var schemaSQL string

// MaybeCreateSchema probes for the entries table with a trivial read and
// applies the embedded DDL script when the probe fails.
//
// The probe deliberately treats any error as "schema missing". That
// conflates genuine connectivity or permission failures with an absent
// table, so the probe error is logged before the DDL attempt rather than
// swallowed; if the database is actually unreachable the CREATE will
// fail loudly anyway.
func (r *Repository) MaybeCreateSchema(ctx context.Context, logger *slog.Logger) error {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM entries LIMIT 1`).Scan(&count)
	if err == nil {
		return nil
	}

	logger.Warn("schema probe failed, applying schema", "error", err)

	if _, err := r.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}

	logger.Info("schema created")
	return nil
}
