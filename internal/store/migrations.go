package store

import (
	"context"
	"database/sql"
)

// schema contains the DDL for all Rota tables.
// Each statement uses IF NOT EXISTS for idempotency.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS runs (
		id          TEXT PRIMARY KEY,
		kind        TEXT NOT NULL,
		status      TEXT NOT NULL,
		objective   INTEGER NOT NULL DEFAULT 0,
		wall_millis INTEGER NOT NULL DEFAULT 0,
		config      TEXT NOT NULL DEFAULT '{}',
		schedule    TEXT,
		report      TEXT,
		created_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_runs_kind ON runs(kind)`,
	`CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at)`,
}

// migrate applies every schema statement in order.
func migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
