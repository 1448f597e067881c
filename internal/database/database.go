package database

import (
	"context"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
)

func Connect(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("connect query history db: %w", err)
	}
	return db, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS query_log (
	id           BIGSERIAL PRIMARY KEY,
	query        TEXT NOT NULL,
	equipment_id TEXT,
	confidence   DOUBLE PRECISION,
	error        TEXT,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS query_log_created_at_idx ON query_log (created_at DESC);
`

// Migrate creates the query history table when it is missing.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrate query_log: %w", err)
	}
	return nil
}
