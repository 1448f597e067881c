package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/ANIKETSHETTY47/industrial-ai-dashboard/internal/domain"
)

type QueryLogs struct {
	db *sqlx.DB
}

func NewQueryLogs(db *sqlx.DB) *QueryLogs { return &QueryLogs{db: db} }

func (r *QueryLogs) Insert(ctx context.Context, rec *domain.QueryRecord) error {
	return r.db.QueryRowxContext(ctx,
		`INSERT INTO query_log(query, equipment_id, confidence, error) VALUES ($1,$2,$3,$4) RETURNING id, created_at`,
		rec.Query, rec.EquipmentID, rec.Confidence, rec.Error,
	).Scan(&rec.ID, &rec.CreatedAt)
}

func (r *QueryLogs) Recent(ctx context.Context, limit int) ([]domain.QueryRecord, error) {
	if limit <= 0 {
		limit = 5
	}
	var out []domain.QueryRecord
	err := r.db.SelectContext(ctx, &out,
		`SELECT id, query, equipment_id, confidence, error, created_at FROM query_log ORDER BY created_at DESC, id DESC LIMIT $1`,
		limit)
	return out, err
}
