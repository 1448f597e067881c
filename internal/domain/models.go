package domain

import (
	"database/sql"
	"time"
)

// QueryRecord is one question asked through the operator's AI assistant.
type QueryRecord struct {
	ID          int64           `db:"id" json:"id"`
	Query       string          `db:"query" json:"query"`
	EquipmentID sql.NullString  `db:"equipment_id" json:"-"`
	Confidence  sql.NullFloat64 `db:"confidence" json:"-"`
	Error       sql.NullString  `db:"error" json:"-"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
}

func (r QueryRecord) Failed() bool { return r.Error.Valid && r.Error.String != "" }
