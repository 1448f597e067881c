package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/ANIKETSHETTY47/industrial-ai-dashboard/internal/domain"
	"github.com/ANIKETSHETTY47/industrial-ai-dashboard/internal/metrics"
	"github.com/ANIKETSHETTY47/industrial-ai-dashboard/internal/models"
)

var ErrEmptyQuery = errors.New("query is empty")

// QuickQueries are the one-click questions offered next to the query box.
var QuickQueries = []string{
	"What's causing the temperature spike?",
	"Show maintenance history",
	"Recommended actions for high vibration",
}

type AssistantService struct {
	backend Backend
	history QueryHistory
}

// Ask forwards one question to the backend AI service. Blank questions are
// rejected without a backend call.
func (s *AssistantService) Ask(ctx context.Context, query, equipmentID string) (*models.QueryResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		metrics.AIQueriesTotal.WithLabelValues("empty").Inc()
		return nil, ErrEmptyQuery
	}
	equipmentID = strings.TrimSpace(equipmentID)

	resp, err := s.backend.Query(ctx, models.QueryRequest{Query: query, EquipmentID: equipmentID})
	if err != nil {
		metrics.AIQueriesTotal.WithLabelValues("error").Inc()
		log.Error().Err(err).Str("path", "/ai/query").Msg("ai query failed")
	} else {
		metrics.AIQueriesTotal.WithLabelValues("ok").Inc()
	}
	s.record(ctx, query, equipmentID, resp, err)
	return resp, err
}

func (s *AssistantService) record(ctx context.Context, query, equipmentID string, resp *models.QueryResponse, qerr error) {
	if s.history == nil {
		return
	}
	rec := &domain.QueryRecord{
		Query:       query,
		EquipmentID: sql.NullString{String: equipmentID, Valid: equipmentID != ""},
	}
	if resp != nil {
		rec.Confidence = sql.NullFloat64{Float64: resp.Confidence, Valid: true}
	}
	if qerr != nil {
		rec.Error = sql.NullString{String: qerr.Error(), Valid: true}
	}
	// The caller's context may already be done once the answer is back.
	if err := s.history.Insert(context.WithoutCancel(ctx), rec); err != nil {
		log.Warn().Err(err).Msg("query history insert failed")
	}
}

// Recent returns the latest questions, or nil when history is off or unreadable.
func (s *AssistantService) Recent(ctx context.Context, limit int) []domain.QueryRecord {
	if s.history == nil {
		return nil
	}
	recs, err := s.history.Recent(ctx, limit)
	if err != nil {
		log.Warn().Err(err).Msg("query history read failed")
		return nil
	}
	return recs
}
