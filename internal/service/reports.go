package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ANIKETSHETTY47/industrial-ai-dashboard/internal/cloud"
	"github.com/ANIKETSHETTY47/industrial-ai-dashboard/internal/models"
)

type executiveReport struct {
	GeneratedAt time.Time                `json:"generated_at"`
	Metrics     *models.DashboardMetrics `json:"metrics"`
}

type ReportService struct {
	backend Backend
	store   ReportStore
	now     func() time.Time
}

// ErrUnknownReport is returned for keys that do not name an executive report.
var ErrUnknownReport = errors.New("unknown report")

// ExportExecutive uploads the current executive snapshot and returns its
// object key.
func (s *ReportService) ExportExecutive(ctx context.Context) (string, error) {
	m, err := s.backend.Executive(ctx)
	if err != nil {
		return "", fmt.Errorf("fetch executive metrics: %w", err)
	}

	now := s.now().UTC()
	data, err := json.MarshalIndent(executiveReport{GeneratedAt: now, Metrics: m}, "", "  ")
	if err != nil {
		return "", err
	}

	key := cloud.ExecutiveReportKey(now)
	if err := s.store.UploadReport(ctx, key, data, "application/json"); err != nil {
		return "", err
	}
	log.Info().Str("key", key).Msg("executive report exported")
	return key, nil
}

// DownloadURL presigns a link to an exported executive report.
func (s *ReportService) DownloadURL(ctx context.Context, key string) (string, error) {
	if !cloud.IsExecutiveReportKey(key) {
		return "", fmt.Errorf("%w: %q", ErrUnknownReport, key)
	}
	return s.store.PresignReport(ctx, key)
}
