package service

import (
	"context"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/ANIKETSHETTY47/industrial-ai-dashboard/internal/models"
)

type ExecutivePage struct {
	Metrics *models.DashboardMetrics
	Err     error
	Status  Status
}

type ExecutiveService struct {
	backend Backend
	status  *StatusService
}

// Page fetches the executive snapshot once, alongside the status probes.
func (s *ExecutiveService) Page(ctx context.Context) ExecutivePage {
	var (
		page ExecutivePage
		g    errgroup.Group
	)
	g.Go(func() error {
		page.Metrics, page.Err = s.backend.Executive(ctx)
		return nil
	})
	g.Go(func() error {
		page.Status = s.status.Check(ctx)
		return nil
	})
	_ = g.Wait()

	if page.Err != nil {
		log.Error().Err(page.Err).Str("path", "/dashboard/executive").Msg("executive metrics fetch failed")
	}
	return page
}

// Snapshot returns the current executive metrics for live refresh.
func (s *ExecutiveService) Snapshot(ctx context.Context) (*models.DashboardMetrics, error) {
	return s.backend.Executive(ctx)
}
