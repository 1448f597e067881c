package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/ANIKETSHETTY47/industrial-ai-dashboard/internal/api"
	"github.com/ANIKETSHETTY47/industrial-ai-dashboard/internal/domain"
	"github.com/ANIKETSHETTY47/industrial-ai-dashboard/internal/models"
)

const (
	maxSidebarAlerts = 5
	historyLimit     = 5
)

type OperatorParams struct {
	EquipmentID string
	Status      string
}

// OperatorPage carries one error per section so a partial failure still
// renders whatever succeeded.
type OperatorPage struct {
	Filter models.EquipmentStatus

	Equipment    []models.Equipment
	EquipmentErr error

	Alerts    []models.Alert
	AlertsErr error

	Summary    *models.OperatorMetrics
	SummaryErr error

	Selection *Selection
	History   []domain.QueryRecord
	Status    Status
}

func (p OperatorPage) Degraded() bool {
	if p.EquipmentErr != nil || p.AlertsErr != nil || p.SummaryErr != nil {
		return true
	}
	return p.Selection != nil && p.Selection.Err != nil && !p.Selection.NotFound
}

type OperatorService struct {
	backend   Backend
	status    *StatusService
	assistant *AssistantService
}

func (s *OperatorService) Page(ctx context.Context, p OperatorParams) OperatorPage {
	var page OperatorPage
	if st := models.EquipmentStatus(strings.ToLower(strings.TrimSpace(p.Status))); st.Valid() {
		page.Filter = st
	}
	id := strings.TrimSpace(p.EquipmentID)

	var g errgroup.Group
	g.Go(func() error {
		if page.Filter != "" {
			page.Equipment, page.EquipmentErr = s.backend.EquipmentByStatus(ctx, page.Filter)
		} else {
			page.Equipment, page.EquipmentErr = s.backend.ListEquipment(ctx)
		}
		logSection(page.EquipmentErr, "equipment")
		return nil
	})
	g.Go(func() error {
		alerts, err := s.backend.Alerts(ctx, api.Bool(false))
		if len(alerts) > maxSidebarAlerts {
			alerts = alerts[:maxSidebarAlerts]
		}
		page.Alerts, page.AlertsErr = alerts, err
		logSection(err, "alerts")
		return nil
	})
	g.Go(func() error {
		page.Summary, page.SummaryErr = s.backend.Operator(ctx)
		logSection(page.SummaryErr, "operator summary")
		return nil
	})
	g.Go(func() error {
		page.Status = s.status.Check(ctx)
		return nil
	})
	g.Go(func() error {
		page.History = s.assistant.Recent(ctx, historyLimit)
		return nil
	})
	if id != "" {
		g.Go(func() error {
			page.Selection = loadSelection(ctx, s.backend, id)
			return nil
		})
	}
	_ = g.Wait()
	return page
}

func logSection(err error, section string) {
	if err != nil {
		log.Error().Err(err).Str("section", section).Msg("operator view section failed")
	}
}
