package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ANIKETSHETTY47/industrial-ai-dashboard/internal/models"
	"github.com/ANIKETSHETTY47/industrial-ai-dashboard/internal/notify"
)

type AlertService struct {
	backend  Backend
	notifier notify.Notifier
	now      func() time.Time
}

// Resolve marks the alert resolved on the backend, then notifies. A failed
// notification is logged and does not change the result.
func (s *AlertService) Resolve(ctx context.Context, alertID, equipmentID string) (*models.ResolveResult, error) {
	res, err := s.backend.ResolveAlert(ctx, strings.TrimSpace(alertID))
	if err != nil {
		log.Error().Err(err).Str("alert_id", alertID).Msg("resolve alert failed")
		return nil, err
	}

	ev := notify.AlertResolvedEvent{
		AlertID:     res.AlertID,
		EquipmentID: strings.TrimSpace(equipmentID),
		Message:     res.Message,
		ResolvedAt:  s.now().UTC(),
	}
	if err := s.notifier.AlertResolved(context.WithoutCancel(ctx), ev); err != nil {
		log.Warn().Err(err).Str("alert_id", res.AlertID).Msg("resolve notification failed")
	}
	log.Info().Str("alert_id", res.AlertID).Msg("alert resolved")
	return res, nil
}
