package service

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/ANIKETSHETTY47/industrial-ai-dashboard/internal/api"
	"github.com/ANIKETSHETTY47/industrial-ai-dashboard/internal/models"
)

const selectionMaintenanceLimit = 5

// Selection is the detail context for the equipment the operator picked:
// the unit itself, its full alert history and its latest maintenance logs.
type Selection struct {
	ID        string
	Equipment *models.Equipment
	Err       error
	NotFound  bool

	Alerts    []models.Alert
	AlertsErr error

	Maintenance    []models.MaintenanceLog
	MaintenanceErr error
}

func loadSelection(ctx context.Context, b Backend, id string) *Selection {
	sel := &Selection{ID: id}

	var g errgroup.Group
	g.Go(func() error {
		sel.Equipment, sel.Err = b.GetEquipment(ctx, id)
		sel.NotFound = errors.Is(sel.Err, api.ErrNotFound)
		return nil
	})
	g.Go(func() error {
		sel.Alerts, sel.AlertsErr = b.EquipmentAlerts(ctx, id, nil)
		return nil
	})
	g.Go(func() error {
		sel.Maintenance, sel.MaintenanceErr = b.EquipmentMaintenance(ctx, id, selectionMaintenanceLimit)
		return nil
	})
	_ = g.Wait()

	// Nothing else about a unit the backend does not know is worth showing.
	if sel.NotFound {
		sel.Alerts, sel.AlertsErr = nil, nil
		sel.Maintenance, sel.MaintenanceErr = nil, nil
	}
	logSection(sel.Err, "selection")
	return sel
}

// UnresolvedCount counts the open alerts in the selection's history.
func (s *Selection) UnresolvedCount() int {
	n := 0
	for _, a := range s.Alerts {
		if !a.Resolved {
			n++
		}
	}
	return n
}
