package notify

import (
	"context"
	"errors"
	"time"
)

// AlertResolvedEvent is emitted after the backend confirms an alert resolution.
type AlertResolvedEvent struct {
	AlertID     string    `json:"alert_id"`
	EquipmentID string    `json:"equipment_id,omitempty"`
	Message     string    `json:"message"`
	ResolvedAt  time.Time `json:"resolved_at"`
}

type Notifier interface {
	AlertResolved(ctx context.Context, ev AlertResolvedEvent) error
}

type Nop struct{}

func (Nop) AlertResolved(context.Context, AlertResolvedEvent) error { return nil }

// Multi delivers to every notifier and joins their errors.
type Multi []Notifier

func (m Multi) AlertResolved(ctx context.Context, ev AlertResolvedEvent) error {
	var errs []error
	for _, n := range m {
		if err := n.AlertResolved(ctx, ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Combine drops nil entries and returns Nop, the single notifier, or a Multi.
func Combine(ns ...Notifier) Notifier {
	var out Multi
	for _, n := range ns {
		if n != nil {
			out = append(out, n)
		}
	}
	switch len(out) {
	case 0:
		return Nop{}
	case 1:
		return out[0]
	}
	return out
}
