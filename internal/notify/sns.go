package notify

import (
	"context"
	"fmt"
	"time"
)

type topicPublisher interface {
	Publish(ctx context.Context, subject, message string) (string, error)
}

// SNS sends resolution notices through an SNS topic.
type SNS struct {
	client topicPublisher
}

func NewSNS(client topicPublisher) *SNS { return &SNS{client: client} }

func (s *SNS) AlertResolved(ctx context.Context, ev AlertResolvedEvent) error {
	subject := fmt.Sprintf("Industrial Dashboard: alert %s resolved", ev.AlertID)
	message := fmt.Sprintf(
		"Alert Resolved\n\n"+
			"Alert: %s\n"+
			"Equipment: %s\n"+
			"Backend message: %s\n"+
			"Time: %s\n",
		ev.AlertID,
		orDash(ev.EquipmentID),
		ev.Message,
		ev.ResolvedAt.UTC().Format(time.RFC3339),
	)
	if _, err := s.client.Publish(ctx, subject, message); err != nil {
		return fmt.Errorf("sns notify %s: %w", ev.AlertID, err)
	}
	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
