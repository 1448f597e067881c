package service

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	BackendOnline  = "online"
	BackendOffline = "offline"

	AIHealthy   = "healthy"
	AIUnhealthy = "unhealthy"
	AIUnknown   = "unknown"
)

// statusTimeout bounds the liveness probes so a hung backend cannot hold a page.
const statusTimeout = 3 * time.Second

type Status struct {
	Backend   string `json:"backend"`
	AI        string `json:"ai"`
	AIMessage string `json:"-"`
}

func (s Status) Online() bool { return s.Backend == BackendOnline }

type StatusService struct {
	backend Backend
}

// Check probes backend liveness and AI health concurrently. It never fails;
// unreachable services are reported as offline or unknown.
func (s *StatusService) Check(ctx context.Context) Status {
	ctx, cancel := context.WithTimeout(ctx, statusTimeout)
	defer cancel()

	st := Status{Backend: BackendOffline, AI: AIUnknown}
	var g errgroup.Group
	g.Go(func() error {
		if _, err := s.backend.Ping(ctx); err == nil {
			st.Backend = BackendOnline
		}
		return nil
	})
	g.Go(func() error {
		h, err := s.backend.AIHealth(ctx)
		if err != nil {
			st.AIMessage = err.Error()
			return nil
		}
		st.AIMessage = h.Message
		if h.Healthy() {
			st.AI = AIHealthy
		} else {
			st.AI = AIUnhealthy
		}
		return nil
	})
	_ = g.Wait()
	return st
}
