// Package devbackend replays recorded backend responses so the dashboard can
// run without the real telemetry and AI services.
package devbackend

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/ANIKETSHETTY47/industrial-ai-dashboard/internal/models"
)

//go:embed fixtures.json
var defaultFixtures []byte

type Fixtures struct {
	Version     string                  `json:"version"`
	Equipment   []models.Equipment      `json:"equipment"`
	Alerts      []models.Alert          `json:"alerts"`
	Maintenance []models.MaintenanceLog `json:"maintenance_logs"`
	Executive   models.DashboardMetrics `json:"executive"`
	Operator    models.OperatorMetrics  `json:"operator"`
	AIResponse  models.QueryResponse    `json:"ai_response"`
	AIHealth    models.AIHealth         `json:"ai_health"`
}

// LoadFixtures reads path, or the embedded set when path is empty.
func LoadFixtures(path string) (*Fixtures, error) {
	raw := defaultFixtures
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read fixtures: %w", err)
		}
		raw = b
	}
	var f Fixtures
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("decode fixtures: %w", err)
	}
	return &f, nil
}

// Store is the in-memory state behind the dev backend. Resolving an alert
// is its only mutation.
type Store struct {
	mu sync.RWMutex
	f  *Fixtures
}

func NewStore(f *Fixtures) *Store { return &Store{f: f} }

func (s *Store) Version() string { return s.f.Version }

func (s *Store) Equipment() []models.Equipment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Equipment(nil), s.f.Equipment...)
}

func (s *Store) EquipmentByID(id string) (models.Equipment, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.f.Equipment {
		if e.ID == id {
			return e, true
		}
	}
	return models.Equipment{}, false
}

func (s *Store) EquipmentByStatus(status models.EquipmentStatus) []models.Equipment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Equipment{}
	for _, e := range s.f.Equipment {
		if e.Status == status {
			out = append(out, e)
		}
	}
	return out
}

// Alerts filters by equipment (when non-empty) and resolved flag (when
// non-nil), newest first.
func (s *Store) Alerts(equipmentID string, resolved *bool) []models.Alert {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Alert{}
	for _, a := range s.f.Alerts {
		if equipmentID != "" && a.EquipmentID != equipmentID {
			continue
		}
		if resolved != nil && a.Resolved != *resolved {
			continue
		}
		out = append(out, a)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp.Time) })
	return out
}

func (s *Store) Maintenance(equipmentID string, limit int) []models.MaintenanceLog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.MaintenanceLog{}
	for _, m := range s.f.Maintenance {
		if m.EquipmentID == equipmentID {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp.Time) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func (s *Store) Resolve(alertID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.f.Alerts {
		if s.f.Alerts[i].ID == alertID {
			s.f.Alerts[i].Resolved = true
			return true
		}
	}
	return false
}

func (s *Store) Executive() models.DashboardMetrics {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.f.Executive
}

// Operator returns the recorded operator snapshot with the current
// equipment list and the five newest open alerts.
func (s *Store) Operator() models.OperatorMetrics {
	recent := s.Alerts("", boolPtr(false))
	if len(recent) > 5 {
		recent = recent[:5]
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	m := s.f.Operator
	m.Equipment = append([]models.Equipment(nil), s.f.Equipment...)
	m.RecentAlerts = recent
	return m
}

func (s *Store) Answer(q models.QueryRequest) models.QueryResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()
	resp := s.f.AIResponse
	resp.Sources = append([]string(nil), resp.Sources...)
	resp.Recommendations = append([]string(nil), resp.Recommendations...)
	scope := "all equipment"
	if q.EquipmentID != "" {
		scope = q.EquipmentID
	}
	resp.AgentReasoning = fmt.Sprintf("Replayed answer for %q (%s). %s", q.Query, scope, resp.AgentReasoning)
	return resp
}

func (s *Store) AIHealth() models.AIHealth { return s.f.AIHealth }

func boolPtr(v bool) *bool { return &v }
