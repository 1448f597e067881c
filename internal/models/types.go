package models

import (
	"encoding/json"
	"sort"
)

type EquipmentStatus string

const (
	StatusOperational EquipmentStatus = "operational"
	StatusWarning     EquipmentStatus = "warning"
	StatusCritical    EquipmentStatus = "critical"
	StatusMaintenance EquipmentStatus = "maintenance"
	StatusOffline     EquipmentStatus = "offline"
)

// Statuses lists every status the backend can report, in display order.
var Statuses = []EquipmentStatus{
	StatusOperational, StatusWarning, StatusCritical, StatusMaintenance, StatusOffline,
}

func (s EquipmentStatus) Valid() bool {
	for _, v := range Statuses {
		if v == s {
			return true
		}
	}
	return false
}

type AlertSeverity string

const (
	SeverityLow      AlertSeverity = "low"
	SeverityMedium   AlertSeverity = "medium"
	SeverityHigh     AlertSeverity = "high"
	SeverityCritical AlertSeverity = "critical"
)

func (s AlertSeverity) Valid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	}
	return false
}

// Standard metric keys every equipment snapshot carries.
const (
	MetricTemperature = "temperature"
	MetricPressure    = "pressure"
	MetricVibration   = "vibration"
)

type Equipment struct {
	ID              string             `json:"id"`
	Name            string             `json:"name"`
	Type            string             `json:"type"`
	Location        string             `json:"location"`
	Status          EquipmentStatus    `json:"status"`
	HealthScore     float64            `json:"health_score"`
	LastMaintenance Timestamp          `json:"last_maintenance"`
	NextMaintenance Timestamp          `json:"next_maintenance"`
	Metrics         map[string]float64 `json:"metrics"`
}

// Metric returns the named reading and whether the backend sent it.
func (e Equipment) Metric(name string) (float64, bool) {
	v, ok := e.Metrics[name]
	return v, ok
}

func (e Equipment) Temperature() float64 { return e.Metrics[MetricTemperature] }
func (e Equipment) Pressure() float64    { return e.Metrics[MetricPressure] }
func (e Equipment) Vibration() float64   { return e.Metrics[MetricVibration] }

type NamedMetric struct {
	Name  string
	Value float64
}

// ExtraMetrics returns the readings beyond temperature, pressure and
// vibration, sorted by name.
func (e Equipment) ExtraMetrics() []NamedMetric {
	var out []NamedMetric
	for k, v := range e.Metrics {
		switch k {
		case MetricTemperature, MetricPressure, MetricVibration:
			continue
		}
		out = append(out, NamedMetric{Name: k, Value: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

type Alert struct {
	ID          string        `json:"id"`
	EquipmentID string        `json:"equipment_id"`
	Timestamp   Timestamp     `json:"timestamp"`
	Severity    AlertSeverity `json:"severity"`
	Type        string        `json:"type"`
	Message     string        `json:"message"`
	Resolved    bool          `json:"resolved"`
}

type PredictedFailure struct {
	EquipmentID        string  `json:"equipment_id"`
	EquipmentName      string  `json:"equipment_name"`
	FailureProbability float64 `json:"failure_probability"`
	EstimatedDays      int     `json:"estimated_days"`
	Reason             string  `json:"reason"`
}

type DashboardMetrics struct {
	TotalEquipment     int                `json:"total_equipment"`
	OperationalCount   int                `json:"operational_count"`
	WarningCount       int                `json:"warning_count"`
	CriticalCount      int                `json:"critical_count"`
	AverageHealthScore float64            `json:"average_health_score"`
	TotalAlerts        int                `json:"total_alerts"`
	UnresolvedAlerts   int                `json:"unresolved_alerts"`
	MaintenanceCostMTD float64            `json:"maintenance_cost_mtd"`
	EnergyEfficiency   float64            `json:"energy_efficiency"`
	PredictedFailures  []PredictedFailure `json:"predicted_failures"`
}

type PendingMaintenance struct {
	EquipmentID   string    `json:"equipment_id"`
	EquipmentName string    `json:"equipment_name"`
	DueDate       Timestamp `json:"due_date"`
	DaysUntil     int       `json:"days_until"`
	Type          string    `json:"type"`
}

type OperatorMetrics struct {
	Equipment          []Equipment                `json:"equipment"`
	RecentAlerts       []Alert                    `json:"recent_alerts"`
	PendingMaintenance []PendingMaintenance       `json:"pending_maintenance"`
	ShiftSummary       map[string]json.RawMessage `json:"shift_summary"`
}

type MaintenanceLog struct {
	ID            string    `json:"id"`
	EquipmentID   string    `json:"equipment_id"`
	Timestamp     Timestamp `json:"timestamp"`
	Type          string    `json:"type"`
	Description   string    `json:"description"`
	Technician    string    `json:"technician"`
	Cost          float64   `json:"cost"`
	DurationHours float64   `json:"duration_hours"`
}

type QueryRequest struct {
	Query       string `json:"query"`
	EquipmentID string `json:"equipment_id,omitempty"`
}

type QueryResponse struct {
	Answer          string   `json:"answer"`
	Sources         []string `json:"sources"`
	Recommendations []string `json:"recommendations"`
	Confidence      float64  `json:"confidence"`
	AgentReasoning  string   `json:"agent_reasoning,omitempty"`
}

type ResolveResult struct {
	Message string `json:"message"`
	AlertID string `json:"alert_id"`
}

type AIHealth struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func (h AIHealth) Healthy() bool { return h.Status == "healthy" }

type Health struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}
