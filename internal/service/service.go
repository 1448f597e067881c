package service

import (
	"context"
	"time"

	"github.com/ANIKETSHETTY47/industrial-ai-dashboard/internal/domain"
	"github.com/ANIKETSHETTY47/industrial-ai-dashboard/internal/models"
	"github.com/ANIKETSHETTY47/industrial-ai-dashboard/internal/notify"
)

// Backend is the part of the API client the dashboard views depend on.
type Backend interface {
	ListEquipment(ctx context.Context) ([]models.Equipment, error)
	GetEquipment(ctx context.Context, id string) (*models.Equipment, error)
	EquipmentByStatus(ctx context.Context, status models.EquipmentStatus) ([]models.Equipment, error)
	EquipmentAlerts(ctx context.Context, id string, resolved *bool) ([]models.Alert, error)
	EquipmentMaintenance(ctx context.Context, id string, limit int) ([]models.MaintenanceLog, error)
	Executive(ctx context.Context) (*models.DashboardMetrics, error)
	Operator(ctx context.Context) (*models.OperatorMetrics, error)
	Alerts(ctx context.Context, resolved *bool) ([]models.Alert, error)
	ResolveAlert(ctx context.Context, id string) (*models.ResolveResult, error)
	Query(ctx context.Context, q models.QueryRequest) (*models.QueryResponse, error)
	AIHealth(ctx context.Context) (*models.AIHealth, error)
	Ping(ctx context.Context) (*models.Health, error)
}

type QueryHistory interface {
	Insert(ctx context.Context, rec *domain.QueryRecord) error
	Recent(ctx context.Context, limit int) ([]domain.QueryRecord, error)
}

type ReportStore interface {
	UploadReport(ctx context.Context, key string, data []byte, contentType string) error
	PresignReport(ctx context.Context, key string) (string, error)
}

// Deps wires the services. History, Reports and Notifier are optional.
type Deps struct {
	Backend  Backend
	History  QueryHistory
	Reports  ReportStore
	Notifier notify.Notifier
}

type Services struct {
	Status    *StatusService
	Executive *ExecutiveService
	Operator  *OperatorService
	Assistant *AssistantService
	Alerts    *AlertService
	Reports   *ReportService
}

func New(d Deps) *Services {
	if d.Notifier == nil {
		d.Notifier = notify.Nop{}
	}
	status := &StatusService{backend: d.Backend}
	assistant := &AssistantService{backend: d.Backend, history: d.History}

	s := &Services{
		Status:    status,
		Executive: &ExecutiveService{backend: d.Backend, status: status},
		Operator:  &OperatorService{backend: d.Backend, status: status, assistant: assistant},
		Assistant: assistant,
		Alerts:    &AlertService{backend: d.Backend, notifier: d.Notifier, now: time.Now},
	}
	if d.Reports != nil {
		s.Reports = &ReportService{backend: d.Backend, store: d.Reports, now: time.Now}
	}
	return s
}
