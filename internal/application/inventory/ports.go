package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/warehouse-vision/internal/application/dto"
)

// MutationObserver recibe cada mutación confirmada (ASSIGN, UPDATE, REMOVE). Lo implementa el paquete de métricas.
type MutationObserver interface {
	ObserveMutation(action string)
}

// AlertsReport datos del reporte imprimible de alertas.
type AlertsReport struct {
	WarehouseID string
	GeneratedAt time.Time
	Alerts      []dto.ItemResponse
	Stats       dto.AlertStatsResponse
}

// AlertsReportGenerator puerto para renderizar el reporte (PDF).
type AlertsReportGenerator interface {
	GenerateAlertsReport(ctx context.Context, report AlertsReport) ([]byte, error)
}
