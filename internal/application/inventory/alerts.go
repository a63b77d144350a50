package inventory

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/warehouse-vision/internal/application/dto"
	"github.com/jhoicas/warehouse-vision/internal/domain/entity"
	domaininv "github.com/jhoicas/warehouse-vision/internal/domain/inventory"
	"github.com/jhoicas/warehouse-vision/internal/domain/repository"
	"github.com/jhoicas/warehouse-vision/pkg/logger"
)

const searchLimit = 10

// AlertUseCase vistas de solo lectura sobre los items: alertas, conteos, búsqueda y reporte.
type AlertUseCase struct {
	warehouseID string
	items       repository.InventoryItemRepository
	report      AlertsReportGenerator
	log         *logger.Logger
	now         func() time.Time
}

// NewAlertUseCase report puede ser nil si no hay generador de PDF.
func NewAlertUseCase(warehouseID string, items repository.InventoryItemRepository, report AlertsReportGenerator, log *logger.Logger) *AlertUseCase {
	return &AlertUseCase{
		warehouseID: warehouseID,
		items:       items,
		report:      report,
		log:         log.Component("alerts"),
		now:         time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *AlertUseCase) WithClock(now func() time.Time) *AlertUseCase {
	uc.now = now
	return uc
}

// Alerts items vencidos o por vencer, el más urgente primero.
func (uc *AlertUseCase) Alerts(ctx context.Context) ([]dto.ItemResponse, error) {
	items, err := uc.items.ListByWarehouse(ctx, uc.warehouseID, true)
	if err != nil {
		return nil, fmt.Errorf("listar items: %w", err)
	}
	return uc.alerts(uc.now(), items), nil
}

func (uc *AlertUseCase) alerts(now time.Time, items []entity.ItemWithLocation) []dto.ItemResponse {
	type scored struct {
		days float64
		view dto.ItemResponse
	}
	var hits []scored
	for _, it := range items {
		c := domaininv.Classify(now, true, it.Item.ExpirationDate, it.Item.AlertThresholdDays)
		if !c.Status.IsAlert() {
			continue
		}
		hits = append(hits, scored{days: *c.DaysUntilExpiration, view: ItemView(now, it)})
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].days < hits[j].days })

	out := make([]dto.ItemResponse, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.view)
	}
	return out
}

// AlertStats conteos sobre todos los items de la bodega.
func (uc *AlertUseCase) AlertStats(ctx context.Context) (*dto.AlertStatsResponse, error) {
	items, err := uc.items.ListByWarehouse(ctx, uc.warehouseID, false)
	if err != nil {
		return nil, fmt.Errorf("listar items: %w", err)
	}
	stats := alertStats(uc.now(), items)
	return &stats, nil
}

func alertStats(now time.Time, items []entity.ItemWithLocation) dto.AlertStatsResponse {
	stats := dto.AlertStatsResponse{TotalItems: len(items)}
	for _, it := range items {
		switch domaininv.Classify(now, true, it.Item.ExpirationDate, it.Item.AlertThresholdDays).Status {
		case domaininv.StatusExpired:
			stats.Expired++
		case domaininv.StatusExpiringSoon:
			stats.ExpiringSoon++
		case domaininv.StatusNoExpiration:
			stats.NoExpiration++
		}
	}
	return stats
}

// Search coincidencias por nombre o SKU sin distinguir mayúsculas. Consulta vacía = lista vacía.
func (uc *AlertUseCase) Search(ctx context.Context, query string) ([]dto.ProductMatchResponse, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return []dto.ProductMatchResponse{}, nil
	}
	matches, err := uc.items.SearchProducts(ctx, uc.warehouseID, domaininv.Fold(q), searchLimit)
	if err != nil {
		return nil, fmt.Errorf("buscar productos: %w", err)
	}
	out := make([]dto.ProductMatchResponse, 0, len(matches))
	for _, m := range matches {
		out = append(out, dto.ProductMatchResponse{
			ProductName:        m.ProductName,
			SKU:                m.SKU,
			AlertThresholdDays: m.AlertThresholdDays,
		})
	}
	return out, nil
}

// AlertsReport renderiza la vista de alertas con sus totales. Una sola lectura alimenta ambas partes.
func (uc *AlertUseCase) AlertsReport(ctx context.Context) ([]byte, error) {
	if uc.report == nil {
		return nil, fmt.Errorf("generador de reportes no configurado")
	}
	items, err := uc.items.ListByWarehouse(ctx, uc.warehouseID, false)
	if err != nil {
		return nil, fmt.Errorf("listar items: %w", err)
	}
	now := uc.now()
	doc, err := uc.report.GenerateAlertsReport(ctx, AlertsReport{
		WarehouseID: uc.warehouseID,
		GeneratedAt: now.UTC(),
		Alerts:      uc.alerts(now, items),
		Stats:       alertStats(now, items),
	})
	if err != nil {
		return nil, fmt.Errorf("generar reporte: %w", err)
	}
	uc.log.Debug().Int("bytes", len(doc)).Msg("reporte de alertas generado")
	return doc, nil
}

// ItemView convierte un item a su salida con estado derivado a la hora now.
func ItemView(now time.Time, it entity.ItemWithLocation) dto.ItemResponse {
	c := domaininv.Classify(now, true, it.Item.ExpirationDate, it.Item.AlertThresholdDays)
	out := dto.ItemResponse{
		ID:                 it.Item.ID,
		LocationID:         it.Item.LocationID,
		ProductName:        it.Item.ProductName,
		SKU:                it.Item.SKU,
		ArrivalDate:        it.Item.ArrivalDate.Format(entity.DateLayout),
		ExpirationDate:     FormatDate(it.Item.ExpirationDate),
		InvoiceNumber:      it.Item.InvoiceNumber,
		AlertThresholdDays: it.Item.AlertThresholdDays,
		CreatedAt:          it.Item.CreatedAt,
		UpdatedAt:          it.Item.UpdatedAt,
		Zona:               it.Location.Zona,
		Pasillo:            it.Location.Pasillo,
		Rack:               it.Location.Rack,
		Nivel:              it.Location.Nivel,
		Posicion:           it.Location.Posicion,
		AlertStatus:        string(c.Status),
	}
	out.DaysUntilExpiration = RoundDays(c.DaysUntilExpiration)
	return out
}

// FormatDate fecha calendario o nil.
func FormatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(entity.DateLayout)
	return &s
}

// RoundDays redondea a dos decimales para la salida.
func RoundDays(d *float64) *float64 {
	if d == nil {
		return nil
	}
	r := math.Round(*d*100) / 100
	return &r
}
