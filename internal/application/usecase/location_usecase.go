package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/warehouse-vision/internal/application/dto"
	"github.com/jhoicas/warehouse-vision/internal/application/inventory"
	"github.com/jhoicas/warehouse-vision/internal/domain"
	"github.com/jhoicas/warehouse-vision/internal/domain/entity"
	domaininv "github.com/jhoicas/warehouse-vision/internal/domain/inventory"
	"github.com/jhoicas/warehouse-vision/internal/domain/repository"
)

// Límites de la bitácora reciente.
const (
	DefaultActivityLimit = 10
	MaxActivityLimit     = 100
)

// LocationUseCase vistas de lectura de la bodega: ubicaciones, ocupación y actividad.
type LocationUseCase struct {
	warehouseID string
	locations   repository.LocationRepository
	activity    repository.ActivityLogRepository
	now         func() time.Time
}

// NewLocationUseCase construye el caso de uso.
func NewLocationUseCase(warehouseID string, locations repository.LocationRepository, activity repository.ActivityLogRepository) *LocationUseCase {
	return &LocationUseCase{warehouseID: warehouseID, locations: locations, activity: activity, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *LocationUseCase) WithClock(now func() time.Time) *LocationUseCase {
	uc.now = now
	return uc
}

// List vista plana de la bodega: una fila por item, o una fila EMPTY por ubicación vacía.
func (uc *LocationUseCase) List(ctx context.Context, q dto.LocationQuery) ([]dto.LocationSlotResponse, error) {
	slots, err := uc.locations.ListSlots(ctx, uc.warehouseID, repository.LocationFilter{
		Zona:     strings.TrimSpace(q.Zona),
		Pasillo:  strings.TrimSpace(q.Pasillo),
		Occupied: q.Occupied,
	})
	if err != nil {
		return nil, err
	}
	return toSlotResponses(uc.now(), slots), nil
}

// GetByID obtiene una ubicación. ErrNotFound si no existe en la bodega.
func (uc *LocationUseCase) GetByID(ctx context.Context, id string) (*dto.LocationResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: ubicación %s", domain.ErrNotFound, id)
	}
	loc, err := uc.locations.GetByID(ctx, uc.warehouseID, id)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, fmt.Errorf("%w: ubicación %s", domain.ErrNotFound, id)
	}
	return toLocationResponse(loc), nil
}

// SearchBySKU ubicaciones que hoy contienen el SKU.
func (uc *LocationUseCase) SearchBySKU(ctx context.Context, sku string) ([]dto.LocationSlotResponse, error) {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return nil, domain.NewValidationError("sku", "es requerido")
	}
	slots, err := uc.locations.ListSlotsBySKU(ctx, uc.warehouseID, sku)
	if err != nil {
		return nil, err
	}
	return toSlotResponses(uc.now(), slots), nil
}

// Occupancy ocupación global y por zona. Las dos lecturas corren en paralelo.
func (uc *LocationUseCase) Occupancy(ctx context.Context) (*dto.OccupancyStatsResponse, error) {
	var (
		total, occupied int
		zones           []entity.ZoneOccupancy
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		total, occupied, err = uc.locations.OccupancyTotals(gctx, uc.warehouseID)
		return err
	})
	g.Go(func() error {
		var err error
		zones, err = uc.locations.OccupancyByZone(gctx, uc.warehouseID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := &dto.OccupancyStatsResponse{
		Total:         total,
		Occupied:      occupied,
		Available:     total - occupied,
		OccupancyRate: OccupancyRate(occupied, total),
		ByZone:        make([]dto.ZoneOccupancyResponse, 0, len(zones)),
	}
	for _, z := range zones {
		out.ByZone = append(out.ByZone, dto.ZoneOccupancyResponse{
			Zona:          z.Zona,
			Total:         z.Total,
			Occupied:      z.Occupied,
			Available:     z.Total - z.Occupied,
			OccupancyRate: OccupancyRate(z.Occupied, z.Total),
		})
	}
	return out, nil
}

// OccupancyRate porcentaje con un decimal: 37/100 → "37.0". Sin ubicaciones → "0.0".
func OccupancyRate(occupied, total int) string {
	if total <= 0 {
		return "0.0"
	}
	return decimal.NewFromInt(int64(occupied)).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(int64(total))).
		StringFixed(1)
}

// RecentActivity últimas entradas de la bitácora. limit ≤ 0 usa el valor por defecto; se acota a 100.
func (uc *LocationUseCase) RecentActivity(ctx context.Context, limit int) ([]dto.ActivityResponse, error) {
	if limit <= 0 {
		limit = DefaultActivityLimit
	}
	if limit > MaxActivityLimit {
		limit = MaxActivityLimit
	}
	list, err := uc.activity.Recent(ctx, uc.warehouseID, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ActivityResponse, 0, len(list))
	for _, a := range list {
		out = append(out, dto.ActivityResponse{
			ID:              a.Entry.ID,
			LocationID:      a.Entry.LocationID,
			InventoryItemID: a.Entry.InventoryItemID,
			Action:          a.Entry.Action,
			UserID:          a.Entry.UserID,
			Timestamp:       a.Entry.Timestamp,
			Zona:            a.Location.Zona,
			Pasillo:         a.Location.Pasillo,
			Rack:            a.Location.Rack,
			Nivel:           a.Location.Nivel,
			Posicion:        a.Location.Posicion,
		})
	}
	return out, nil
}

func toSlotResponses(now time.Time, slots []entity.LocationSlot) []dto.LocationSlotResponse {
	out := make([]dto.LocationSlotResponse, 0, len(slots))
	for _, s := range slots {
		l := s.Location
		row := dto.LocationSlotResponse{
			LocationID:  l.ID,
			WarehouseID: l.WarehouseID,
			Zona:        l.Zona,
			Pasillo:     l.Pasillo,
			Rack:        l.Rack,
			Nivel:       l.Nivel,
			Posicion:    l.Posicion,
			X:           l.X,
			Y:           l.Y,
			Z:           l.Z,
		}
		if s.Item == nil {
			row.AlertStatus = string(domaininv.StatusEmpty)
			out = append(out, row)
			continue
		}
		it := s.Item
		arrival := it.ArrivalDate.Format(entity.DateLayout)
		threshold := it.AlertThresholdDays
		c := domaininv.Classify(now, true, it.ExpirationDate, threshold)
		row.InventoryItemID = &it.ID
		row.ProductName = &it.ProductName
		row.SKU = &it.SKU
		row.ArrivalDate = &arrival
		row.ExpirationDate = inventory.FormatDate(it.ExpirationDate)
		row.InvoiceNumber = it.InvoiceNumber
		row.AlertThresholdDays = &threshold
		row.AlertStatus = string(c.Status)
		row.DaysUntilExpiration = inventory.RoundDays(c.DaysUntilExpiration)
		out = append(out, row)
	}
	return out
}

func toLocationResponse(l *entity.Location) *dto.LocationResponse {
	return &dto.LocationResponse{
		ID:          l.ID,
		WarehouseID: l.WarehouseID,
		Zona:        l.Zona,
		Pasillo:     l.Pasillo,
		Rack:        l.Rack,
		Nivel:       l.Nivel,
		Posicion:    l.Posicion,
		X:           l.X,
		Y:           l.Y,
		Z:           l.Z,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
}
