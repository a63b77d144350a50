package repository

import (
	"context"

	"github.com/jhoicas/warehouse-vision/internal/domain/entity"
)

// LocationFilter filtros opcionales de la vista de ubicaciones.
// Occupied nil = todas; true = solo con item; false = solo vacías.
type LocationFilter struct {
	Zona     string
	Pasillo  string
	Occupied *bool
}

// LocationRepository define el puerto de persistencia para Location (DIP).
// Todas las lecturas van acotadas a una bodega.
type LocationRepository interface {
	// InsertBatch inserta en bloque; falla completo si alguna fila viola la unicidad.
	InsertBatch(ctx context.Context, locations []*entity.Location) error
	DeleteByWarehouse(ctx context.Context, warehouseID string) (int64, error)
	GetByID(ctx context.Context, warehouseID, id string) (*entity.Location, error)
	CountByWarehouse(ctx context.Context, warehouseID string) (int, error)

	// ListSlots devuelve la vista plana ubicación+item ordenada por zona, pasillo, rack, nivel, posición.
	ListSlots(ctx context.Context, warehouseID string, filter LocationFilter) ([]entity.LocationSlot, error)
	// ListSlotsBySKU devuelve las ubicaciones que hoy contienen el SKU.
	ListSlotsBySKU(ctx context.Context, warehouseID, sku string) ([]entity.LocationSlot, error)

	// OccupancyTotals cuenta ubicaciones totales y ocupadas (al menos un item).
	OccupancyTotals(ctx context.Context, warehouseID string) (total, occupied int, err error)
	OccupancyByZone(ctx context.Context, warehouseID string) ([]entity.ZoneOccupancy, error)
	Structure(ctx context.Context, warehouseID string) (*entity.LayoutStructure, error)
}
