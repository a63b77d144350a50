package repository

import (
	"context"

	"github.com/jhoicas/warehouse-vision/internal/domain/entity"
)

// ActivityLogRepository puerto de la bitácora append-only.
// No expone Update: las entradas solo se borran en bloque durante un reset.
type ActivityLogRepository interface {
	Append(ctx context.Context, entry *entity.ActivityLogEntry) error
	Recent(ctx context.Context, warehouseID string, limit int) ([]entity.ActivityWithLocation, error)
	DeleteByWarehouse(ctx context.Context, warehouseID string) (int64, error)
}
