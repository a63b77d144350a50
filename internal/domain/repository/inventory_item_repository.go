package repository

import (
	"context"

	"github.com/jhoicas/warehouse-vision/internal/domain/entity"
)

// InventoryItemRepository define el puerto de persistencia para InventoryItem.
type InventoryItemRepository interface {
	Create(ctx context.Context, item *entity.InventoryItem) error
	Update(ctx context.Context, item *entity.InventoryItem) error
	Delete(ctx context.Context, id string) error
	// GetByID devuelve (nil, nil) si el item no existe en la bodega.
	GetByID(ctx context.Context, warehouseID, id string) (*entity.ItemWithLocation, error)

	CountByWarehouse(ctx context.Context, warehouseID string) (int, error)
	DeleteByWarehouse(ctx context.Context, warehouseID string) (int64, error)

	// ListByWarehouse lista items con su ubicación; withExpirationOnly descarta los que no vencen.
	ListByWarehouse(ctx context.Context, warehouseID string, withExpirationOnly bool) ([]entity.ItemWithLocation, error)
	// SearchProducts busca por subcadena (nombre o sku) ya normalizada a minúsculas.
	SearchProducts(ctx context.Context, warehouseID, lowered string, limit int) ([]entity.ProductMatch, error)
}
