package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jhoicas/warehouse-vision/internal/domain"
	"github.com/jhoicas/warehouse-vision/internal/domain/entity"
	"github.com/jhoicas/warehouse-vision/internal/domain/repository"
)

var _ repository.InventoryItemRepository = (*InventoryItemRepo)(nil)

const itemColumns = `i.id, i.location_id, i.product_name, i.sku, i.arrival_date, i.expiration_date, i.invoice_number, i.alert_threshold_days, i.created_at, i.updated_at`

const refColumns = `l.zona, l.pasillo, l.rack, l.nivel, l.posicion`

// InventoryItemRepo implementación del puerto InventoryItemRepository (usable con DB o Tx).
type InventoryItemRepo struct {
	q Querier
}

// NewInventoryItemRepository construye el adaptador. Pasar DB o Tx (Querier).
func NewInventoryItemRepository(q Querier) *InventoryItemRepo {
	return &InventoryItemRepo{q: q}
}

// Create persiste un item nuevo.
func (r *InventoryItemRepo) Create(ctx context.Context, item *entity.InventoryItem) error {
	d := r.q.Dialect()
	_, err := r.q.Exec(ctx, `
		INSERT INTO inventory_items (id, location_id, product_name, sku, arrival_date, expiration_date,
			invoice_number, alert_threshold_days, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ID, item.LocationID, item.ProductName, item.SKU,
		dateArg(d, &item.ArrivalDate), dateArg(d, item.ExpirationDate),
		item.InvoiceNumber, item.AlertThresholdDays,
		timeArg(d, item.CreatedAt), timeArg(d, item.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert inventory item: %w", domain.ErrDuplicate)
		}
		return fmt.Errorf("insert inventory item: %w", err)
	}
	return nil
}

// Update reescribe los campos editables del item.
func (r *InventoryItemRepo) Update(ctx context.Context, item *entity.InventoryItem) error {
	d := r.q.Dialect()
	res, err := r.q.Exec(ctx, `
		UPDATE inventory_items SET product_name = ?, sku = ?, arrival_date = ?, expiration_date = ?,
			invoice_number = ?, alert_threshold_days = ?, updated_at = ?
		WHERE id = ?`,
		item.ProductName, item.SKU, dateArg(d, &item.ArrivalDate), dateArg(d, item.ExpirationDate),
		item.InvoiceNumber, item.AlertThresholdDays, timeArg(d, item.UpdatedAt), item.ID,
	)
	if err != nil {
		return fmt.Errorf("update inventory item: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un item por ID.
func (r *InventoryItemRepo) Delete(ctx context.Context, id string) error {
	res, err := r.q.Exec(ctx, `DELETE FROM inventory_items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete inventory item: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID obtiene un item de la bodega con su ubicación; (nil, nil) si no existe.
func (r *InventoryItemRepo) GetByID(ctx context.Context, warehouseID, id string) (*entity.ItemWithLocation, error) {
	query := `SELECT ` + itemColumns + `, ` + refColumns + `
		FROM inventory_items i
		JOIN locations l ON l.id = i.location_id
		WHERE l.warehouse_id = ? AND i.id = ?`
	out, err := scanItemWithLocation(r.q.QueryRow(ctx, query, warehouseID, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory item: %w", err)
	}
	return &out, nil
}

// CountByWarehouse items ubicados en la bodega.
func (r *InventoryItemRepo) CountByWarehouse(ctx context.Context, warehouseID string) (int, error) {
	var n int64
	err := r.q.QueryRow(ctx, `
		SELECT COUNT(*) FROM inventory_items i
		JOIN locations l ON l.id = i.location_id
		WHERE l.warehouse_id = ?`, warehouseID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count inventory items: %w", err)
	}
	return int(n), nil
}

// DeleteByWarehouse borra todos los items ubicados en la bodega.
func (r *InventoryItemRepo) DeleteByWarehouse(ctx context.Context, warehouseID string) (int64, error) {
	res, err := r.q.Exec(ctx, `
		DELETE FROM inventory_items
		WHERE location_id IN (SELECT id FROM locations WHERE warehouse_id = ?)`, warehouseID)
	if err != nil {
		return 0, fmt.Errorf("delete inventory items: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

// ListByWarehouse items de la bodega con el contexto de ubicación.
func (r *InventoryItemRepo) ListByWarehouse(ctx context.Context, warehouseID string, withExpirationOnly bool) ([]entity.ItemWithLocation, error) {
	var w whereClause
	w.and("l.warehouse_id = ?", warehouseID)
	if withExpirationOnly {
		w.and("i.expiration_date IS NOT NULL")
	}
	query := `SELECT ` + itemColumns + `, ` + refColumns + `
		FROM inventory_items i
		JOIN locations l ON l.id = i.location_id` + w.sql() + `
		ORDER BY i.expiration_date, l.zona, l.pasillo, l.rack, l.nivel, l.posicion, i.id`
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list inventory items: %w", err)
	}
	defer rows.Close()

	list := make([]entity.ItemWithLocation, 0)
	for rows.Next() {
		it, err := scanItemWithLocation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory item: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

// SearchProducts coincidencias distintas por nombre o SKU. lowered debe venir plegado con inventory.Fold.
func (r *InventoryItemRepo) SearchProducts(ctx context.Context, warehouseID, lowered string, limit int) ([]entity.ProductMatch, error) {
	pattern := "%" + escapeLike(lowered) + "%"
	d := r.q.Dialect()
	query := `
		SELECT DISTINCT i.product_name, i.sku, i.alert_threshold_days
		FROM inventory_items i
		JOIN locations l ON l.id = i.location_id
		WHERE l.warehouse_id = ?
		  AND (` + foldExpr(d, "i.product_name") + ` LIKE ? ESCAPE '\' OR ` + foldExpr(d, "i.sku") + ` LIKE ? ESCAPE '\')
		ORDER BY i.product_name, i.sku, i.alert_threshold_days
		LIMIT ?`
	rows, err := r.q.Query(ctx, query, warehouseID, pattern, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	defer rows.Close()

	list := make([]entity.ProductMatch, 0)
	for rows.Next() {
		var m entity.ProductMatch
		if err := rows.Scan(&m.ProductName, &m.SKU, &m.AlertThresholdDays); err != nil {
			return nil, fmt.Errorf("scan product match: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItemWithLocation(rs rowScanner) (entity.ItemWithLocation, error) {
	var ic itemCols
	var ref entity.LocationRef
	dest := append(ic.dest(), &ref.Zona, &ref.Pasillo, &ref.Rack, &ref.Nivel, &ref.Posicion)
	if err := rs.Scan(dest...); err != nil {
		return entity.ItemWithLocation{}, err
	}
	return entity.ItemWithLocation{Item: *ic.item(), Location: ref}, nil
}

// itemCols destinos nullables de itemColumns; sirven también para el LEFT JOIN de la vista de slots.
type itemCols struct {
	id, locationID, name, sku, invoice sql.NullString
	arrival, expiration                nullTime
	created, updated                   nullTime
	threshold                          sql.NullInt64
}

func (c *itemCols) dest() []any {
	return []any{
		&c.id, &c.locationID, &c.name, &c.sku, &c.arrival, &c.expiration,
		&c.invoice, &c.threshold, &c.created, &c.updated,
	}
}

// item devuelve nil cuando la fila no trae item (ubicación vacía).
func (c *itemCols) item() *entity.InventoryItem {
	if !c.id.Valid {
		return nil
	}
	it := &entity.InventoryItem{
		ID:                 c.id.String,
		LocationID:         c.locationID.String,
		ProductName:        c.name.String,
		SKU:                c.sku.String,
		ArrivalDate:        entity.DateOf(c.arrival.Time),
		AlertThresholdDays: int(c.threshold.Int64),
		CreatedAt:          c.created.Time,
		UpdatedAt:          c.updated.Time,
	}
	if exp := c.expiration.ptr(); exp != nil {
		d := entity.DateOf(*exp)
		it.ExpirationDate = &d
	}
	if c.invoice.Valid {
		inv := c.invoice.String
		it.InvoiceNumber = &inv
	}
	return it
}
