package persistence

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jhoicas/warehouse-vision/internal/domain/entity"
	"github.com/jhoicas/warehouse-vision/internal/domain/repository"
)

var _ repository.ActivityLogRepository = (*ActivityLogRepo)(nil)

// ActivityLogRepo bitácora append-only (usable con DB o Tx).
type ActivityLogRepo struct {
	q Querier
}

// NewActivityLogRepository construye el adaptador. Pasar DB o Tx (Querier).
func NewActivityLogRepository(q Querier) *ActivityLogRepo {
	return &ActivityLogRepo{q: q}
}

// Append agrega una entrada.
func (r *ActivityLogRepo) Append(ctx context.Context, entry *entity.ActivityLogEntry) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO inventory_log (id, location_id, inventory_item_id, action, user_id, logged_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.LocationID, entry.InventoryItemID, entry.Action, entry.UserID,
		timeArg(r.q.Dialect(), entry.Timestamp),
	)
	if err != nil {
		return fmt.Errorf("append activity: %w", err)
	}
	return nil
}

// Recent últimas entradas de la bodega, más reciente primero.
func (r *ActivityLogRepo) Recent(ctx context.Context, warehouseID string, limit int) ([]entity.ActivityWithLocation, error) {
	rows, err := r.q.Query(ctx, `
		SELECT g.id, g.location_id, g.inventory_item_id, g.action, g.user_id, g.logged_at, `+refColumns+`
		FROM inventory_log g
		JOIN locations l ON l.id = g.location_id
		WHERE l.warehouse_id = ?
		ORDER BY g.logged_at DESC, g.id
		LIMIT ?`, warehouseID, limit)
	if err != nil {
		return nil, fmt.Errorf("recent activity: %w", err)
	}
	defer rows.Close()

	list := make([]entity.ActivityWithLocation, 0)
	for rows.Next() {
		var a entity.ActivityWithLocation
		var itemID sql.NullString
		var ts nullTime
		if err := rows.Scan(
			&a.Entry.ID, &a.Entry.LocationID, &itemID, &a.Entry.Action, &a.Entry.UserID, &ts,
			&a.Location.Zona, &a.Location.Pasillo, &a.Location.Rack, &a.Location.Nivel, &a.Location.Posicion,
		); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		if itemID.Valid {
			id := itemID.String
			a.Entry.InventoryItemID = &id
		}
		a.Entry.Timestamp = ts.Time
		list = append(list, a)
	}
	return list, rows.Err()
}

// DeleteByWarehouse borra la bitácora de las ubicaciones de la bodega (solo durante un reset).
func (r *ActivityLogRepo) DeleteByWarehouse(ctx context.Context, warehouseID string) (int64, error) {
	res, err := r.q.Exec(ctx, `
		DELETE FROM inventory_log
		WHERE location_id IN (SELECT id FROM locations WHERE warehouse_id = ?)`, warehouseID)
	if err != nil {
		return 0, fmt.Errorf("delete activity: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}
