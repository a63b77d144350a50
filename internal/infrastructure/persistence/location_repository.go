package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jhoicas/warehouse-vision/internal/domain"
	"github.com/jhoicas/warehouse-vision/internal/domain/entity"
	"github.com/jhoicas/warehouse-vision/internal/domain/repository"
)

var _ repository.LocationRepository = (*LocationRepo)(nil)

// insertBatchSize filas por INSERT multi-valor (12 parámetros por fila, lejos del límite de ambos motores).
const insertBatchSize = 500

const locationColumns = `l.id, l.warehouse_id, l.zona, l.pasillo, l.rack, l.nivel, l.posicion, l.x, l.y, l.z, l.created_at, l.updated_at`

const slotOrder = ` ORDER BY l.zona, l.pasillo, l.rack, l.nivel, l.posicion, i.arrival_date, i.id`

// LocationRepo implementación del puerto LocationRepository (usable con DB o Tx).
type LocationRepo struct {
	q Querier
}

// NewLocationRepository construye el adaptador de persistencia para ubicaciones.
func NewLocationRepository(q Querier) *LocationRepo {
	return &LocationRepo{q: q}
}

// InsertBatch persiste las ubicaciones en bloques de insertBatchSize.
func (r *LocationRepo) InsertBatch(ctx context.Context, locations []*entity.Location) error {
	d := r.q.Dialect()
	for start := 0; start < len(locations); start += insertBatchSize {
		chunk := locations[start:min(start+insertBatchSize, len(locations))]

		var b strings.Builder
		b.WriteString(`INSERT INTO locations (id, warehouse_id, zona, pasillo, rack, nivel, posicion, x, y, z, created_at, updated_at) VALUES `)
		args := make([]any, 0, len(chunk)*12)
		for i, l := range chunk {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString("(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)")
			args = append(args,
				l.ID, l.WarehouseID, l.Zona, l.Pasillo, l.Rack, l.Nivel, l.Posicion,
				l.X, l.Y, l.Z, timeArg(d, l.CreatedAt), timeArg(d, l.UpdatedAt),
			)
		}
		if _, err := r.q.Exec(ctx, b.String(), args...); err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("insert locations: %w", domain.ErrDuplicate)
			}
			return fmt.Errorf("insert locations: %w", err)
		}
	}
	return nil
}

// DeleteByWarehouse borra todas las ubicaciones de la bodega.
func (r *LocationRepo) DeleteByWarehouse(ctx context.Context, warehouseID string) (int64, error) {
	res, err := r.q.Exec(ctx, `DELETE FROM locations WHERE warehouse_id = ?`, warehouseID)
	if err != nil {
		return 0, fmt.Errorf("delete locations: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

// GetByID obtiene una ubicación de la bodega; (nil, nil) si no existe.
func (r *LocationRepo) GetByID(ctx context.Context, warehouseID, id string) (*entity.Location, error) {
	query := `SELECT ` + locationColumns + ` FROM locations l WHERE l.warehouse_id = ? AND l.id = ?`
	var lc locationCols
	if err := r.q.QueryRow(ctx, query, warehouseID, id).Scan(lc.dest()...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get location: %w", err)
	}
	loc := lc.location()
	return &loc, nil
}

// CountByWarehouse número de ubicaciones de la bodega.
func (r *LocationRepo) CountByWarehouse(ctx context.Context, warehouseID string) (int, error) {
	var n int64
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM locations WHERE warehouse_id = ?`, warehouseID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count locations: %w", err)
	}
	return int(n), nil
}

// ListSlots vista plana ubicación+item con filtros parametrizados.
func (r *LocationRepo) ListSlots(ctx context.Context, warehouseID string, filter repository.LocationFilter) ([]entity.LocationSlot, error) {
	var w whereClause
	w.and("l.warehouse_id = ?", warehouseID)
	if filter.Zona != "" {
		w.and("l.zona = ?", filter.Zona)
	}
	if filter.Pasillo != "" {
		w.and("l.pasillo = ?", filter.Pasillo)
	}
	if filter.Occupied != nil {
		if *filter.Occupied {
			w.and("i.id IS NOT NULL")
		} else {
			w.and("i.id IS NULL")
		}
	}
	query := `SELECT ` + locationColumns + `, ` + itemColumns + `
		FROM locations l
		LEFT JOIN inventory_items i ON i.location_id = l.id` + w.sql() + slotOrder
	return r.querySlots(ctx, query, w.args...)
}

// ListSlotsBySKU ubicaciones que contienen el SKU (una fila por item).
func (r *LocationRepo) ListSlotsBySKU(ctx context.Context, warehouseID, sku string) ([]entity.LocationSlot, error) {
	query := `SELECT ` + locationColumns + `, ` + itemColumns + `
		FROM locations l
		JOIN inventory_items i ON i.location_id = l.id
		WHERE l.warehouse_id = ? AND i.sku = ?` + slotOrder
	return r.querySlots(ctx, query, warehouseID, sku)
}

func (r *LocationRepo) querySlots(ctx context.Context, query string, args ...any) ([]entity.LocationSlot, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()

	slots := make([]entity.LocationSlot, 0)
	for rows.Next() {
		var lc locationCols
		var ic itemCols
		if err := rows.Scan(append(lc.dest(), ic.dest()...)...); err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		slots = append(slots, entity.LocationSlot{Location: lc.location(), Item: ic.item()})
	}
	return slots, rows.Err()
}

// occupancySelect cuenta ubicaciones distintas; una ubicación con varios items cuenta una sola vez.
const occupancySelect = `COUNT(*),
	COALESCE(SUM(CASE WHEN EXISTS (SELECT 1 FROM inventory_items i WHERE i.location_id = l.id) THEN 1 ELSE 0 END), 0)`

// OccupancyTotals ubicaciones totales y ocupadas de la bodega.
func (r *LocationRepo) OccupancyTotals(ctx context.Context, warehouseID string) (total, occupied int, err error) {
	var t, o int64
	query := `SELECT ` + occupancySelect + ` FROM locations l WHERE l.warehouse_id = ?`
	if err := r.q.QueryRow(ctx, query, warehouseID).Scan(&t, &o); err != nil {
		return 0, 0, fmt.Errorf("occupancy totals: %w", err)
	}
	return int(t), int(o), nil
}

// OccupancyByZone mismo conteo agrupado por zona.
func (r *LocationRepo) OccupancyByZone(ctx context.Context, warehouseID string) ([]entity.ZoneOccupancy, error) {
	query := `SELECT l.zona, ` + occupancySelect + `
		FROM locations l WHERE l.warehouse_id = ?
		GROUP BY l.zona ORDER BY l.zona`
	rows, err := r.q.Query(ctx, query, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("occupancy by zone: %w", err)
	}
	defer rows.Close()

	list := make([]entity.ZoneOccupancy, 0)
	for rows.Next() {
		var z entity.ZoneOccupancy
		var t, o int64
		if err := rows.Scan(&z.Zona, &t, &o); err != nil {
			return nil, fmt.Errorf("scan occupancy: %w", err)
		}
		z.Total, z.Occupied = int(t), int(o)
		list = append(list, z)
	}
	return list, rows.Err()
}

// Structure analiza la estructura actual: zonas, pasillos y racks distintos, nivel y posición máximos.
func (r *LocationRepo) Structure(ctx context.Context, warehouseID string) (*entity.LayoutStructure, error) {
	var total, aisles, racks, maxLevel, maxPos int64
	err := r.q.QueryRow(ctx, `
		SELECT COUNT(*), COUNT(DISTINCT pasillo), COUNT(DISTINCT rack),
		       COALESCE(MAX(nivel), 0), COALESCE(MAX(posicion), 0)
		FROM locations WHERE warehouse_id = ?`, warehouseID,
	).Scan(&total, &aisles, &racks, &maxLevel, &maxPos)
	if err != nil {
		return nil, fmt.Errorf("layout structure: %w", err)
	}

	rows, err := r.q.Query(ctx, `SELECT DISTINCT zona FROM locations WHERE warehouse_id = ? ORDER BY zona`, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("layout zones: %w", err)
	}
	defer rows.Close()
	zones := make([]string, 0)
	for rows.Next() {
		var z string
		if err := rows.Scan(&z); err != nil {
			return nil, fmt.Errorf("scan zone: %w", err)
		}
		zones = append(zones, z)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &entity.LayoutStructure{
		Zones:          zones,
		Aisles:         int(aisles),
		Racks:          int(racks),
		MaxLevel:       int(maxLevel),
		MaxPosition:    int(maxPos),
		TotalLocations: int(total),
	}, nil
}

// locationCols destinos de escaneo de las columnas de locationColumns.
type locationCols struct {
	loc              entity.Location
	created, updated nullTime
}

func (c *locationCols) dest() []any {
	return []any{
		&c.loc.ID, &c.loc.WarehouseID, &c.loc.Zona, &c.loc.Pasillo, &c.loc.Rack,
		&c.loc.Nivel, &c.loc.Posicion, &c.loc.X, &c.loc.Y, &c.loc.Z,
		&c.created, &c.updated,
	}
}

func (c *locationCols) location() entity.Location {
	l := c.loc
	l.CreatedAt, l.UpdatedAt = c.created.Time, c.updated.Time
	return l
}

// whereClause acumula condiciones AND con sus parámetros; los valores nunca se concatenan.
type whereClause struct {
	parts []string
	args  []any
}

func (w *whereClause) and(cond string, args ...any) {
	w.parts = append(w.parts, cond)
	w.args = append(w.args, args...)
}

func (w *whereClause) sql() string {
	if len(w.parts) == 0 {
		return ""
	}
	return "\n\t\tWHERE " + strings.Join(w.parts, " AND ")
}
