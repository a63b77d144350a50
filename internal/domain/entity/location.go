package entity

import "time"

// Location representa una posición física de la bodega (zona/pasillo/rack/nivel/posición).
// La tupla (WarehouseID, Zona, Pasillo, Rack, Nivel, Posicion) es única.
type Location struct {
	ID          string
	WarehouseID string
	Zona        string
	Pasillo     string
	Rack        string // lado + número, ej. "L01", "R05"
	Nivel       int    // 1-based
	Posicion    int    // 1-based
	X           int
	Y           int
	Z           int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// LocationRef contexto mínimo de ubicación que acompaña a items y bitácora.
type LocationRef struct {
	Zona     string
	Pasillo  string
	Rack     string
	Nivel    int
	Posicion int
}

// Ref devuelve la referencia de la ubicación.
func (l *Location) Ref() LocationRef {
	return LocationRef{Zona: l.Zona, Pasillo: l.Pasillo, Rack: l.Rack, Nivel: l.Nivel, Posicion: l.Posicion}
}

// LocationSlot es una fila de la vista de ubicaciones: la ubicación y, si existe, un item que la ocupa.
// Una ubicación con N items produce N slots; una vacía produce uno con Item nil.
type LocationSlot struct {
	Location Location
	Item     *InventoryItem
}

// ZoneOccupancy conteo de ubicaciones por zona.
type ZoneOccupancy struct {
	Zona     string
	Total    int
	Occupied int
}

// LayoutStructure resumen de la estructura física actual de una bodega.
type LayoutStructure struct {
	Zones          []string
	Aisles         int
	Racks          int
	MaxLevel       int
	MaxPosition    int
	TotalLocations int
}
