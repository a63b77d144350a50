package entity

import "time"

// Acciones registradas en la bitácora de inventario.
const (
	ActionAssign = "ASSIGN" // item creado en una ubicación
	ActionUpdate = "UPDATE"
	ActionRemove = "REMOVE"
)

// ActivityLogEntry registro append-only de una mutación de inventario.
// InventoryItemID es una referencia lógica: sobrevive al borrado del item.
type ActivityLogEntry struct {
	ID              string
	LocationID      string
	InventoryItemID *string
	Action          string
	UserID          string
	Timestamp       time.Time
}

// ActivityWithLocation entrada de bitácora con el contexto de ubicación.
type ActivityWithLocation struct {
	Entry    ActivityLogEntry
	Location LocationRef
}
