package dto

import "time"

// LocationQuery filtros de GET /api/locations.
type LocationQuery struct {
	Zona     string
	Pasillo  string
	Occupied *bool
}

// LocationResponse salida de una ubicación.
type LocationResponse struct {
	ID          string    `json:"id"`
	WarehouseID string    `json:"warehouse_id"`
	Zona        string    `json:"zona"`
	Pasillo     string    `json:"pasillo"`
	Rack        string    `json:"rack"`
	Nivel       int       `json:"nivel"`
	Posicion    int       `json:"posicion"`
	X           int       `json:"x"`
	Y           int       `json:"y"`
	Z           int       `json:"z"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// LocationSlotResponse fila de la vista de bodega: ubicación, item opcional y estado derivado.
type LocationSlotResponse struct {
	LocationID          string   `json:"location_id"`
	WarehouseID         string   `json:"warehouse_id"`
	Zona                string   `json:"zona"`
	Pasillo             string   `json:"pasillo"`
	Rack                string   `json:"rack"`
	Nivel               int      `json:"nivel"`
	Posicion            int      `json:"posicion"`
	X                   int      `json:"x"`
	Y                   int      `json:"y"`
	Z                   int      `json:"z"`
	InventoryItemID     *string  `json:"inventory_item_id"`
	ProductName         *string  `json:"product_name"`
	SKU                 *string  `json:"sku"`
	ArrivalDate         *string  `json:"arrival_date"`
	ExpirationDate      *string  `json:"expiration_date"`
	InvoiceNumber       *string  `json:"invoice_number"`
	AlertThresholdDays  *int     `json:"alert_threshold_days"`
	AlertStatus         string   `json:"alert_status"`
	DaysUntilExpiration *float64 `json:"days_until_expiration"`
}

// OccupancyStatsResponse ocupación global y por zona. OccupancyRate lleva un decimal ("37.0").
type OccupancyStatsResponse struct {
	Total         int                     `json:"total"`
	Occupied      int                     `json:"occupied"`
	Available     int                     `json:"available"`
	OccupancyRate string                  `json:"occupancy_rate"`
	ByZone        []ZoneOccupancyResponse `json:"by_zone"`
}

// ZoneOccupancyResponse ocupación de una zona.
type ZoneOccupancyResponse struct {
	Zona          string `json:"zona"`
	Total         int    `json:"total"`
	Occupied      int    `json:"occupied"`
	Available     int    `json:"available"`
	OccupancyRate string `json:"occupancy_rate"`
}

// ActivityResponse entrada de bitácora con contexto de ubicación.
type ActivityResponse struct {
	ID              string    `json:"id"`
	LocationID      string    `json:"location_id"`
	InventoryItemID *string   `json:"inventory_item_id"`
	Action          string    `json:"action"`
	UserID          string    `json:"user_id"`
	Timestamp       time.Time `json:"timestamp"`
	Zona            string    `json:"zona"`
	Pasillo         string    `json:"pasillo"`
	Rack            string    `json:"rack"`
	Nivel           int       `json:"nivel"`
	Posicion        int       `json:"posicion"`
}
