package dto

// InitializeWarehouseRequest forma de la nueva estructura. aisle_naming: "alpha" o cualquier otro valor (numérico).
type InitializeWarehouseRequest struct {
	ZoneName          string `json:"zone_name"`
	Aisles            int    `json:"aisles"`
	RacksPerAisle     int    `json:"racks_per_aisle"`
	LevelsPerRack     int    `json:"levels_per_rack"`
	PositionsPerLevel int    `json:"positions_per_level"`
	AisleNaming       string `json:"aisle_naming"`
	ForceReset        bool   `json:"force_reset"`
}

// InitializeWarehouseResponse resumen de la reconfiguración.
// RacksPerSide = racks_per_aisle × 2 (así lo reporta la vista de configuración).
type InitializeWarehouseResponse struct {
	ZoneName          string `json:"zone_name"`
	Aisles            int    `json:"aisles"`
	RacksPerAisle     int    `json:"racks_per_aisle"`
	RacksPerSide      int    `json:"racks_per_side"`
	TotalRacks        int    `json:"total_racks"`
	LevelsPerRack     int    `json:"levels_per_rack"`
	PositionsPerLevel int    `json:"positions_per_level"`
	TotalLocations    int    `json:"total_locations"`
	ItemsRemoved      int    `json:"items_removed"`
	ArchiveKey        string `json:"archive_key,omitempty"`
}

// ResetBlockedResponse cuerpo 409 cuando la bodega aún tiene inventario.
type ResetBlockedResponse struct {
	Code               string `json:"code"`
	Message            string `json:"message"`
	InventoryCount     int    `json:"inventory_count"`
	RequiresForceReset bool   `json:"requires_force_reset"`
}

// CurrentConfigResponse análisis de la estructura vigente.
type CurrentConfigResponse struct {
	Exists            bool     `json:"exists"`
	Message           string   `json:"message,omitempty"`
	Zones             []string `json:"zones"`
	Aisles            int      `json:"aisles"`
	Racks             int      `json:"racks"`
	LevelsPerRack     int      `json:"levels_per_rack"`
	PositionsPerLevel int      `json:"positions_per_level"`
	TotalLocations    int      `json:"total_locations"`
}
