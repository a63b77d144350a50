package dto

import "time"

// CreateItemRequest entrada para colocar un lote en una ubicación.
// Fechas en formato YYYY-MM-DD. AlertThresholdDays nil = 30.
type CreateItemRequest struct {
	LocationID         string  `json:"location_id"`
	ProductName        string  `json:"product_name"`
	SKU                string  `json:"sku"`
	ArrivalDate        string  `json:"arrival_date"`
	ExpirationDate     *string `json:"expiration_date"`
	InvoiceNumber      *string `json:"invoice_number"`
	AlertThresholdDays *int    `json:"alert_threshold_days"`
}

// UpdateItemRequest actualización parcial. Los campos ausentes conservan su valor;
// expiration_date e invoice_number aceptan null para limpiarse.
type UpdateItemRequest struct {
	ProductName        *string          `json:"product_name"`
	SKU                *string          `json:"sku"`
	ArrivalDate        *string          `json:"arrival_date"`
	ExpirationDate     Optional[string] `json:"expiration_date" swaggertype:"string"`
	InvoiceNumber      Optional[string] `json:"invoice_number" swaggertype:"string"`
	AlertThresholdDays *int             `json:"alert_threshold_days"`
}

// ItemResponse item con ubicación y estado de vencimiento derivado.
type ItemResponse struct {
	ID                  string    `json:"id"`
	LocationID          string    `json:"location_id"`
	ProductName         string    `json:"product_name"`
	SKU                 string    `json:"sku"`
	ArrivalDate         string    `json:"arrival_date"`
	ExpirationDate      *string   `json:"expiration_date"`
	InvoiceNumber       *string   `json:"invoice_number"`
	AlertThresholdDays  int       `json:"alert_threshold_days"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
	Zona                string    `json:"zona"`
	Pasillo             string    `json:"pasillo"`
	Rack                string    `json:"rack"`
	Nivel               int       `json:"nivel"`
	Posicion            int       `json:"posicion"`
	AlertStatus         string    `json:"alert_status"`
	DaysUntilExpiration *float64  `json:"days_until_expiration"`
}

// AlertStatsResponse conteos de vencimiento. Expired no se cuenta en ExpiringSoon.
type AlertStatsResponse struct {
	TotalItems   int `json:"total_items"`
	Expired      int `json:"expired"`
	ExpiringSoon int `json:"expiring_soon"`
	NoExpiration int `json:"no_expiration"`
}

// ProductMatchResponse resultado de búsqueda de productos.
type ProductMatchResponse struct {
	ProductName        string `json:"product_name"`
	SKU                string `json:"sku"`
	AlertThresholdDays int    `json:"alert_threshold_days"`
}
