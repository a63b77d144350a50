package entity

import (
	"fmt"
	"time"
)

// DefaultAlertThresholdDays umbral de alerta cuando el item no define uno.
const DefaultAlertThresholdDays = 30

// DateLayout formato de fecha calendario (sin hora) en la API y en la DB.
const DateLayout = "2006-01-02"

// InventoryItem representa un lote de producto colocado en una ubicación.
// ArrivalDate y ExpirationDate son fechas calendario (medianoche UTC).
type InventoryItem struct {
	ID                 string
	LocationID         string
	ProductName        string
	SKU                string
	ArrivalDate        time.Time
	ExpirationDate     *time.Time
	InvoiceNumber      *string
	AlertThresholdDays int
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// ItemWithLocation item con el contexto de la ubicación que ocupa.
type ItemWithLocation struct {
	Item     InventoryItem
	Location LocationRef
}

// ProductMatch resultado de búsqueda de productos (distinct por nombre, sku y umbral).
type ProductMatch struct {
	ProductName        string
	SKU                string
	AlertThresholdDays int
}

// ParseDate interpreta "YYYY-MM-DD" como medianoche UTC de ese día.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("fecha inválida %q (formato YYYY-MM-DD)", s)
	}
	return t, nil
}

// DateOf trunca un instante a la fecha calendario UTC.
func DateOf(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
