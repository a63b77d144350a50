package inventory

import "time"

// AlertStatus estado derivado de un slot de la bodega. Nunca se persiste.
type AlertStatus string

const (
	StatusEmpty        AlertStatus = "EMPTY"
	StatusNoExpiration AlertStatus = "NO_EXPIRATION"
	StatusExpired      AlertStatus = "EXPIRED"
	StatusExpiringSoon AlertStatus = "EXPIRING_SOON"
	StatusNormal       AlertStatus = "NORMAL"
)

// IsAlert indica si el estado aparece en la vista de alertas.
func (s AlertStatus) IsAlert() bool {
	return s == StatusExpired || s == StatusExpiringSoon
}

// Classification resultado de clasificar un slot.
// DaysUntilExpiration es nil para EMPTY y NO_EXPIRATION; negativo si ya venció.
type Classification struct {
	Status              AlertStatus
	DaysUntilExpiration *float64
}

// Classify deriva el estado de un slot. La fecha de vencimiento se interpreta como
// medianoche UTC de ese día y los días son reales (fraccionarios).
//
// Precedencia: EMPTY → NO_EXPIRATION → EXPIRED (vence antes de now) →
// EXPIRING_SOON (días ≤ umbral) → NORMAL.
func Classify(now time.Time, hasItem bool, expiration *time.Time, thresholdDays int) Classification {
	if !hasItem {
		return Classification{Status: StatusEmpty}
	}
	if expiration == nil {
		return Classification{Status: StatusNoExpiration}
	}
	days := DaysUntil(now, *expiration)
	c := Classification{DaysUntilExpiration: &days}
	switch {
	case days < 0:
		c.Status = StatusExpired
	case days <= float64(thresholdDays):
		c.Status = StatusExpiringSoon
	default:
		c.Status = StatusNormal
	}
	return c
}

// DaysUntil días reales entre now y la fecha (medianoche UTC).
func DaysUntil(now, date time.Time) float64 {
	d := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	return d.Sub(now).Hours() / 24
}
