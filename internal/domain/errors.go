package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
	ErrConflict     = errors.New("conflicto con el estado actual")
)

// ValidationError describe un campo de entrada rechazado.
// errors.Is(err, ErrInvalidInput) es verdadero para cualquier ValidationError.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// NewValidationError atajo para construir un *ValidationError.
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// ResetBlockedError indica que la bodega aún tiene inventario y no se pidió un reset forzado.
type ResetBlockedError struct {
	InventoryCount int
}

func (e *ResetBlockedError) Error() string {
	return fmt.Sprintf("la bodega contiene %d productos: debe vaciar el inventario antes de reconfigurar la estructura", e.InventoryCount)
}

func (e *ResetBlockedError) Unwrap() error { return ErrConflict }
