package setup

import (
	"context"
	"time"
)

// Archiver guarda el snapshot del inventario antes de un reset forzado. Devuelve la clave o URI final.
type Archiver interface {
	Put(ctx context.Context, key string, body []byte, contentType string) (string, error)
}

// ResetObserver recibe el resultado de cada intento de reset.
type ResetObserver interface {
	ObserveReset(outcome string, elapsed time.Duration)
}

// SchemaMigrator crea las tablas si no existen (idempotente).
type SchemaMigrator interface {
	EnsureSchema(ctx context.Context) error
}

// Resultados reportados al ResetObserver.
const (
	OutcomeSuccess = "success"
	OutcomeBlocked = "blocked"
	OutcomeInvalid = "invalid"
	OutcomeFailed  = "failed"
)
