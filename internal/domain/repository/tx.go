package repository

import "context"

// Repos repositorios atados a una misma transacción.
type Repos struct {
	Locations LocationRepository
	Items     InventoryItemRepository
	Activity  ActivityLogRepository
}

// TxRunner ejecuta fn dentro de una transacción de BD; si fn retorna error se hace Rollback.
// Dentro de fn solo deben usarse los repos recibidos.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos Repos) error) error
}
