package setup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/warehouse-vision/internal/application/dto"
	"github.com/jhoicas/warehouse-vision/internal/application/inventory"
	"github.com/jhoicas/warehouse-vision/internal/domain"
	"github.com/jhoicas/warehouse-vision/internal/domain/entity"
	"github.com/jhoicas/warehouse-vision/internal/domain/layout"
	"github.com/jhoicas/warehouse-vision/internal/domain/repository"
	"github.com/jhoicas/warehouse-vision/pkg/logger"
)

// ResetUseCase reemplaza la estructura física de una bodega.
//
// Sin force_reset, una bodega con items no se toca. Con force_reset el inventario se
// archiva (si hay Archiver) y luego bitácora, items y ubicaciones se borran y se
// regeneran en una sola transacción.
type ResetUseCase struct {
	warehouseID  string
	txRunner     repository.TxRunner
	locations    repository.LocationRepository
	items        repository.InventoryItemRepository
	archiver     Archiver
	observer     ResetObserver
	maxLocations int
	log          *logger.Logger
	now          func() time.Time
	locks        *keyedMutex
}

// ResetDeps dependencias del protocolo. Archiver y Observer son opcionales.
type ResetDeps struct {
	TxRunner     repository.TxRunner
	Locations    repository.LocationRepository
	Items        repository.InventoryItemRepository
	Archiver     Archiver
	Observer     ResetObserver
	MaxLocations int
}

// NewResetUseCase construye el caso de uso para warehouseID.
func NewResetUseCase(warehouseID string, deps ResetDeps, log *logger.Logger) *ResetUseCase {
	return &ResetUseCase{
		warehouseID:  warehouseID,
		txRunner:     deps.TxRunner,
		locations:    deps.Locations,
		items:        deps.Items,
		archiver:     deps.Archiver,
		observer:     deps.Observer,
		maxLocations: deps.MaxLocations,
		log:          log.Component("setup"),
		now:          time.Now,
		locks:        newKeyedMutex(),
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *ResetUseCase) WithClock(now func() time.Time) *ResetUseCase {
	uc.now = now
	return uc
}

// Initialize ejecuta el protocolo de reset. Errores posibles:
//   - *domain.ValidationError si la forma es inválida o supera el tope.
//   - *domain.ResetBlockedError si hay inventario y no se forzó.
//   - error de almacenamiento o de archivo; el estado previo queda intacto.
func (uc *ResetUseCase) Initialize(ctx context.Context, in dto.InitializeWarehouseRequest) (*dto.InitializeWarehouseResponse, error) {
	start := time.Now()
	req := layout.Request{
		ZoneName:          in.ZoneName,
		Aisles:            in.Aisles,
		RacksPerAisle:     in.RacksPerAisle,
		LevelsPerRack:     in.LevelsPerRack,
		PositionsPerLevel: in.PositionsPerLevel,
		AisleNaming:       layout.Naming(in.AisleNaming),
	}
	if err := uc.checkShape(req); err != nil {
		uc.observe(OutcomeInvalid, start)
		return nil, err
	}

	unlock := uc.locks.Lock(uc.warehouseID)
	defer unlock()

	out, err := uc.reset(ctx, req, in.ForceReset)
	switch {
	case err == nil:
		uc.observe(OutcomeSuccess, start)
	case isBlocked(err):
		uc.observe(OutcomeBlocked, start)
	default:
		uc.observe(OutcomeFailed, start)
	}
	return out, err
}

func (uc *ResetUseCase) checkShape(req layout.Request) error {
	if err := req.Validate(); err != nil {
		return err
	}
	if n := req.Count(); n > int64(uc.maxLocations) {
		return domain.NewValidationError("total_locations",
			fmt.Sprintf("la estructura genera %d ubicaciones y el máximo permitido es %d", n, uc.maxLocations))
	}
	return nil
}

func (uc *ResetUseCase) reset(ctx context.Context, req layout.Request, force bool) (*dto.InitializeWarehouseResponse, error) {
	count, err := uc.items.CountByWarehouse(ctx, uc.warehouseID)
	if err != nil {
		return nil, fmt.Errorf("contar inventario: %w", err)
	}
	if count > 0 && !force {
		uc.log.Warn().Int("inventory_count", count).Msg("reset bloqueado: la bodega tiene inventario")
		return nil, &domain.ResetBlockedError{InventoryCount: count}
	}

	var archiveKey string
	if count > 0 && uc.archiver != nil {
		archiveKey, err = uc.archive(ctx)
		if err != nil {
			return nil, err
		}
	}

	slots, err := layout.Generate(req)
	if err != nil {
		return nil, err
	}
	locs := uc.toLocations(slots)

	var removed int64
	err = uc.txRunner.Run(ctx, func(repos repository.Repos) error {
		current, err := repos.Items.CountByWarehouse(ctx, uc.warehouseID)
		if err != nil {
			return fmt.Errorf("contar inventario: %w", err)
		}
		if current > 0 && !force {
			return &domain.ResetBlockedError{InventoryCount: current}
		}
		if _, err := repos.Activity.DeleteByWarehouse(ctx, uc.warehouseID); err != nil {
			return err
		}
		if removed, err = repos.Items.DeleteByWarehouse(ctx, uc.warehouseID); err != nil {
			return err
		}
		if _, err := repos.Locations.DeleteByWarehouse(ctx, uc.warehouseID); err != nil {
			return err
		}
		return repos.Locations.InsertBatch(ctx, locs)
	})
	if err != nil {
		if !isBlocked(err) {
			uc.log.Error().Err(err).Msg("reset revertido")
		}
		return nil, err
	}

	uc.log.Info().
		Str("zone", req.ZoneName).
		Int64("items_removed", removed).
		Int("locations_created", len(locs)).
		Str("archive_key", archiveKey).
		Msg("estructura de bodega regenerada")

	return &dto.InitializeWarehouseResponse{
		ZoneName:          locs[0].Zona,
		Aisles:            req.Aisles,
		RacksPerAisle:     req.RacksPerAisle,
		RacksPerSide:      req.RacksPerSide(),
		TotalRacks:        req.TotalRacks(),
		LevelsPerRack:     req.LevelsPerRack,
		PositionsPerLevel: req.PositionsPerLevel,
		TotalLocations:    len(locs),
		ItemsRemoved:      int(removed),
		ArchiveKey:        archiveKey,
	}, nil
}

// inventorySnapshot contenido archivado antes de borrar.
type inventorySnapshot struct {
	WarehouseID string             `json:"warehouse_id"`
	ArchivedAt  time.Time          `json:"archived_at"`
	Items       []dto.ItemResponse `json:"items"`
}

func (uc *ResetUseCase) archive(ctx context.Context) (string, error) {
	items, err := uc.items.ListByWarehouse(ctx, uc.warehouseID, false)
	if err != nil {
		return "", fmt.Errorf("leer inventario para archivo: %w", err)
	}
	now := uc.now().UTC()
	snap := inventorySnapshot{WarehouseID: uc.warehouseID, ArchivedAt: now, Items: make([]dto.ItemResponse, 0, len(items))}
	for _, it := range items {
		snap.Items = append(snap.Items, inventory.ItemView(now, it))
	}
	body, err := json.Marshal(snap)
	if err != nil {
		return "", fmt.Errorf("serializar snapshot: %w", err)
	}
	key := fmt.Sprintf("resets/%s/%s.json", uc.warehouseID, now.Format("20060102T150405.000000000Z"))
	stored, err := uc.archiver.Put(ctx, key, body, "application/json")
	if err != nil {
		return "", fmt.Errorf("archivar inventario: %w", err)
	}
	uc.log.Info().Str("archive_key", stored).Int("items", len(items)).Msg("inventario archivado")
	return stored, nil
}

func (uc *ResetUseCase) toLocations(slots []layout.Slot) []*entity.Location {
	now := uc.now().UTC()
	out := make([]*entity.Location, 0, len(slots))
	for _, s := range slots {
		out = append(out, &entity.Location{
			ID:          uuid.New().String(),
			WarehouseID: uc.warehouseID,
			Zona:        s.Zona,
			Pasillo:     s.Pasillo,
			Rack:        s.Rack,
			Nivel:       s.Nivel,
			Posicion:    s.Posicion,
			X:           s.X,
			Y:           s.Y,
			Z:           s.Z,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}
	return out
}

func (uc *ResetUseCase) observe(outcome string, start time.Time) {
	if uc.observer != nil {
		uc.observer.ObserveReset(outcome, time.Since(start))
	}
}

// CurrentConfig analiza la estructura vigente de la bodega.
func (uc *ResetUseCase) CurrentConfig(ctx context.Context) (*dto.CurrentConfigResponse, error) {
	s, err := uc.locations.Structure(ctx, uc.warehouseID)
	if err != nil {
		return nil, err
	}
	if s.TotalLocations == 0 {
		return &dto.CurrentConfigResponse{
			Exists:  false,
			Message: "No hay configuración de bodega",
			Zones:   []string{},
		}, nil
	}
	return &dto.CurrentConfigResponse{
		Exists:            true,
		Zones:             s.Zones,
		Aisles:            s.Aisles,
		Racks:             s.Racks,
		LevelsPerRack:     s.MaxLevel,
		PositionsPerLevel: s.MaxPosition,
		TotalLocations:    s.TotalLocations,
	}, nil
}

func isBlocked(err error) bool {
	var blocked *domain.ResetBlockedError
	return errors.As(err, &blocked)
}

// keyedMutex un mutex por clave; las entradas no se liberan (pocas bodegas por proceso).
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*sync.Mutex)}
}

// Lock bloquea la clave y devuelve la función para liberarla.
func (k *keyedMutex) Lock(key string) func() {
	k.mu.Lock()
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	k.mu.Unlock()
	m.Lock()
	return m.Unlock
}
