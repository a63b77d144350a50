package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/warehouse-vision/internal/application/dto"
	"github.com/jhoicas/warehouse-vision/internal/domain"
	"github.com/jhoicas/warehouse-vision/internal/domain/entity"
	"github.com/jhoicas/warehouse-vision/internal/domain/repository"
	"github.com/jhoicas/warehouse-vision/pkg/logger"
)

// ItemUseCase altas, cambios y bajas de items. Cada mutación y su entrada de bitácora
// se confirman en la misma transacción.
type ItemUseCase struct {
	warehouseID string
	txRunner    repository.TxRunner
	items       repository.InventoryItemRepository
	observer    MutationObserver
	log         *logger.Logger
	now         func() time.Time
}

// NewItemUseCase construye el caso de uso. observer puede ser nil.
func NewItemUseCase(
	warehouseID string,
	txRunner repository.TxRunner,
	items repository.InventoryItemRepository,
	observer MutationObserver,
	log *logger.Logger,
) *ItemUseCase {
	return &ItemUseCase{
		warehouseID: warehouseID,
		txRunner:    txRunner,
		items:       items,
		observer:    observer,
		log:         log.Component("inventory"),
		now:         time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *ItemUseCase) WithClock(now func() time.Time) *ItemUseCase {
	uc.now = now
	return uc
}

// Create coloca un lote en una ubicación existente y registra ASSIGN.
// Se permiten varios items por ubicación.
func (uc *ItemUseCase) Create(ctx context.Context, userID string, in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	item, err := uc.newItem(in)
	if err != nil {
		return nil, err
	}

	var ref entity.LocationRef
	err = uc.txRunner.Run(ctx, func(repos repository.Repos) error {
		loc, err := repos.Locations.GetByID(ctx, uc.warehouseID, item.LocationID)
		if err != nil {
			return err
		}
		if loc == nil {
			return fmt.Errorf("%w: ubicación %s", domain.ErrNotFound, item.LocationID)
		}
		ref = loc.Ref()
		if err := repos.Items.Create(ctx, item); err != nil {
			return err
		}
		return repos.Activity.Append(ctx, uc.logEntry(item, entity.ActionAssign, userID))
	})
	if err != nil {
		return nil, err
	}

	uc.observe(entity.ActionAssign)
	uc.log.Info().Str("item_id", item.ID).Str("sku", item.SKU).Str("location_id", item.LocationID).Msg("item asignado")
	out := ItemView(uc.now(), entity.ItemWithLocation{Item: *item, Location: ref})
	return &out, nil
}

// Update aplica una actualización parcial y registra UPDATE.
func (uc *ItemUseCase) Update(ctx context.Context, userID, id string, in dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	if !isUUID(id) {
		return nil, fmt.Errorf("%w: item %s", domain.ErrNotFound, id)
	}
	var updated entity.ItemWithLocation
	err := uc.txRunner.Run(ctx, func(repos repository.Repos) error {
		current, err := repos.Items.GetByID(ctx, uc.warehouseID, id)
		if err != nil {
			return err
		}
		if current == nil {
			return fmt.Errorf("%w: item %s", domain.ErrNotFound, id)
		}
		item := current.Item
		if err := applyUpdate(&item, in); err != nil {
			return err
		}
		item.UpdatedAt = uc.now().UTC()
		if err := repos.Items.Update(ctx, &item); err != nil {
			return err
		}
		updated = entity.ItemWithLocation{Item: item, Location: current.Location}
		return repos.Activity.Append(ctx, uc.logEntry(&item, entity.ActionUpdate, userID))
	})
	if err != nil {
		return nil, err
	}

	uc.observe(entity.ActionUpdate)
	uc.log.Info().Str("item_id", id).Msg("item actualizado")
	out := ItemView(uc.now(), updated)
	return &out, nil
}

// Delete registra REMOVE y luego borra el item. La entrada conserva el id del item.
func (uc *ItemUseCase) Delete(ctx context.Context, userID, id string) error {
	if !isUUID(id) {
		return fmt.Errorf("%w: item %s", domain.ErrNotFound, id)
	}
	err := uc.txRunner.Run(ctx, func(repos repository.Repos) error {
		current, err := repos.Items.GetByID(ctx, uc.warehouseID, id)
		if err != nil {
			return err
		}
		if current == nil {
			return fmt.Errorf("%w: item %s", domain.ErrNotFound, id)
		}
		if err := repos.Activity.Append(ctx, uc.logEntry(&current.Item, entity.ActionRemove, userID)); err != nil {
			return err
		}
		return repos.Items.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	uc.observe(entity.ActionRemove)
	uc.log.Info().Str("item_id", id).Msg("item retirado")
	return nil
}

// Get obtiene un item con su estado derivado.
func (uc *ItemUseCase) Get(ctx context.Context, id string) (*dto.ItemResponse, error) {
	if !isUUID(id) {
		return nil, fmt.Errorf("%w: item %s", domain.ErrNotFound, id)
	}
	it, err := uc.items.GetByID(ctx, uc.warehouseID, id)
	if err != nil {
		return nil, err
	}
	if it == nil {
		return nil, fmt.Errorf("%w: item %s", domain.ErrNotFound, id)
	}
	out := ItemView(uc.now(), *it)
	return &out, nil
}

func (uc *ItemUseCase) newItem(in dto.CreateItemRequest) (*entity.InventoryItem, error) {
	if strings.TrimSpace(in.LocationID) == "" {
		return nil, domain.NewValidationError("location_id", "es requerido")
	}
	name := strings.TrimSpace(in.ProductName)
	if name == "" {
		return nil, domain.NewValidationError("product_name", "es requerido")
	}
	sku := strings.TrimSpace(in.SKU)
	if sku == "" {
		return nil, domain.NewValidationError("sku", "es requerido")
	}
	if strings.TrimSpace(in.ArrivalDate) == "" {
		return nil, domain.NewValidationError("arrival_date", "es requerido")
	}
	arrival, err := entity.ParseDate(strings.TrimSpace(in.ArrivalDate))
	if err != nil {
		return nil, domain.NewValidationError("arrival_date", err.Error())
	}
	exp, err := parseOptionalDate("expiration_date", in.ExpirationDate)
	if err != nil {
		return nil, err
	}
	threshold := entity.DefaultAlertThresholdDays
	if in.AlertThresholdDays != nil {
		threshold = *in.AlertThresholdDays
	}
	if threshold < 0 {
		return nil, domain.NewValidationError("alert_threshold_days", "no puede ser negativo")
	}
	if !isUUID(in.LocationID) {
		return nil, fmt.Errorf("%w: ubicación %s", domain.ErrNotFound, in.LocationID)
	}

	now := uc.now().UTC()
	return &entity.InventoryItem{
		ID:                 uuid.New().String(),
		LocationID:         strings.TrimSpace(in.LocationID),
		ProductName:        name,
		SKU:                sku,
		ArrivalDate:        arrival,
		ExpirationDate:     exp,
		InvoiceNumber:      trimmedOrNil(in.InvoiceNumber),
		AlertThresholdDays: threshold,
		CreatedAt:          now,
		UpdatedAt:          now,
	}, nil
}

func applyUpdate(item *entity.InventoryItem, in dto.UpdateItemRequest) error {
	if in.ProductName != nil {
		name := strings.TrimSpace(*in.ProductName)
		if name == "" {
			return domain.NewValidationError("product_name", "no puede quedar vacío")
		}
		item.ProductName = name
	}
	if in.SKU != nil {
		sku := strings.TrimSpace(*in.SKU)
		if sku == "" {
			return domain.NewValidationError("sku", "no puede quedar vacío")
		}
		item.SKU = sku
	}
	if in.ArrivalDate != nil {
		arrival, err := entity.ParseDate(strings.TrimSpace(*in.ArrivalDate))
		if err != nil {
			return domain.NewValidationError("arrival_date", err.Error())
		}
		item.ArrivalDate = arrival
	}
	if in.ExpirationDate.Set {
		exp, err := parseOptionalDate("expiration_date", in.ExpirationDate.Value)
		if err != nil {
			return err
		}
		item.ExpirationDate = exp
	}
	if in.InvoiceNumber.Set {
		item.InvoiceNumber = trimmedOrNil(in.InvoiceNumber.Value)
	}
	if in.AlertThresholdDays != nil {
		if *in.AlertThresholdDays < 0 {
			return domain.NewValidationError("alert_threshold_days", "no puede ser negativo")
		}
		item.AlertThresholdDays = *in.AlertThresholdDays
	}
	return nil
}

func (uc *ItemUseCase) logEntry(item *entity.InventoryItem, action, userID string) *entity.ActivityLogEntry {
	itemID := item.ID
	return &entity.ActivityLogEntry{
		ID:              uuid.New().String(),
		LocationID:      item.LocationID,
		InventoryItemID: &itemID,
		Action:          action,
		UserID:          userID,
		Timestamp:       uc.now().UTC(),
	}
}

func (uc *ItemUseCase) observe(action string) {
	if uc.observer != nil {
		uc.observer.ObserveMutation(action)
	}
}

// parseOptionalDate nil o "" = sin fecha.
func parseOptionalDate(field string, s *string) (*time.Time, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	d, err := entity.ParseDate(strings.TrimSpace(*s))
	if err != nil {
		return nil, domain.NewValidationError(field, err.Error())
	}
	return &d, nil
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func isUUID(s string) bool {
	_, err := uuid.Parse(strings.TrimSpace(s))
	return err == nil
}
