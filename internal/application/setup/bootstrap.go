package setup

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/warehouse-vision/internal/domain/entity"
	"github.com/jhoicas/warehouse-vision/internal/domain/layout"
	"github.com/jhoicas/warehouse-vision/internal/domain/repository"
	"github.com/jhoicas/warehouse-vision/pkg/logger"
)

// SeedUserID usuario que figura en la bitácora de los datos de ejemplo.
const SeedUserID = "system"

// seedOccupancy fracción de ubicaciones que reciben un producto de ejemplo.
const seedOccupancy = 0.3

// DemoZones zonas de la bodega de ejemplo; cada una usa la forma de DemoLayout.
var DemoZones = []string{"A", "B", "C"}

// DemoLayout forma de cada zona de ejemplo: 4 pasillos, 5 racks por lado, 4 niveles, 3 posiciones.
// ZoneName se reemplaza por cada entrada de DemoZones.
var DemoLayout = layout.Request{
	Aisles:            4,
	RacksPerAisle:     5,
	LevelsPerRack:     4,
	PositionsPerLevel: 3,
	AisleNaming:       layout.NamingNumeric,
}

// demoZoneSpacingX desplazamiento en X entre zonas para que no se solapen en la vista 3D.
const demoZoneSpacingX = 800

type sampleProduct struct {
	name           string
	sku            string
	daysToExpire   int
	alertThreshold int
}

var sampleProducts = []sampleProduct{
	{"Leche Entera", "LAC-001", 15, 7},
	{"Yogurt Natural", "YOG-002", 25, 10},
	{"Queso Gouda", "QUE-003", 45, 14},
	{"Mantequilla", "MAN-004", 60, 30},
	{"Jamón Cocido", "JAM-005", 20, 7},
	{"Salchichas", "SAL-006", 30, 10},
	{"Jugo Naranja", "JUG-007", 90, 30},
	{"Pan Molde", "PAN-008", 10, 3},
	{"Galletas", "GAL-009", 180, 60},
	{"Cereal", "CER-010", 365, 90},
}

// BootstrapResult qué hizo el arranque.
type BootstrapResult struct {
	Seeded    bool
	Locations int
	Items     int
}

// Bootstrapper deja la base lista: esquema siempre y datos de ejemplo si se piden.
type Bootstrapper struct {
	warehouseID string
	migrator    SchemaMigrator
	txRunner    repository.TxRunner
	locations   repository.LocationRepository
	log         *logger.Logger
	now         func() time.Time
	seed        uint64
}

// NewBootstrapper construye el arranque para warehouseID.
func NewBootstrapper(warehouseID string, migrator SchemaMigrator, txRunner repository.TxRunner, locations repository.LocationRepository, log *logger.Logger) *Bootstrapper {
	return &Bootstrapper{
		warehouseID: warehouseID,
		migrator:    migrator,
		txRunner:    txRunner,
		locations:   locations,
		log:         log.Component("bootstrap"),
		now:         time.Now,
		seed:        2026,
	}
}

// WithClock reemplaza el reloj (tests).
func (b *Bootstrapper) WithClock(now func() time.Time) *Bootstrapper {
	b.now = now
	return b
}

// Run asegura el esquema y, con seed, puebla una bodega vacía. Una bodega con
// ubicaciones nunca se vuelve a poblar.
func (b *Bootstrapper) Run(ctx context.Context, seed bool) (*BootstrapResult, error) {
	if err := b.migrator.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("asegurar esquema: %w", err)
	}
	if !seed {
		return &BootstrapResult{}, nil
	}

	n, err := b.locations.CountByWarehouse(ctx, b.warehouseID)
	if err != nil {
		return nil, err
	}
	if n > 0 {
		b.log.Debug().Int("locations", n).Msg("bodega ya configurada, se omite el seed")
		return &BootstrapResult{Locations: n}, nil
	}

	slots, err := demoSlots()
	if err != nil {
		return nil, err
	}

	now := b.now().UTC()
	today := entity.DateOf(now)
	rng := rand.New(rand.NewPCG(b.seed, b.seed>>1|1))

	locs := make([]*entity.Location, 0, len(slots))
	for _, s := range slots {
		locs = append(locs, &entity.Location{
			ID: uuid.New().String(), WarehouseID: b.warehouseID,
			Zona: s.Zona, Pasillo: s.Pasillo, Rack: s.Rack, Nivel: s.Nivel, Posicion: s.Posicion,
			X: s.X, Y: s.Y, Z: s.Z, CreatedAt: now, UpdatedAt: now,
		})
	}

	var items []*entity.InventoryItem
	for i, loc := range locs {
		if rng.Float64() >= seedOccupancy {
			continue
		}
		p := sampleProducts[rng.IntN(len(sampleProducts))]
		arrival := today.AddDate(0, 0, -rng.IntN(30))
		exp := today.AddDate(0, 0, p.daysToExpire)
		invoice := fmt.Sprintf("FAC-2026-%04d", i+1)
		items = append(items, &entity.InventoryItem{
			ID: uuid.New().String(), LocationID: loc.ID,
			ProductName: p.name, SKU: p.sku,
			ArrivalDate: arrival, ExpirationDate: &exp, InvoiceNumber: &invoice,
			AlertThresholdDays: p.alertThreshold, CreatedAt: now, UpdatedAt: now,
		})
	}

	err = b.txRunner.Run(ctx, func(repos repository.Repos) error {
		if err := repos.Locations.InsertBatch(ctx, locs); err != nil {
			return err
		}
		for _, it := range items {
			if err := repos.Items.Create(ctx, it); err != nil {
				return err
			}
			itemID := it.ID
			if err := repos.Activity.Append(ctx, &entity.ActivityLogEntry{
				ID: uuid.New().String(), LocationID: it.LocationID, InventoryItemID: &itemID,
				Action: entity.ActionAssign, UserID: SeedUserID, Timestamp: now,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("seed: %w", err)
	}

	b.log.Info().Int("locations", len(locs)).Int("items", len(items)).Msg("datos de ejemplo cargados")
	return &BootstrapResult{Seeded: true, Locations: len(locs), Items: len(items)}, nil
}

// demoSlots genera DemoLayout una vez por zona, desplazando cada zona en X.
func demoSlots() ([]layout.Slot, error) {
	var all []layout.Slot
	for zi, zone := range DemoZones {
		req := DemoLayout
		req.ZoneName = zone
		slots, err := layout.Generate(req)
		if err != nil {
			return nil, fmt.Errorf("zona %s: %w", zone, err)
		}
		for i := range slots {
			slots[i].X += zi * demoZoneSpacingX
		}
		all = append(all, slots...)
	}
	return all, nil
}
