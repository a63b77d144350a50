// seed crea el esquema y, si la bodega no tiene ubicaciones, la puebla con la
// estructura de ejemplo (zonas A, B y C, 1440 ubicaciones) y productos de muestra.
//
// Uso: go run ./cmd/seed [warehouse_id]
// Por defecto usa WAREHOUSE_ID de la configuración. Lee DB_DRIVER/DB_PATH igual que la API.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jhoicas/warehouse-vision/internal/application/setup"
	"github.com/jhoicas/warehouse-vision/internal/infrastructure/persistence"
	"github.com/jhoicas/warehouse-vision/pkg/config"
	"github.com/jhoicas/warehouse-vision/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	warehouseID := cfg.App.WarehouseID
	if len(os.Args) > 1 {
		warehouseID = os.Args[1]
	}

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx := context.Background()
	db, err := persistence.Open(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir base de datos: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	res, err := setup.NewBootstrapper(warehouseID, db, persistence.NewTxRunner(db), persistence.NewLocationRepository(db), log).
		Run(ctx, true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Seed: %v\n", err)
		db.Close()
		os.Exit(1)
	}

	if !res.Seeded {
		fmt.Printf("Bodega %s ya configurada (%d ubicaciones); no se modificó\n", warehouseID, res.Locations)
		return
	}
	fmt.Printf("Bodega %s: %d ubicaciones y %d productos de ejemplo\n", warehouseID, res.Locations, res.Items)
}
