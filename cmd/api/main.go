package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jhoicas/warehouse-vision/docs"
	"github.com/jhoicas/warehouse-vision/internal/application/inventory"
	"github.com/jhoicas/warehouse-vision/internal/application/setup"
	"github.com/jhoicas/warehouse-vision/internal/application/usecase"
	"github.com/jhoicas/warehouse-vision/internal/infrastructure/archive"
	"github.com/jhoicas/warehouse-vision/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/warehouse-vision/internal/infrastructure/pdf"
	"github.com/jhoicas/warehouse-vision/internal/infrastructure/persistence"
	httpRouter "github.com/jhoicas/warehouse-vision/internal/interfaces/http"
	"github.com/jhoicas/warehouse-vision/pkg/config"
	"github.com/jhoicas/warehouse-vision/pkg/logger"
)

// @title                       Warehouse Vision API
// @version                     1.0
// @description                 Vista operativa de bodega: ubicaciones, inventario con vencimiento y reconfiguración de estructura.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("warehouse", cfg.App.WarehouseID).
		Str("db_driver", cfg.DB.Driver).
		Bool("auth", cfg.JWT.Enabled).
		Msg("iniciando aplicación")

	ctx := context.Background()
	db, err := persistence.Open(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a la base de datos")
	}
	defer db.Close()

	txRunner := persistence.NewTxRunner(db)
	locationRepo := persistence.NewLocationRepository(db)
	itemRepo := persistence.NewInventoryItemRepository(db)
	activityRepo := persistence.NewActivityLogRepository(db)

	boot, err := setup.NewBootstrapper(cfg.App.WarehouseID, db, txRunner, locationRepo, log).
		Run(ctx, cfg.Setup.SeedOnStart)
	if err != nil {
		log.Fatal().Err(err).Msg("arranque de la base de datos")
	}
	if boot.Seeded {
		log.Info().Int("locations", boot.Locations).Int("items", boot.Items).Msg("bodega de ejemplo creada")
	}

	archiver, err := archive.Open(ctx, cfg.Archive)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Archive.Driver).Msg("destino de archivo")
	}

	appMetrics := metrics.New()

	locationUC := usecase.NewLocationUseCase(cfg.App.WarehouseID, locationRepo, activityRepo)
	itemUC := inventory.NewItemUseCase(cfg.App.WarehouseID, txRunner, itemRepo, appMetrics, log)
	alertUC := inventory.NewAlertUseCase(cfg.App.WarehouseID, itemRepo, infrapdf.NewMarotoAlertsReport(), log)
	resetUC := setup.NewResetUseCase(cfg.App.WarehouseID, setup.ResetDeps{
		TxRunner:     txRunner,
		Locations:    locationRepo,
		Items:        itemRepo,
		Archiver:     archiver,
		Observer:     appMetrics,
		MaxLocations: cfg.Setup.MaxLocations,
	}, log)

	app := httpRouter.NewServer(httpRouter.ServerConfig{
		AppName:     cfg.App.Name,
		WarehouseID: cfg.App.WarehouseID,
		CORSOrigin:  cfg.HTTP.CORSOrigin,
		SwaggerFile: "./docs/swagger.json",
		Metrics:     appMetrics.Handler(),
		Log:         log,
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		WarehouseID: cfg.App.WarehouseID,
		LocationUC:  locationUC,
		ItemUC:      itemUC,
		AlertUC:     alertUC,
		ResetUC:     resetUC,
		AuthEnabled: cfg.JWT.Enabled,
		JWTSecret:   cfg.JWT.Secret,
		Log:         log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
