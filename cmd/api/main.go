package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"

	_ "github.com/jhoicas/Franquicias-api/docs"
	"github.com/jhoicas/Franquicias-api/internal/application/usecase"
	infrapdf "github.com/jhoicas/Franquicias-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Franquicias-api/internal/infrastructure/persistence"
	"github.com/jhoicas/Franquicias-api/internal/infrastructure/persistence/postgres"
	"github.com/jhoicas/Franquicias-api/internal/infrastructure/persistence/sqlite"
	"github.com/jhoicas/Franquicias-api/internal/infrastructure/telemetry"
	httpRouter "github.com/jhoicas/Franquicias-api/internal/interfaces/http"
	"github.com/jhoicas/Franquicias-api/internal/platform/workerpool"
	"github.com/jhoicas/Franquicias-api/pkg/config"
	"github.com/jhoicas/Franquicias-api/pkg/logger"
)

// @title        Franquicias API
// @version      1.0
// @description  Franquicias, sucursales y productos; reporte de productos con mayor stock por sucursal.
// @BasePath     /
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
		Str("db_driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	shutdownTracing, err := telemetry.Init(ctx, log, cfg.App, cfg.Telemetry)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar trazas")
	}

	store, err := openStore(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión al almacén")
	}
	if err := store.Migrate(ctx); err != nil {
		log.Fatal().Err(err).Msg("aplicar migraciones")
	}

	pool := workerpool.New(cfg.Worker.PoolSize, cfg.Worker.QueueSize)
	txRunner := persistence.NewTxRunner(store)
	tracer := telemetry.Tracer()

	franchiseUC := usecase.NewFranchiseUseCase(pool, txRunner, tracer, log)
	branchUC := usecase.NewBranchUseCase(pool, txRunner, tracer, log)
	productUC := usecase.NewProductUseCase(pool, txRunner, tracer, log)
	reportUC := usecase.NewReportUseCase(franchiseUC, infrapdf.NewTopStockPDFGenerator())

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat("./docs/swagger.json"); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: "./docs/swagger.json",
			Path:     "docs",
			Title:    "Franquicias API",
		}))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		FranchiseUC: franchiseUC,
		BranchUC:    branchUC,
		ProductUC:   productUC,
		ReportUC:    reportUC,
		Store:       store,
		Logger:      log,
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

	// Orden: HTTP deja de aceptar, el pool drena el trabajo en curso, luego se cierra el almacén.
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	if err := pool.Close(); err != nil {
		log.Error().Err(err).Msg("cierre del worker pool")
	}
	if err := store.Close(); err != nil {
		log.Error().Err(err).Msg("cierre del almacén")
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("cierre de trazas")
	}

	log.Info().Msg("aplicación detenida")
}

func openStore(ctx context.Context, cfg config.DBConfig) (*persistence.Store, error) {
	var (
		db      *sql.DB
		dialect persistence.Dialect
		err     error
	)
	switch cfg.Driver {
	case config.DriverPostgres:
		db, err = postgres.Open(ctx, cfg)
		dialect = postgres.Dialect{}
	case config.DriverSQLite:
		db, err = sqlite.Open(ctx, cfg.SQLitePath)
		dialect = sqlite.Dialect{}
	default:
		return nil, fmt.Errorf("driver no soportado: %s", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}
	return persistence.NewStore(db, dialect), nil
}
