package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	appinv "github.com/jhoicas/inventario-ciclos/internal/application/inventory"
	"github.com/jhoicas/inventario-ciclos/internal/application/report"
	"github.com/jhoicas/inventario-ciclos/internal/domain/catalog"
	infrapdf "github.com/jhoicas/inventario-ciclos/internal/infrastructure/pdf"
	infraredis "github.com/jhoicas/inventario-ciclos/internal/infrastructure/redis"
	"github.com/jhoicas/inventario-ciclos/internal/infrastructure/storage"
	infraxlsx "github.com/jhoicas/inventario-ciclos/internal/infrastructure/xlsx"
	httpRouter "github.com/jhoicas/inventario-ciclos/internal/interfaces/http"
	"github.com/jhoicas/inventario-ciclos/pkg/config"
	"github.com/jhoicas/inventario-ciclos/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

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
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	repos, err := storage.Open(ctx, cfg, log.Component("storage"))
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento")
	}
	defer repos.Close()

	// Sin Redis el bloqueo de creación solo protege a esta instancia.
	var locker appinv.Locker
	if cfg.Redis.Enabled() {
		client, err := infraredis.NewClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer client.Close()
		locker = infraredis.NewLocker(client, cfg.Redis.StartLockTTL, 2*time.Second, log.Component("lock"))
	} else {
		log.Warn().Msg("REDIS_ADDR vacío: bloqueo de creación en proceso")
	}

	cat := catalog.Default()
	appLog := log.Component("inventory")

	progressUC := appinv.NewProgressUseCase(repos.Inventories, repos.Counts, cat)
	gate := appinv.NewFinalizationGate(repos.Inventories, repos.Reports, cfg.Finalization.RequireCompleteReport, appLog)
	lifecycleUC := appinv.NewLifecycleUseCase(repos.Inventories, gate, locker, appLog)
	countLedger := appinv.NewCountLedger(repos.Inventories, repos.Counts, cat, progressUC, appLog)
	transitLedger := appinv.NewTransitLedger(repos.Inventories, repos.Transits, appLog)

	reportLog := log.Component("report")
	builderUC := report.NewBuilderUseCase(repos.Inventories, repos.Counts, repos.Transits, repos.Reports, cat, reportLog)
	exportUC := report.NewExportUseCase(repos.Inventories, repos.Reports, cat,
		infrapdf.NewMarotoReportGenerator(), infraxlsx.NewReportExporter())

	var testDataUC *appinv.TestDataUseCase
	if !cfg.App.IsProduction() {
		testDataUC = appinv.NewTestDataUseCase(countLedger, repos.Counts, cat, log.Component("testdata"))
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Inventário Cíclico API",
		}))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		Catalog:       cat,
		Lifecycle:     lifecycleUC,
		Progress:      progressUC,
		Counts:        countLedger,
		Transits:      transitLedger,
		ReportBuilder: builderUC,
		ReportExport:  exportUC,
		TestData:      testDataUC,
		StorageDriver: repos.Driver,
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
