package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-ciclos/internal/application/dto"
	appinv "github.com/jhoicas/inventario-ciclos/internal/application/inventory"
	"github.com/jhoicas/inventario-ciclos/internal/application/report"
	"github.com/jhoicas/inventario-ciclos/internal/domain/catalog"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Catalog       *catalog.Catalog
	Lifecycle     *appinv.LifecycleUseCase
	Progress      *appinv.ProgressUseCase
	Counts        *appinv.CountLedger
	Transits      *appinv.TransitLedger
	ReportBuilder *report.BuilderUseCase
	ReportExport  *report.ExportUseCase
	TestData      *appinv.TestDataUseCase // nil en producción
	StorageDriver string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(dto.HealthResponse{Status: "ok", Storage: deps.StorageDriver})
	})

	api := app.Group("/api")
	api.Get("/catalog", NewCatalogHandler(deps.Catalog).Get)

	// Inventarios
	inventories := api.Group("/inventories")
	inventoryHandler := NewInventoryHandler(deps.Lifecycle, deps.Progress)
	reportHandler := NewReportHandler(deps.ReportBuilder, deps.ReportExport)
	inventories.Post("/", inventoryHandler.Start)
	inventories.Get("/", inventoryHandler.List)
	inventories.Get("/active", inventoryHandler.Active)
	inventories.Get("/:id", inventoryHandler.GetByID)
	inventories.Get("/:id/progress", inventoryHandler.Progress)
	inventories.Post("/:id/finalize", inventoryHandler.Finalize)
	inventories.Post("/:id/report", reportHandler.Generate)
	inventories.Get("/:id/report", reportHandler.GetByInventory)

	// Conteos
	counts := api.Group("/counts")
	countHandler := NewCountHandler(deps.Counts)
	counts.Get("/", countHandler.List)
	counts.Post("/", countHandler.Create)
	counts.Post("/bulk", countHandler.CreateBulk)
	counts.Patch("/:id", countHandler.Update)
	counts.Delete("/:id", countHandler.Delete)

	// Tránsitos
	transits := api.Group("/transits")
	transitHandler := NewTransitHandler(deps.Transits)
	transits.Get("/", transitHandler.List)
	transits.Post("/", transitHandler.Create)
	transits.Post("/bulk", transitHandler.CreateBulk)
	transits.Patch("/:id", transitHandler.Update)
	transits.Patch("/:id/status", transitHandler.UpdateStatus)
	transits.Delete("/:id", transitHandler.Delete)

	// Informes
	reports := api.Group("/reports")
	reports.Get("/:id/pdf", reportHandler.DownloadPDF)
	reports.Get("/:id/xlsx", reportHandler.DownloadXLSX)

	// Solo fuera de producción
	if deps.TestData != nil {
		api.Post("/dev/test-data", NewDevHandler(deps.TestData).GenerateTestData)
	}
}
