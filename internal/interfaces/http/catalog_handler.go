package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-ciclos/internal/domain/catalog"
)

// CatalogHandler publica los datos de referencia (tiendas, sectores, CDs, activos).
type CatalogHandler struct {
	catalog *catalog.Catalog
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(c *catalog.Catalog) *CatalogHandler {
	return &CatalogHandler{catalog: c}
}

// Get godoc
// @Summary      Catálogo de referencia
// @Tags         catalog
// @Produce      json
// @Success      200  {object}  catalog.Catalog
// @Router       /api/catalog [get]
func (h *CatalogHandler) Get(c *fiber.Ctx) error {
	return c.JSON(h.catalog)
}
