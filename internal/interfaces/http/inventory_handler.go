package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-ciclos/internal/application/dto"
	appinv "github.com/jhoicas/inventario-ciclos/internal/application/inventory"
	"github.com/jhoicas/inventario-ciclos/internal/domain"
)

// InventoryHandler maneja el ciclo de vida de los inventarios.
type InventoryHandler struct {
	lifecycle *appinv.LifecycleUseCase
	progress  *appinv.ProgressUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(lifecycle *appinv.LifecycleUseCase, progress *appinv.ProgressUseCase) *InventoryHandler {
	return &InventoryHandler{lifecycle: lifecycle, progress: progress}
}

// Start godoc
// @Summary      Iniciar inventario
// @Description  Crea un inventario activo. Solo puede existir uno a la vez.
// @Tags         inventories
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StartInventoryRequest  true  "responsable"
// @Success      201   {object}  dto.InventoryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventories [post]
func (h *InventoryHandler) Start(c *fiber.Ctx) error {
	var in dto.StartInventoryRequest
	if err := parseBody(c, "inventory.start", &in); err != nil {
		return respondError(c, err)
	}
	inv, err := h.lifecycle.StartInventory(c.UserContext(), in.Responsible)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toInventoryResponse(inv))
}

// List godoc
// @Summary      Listar inventarios
// @Tags         inventories
// @Produce      json
// @Param        limit   query  int  false  "máximo 100"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {object}  dto.InventoryListResponse
// @Router       /api/inventories [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return respondError(c, domain.Validation("inventory.list", "paginación inválida"))
	}
	if err := validateStruct("inventory.list", &page); err != nil {
		return respondError(c, err)
	}
	page.DefaultPage()
	list, err := h.lifecycle.List(c.UserContext(), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	items := make([]dto.InventoryResponse, 0, len(list))
	for _, inv := range list {
		items = append(items, toInventoryResponse(inv))
	}
	return c.JSON(dto.InventoryListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	})
}

// Active godoc
// @Summary      Inventario activo
// @Tags         inventories
// @Produce      json
// @Success      200  {object}  dto.InventoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventories/active [get]
func (h *InventoryHandler) Active(c *fiber.Ctx) error {
	inv, err := h.lifecycle.GetActiveInventory(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	if inv == nil {
		return respondError(c, domain.NotFound("inventory.active", "inventario activo", ""))
	}
	return c.JSON(toInventoryResponse(inv))
}

// GetByID godoc
// @Summary      Obtener inventario
// @Tags         inventories
// @Produce      json
// @Param        id   path  string  true  "ID del inventario"
// @Success      200  {object}  dto.InventoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventories/{id} [get]
func (h *InventoryHandler) GetByID(c *fiber.Ctx) error {
	inv, err := h.lifecycle.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toInventoryResponse(inv))
}

// Progress godoc
// @Summary      Progreso en vivo
// @Description  Calcula el progreso a partir de los conteos actuales sin persistirlo.
// @Tags         inventories
// @Produce      json
// @Param        id   path  string  true  "ID del inventario"
// @Success      200  {object}  dto.ProgressDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventories/{id}/progress [get]
func (h *InventoryHandler) Progress(c *fiber.Ctx) error {
	p, err := h.progress.Live(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toProgressDTO(p))
}

// Finalize godoc
// @Summary      Finalizar inventario
// @Description  Finaliza el inventario y aprueba su informe. Si la aprobación falla el
//
//	inventario se reactiva y la respuesta es ROLLED_BACK; STORAGE_UNCERTAIN indica
//	que la reactivación también falló.
//
// @Tags         inventories
// @Accept       json
// @Produce      json
// @Param        id    path  string                         true  "ID del inventario"
// @Param        body  body  dto.FinalizeInventoryRequest  true  "report_id, approver"
// @Success      200   {object}  dto.FinalizeInventoryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/inventories/{id}/finalize [post]
func (h *InventoryHandler) Finalize(c *fiber.Ctx) error {
	var in dto.FinalizeInventoryRequest
	if err := parseBody(c, "inventory.finalize", &in); err != nil {
		return respondError(c, err)
	}
	res, err := h.lifecycle.RequestFinalization(c.UserContext(), c.Params("id"), in.ReportID, in.Approver)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FinalizeInventoryResponse{
		Inventory: toInventoryResponse(res.Inventory),
		Report:    toReportResponse(res.Report),
	})
}
