package http

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-ciclos/internal/application/dto"
	appinv "github.com/jhoicas/inventario-ciclos/internal/application/inventory"
	"github.com/jhoicas/inventario-ciclos/internal/domain"
	dominv "github.com/jhoicas/inventario-ciclos/internal/domain/inventory"
	"github.com/jhoicas/inventario-ciclos/internal/domain/repository"
)

// CountHandler expone el libro de conteos.
type CountHandler struct {
	ledger *appinv.CountLedger
}

// NewCountHandler construye el handler.
func NewCountHandler(ledger *appinv.CountLedger) *CountHandler {
	return &CountHandler{ledger: ledger}
}

// parseCountBody decodifica el cuerpo y, si es JSON, resuelve el origen entre los nombres de
// campo heredados. Otros formatos conservan el origin que haya dejado BodyParser.
func parseCountBody(c *fiber.Ctx, op string, out any, origin *string) error {
	if err := c.BodyParser(out); err != nil {
		return domain.Validation(op, "cuerpo inválido")
	}
	if c.Is("json") {
		var raw map[string]any
		if err := json.Unmarshal(c.Body(), &raw); err != nil {
			return domain.Validation(op, "cuerpo inválido")
		}
		*origin = dominv.ResolveOrigin(raw)
	}
	return validateStruct(op, out)
}

// List godoc
// @Summary      Listar conteos
// @Tags         counts
// @Produce      json
// @Param        inventory_id  query  string  false  "ID del inventario"
// @Param        category      query  string  false  "store | sector | supplier"
// @Success      200  {array}   dto.CountEntryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/counts [get]
func (h *CountHandler) List(c *fiber.Ctx) error {
	list, err := h.ledger.ListEntries(c.UserContext(), repository.CountFilter{
		InventoryID: c.Query("inventory_id"),
		Category:    c.Query("category"),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toCountList(list))
}

// Create godoc
// @Summary      Registrar conteo
// @Description  Acepta origin o los campos heredados loja, setor_cd, fornecedor y cd_origem.
// @Tags         counts
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCountRequest  true  "conteo"
// @Success      201   {object}  dto.CountEntryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/counts [post]
func (h *CountHandler) Create(c *fiber.Ctx) error {
	const op = "count.add"
	var in dto.CreateCountRequest
	if err := parseCountBody(c, op, &in, &in.Origin); err != nil {
		return respondError(c, err)
	}
	entry, err := h.ledger.AddEntry(c.UserContext(), appinv.AddCountInput{
		InventoryID: in.InventoryID,
		Category:    in.Category,
		Origin:      in.Origin,
		Destination: in.Destination,
		AssetType:   in.AssetType,
		Quantity:    in.Quantity,
		Responsible: in.Responsible,
		Transit:     toCompanion(in.Transit),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toCountResponse(entry))
}

// CreateBulk godoc
// @Summary      Registrar conteos en lote
// @Description  Todos los ítems comparten origen y categoría; se guardan todos o ninguno.
// @Tags         counts
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BulkCountRequest  true  "lote"
// @Success      201   {array}   dto.CountEntryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/counts/bulk [post]
func (h *CountHandler) CreateBulk(c *fiber.Ctx) error {
	const op = "count.add_bulk"
	var in dto.BulkCountRequest
	if err := parseCountBody(c, op, &in, &in.Origin); err != nil {
		return respondError(c, err)
	}
	items := make([]dominv.CountItem, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, dominv.CountItem{AssetType: it.AssetType, Quantity: it.Quantity})
	}
	entries, err := h.ledger.AddEntriesBulk(c.UserContext(), appinv.BulkCountInput{
		InventoryID: in.InventoryID,
		Category:    in.Category,
		Origin:      in.Origin,
		Destination: in.Destination,
		Responsible: in.Responsible,
		Items:       items,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toCountList(entries))
}

// Update godoc
// @Summary      Editar conteo
// @Tags         counts
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID del conteo"
// @Param        body  body  dto.UpdateCountRequest  true  "campos a cambiar"
// @Success      200   {object}  dto.CountEntryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/counts/{id} [patch]
func (h *CountHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateCountRequest
	if err := parseBody(c, "count.edit", &in); err != nil {
		return respondError(c, err)
	}
	entry, err := h.ledger.EditEntry(c.UserContext(), c.Params("id"), appinv.CountPatch{
		InventoryID: in.InventoryID,
		Origin:      in.Origin,
		CountedAt:   in.CountedAt,
		Category:    in.Category,
		Destination: in.Destination,
		AssetType:   in.AssetType,
		Quantity:    in.Quantity,
		Responsible: in.Responsible,
		Transit:     toCompanion(in.Transit),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toCountResponse(entry))
}

// Delete godoc
// @Summary      Eliminar conteo
// @Tags         counts
// @Param        id   path  string  true  "ID del conteo"
// @Produce      json
// @Success      200  {object}  dto.CountEntryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/counts/{id} [delete]
func (h *CountHandler) Delete(c *fiber.Ctx) error {
	entry, err := h.ledger.RemoveEntry(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toCountResponse(entry))
}
