package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-ciclos/internal/application/dto"
	appinv "github.com/jhoicas/inventario-ciclos/internal/application/inventory"
)

// TransitHandler expone el libro de tránsitos entre CDs.
type TransitHandler struct {
	ledger *appinv.TransitLedger
}

// NewTransitHandler construye el handler.
func NewTransitHandler(ledger *appinv.TransitLedger) *TransitHandler {
	return &TransitHandler{ledger: ledger}
}

// List godoc
// @Summary      Listar tránsitos
// @Tags         transits
// @Produce      json
// @Param        inventory_id  query  string  false  "ID del inventario"
// @Success      200  {array}  dto.TransitRecordResponse
// @Router       /api/transits [get]
func (h *TransitHandler) List(c *fiber.Ctx) error {
	list, err := h.ledger.ListEntries(c.UserContext(), c.Query("inventory_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toTransitList(list))
}

// Create godoc
// @Summary      Registrar tránsito
// @Tags         transits
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTransitRequest  true  "tránsito"
// @Success      201   {object}  dto.TransitRecordResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/transits [post]
func (h *TransitHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTransitRequest
	if err := parseBody(c, "transit.add", &in); err != nil {
		return respondError(c, err)
	}
	rec, err := h.ledger.AddEntry(c.UserContext(), appinv.AddTransitInput{
		InventoryID: in.InventoryID,
		Origin:      in.Origin,
		Destination: in.Destination,
		AssetType:   in.AssetType,
		Quantity:    in.Quantity,
		Status:      in.Status,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toTransitResponse(rec))
}

// CreateBulk godoc
// @Summary      Registrar tránsitos en lote
// @Tags         transits
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BulkTransitRequest  true  "lote"
// @Success      201   {array}   dto.TransitRecordResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/transits/bulk [post]
func (h *TransitHandler) CreateBulk(c *fiber.Ctx) error {
	var in dto.BulkTransitRequest
	if err := parseBody(c, "transit.add_bulk", &in); err != nil {
		return respondError(c, err)
	}
	items := make([]appinv.TransitItem, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, appinv.TransitItem{AssetType: it.AssetType, Quantity: it.Quantity})
	}
	list, err := h.ledger.AddEntriesBulk(c.UserContext(), appinv.BulkTransitInput{
		InventoryID: in.InventoryID,
		Origin:      in.Origin,
		Destination: in.Destination,
		Status:      in.Status,
		Items:       items,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toTransitList(list))
}

// Update godoc
// @Summary      Editar tránsito
// @Description  El origen y el inventario no se pueden cambiar.
// @Tags         transits
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID del tránsito"
// @Param        body  body  dto.UpdateTransitRequest  true  "campos a cambiar"
// @Success      200   {object}  dto.TransitRecordResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/transits/{id} [patch]
func (h *TransitHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateTransitRequest
	if err := parseBody(c, "transit.edit", &in); err != nil {
		return respondError(c, err)
	}
	rec, err := h.ledger.EditEntry(c.UserContext(), c.Params("id"), appinv.TransitPatch{
		InventoryID: in.InventoryID,
		Origin:      in.Origin,
		Destination: in.Destination,
		AssetType:   in.AssetType,
		Quantity:    in.Quantity,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toTransitResponse(rec))
}

// UpdateStatus godoc
// @Summary      Cambiar estado del tránsito
// @Description  received fija la fecha de recepción; cualquier otro estado la limpia.
// @Tags         transits
// @Accept       json
// @Produce      json
// @Param        id    path  string                          true  "ID del tránsito"
// @Param        body  body  dto.UpdateTransitStatusRequest  true  "sent | received | pending"
// @Success      200   {object}  dto.TransitRecordResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/transits/{id}/status [patch]
func (h *TransitHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateTransitStatusRequest
	if err := parseBody(c, "transit.status", &in); err != nil {
		return respondError(c, err)
	}
	rec, err := h.ledger.UpdateStatus(c.UserContext(), c.Params("id"), in.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toTransitResponse(rec))
}

// Delete godoc
// @Summary      Eliminar tránsito
// @Tags         transits
// @Param        id   path  string  true  "ID del tránsito"
// @Produce      json
// @Success      200  {object}  dto.TransitRecordResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/transits/{id} [delete]
func (h *TransitHandler) Delete(c *fiber.Ctx) error {
	rec, err := h.ledger.RemoveEntry(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toTransitResponse(rec))
}
