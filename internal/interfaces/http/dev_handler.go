package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-ciclos/internal/application/dto"
	appinv "github.com/jhoicas/inventario-ciclos/internal/application/inventory"
	"github.com/jhoicas/inventario-ciclos/internal/domain"
)

// DevHandler utilidades para entornos que no son producción.
type DevHandler struct {
	testData *appinv.TestDataUseCase
}

// NewDevHandler construye el handler.
func NewDevHandler(testData *appinv.TestDataUseCase) *DevHandler {
	return &DevHandler{testData: testData}
}

// GenerateTestData godoc
// @Summary      Generar conteos de prueba
// @Description  Crea conteos aleatorios para los orígenes aún no contados. Si algunos orígenes
//
//	fallan responde 207 con el detalle por origen.
//
// @Tags         dev
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TestDataRequest  true  "inventario y categoría"
// @Success      201   {object}  dto.TestDataResponse
// @Success      207   {object}  dto.TestDataResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/dev/test-data [post]
func (h *DevHandler) GenerateTestData(c *fiber.Ctx) error {
	var in dto.TestDataRequest
	if err := parseBody(c, "testdata.generate", &in); err != nil {
		return respondError(c, err)
	}
	res, err := h.testData.Generate(c.UserContext(), appinv.TestDataInput{
		InventoryID:    in.InventoryID,
		Category:       in.Category,
		Origins:        in.Origins,
		ItemsPerOrigin: in.ItemsPerOrigin,
		Responsible:    in.Responsible,
	})
	if errors.Is(err, domain.ErrPartialFailure) && res != nil {
		return c.Status(fiber.StatusMultiStatus).JSON(toTestDataResponse(res))
	}
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toTestDataResponse(res))
}
