package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-ciclos/internal/application/dto"
	"github.com/jhoicas/inventario-ciclos/internal/application/report"
)

const (
	mimePDF  = "application/pdf"
	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// ReportHandler genera, consulta y exporta el informe de cierre.
type ReportHandler struct {
	builder *report.BuilderUseCase
	export  *report.ExportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(builder *report.BuilderUseCase, export *report.ExportUseCase) *ReportHandler {
	return &ReportHandler{builder: builder, export: export}
}

// Generate godoc
// @Summary      Generar informe de cierre
// @Description  Recalcula los resúmenes desde los libros y guarda el borrador (uno por inventario).
// @Tags         reports
// @Produce      json
// @Param        id   path  string  true  "ID del inventario"
// @Success      200  {object}  dto.GenerateReportResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/inventories/{id}/report [post]
func (h *ReportHandler) Generate(c *fiber.Ctx) error {
	res, err := h.builder.GenerateReport(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.GenerateReportResponse{
		Report:     toReportResponse(res.Report),
		Validation: res.Validation,
		Complete:   res.Validation.Complete(),
	})
}

// GetByInventory godoc
// @Summary      Informe del inventario
// @Tags         reports
// @Produce      json
// @Param        id   path  string  true  "ID del inventario"
// @Success      200  {object}  dto.ReportResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventories/{id}/report [get]
func (h *ReportHandler) GetByInventory(c *fiber.Ctx) error {
	rep, err := h.builder.GetByInventory(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toReportResponse(rep))
}

// DownloadPDF godoc
// @Summary      Descargar informe en PDF
// @Tags         reports
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del informe"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reports/{id}/pdf [get]
func (h *ReportHandler) DownloadPDF(c *fiber.Ctx) error {
	data, filename, err := h.export.DownloadPDF(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return sendAttachment(c, mimePDF, filename, data)
}

// DownloadXLSX godoc
// @Summary      Descargar informe en Excel
// @Tags         reports
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        id   path  string  true  "ID del informe"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reports/{id}/xlsx [get]
func (h *ReportHandler) DownloadXLSX(c *fiber.Ctx) error {
	data, filename, err := h.export.DownloadXLSX(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return sendAttachment(c, mimeXLSX, filename, data)
}

func sendAttachment(c *fiber.Ctx, mime, filename string, data []byte) error {
	c.Attachment(filename)
	c.Set(fiber.HeaderContentType, mime)
	return c.Send(data)
}
