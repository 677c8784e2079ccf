package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Comandas-api/internal/application/dto"
	"github.com/jhoicas/Comandas-api/internal/application/report"
)

// ReportHandler maneja las peticiones HTTP del reporte financiero.
type ReportHandler struct {
	uc *report.UseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *report.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Get calcula el reporte del rango pedido (query start/end) con filtro
// opcional por producto (query product).
func (h *ReportHandler) Get(c *fiber.Ctx) error {
	start, end, err := parseDateRange(c)
	if err != nil {
		return fail(c, err)
	}
	r, err := h.uc.Compute(c.Context(), start, end, c.Query("product"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.ReportFromResult(r))
}
