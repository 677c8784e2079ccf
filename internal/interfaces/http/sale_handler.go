package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Comandas-api/internal/application/dto"
	"github.com/jhoicas/Comandas-api/internal/application/sale"
	"github.com/jhoicas/Comandas-api/internal/domain"
	"github.com/jhoicas/Comandas-api/internal/infrastructure/pdf"
)

// SaleHandler maneja las peticiones HTTP de ventas.
type SaleHandler struct {
	uc       *sale.UseCase
	receipts *pdf.ReceiptGenerator
}

// NewSaleHandler construye el handler.
func NewSaleHandler(uc *sale.UseCase, receipts *pdf.ReceiptGenerator) *SaleHandler {
	return &SaleHandler{uc: uc, receipts: receipts}
}

// Process registra una venta de mostrador descontando stock.
func (h *SaleHandler) Process(c *fiber.Ctx) error {
	var in dto.ProcessSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	s, err := h.uc.Process(c.Context(), sale.ProcessInput{
		Items:         dto.LineItemsToEntity(in.Items),
		Total:         in.Total,
		PaymentMethod: in.PaymentMethod,
		SaleType:      in.SaleType,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SaleFromEntity(s))
}

// List devuelve las ventas del rango de fechas pedido (query start/end).
func (h *SaleHandler) List(c *fiber.Ctx) error {
	start, end, err := parseDateRange(c)
	if err != nil {
		return fail(c, err)
	}
	list, err := h.uc.ListByDateRange(c.Context(), start, end)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.SalesFromEntity(list))
}

// GetByID obtiene una venta con sus ítems.
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	s, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.SaleFromEntity(s))
}

// Cancel cancela la venta y repone el stock de todos sus ítems.
func (h *SaleHandler) Cancel(c *fiber.Ctx) error {
	if err := h.uc.Cancel(c.Context(), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Receipt devuelve el comprobante de la venta en PDF.
func (h *SaleHandler) Receipt(c *fiber.Ctx) error {
	s, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	doc, err := h.receipts.GenerateSaleReceipt(c.Context(), s)
	if err != nil {
		return fail(c, err)
	}
	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", `inline; filename="venda-`+s.ID+`.pdf"`)
	return c.Send(doc)
}

// parseDateRange lee start/end de la query (RFC3339 o YYYY-MM-DD). Sin
// parámetros el rango es el día de hoy.
func parseDateRange(c *fiber.Ctx) (time.Time, time.Time, error) {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	end := now

	var err error
	if raw := c.Query("start"); raw != "" {
		if start, err = parseDate(raw); err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	if raw := c.Query("end"); raw != "" {
		if end, err = parseDate(raw); err != nil {
			return time.Time{}, time.Time{}, err
		}
		// Fecha sin hora: incluir el día completo.
		if len(raw) == len("2006-01-02") {
			end = end.Add(24*time.Hour - time.Nanosecond)
		}
	}
	return start, end, nil
}

func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: fecha inválida %q", domain.ErrInvalidInput, raw)
	}
	return t, nil
}
