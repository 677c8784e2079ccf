package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Comandas-api/internal/application/comanda"
	"github.com/jhoicas/Comandas-api/internal/application/dto"
	"github.com/jhoicas/Comandas-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Comandas-api/pkg/logger"
)

// ComandaHandler maneja las peticiones HTTP de comandas (cuentas abiertas).
type ComandaHandler struct {
	uc      *comanda.UseCase
	watcher *postgres.Watcher
	log     *logger.Logger
}

// NewComandaHandler construye el handler.
func NewComandaHandler(uc *comanda.UseCase, watcher *postgres.Watcher, log *logger.Logger) *ComandaHandler {
	return &ComandaHandler{uc: uc, watcher: watcher, log: log}
}

// Open abre una comanda reservando el stock del carrito inicial.
func (h *ComandaHandler) Open(c *fiber.Ctx) error {
	var in dto.OpenComandaRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	cm, err := h.uc.Open(c.Context(), in.CustomerName, dto.LineItemsToEntity(in.Items), in.Total)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ComandaFromEntity(cm))
}

// ListOpen lista las comandas abiertas.
func (h *ComandaHandler) ListOpen(c *fiber.Ctx) error {
	list, err := h.uc.ListOpen(c.Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.ComandasFromEntity(list))
}

// AddItems agrega ítems a una comanda abierta, reservando el stock nuevo.
func (h *ComandaHandler) AddItems(c *fiber.Ctx) error {
	var in dto.AddComandaItemsRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	err := h.uc.AddItems(c.Context(), c.Params("id"), dto.LineItemsToEntity(in.Items), in.AdditionalTotal)
	if err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Close cierra la comanda sin liquidarla (cambio de estado puro).
func (h *ComandaHandler) Close(c *fiber.Ctx) error {
	if err := h.uc.Close(c.Context(), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Settle liquida la comanda: registra la venta de pago y la cierra en una
// sola transacción.
func (h *ComandaHandler) Settle(c *fiber.Ctx) error {
	var in dto.SettleComandaRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	s, err := h.uc.Settle(c.Context(), c.Params("id"), in.PaymentMethod)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SaleFromEntity(s))
}

// Stream sirve las comandas abiertas por SSE: snapshot completo ante cada cambio.
func (h *ComandaHandler) Stream(c *fiber.Ctx) error {
	return streamSnapshots(c, h.watcher, h.log, postgres.ChannelComandas, func(ctx context.Context) (any, error) {
		list, err := h.uc.ListOpen(ctx)
		if err != nil {
			return nil, err
		}
		return dto.ComandasFromEntity(list), nil
	})
}
