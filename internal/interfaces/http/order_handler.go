package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Comandas-api/internal/application/dto"
	"github.com/jhoicas/Comandas-api/internal/application/order"
	"github.com/jhoicas/Comandas-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Comandas-api/pkg/logger"
)

// OrderHandler maneja las peticiones HTTP de pedidos agendados.
type OrderHandler struct {
	uc      *order.UseCase
	watcher *postgres.Watcher
	log     *logger.Logger
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *order.UseCase, watcher *postgres.Watcher, log *logger.Logger) *OrderHandler {
	return &OrderHandler{uc: uc, watcher: watcher, log: log}
}

// Add crea un pedido pending. El total lo calcula el servidor.
func (h *OrderHandler) Add(c *fiber.Ctx) error {
	var in dto.AddOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	o, err := h.uc.Add(c.Context(), order.AddInput{
		CustomerName:  in.CustomerName,
		CustomerPhone: in.CustomerPhone,
		Items:         dto.LineItemsToEntity(in.Items),
		ItemsTotal:    in.ItemsTotal,
		ShippingCost:  in.ShippingCost,
		DeliveryType:  in.DeliveryType,
		Address:       in.Address,
		ScheduledDate: in.ScheduledDate,
		Observations:  in.Observations,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OrderFromEntity(o))
}

// List devuelve todos los pedidos; con ?active=true solo los en curso.
func (h *OrderHandler) List(c *fiber.Ctx) error {
	if c.QueryBool("active") {
		orders, err := h.uc.ListActive(c.Context())
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(dto.OrdersFromEntity(orders))
	}
	orders, err := h.uc.List(c.Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.OrdersFromEntity(orders))
}

// GetByID obtiene un pedido con sus ítems.
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	o, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.OrderFromEntity(o))
}

// Deliver marca el pedido como entregado descontando el stock de sus ítems.
func (h *OrderHandler) Deliver(c *fiber.Ctx) error {
	if err := h.uc.MarkAsDelivered(c.Context(), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Finalize registra la venta del pedido entregado y lo pasa a finished.
func (h *OrderHandler) Finalize(c *fiber.Ctx) error {
	var in dto.FinalizeOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	s, err := h.uc.Finalize(c.Context(), c.Params("id"), in.PaymentMethod)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SaleFromEntity(s))
}

// Cancel cancela el pedido, reponiendo stock si ya estaba entregado.
func (h *OrderHandler) Cancel(c *fiber.Ctx) error {
	if err := h.uc.Cancel(c.Context(), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Stream sirve los pedidos activos por SSE: snapshot completo ante cada cambio.
func (h *OrderHandler) Stream(c *fiber.Ctx) error {
	return streamSnapshots(c, h.watcher, h.log, postgres.ChannelOrders, func(ctx context.Context) (any, error) {
		list, err := h.uc.ListActive(ctx)
		if err != nil {
			return nil, err
		}
		return dto.OrdersFromEntity(list), nil
	})
}
