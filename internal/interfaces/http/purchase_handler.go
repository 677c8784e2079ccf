package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Comandas-api/internal/application/dto"
	"github.com/jhoicas/Comandas-api/internal/application/purchase"
)

// PurchaseHandler maneja las peticiones HTTP de compras (entradas de stock).
type PurchaseHandler struct {
	uc *purchase.UseCase
}

// NewPurchaseHandler construye el handler.
func NewPurchaseHandler(uc *purchase.UseCase) *PurchaseHandler {
	return &PurchaseHandler{uc: uc}
}

// Add registra una compra: incrementa stock y actualiza el costo del producto.
func (h *PurchaseHandler) Add(c *fiber.Ctx) error {
	var in dto.AddPurchaseRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	p, err := h.uc.Add(c.Context(), in.ProductID, in.Amount, in.UnityValue)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.PurchaseFromEntity(p))
}

// List devuelve todas las compras, más recientes primero.
func (h *PurchaseHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.PurchasesFromEntity(list))
}

// Delete estorna la compra: revierte el stock y borra el registro. Se niega si
// el stock actual no cubre la cantidad comprada.
func (h *PurchaseHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
