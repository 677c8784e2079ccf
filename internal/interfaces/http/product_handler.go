package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Comandas-api/internal/application/catalog"
	"github.com/jhoicas/Comandas-api/internal/application/dto"
	"github.com/jhoicas/Comandas-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Comandas-api/pkg/logger"
)

// ProductHandler maneja las peticiones HTTP del catálogo de productos.
type ProductHandler struct {
	uc      *catalog.UseCase
	watcher *postgres.Watcher
	log     *logger.Logger
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *catalog.UseCase, watcher *postgres.Watcher, log *logger.Logger) *ProductHandler {
	return &ProductHandler{uc: uc, watcher: watcher, log: log}
}

// Create da de alta un producto. El stock inicial solo se acepta aquí.
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	p, err := h.uc.Create(c.Context(), catalog.CreateInput{
		Title:     in.Title,
		BuyPrice:  in.BuyPrice,
		SellPrice: in.SellPrice,
		Stock:     in.Stock,
		URLImage:  in.URLImage,
		Color:     in.Color,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ProductFromEntity(p))
}

// List lista el catálogo completo.
func (h *ProductHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.ProductsFromEntity(list))
}

// GetByID obtiene un producto.
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	p, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.ProductFromEntity(p))
}

// Update edita los campos permitidos del producto (nunca stock ni buyPrice).
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	p, err := h.uc.Update(c.Context(), c.Params("id"), catalog.UpdateInput{
		Title:     in.Title,
		SellPrice: in.SellPrice,
		URLImage:  in.URLImage,
		Color:     in.Color,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.ProductFromEntity(p))
}

// Delete elimina un producto del catálogo.
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Stream sirve el catálogo por SSE: snapshot completo ante cada cambio.
func (h *ProductHandler) Stream(c *fiber.Ctx) error {
	return streamSnapshots(c, h.watcher, h.log, postgres.ChannelProducts, func(ctx context.Context) (any, error) {
		list, err := h.uc.List(ctx)
		if err != nil {
			return nil, err
		}
		return dto.ProductsFromEntity(list), nil
	})
}
