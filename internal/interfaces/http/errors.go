package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Comandas-api/internal/application/dto"
	"github.com/jhoicas/Comandas-api/internal/domain"
)

// fail mapea los errores de dominio a respuestas HTTP. Los handlers delegan
// aquí todo error de caso de uso.
func fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrOrderMissingID):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: err.Error()})
	case errors.Is(err, domain.ErrProductNotFound),
		errors.Is(err, domain.ErrSaleNotFound),
		errors.Is(err, domain.ErrPurchaseNotFound),
		errors.Is(err, domain.ErrComandaNotFound),
		errors.Is(err, domain.ErrOrderNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: err.Error()})
	case errors.Is(err, domain.ErrInsufficientStockForReversal):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK_FOR_REVERSAL", Message: err.Error()})
	case errors.Is(err, domain.ErrSaleAlreadyCanceled):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ALREADY_CANCELED", Message: err.Error()})
	case errors.Is(err, domain.ErrComandaClosed):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "COMANDA_CLOSED", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidOrderStatus):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_STATUS", Message: err.Error()})
	case errors.Is(err, domain.ErrTransactionConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "TX_CONFLICT", Message: "conflicto de concurrencia, reintente"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}
