package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Los casos de uso los retornan tal cual; la capa HTTP los traduce a códigos.
var (
	ErrInvalidInput = errors.New("entrada inválida")

	ErrProductNotFound  = errors.New("producto no encontrado")
	ErrSaleNotFound     = errors.New("venta no encontrada")
	ErrPurchaseNotFound = errors.New("compra no encontrada")
	ErrComandaNotFound  = errors.New("comanda no encontrada")
	ErrOrderNotFound    = errors.New("pedido no encontrado")

	ErrOrderMissingID = errors.New("el pedido no tiene ID")

	ErrInsufficientStock            = errors.New("stock insuficiente")
	ErrInsufficientStockForReversal = errors.New("estorno denegado: el stock actual es menor que la cantidad de la compra")

	ErrSaleAlreadyCanceled = errors.New("la venta ya fue cancelada")
	ErrComandaClosed       = errors.New("la comanda ya está cerrada")
	ErrInvalidOrderStatus  = errors.New("transición de estado de pedido inválida")
	ErrTransactionConflict = errors.New("conflicto de concurrencia en la transacción")
)
