package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pago aceptados en el mostrador.
const (
	PaymentCash = "cash"
	PaymentPix  = "pix"
)

// Origen de la venta: mostrador directo o finalización de un pedido agendado.
const (
	SaleTypeCounter = "counter"
	SaleTypeOrder   = "order"
)

// Estados de la venta. La cancelación solo cambia Status y repone stock;
// el registro nunca se borra (preserva el histórico de reportes).
const (
	SaleStatusCompleted = "completed"
	SaleStatusCanceled  = "canceled"
)

// Sale es el registro inmutable de una venta. Se crea exactamente una vez,
// en la misma transacción que los decrementos de stock que implica.
type Sale struct {
	ID            string
	Items         []LineItem
	Total         decimal.Decimal
	Date          time.Time // estampada por el servidor de BD al confirmar
	PaymentMethod string
	SaleType      string
	Status        string
}

// ValidPaymentMethod verifica el método de pago.
func ValidPaymentMethod(m string) bool {
	return m == PaymentCash || m == PaymentPix
}
