package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo del punto de venta.
// Stock es la única fuente de verdad de disponibilidad: entero no negativo,
// mutado solo por las operaciones del libro de stock (nunca por escritura directa).
// BuyPrice es el último costo unitario pagado (lo sobrescribe cada compra).
type Product struct {
	ID        string
	Title     string
	BuyPrice  decimal.Decimal // último costo unitario pagado
	SellPrice decimal.Decimal // precio de venta al público
	Stock     int64
	URLImage  string
	Color     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
