package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase registra una entrada de stock (compra a proveedor).
// Se crea atómicamente con el incremento de stock y la actualización de
// BuyPrice del producto. Borrable solo si el stock actual cubre Amount.
type Purchase struct {
	ID         string
	ProductID  string
	Amount     int64           // unidades recibidas
	UnityValue decimal.Decimal // costo unitario pagado
	Date       time.Time       // estampada por el servidor de BD
}
