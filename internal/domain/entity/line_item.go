package entity

import "github.com/shopspring/decimal"

// DefaultProductName se usa cuando un ítem llega sin nombre (nunca se rechaza por eso).
const DefaultProductName = "Produto sem nome"

// LineItem es la línea de ítem compartida por Sale, Comanda y Order.
// Es un snapshot al momento de la operación: cambios posteriores de precio en el
// producto nunca alteran registros históricos (copy-on-write, sin objetos compartidos).
type LineItem struct {
	ProductID   string
	ProductName string
	Quantity    int64
	PriceAtSale decimal.Decimal
	PriceAtCost decimal.Decimal
}

// Normalize aplica las coerciones del punto de venta: cantidad mínima 1 y
// nombre genérico si falta.
func (i *LineItem) Normalize() {
	if i.Quantity <= 0 {
		i.Quantity = 1
	}
	if i.ProductName == "" {
		i.ProductName = DefaultProductName
	}
}

// Subtotal devuelve precio de venta por cantidad.
func (i LineItem) Subtotal() decimal.Decimal {
	return i.PriceAtSale.Mul(decimal.NewFromInt(i.Quantity))
}

// CostSubtotal devuelve costo por cantidad.
func (i LineItem) CostSubtotal() decimal.Decimal {
	return i.PriceAtCost.Mul(decimal.NewFromInt(i.Quantity))
}
