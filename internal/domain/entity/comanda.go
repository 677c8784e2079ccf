package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de la comanda. open → closed es terminal: no hay reapertura.
const (
	ComandaStatusOpen   = "open"
	ComandaStatusClosed = "closed"
)

// Comanda es la cuenta abierta de un cliente en el mostrador.
// El stock se reserva al abrir y al agregar ítems; el cierre es solo un
// cambio de estado (la venta de liquidación se registra aparte, sin tocar stock).
type Comanda struct {
	ID           string
	CustomerName string
	Items        []LineItem
	Total        decimal.Decimal
	Status       string
	CreatedAt    time.Time
	ClosedAt     *time.Time
}

// MergeItems mezcla ítems nuevos en la lista existente: mismo producto acumula
// cantidad, producto nuevo se agrega al final. Devuelve la lista resultante.
func MergeItems(current, incoming []LineItem) []LineItem {
	merged := make([]LineItem, len(current))
	copy(merged, current)
	for _, item := range incoming {
		found := false
		for idx := range merged {
			if merged[idx].ProductID == item.ProductID {
				merged[idx].Quantity += item.Quantity
				found = true
				break
			}
		}
		if !found {
			merged = append(merged, item)
		}
	}
	return merged
}
