package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Comandas-api/internal/domain/entity"
)

// OpenComandaRequest apertura de comanda con el carrito inicial.
type OpenComandaRequest struct {
	CustomerName string          `json:"customerName"`
	Items        []LineItemDTO   `json:"items"`
	Total        decimal.Decimal `json:"total"`
}

// AddComandaItemsRequest ítems a agregar a una comanda abierta.
type AddComandaItemsRequest struct {
	Items           []LineItemDTO   `json:"items"`
	AdditionalTotal decimal.Decimal `json:"additionalTotal"`
}

// SettleComandaRequest liquidación de la comanda (pago).
type SettleComandaRequest struct {
	PaymentMethod string `json:"paymentMethod"`
}

// ComandaResponse representación de una comanda.
type ComandaResponse struct {
	ID           string          `json:"id"`
	CustomerName string          `json:"customerName"`
	Items        []LineItemDTO   `json:"items"`
	Total        decimal.Decimal `json:"total"`
	Status       string          `json:"status"`
	CreatedAt    time.Time       `json:"createdAt"`
	ClosedAt     *time.Time      `json:"closedAt,omitempty"`
}

// ComandaFromEntity arma la respuesta desde la entidad.
func ComandaFromEntity(c *entity.Comanda) ComandaResponse {
	return ComandaResponse{
		ID:           c.ID,
		CustomerName: c.CustomerName,
		Items:        LineItemsFromEntity(c.Items),
		Total:        c.Total,
		Status:       c.Status,
		CreatedAt:    c.CreatedAt,
		ClosedAt:     c.ClosedAt,
	}
}

// ComandasFromEntity arma la lista de respuestas.
func ComandasFromEntity(list []*entity.Comanda) []ComandaResponse {
	out := make([]ComandaResponse, 0, len(list))
	for _, c := range list {
		out = append(out, ComandaFromEntity(c))
	}
	return out
}
