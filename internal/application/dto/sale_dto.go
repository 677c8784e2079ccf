package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Comandas-api/internal/domain/entity"
)

// ProcessSaleRequest registro de una venta de mostrador.
type ProcessSaleRequest struct {
	Items         []LineItemDTO   `json:"items"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod string          `json:"paymentMethod"`
	SaleType      string          `json:"sale_type"`
}

// SaleResponse representación de una venta con sus ítems.
type SaleResponse struct {
	ID            string          `json:"id"`
	Items         []LineItemDTO   `json:"items"`
	Total         decimal.Decimal `json:"total"`
	Date          time.Time       `json:"date"`
	PaymentMethod string          `json:"paymentMethod"`
	SaleType      string          `json:"sale_type"`
	Status        string          `json:"status"`
}

// SaleFromEntity arma la respuesta desde la entidad.
func SaleFromEntity(s *entity.Sale) SaleResponse {
	return SaleResponse{
		ID:            s.ID,
		Items:         LineItemsFromEntity(s.Items),
		Total:         s.Total,
		Date:          s.Date,
		PaymentMethod: s.PaymentMethod,
		SaleType:      s.SaleType,
		Status:        s.Status,
	}
}

// SalesFromEntity arma la lista de respuestas.
func SalesFromEntity(list []*entity.Sale) []SaleResponse {
	out := make([]SaleResponse, 0, len(list))
	for _, s := range list {
		out = append(out, SaleFromEntity(s))
	}
	return out
}
