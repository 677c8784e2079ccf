package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Comandas-api/internal/domain/entity"
)

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// LineItemDTO línea de ítem compartida por ventas, comandas y pedidos.
// Los nombres de campo siguen el esquema de los documentos almacenados.
type LineItemDTO struct {
	ProductID   string          `json:"idProduct"`
	ProductName string          `json:"productName"`
	Quantity    int64           `json:"quantity"`
	PriceAtSale decimal.Decimal `json:"priceAtSale"`
	PriceAtCost decimal.Decimal `json:"priceAtCost"`
}

// ToEntity convierte la línea a entidad de dominio.
func (d LineItemDTO) ToEntity() entity.LineItem {
	return entity.LineItem{
		ProductID:   d.ProductID,
		ProductName: d.ProductName,
		Quantity:    d.Quantity,
		PriceAtSale: d.PriceAtSale,
		PriceAtCost: d.PriceAtCost,
	}
}

// LineItemsToEntity convierte una lista de líneas.
func LineItemsToEntity(items []LineItemDTO) []entity.LineItem {
	out := make([]entity.LineItem, 0, len(items))
	for _, d := range items {
		out = append(out, d.ToEntity())
	}
	return out
}

// LineItemsFromEntity convierte líneas de dominio a DTO.
func LineItemsFromEntity(items []entity.LineItem) []LineItemDTO {
	out := make([]LineItemDTO, 0, len(items))
	for _, i := range items {
		out = append(out, LineItemDTO{
			ProductID:   i.ProductID,
			ProductName: i.ProductName,
			Quantity:    i.Quantity,
			PriceAtSale: i.PriceAtSale,
			PriceAtCost: i.PriceAtCost,
		})
	}
	return out
}
