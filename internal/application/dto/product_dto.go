package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Comandas-api/internal/domain/entity"
)

// CreateProductRequest alta de producto. Stock inicial solo en la creación.
type CreateProductRequest struct {
	Title     string          `json:"title"`
	BuyPrice  decimal.Decimal `json:"buyPrice"`
	SellPrice decimal.Decimal `json:"sellPrice"`
	Stock     int64           `json:"stock"`
	URLImage  string          `json:"urlImage"`
	Color     string          `json:"color"`
}

// UpdateProductRequest edición de producto. Sin stock ni buyPrice: esos campos
// solo los mueven compras y ventas.
type UpdateProductRequest struct {
	Title     string          `json:"title"`
	SellPrice decimal.Decimal `json:"sellPrice"`
	URLImage  string          `json:"urlImage"`
	Color     string          `json:"color"`
}

// ProductResponse representación de un producto.
type ProductResponse struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	BuyPrice  decimal.Decimal `json:"buyPrice"`
	SellPrice decimal.Decimal `json:"sellPrice"`
	Stock     int64           `json:"stock"`
	URLImage  string          `json:"urlImage,omitempty"`
	Color     string          `json:"color,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// ProductFromEntity arma la respuesta desde la entidad.
func ProductFromEntity(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:        p.ID,
		Title:     p.Title,
		BuyPrice:  p.BuyPrice,
		SellPrice: p.SellPrice,
		Stock:     p.Stock,
		URLImage:  p.URLImage,
		Color:     p.Color,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// ProductsFromEntity arma la lista de respuestas.
func ProductsFromEntity(list []*entity.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, ProductFromEntity(p))
	}
	return out
}
