// Package catalog administra el catálogo de productos. Las escrituras directas
// de stock están prohibidas: el stock solo lo mueven el libro de stock y sus
// callers (venta, compra, comanda, pedido).
package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Comandas-api/internal/domain"
	"github.com/jhoicas/Comandas-api/internal/domain/entity"
	"github.com/jhoicas/Comandas-api/internal/domain/repository"
)

// UseCase CRUD del catálogo.
type UseCase struct {
	products repository.ProductRepository
}

// NewUseCase construye el caso de uso del catálogo.
func NewUseCase(products repository.ProductRepository) *UseCase {
	return &UseCase{products: products}
}

// CreateInput datos para dar de alta un producto. Stock inicial permitido solo
// en la creación (carga del inventario existente).
type CreateInput struct {
	Title     string
	BuyPrice  decimal.Decimal
	SellPrice decimal.Decimal
	Stock     int64
	URLImage  string
	Color     string
}

// Create da de alta un producto con ID generado.
func (uc *UseCase) Create(ctx context.Context, in CreateInput) (*entity.Product, error) {
	if in.Title == "" || in.Stock < 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.BuyPrice.LessThan(decimal.Zero) || in.SellPrice.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	p := &entity.Product{
		ID:        uuid.New().String(),
		Title:     in.Title,
		BuyPrice:  in.BuyPrice,
		SellPrice: in.SellPrice,
		Stock:     in.Stock,
		URLImage:  in.URLImage,
		Color:     in.Color,
	}
	if err := uc.products.Create(p); err != nil {
		return nil, err
	}
	return p, nil
}

// GetByID obtiene un producto.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	p, err := uc.products.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrProductNotFound, id)
	}
	return p, nil
}

// List lista el catálogo completo.
func (uc *UseCase) List(ctx context.Context) ([]*entity.Product, error) {
	return uc.products.List()
}

// UpdateInput campos editables del producto. No incluye Stock ni BuyPrice:
// esos se mueven solo vía compras/ventas.
type UpdateInput struct {
	Title     string
	SellPrice decimal.Decimal
	URLImage  string
	Color     string
}

// Update actualiza los campos editables del producto.
func (uc *UseCase) Update(ctx context.Context, id string, in UpdateInput) (*entity.Product, error) {
	if in.Title == "" || in.SellPrice.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	p, err := uc.products.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrProductNotFound, id)
	}
	p.Title = in.Title
	p.SellPrice = in.SellPrice
	p.URLImage = in.URLImage
	p.Color = in.Color
	if err := uc.products.Update(p); err != nil {
		return nil, err
	}
	return p, nil
}

// Delete elimina un producto del catálogo.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	return uc.products.Delete(id)
}
