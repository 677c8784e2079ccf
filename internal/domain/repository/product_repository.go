package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Comandas-api/internal/domain/entity"
)

// ProductRepository puerto de persistencia del catálogo de productos.
// GetByID devuelve (nil, nil) si el producto no existe.
//
// El campo Stock solo se muta vía UpdateStock/AddStock desde el libro de stock
// (paquete application/stock); Update nunca toca Stock ni BuyPrice.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE) para la disciplina
	// leer-validar-escribir dentro de una transacción.
	GetForUpdate(id string) (*entity.Product, error)
	List() ([]*entity.Product, error)
	Update(product *entity.Product) error
	// UpdateStock fija el stock tras una lectura FOR UPDATE validada.
	UpdateStock(id string, stock int64) error
	// AddStock es la primitiva atómica stock = stock + delta (sin lectura previa).
	// Reservada para rutas que no requieren validación; el CHECK stock >= 0
	// de la BD respalda la invariante en cualquier caso.
	AddStock(id string, delta int64) error
	// UpdateBuyPrice sobrescribe el último costo pagado (lo usa la compra).
	UpdateBuyPrice(id string, price decimal.Decimal) error
	Delete(id string) error
}
