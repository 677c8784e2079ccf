package repository

import (
	"context"

	"github.com/jhoicas/Comandas-api/internal/domain/entity"
)

// PurchaseRepository puerto de persistencia de compras (entradas de stock).
type PurchaseRepository interface {
	// Create inserta la compra; Date la estampa el servidor de BD.
	Create(purchase *entity.Purchase) error
	GetForUpdate(id string) (*entity.Purchase, error)
	List(ctx context.Context) ([]*entity.Purchase, error)
	Delete(id string) error
}
