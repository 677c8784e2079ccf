package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Comandas-api/internal/domain/entity"
)

// SaleRepository puerto de persistencia de ventas.
// Las ventas nunca se borran: la cancelación solo cambia Status.
type SaleRepository interface {
	// Create inserta la venta y sus ítems; Date la estampa el servidor de BD.
	Create(sale *entity.Sale) error
	GetByID(id string) (*entity.Sale, error)
	GetForUpdate(id string) (*entity.Sale, error)
	// ListByDateRange devuelve ventas con fecha en [start, end], más recientes primero.
	ListByDateRange(ctx context.Context, start, end time.Time) ([]*entity.Sale, error)
	UpdateStatus(id, status string) error
}
