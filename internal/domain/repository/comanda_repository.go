package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Comandas-api/internal/domain/entity"
)

// ComandaRepository puerto de persistencia de comandas (cuentas abiertas).
type ComandaRepository interface {
	Create(comanda *entity.Comanda) error
	GetForUpdate(id string) (*entity.Comanda, error)
	// ListOpen devuelve las comandas con status open, más recientes primero.
	ListOpen(ctx context.Context) ([]*entity.Comanda, error)
	// ReplaceItems reemplaza la lista de ítems y el total (mezcla ya resuelta
	// por el caso de uso).
	ReplaceItems(id string, items []entity.LineItem, total decimal.Decimal) error
	// Close marca la comanda como cerrada y estampa closedAt en el servidor.
	Close(id string) error
}
