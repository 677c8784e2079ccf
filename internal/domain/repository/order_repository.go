package repository

import (
	"context"

	"github.com/jhoicas/Comandas-api/internal/domain/entity"
)

// OrderRepository puerto de persistencia de pedidos agendados.
// Cada transición estampa su fecha de estado exactamente una vez, con la hora
// del servidor de BD.
type OrderRepository interface {
	Create(order *entity.Order) error
	GetByID(id string) (*entity.Order, error)
	GetForUpdate(id string) (*entity.Order, error)
	// List devuelve todos los pedidos, más recientes primero. El filtrado de
	// "activos" se hace del lado del caso de uso sobre este stream.
	List(ctx context.Context) ([]*entity.Order, error)
	// MarkDelivered fija status delivered y estampa actualDeliveryDate.
	MarkDelivered(id string) error
	// MarkFinished fija status finished y estampa paymentDate y closingDate.
	MarkFinished(id string) error
	MarkCanceled(id string) error
}
