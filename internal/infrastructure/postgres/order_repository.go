package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Comandas-api/internal/domain/entity"
	"github.com/jhoicas/Comandas-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación del puerto OrderRepository sobre PostgreSQL (usable con pool o tx).
// Las fechas de estado usan COALESCE(col, now()): se estampan exactamente una
// vez, la primera vez que se alcanza el estado.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador de pedidos. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

const orderColumns = `id, customer_name, customer_phone, items_total, shipping_cost, total,
		delivery_type, address, status, created_at, scheduled_date,
		actual_delivery_date, payment_date, closing_date, observations`

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var o entity.Order
	err := row.Scan(&o.ID, &o.CustomerName, &o.CustomerPhone, &o.ItemsTotal, &o.ShippingCost,
		&o.Total, &o.DeliveryType, &o.Address, &o.Status, &o.CreatedAt, &o.ScheduledDate,
		&o.ActualDeliveryDate, &o.PaymentDate, &o.ClosingDate, &o.Observations)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// Create inserta el pedido pending con sus ítems; created_at lo estampa la BD.
func (r *OrderRepo) Create(order *entity.Order) error {
	query := `
		INSERT INTO orders (id, customer_name, customer_phone, items_total, shipping_cost, total,
			delivery_type, address, status, scheduled_date, observations)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at`
	err := r.q.QueryRow(context.Background(), query,
		order.ID, order.CustomerName, order.CustomerPhone, order.ItemsTotal, order.ShippingCost,
		order.Total, order.DeliveryType, order.Address, order.Status, order.ScheduledDate,
		order.Observations,
	).Scan(&order.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	if err := insertLineItems(r.q, "order_items", "order_id", order.ID, order.Items); err != nil {
		return fmt.Errorf("insert order items: %w", err)
	}
	return nil
}

// GetByID obtiene un pedido con sus ítems. Devuelve (nil, nil) si no existe.
func (r *OrderRepo) GetByID(id string) (*entity.Order, error) {
	return r.get(id, false)
}

// GetForUpdate obtiene el pedido bloqueando la fila (SELECT FOR UPDATE).
func (r *OrderRepo) GetForUpdate(id string) (*entity.Order, error) {
	return r.get(id, true)
}

func (r *OrderRepo) get(id string, forUpdate bool) (*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	o, err := scanOrder(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	items, err := loadLineItems(r.q, "order_items", "order_id", id)
	if err != nil {
		return nil, fmt.Errorf("load order items: %w", err)
	}
	o.Items = items
	return o, nil
}

// List devuelve todos los pedidos con sus ítems, más recientes primero.
func (r *OrderRepo) List(ctx context.Context) ([]*entity.Order, error) {
	rows, err := r.q.Query(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var list []*entity.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, o := range list {
		items, err := loadLineItems(r.q, "order_items", "order_id", o.ID)
		if err != nil {
			return nil, fmt.Errorf("load order items: %w", err)
		}
		o.Items = items
	}
	return list, nil
}

// MarkDelivered fija status delivered y estampa actual_delivery_date (solo la primera vez).
func (r *OrderRepo) MarkDelivered(id string) error {
	_, err := r.q.Exec(context.Background(), `
		UPDATE orders SET status = $2, actual_delivery_date = COALESCE(actual_delivery_date, now())
		WHERE id = $1`, id, entity.OrderStatusDelivered)
	if err != nil {
		return fmt.Errorf("mark order delivered: %w", err)
	}
	return nil
}

// MarkFinished fija status finished y estampa payment_date y closing_date.
func (r *OrderRepo) MarkFinished(id string) error {
	_, err := r.q.Exec(context.Background(), `
		UPDATE orders SET status = $2,
			payment_date = COALESCE(payment_date, now()),
			closing_date = COALESCE(closing_date, now())
		WHERE id = $1`, id, entity.OrderStatusFinished)
	if err != nil {
		return fmt.Errorf("mark order finished: %w", err)
	}
	return nil
}

// MarkCanceled fija status canceled.
func (r *OrderRepo) MarkCanceled(id string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE orders SET status = $2 WHERE id = $1`, id, entity.OrderStatusCanceled)
	if err != nil {
		return fmt.Errorf("mark order canceled: %w", err)
	}
	return nil
}
