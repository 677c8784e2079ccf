package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Comandas-api/internal/domain/entity"
	"github.com/jhoicas/Comandas-api/internal/domain/repository"
)

var _ repository.ComandaRepository = (*ComandaRepo)(nil)

// ComandaRepo implementación del puerto ComandaRepository sobre PostgreSQL (usable con pool o tx).
// A diferencia de los ítems de venta, los de comanda sí se reemplazan: la
// mezcla al agregar reescribe la lista completa.
type ComandaRepo struct {
	q Querier
}

// NewComandaRepository construye el adaptador de comandas. Pasar pool o tx (Querier).
func NewComandaRepository(q Querier) *ComandaRepo {
	return &ComandaRepo{q: q}
}

// Create inserta la comanda abierta con sus ítems; created_at lo estampa la BD.
func (r *ComandaRepo) Create(comanda *entity.Comanda) error {
	query := `
		INSERT INTO comandas (id, customer_name, total, status)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`
	err := r.q.QueryRow(context.Background(), query,
		comanda.ID, comanda.CustomerName, comanda.Total, comanda.Status,
	).Scan(&comanda.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert comanda: %w", err)
	}
	if err := insertLineItems(r.q, "comanda_items", "comanda_id", comanda.ID, comanda.Items); err != nil {
		return fmt.Errorf("insert comanda items: %w", err)
	}
	return nil
}

// GetForUpdate obtiene la comanda con sus ítems bloqueando la fila. Devuelve (nil, nil) si no existe.
func (r *ComandaRepo) GetForUpdate(id string) (*entity.Comanda, error) {
	var c entity.Comanda
	err := r.q.QueryRow(context.Background(), `
		SELECT id, customer_name, total, status, created_at, closed_at
		FROM comandas WHERE id = $1 FOR UPDATE`, id,
	).Scan(&c.ID, &c.CustomerName, &c.Total, &c.Status, &c.CreatedAt, &c.ClosedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get comanda for update: %w", err)
	}
	items, err := loadLineItems(r.q, "comanda_items", "comanda_id", id)
	if err != nil {
		return nil, fmt.Errorf("load comanda items: %w", err)
	}
	c.Items = items
	return &c, nil
}

// ListOpen devuelve las comandas abiertas con sus ítems, más recientes primero.
func (r *ComandaRepo) ListOpen(ctx context.Context) ([]*entity.Comanda, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, customer_name, total, status, created_at, closed_at
		FROM comandas WHERE status = $1
		ORDER BY created_at DESC`, entity.ComandaStatusOpen)
	if err != nil {
		return nil, fmt.Errorf("list open comandas: %w", err)
	}
	defer rows.Close()

	var list []*entity.Comanda
	for rows.Next() {
		var c entity.Comanda
		if err := rows.Scan(&c.ID, &c.CustomerName, &c.Total, &c.Status, &c.CreatedAt, &c.ClosedAt); err != nil {
			return nil, fmt.Errorf("scan comanda: %w", err)
		}
		list = append(list, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, c := range list {
		items, err := loadLineItems(r.q, "comanda_items", "comanda_id", c.ID)
		if err != nil {
			return nil, fmt.Errorf("load comanda items: %w", err)
		}
		c.Items = items
	}
	return list, nil
}

// ReplaceItems reescribe la lista de ítems y el total (la mezcla ya viene resuelta).
func (r *ComandaRepo) ReplaceItems(id string, items []entity.LineItem, total decimal.Decimal) error {
	if err := replaceLineItems(r.q, "comanda_items", "comanda_id", id, items); err != nil {
		return fmt.Errorf("replace comanda items: %w", err)
	}
	_, err := r.q.Exec(context.Background(),
		`UPDATE comandas SET total = $2 WHERE id = $1`, id, total)
	if err != nil {
		return fmt.Errorf("update comanda total: %w", err)
	}
	return nil
}

// Close marca la comanda como cerrada estampando closed_at en el servidor.
func (r *ComandaRepo) Close(id string) error {
	_, err := r.q.Exec(context.Background(), `
		UPDATE comandas SET status = $2, closed_at = now()
		WHERE id = $1`, id, entity.ComandaStatusClosed)
	if err != nil {
		return fmt.Errorf("close comanda: %w", err)
	}
	return nil
}
