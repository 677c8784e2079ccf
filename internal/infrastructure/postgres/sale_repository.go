package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Comandas-api/internal/domain/entity"
	"github.com/jhoicas/Comandas-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación del puerto SaleRepository sobre PostgreSQL (usable con pool o tx).
// La venta y sus ítems viven en sales + sale_items; los ítems son un snapshot
// inmutable, solo se insertan junto con la venta.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador de ventas. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create inserta la venta y sus ítems. Date la estampa la BD (now()).
func (r *SaleRepo) Create(sale *entity.Sale) error {
	query := `
		INSERT INTO sales (id, total, payment_method, sale_type, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING date`
	err := r.q.QueryRow(context.Background(), query,
		sale.ID, sale.Total, sale.PaymentMethod, sale.SaleType, sale.Status,
	).Scan(&sale.Date)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	if err := insertLineItems(r.q, "sale_items", "sale_id", sale.ID, sale.Items); err != nil {
		return fmt.Errorf("insert sale items: %w", err)
	}
	return nil
}

// GetByID obtiene una venta con sus ítems. Devuelve (nil, nil) si no existe.
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	return r.get(id, false)
}

// GetForUpdate obtiene la venta bloqueando la fila (SELECT FOR UPDATE).
func (r *SaleRepo) GetForUpdate(id string) (*entity.Sale, error) {
	return r.get(id, true)
}

func (r *SaleRepo) get(id string, forUpdate bool) (*entity.Sale, error) {
	query := `SELECT id, total, date, payment_method, sale_type, status FROM sales WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	var s entity.Sale
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.Total, &s.Date, &s.PaymentMethod, &s.SaleType, &s.Status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	items, err := loadLineItems(r.q, "sale_items", "sale_id", id)
	if err != nil {
		return nil, fmt.Errorf("load sale items: %w", err)
	}
	s.Items = items
	return &s, nil
}

// ListByDateRange devuelve ventas con fecha en [start, end], más recientes primero.
func (r *SaleRepo) ListByDateRange(ctx context.Context, start, end time.Time) ([]*entity.Sale, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, total, date, payment_method, sale_type, status
		FROM sales WHERE date >= $1 AND date <= $2
		ORDER BY date DESC`, start, end)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	var list []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(&s.ID, &s.Total, &s.Date, &s.PaymentMethod, &s.SaleType, &s.Status); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, s := range list {
		items, err := loadLineItems(r.q, "sale_items", "sale_id", s.ID)
		if err != nil {
			return nil, fmt.Errorf("load sale items: %w", err)
		}
		s.Items = items
	}
	return list, nil
}

// UpdateStatus cambia el estado de la venta (única mutación permitida: cancelación).
func (r *SaleRepo) UpdateStatus(id, status string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE sales SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update sale status: %w", err)
	}
	return nil
}
