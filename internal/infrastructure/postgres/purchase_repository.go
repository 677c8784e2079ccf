package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Comandas-api/internal/domain/entity"
	"github.com/jhoicas/Comandas-api/internal/domain/repository"
)

var _ repository.PurchaseRepository = (*PurchaseRepo)(nil)

// PurchaseRepo implementación del puerto PurchaseRepository sobre PostgreSQL (usable con pool o tx).
type PurchaseRepo struct {
	q Querier
}

// NewPurchaseRepository construye el adaptador de compras. Pasar pool o tx (Querier).
func NewPurchaseRepository(q Querier) *PurchaseRepo {
	return &PurchaseRepo{q: q}
}

// Create inserta la compra; Date la estampa la BD (now()).
func (r *PurchaseRepo) Create(purchase *entity.Purchase) error {
	query := `
		INSERT INTO purchases (id, product_id, amount, unity_value)
		VALUES ($1, $2, $3, $4)
		RETURNING date`
	err := r.q.QueryRow(context.Background(), query,
		purchase.ID, purchase.ProductID, purchase.Amount, purchase.UnityValue,
	).Scan(&purchase.Date)
	if err != nil {
		return fmt.Errorf("insert purchase: %w", err)
	}
	return nil
}

// GetForUpdate obtiene la compra bloqueando la fila. Devuelve (nil, nil) si no existe.
func (r *PurchaseRepo) GetForUpdate(id string) (*entity.Purchase, error) {
	var p entity.Purchase
	err := r.q.QueryRow(context.Background(), `
		SELECT id, product_id, amount, unity_value, date
		FROM purchases WHERE id = $1 FOR UPDATE`, id,
	).Scan(&p.ID, &p.ProductID, &p.Amount, &p.UnityValue, &p.Date)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase for update: %w", err)
	}
	return &p, nil
}

// List devuelve todas las compras, más recientes primero.
func (r *PurchaseRepo) List(ctx context.Context) ([]*entity.Purchase, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, product_id, amount, unity_value, date
		FROM purchases ORDER BY date DESC`)
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	defer rows.Close()

	var list []*entity.Purchase
	for rows.Next() {
		var p entity.Purchase
		if err := rows.Scan(&p.ID, &p.ProductID, &p.Amount, &p.UnityValue, &p.Date); err != nil {
			return nil, fmt.Errorf("scan purchase: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Delete elimina el registro de compra (el estorno de stock lo hace el caso de uso).
func (r *PurchaseRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM purchases WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete purchase: %w", err)
	}
	return nil
}
