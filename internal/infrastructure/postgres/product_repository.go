package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Comandas-api/internal/domain"
	"github.com/jhoicas/Comandas-api/internal/domain/entity"
	"github.com/jhoicas/Comandas-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia del catálogo. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, title, buy_price, sell_price, stock, url_image, color, created_at, updated_at`

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(&p.ID, &p.Title, &p.BuyPrice, &p.SellPrice, &p.Stock,
		&p.URLImage, &p.Color, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste un producto nuevo; created_at/updated_at los estampa la BD.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (id, title, buy_price, sell_price, stock, url_image, color)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`
	err := r.q.QueryRow(context.Background(), query,
		product.ID, product.Title, product.BuyPrice, product.SellPrice,
		product.Stock, product.URLImage, product.Color,
	).Scan(&product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", domain.ErrInvalidInput, product.ID)
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID. Devuelve (nil, nil) si no existe.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(context.Background(),
		`SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// GetForUpdate obtiene el producto y bloquea la fila (SELECT FOR UPDATE).
func (r *ProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(context.Background(),
		`SELECT `+productColumns+` FROM products WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product for update: %w", err)
	}
	return p, nil
}

// List lista el catálogo completo ordenado por título.
func (r *ProductRepo) List() ([]*entity.Product, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+productColumns+` FROM products ORDER BY title`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Update actualiza los campos editables. No toca Stock ni BuyPrice (se mueven vía libro de stock y compras).
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products SET title = $2, sell_price = $3, url_image = $4, color = $5, updated_at = now()
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Title, product.SellPrice, product.URLImage, product.Color)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// UpdateStock fija el stock tras una lectura FOR UPDATE validada.
func (r *ProductRepo) UpdateStock(id string, stock int64) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE products SET stock = $2, updated_at = now() WHERE id = $1`, id, stock)
	if err != nil {
		if isCheckViolation(err) {
			return domain.ErrInsufficientStock
		}
		return fmt.Errorf("update stock: %w", err)
	}
	return nil
}

// AddStock aplica stock = stock + delta en una sola sentencia. El CHECK
// stock >= 0 de la tabla respalda la invariante ante deltas negativos.
func (r *ProductRepo) AddStock(id string, delta int64) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE products SET stock = stock + $2, updated_at = now() WHERE id = $1`, id, delta)
	if err != nil {
		if isCheckViolation(err) {
			return domain.ErrInsufficientStock
		}
		return fmt.Errorf("add stock: %w", err)
	}
	return nil
}

// UpdateBuyPrice sobrescribe el último costo unitario pagado (lo usa la compra).
func (r *ProductRepo) UpdateBuyPrice(id string, price decimal.Decimal) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE products SET buy_price = $2, updated_at = now() WHERE id = $1`, id, price)
	if err != nil {
		return fmt.Errorf("update buy price: %w", err)
	}
	return nil
}

// Delete elimina un producto del catálogo.
func (r *ProductRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}
