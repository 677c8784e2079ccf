package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Comandas-api/internal/application/comanda"
	"github.com/jhoicas/Comandas-api/internal/application/order"
	"github.com/jhoicas/Comandas-api/internal/application/purchase"
	"github.com/jhoicas/Comandas-api/internal/application/sale"
	"github.com/jhoicas/Comandas-api/internal/domain"
	"github.com/jhoicas/Comandas-api/internal/domain/repository"
)

// Ensure TxRunner implements the per-module runner ports.
var _ sale.TxRunner = (*TxRunner)(nil)
var _ purchase.TxRunner = (*TxRunner)(nil)
var _ comanda.TxRunner = (*TxRunner)(nil)
var _ order.TxRunner = (*TxRunner)(nil)

// maxTxAttempts intentos ante serialization_failure o deadlock antes de
// devolver ErrTransactionConflict.
const maxTxAttempts = 3

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL, con
// reintento ante errores de contención (40001/40P01). Los errores de negocio
// del callback nunca se reintentan.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

func (r *TxRunner) run(ctx context.Context, fn func(q Querier) error) error {
	var lastErr error
	for attempt := 0; attempt < maxTxAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(time.Duration(attempt) * 50 * time.Millisecond):
			}
		}
		err := r.runOnce(ctx, fn)
		if err == nil {
			return nil
		}
		if !isRetryableTxError(err) {
			return err
		}
		lastErr = err
	}
	return fmt.Errorf("%w: %v", domain.ErrTransactionConflict, lastErr)
}

func (r *TxRunner) runOnce(ctx context.Context, fn func(q Querier) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunSale inicia una transacción con repos de productos y ventas (para procesar/cancelar ventas).
func (r *TxRunner) RunSale(ctx context.Context, fn func(
	products repository.ProductRepository,
	sales repository.SaleRepository,
) error) error {
	return r.run(ctx, func(q Querier) error {
		return fn(NewProductRepository(q), NewSaleRepository(q))
	})
}

// RunPurchase inicia una transacción con repos de productos y compras.
func (r *TxRunner) RunPurchase(ctx context.Context, fn func(
	products repository.ProductRepository,
	purchases repository.PurchaseRepository,
) error) error {
	return r.run(ctx, func(q Querier) error {
		return fn(NewProductRepository(q), NewPurchaseRepository(q))
	})
}

// RunComanda inicia una transacción con repos de productos, comandas y ventas
// (la liquidación escribe la venta y cierra la comanda en la misma tx).
func (r *TxRunner) RunComanda(ctx context.Context, fn func(
	products repository.ProductRepository,
	comandas repository.ComandaRepository,
	sales repository.SaleRepository,
) error) error {
	return r.run(ctx, func(q Querier) error {
		return fn(NewProductRepository(q), NewComandaRepository(q), NewSaleRepository(q))
	})
}

// RunOrder inicia una transacción con repos de productos, pedidos y ventas
// (finalizar escribe la venta y marca finished en la misma tx).
func (r *TxRunner) RunOrder(ctx context.Context, fn func(
	products repository.ProductRepository,
	orders repository.OrderRepository,
	sales repository.SaleRepository,
) error) error {
	return r.run(ctx, func(q Querier) error {
		return fn(NewProductRepository(q), NewOrderRepository(q), NewSaleRepository(q))
	})
}
