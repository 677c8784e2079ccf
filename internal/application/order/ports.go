package order

import (
	"context"

	"github.com/jhoicas/Comandas-api/internal/application/sale"
	"github.com/jhoicas/Comandas-api/internal/domain/entity"
	"github.com/jhoicas/Comandas-api/internal/domain/repository"
)

// TxRunner transacción con repositorios de productos, pedidos y ventas
// (ventas para la finalización: pedido → venta en una sola unidad).
type TxRunner interface {
	RunOrder(ctx context.Context, fn func(
		products repository.ProductRepository,
		orders repository.OrderRepository,
		sales repository.SaleRepository,
	) error) error
}

// SaleRegistrar escribe una venta en la transacción del caller sin efecto de
// stock (el stock del pedido ya se movió al marcar delivered).
type SaleRegistrar interface {
	RegisterInTx(sales repository.SaleRepository, in sale.ProcessInput) (*entity.Sale, error)
}
