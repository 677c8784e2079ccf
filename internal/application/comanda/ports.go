package comanda

import (
	"context"

	"github.com/jhoicas/Comandas-api/internal/application/sale"
	"github.com/jhoicas/Comandas-api/internal/domain/entity"
	"github.com/jhoicas/Comandas-api/internal/domain/repository"
)

// TxRunner transacción con repositorios de productos, comandas y ventas
// (ventas para la liquidación atómica en Settle).
type TxRunner interface {
	RunComanda(ctx context.Context, fn func(
		products repository.ProductRepository,
		comandas repository.ComandaRepository,
		sales repository.SaleRepository,
	) error) error
}

// SaleRegistrar escribe una venta usando los repositorios de la transacción
// del caller, sin efecto de stock. Lo implementa sale.UseCase.
type SaleRegistrar interface {
	RegisterInTx(sales repository.SaleRepository, in sale.ProcessInput) (*entity.Sale, error)
}
