package sale

import (
	"context"

	"github.com/jhoicas/Comandas-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad entre el decremento de
// stock y la escritura de la venta, y reintenta internamente ante conflictos
// de concurrencia antes de devolver el error al caller.
type TxRunner interface {
	RunSale(ctx context.Context, fn func(
		products repository.ProductRepository,
		sales repository.SaleRepository,
	) error) error
}
