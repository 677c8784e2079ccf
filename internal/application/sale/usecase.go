package sale

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Comandas-api/internal/application/stock"
	"github.com/jhoicas/Comandas-api/internal/domain"
	"github.com/jhoicas/Comandas-api/internal/domain/entity"
	"github.com/jhoicas/Comandas-api/internal/domain/repository"
)

// UseCase procesa ventas: valida suficiencia de stock para el carrito completo,
// descuenta stock por ítem y escribe la venta inmutable, todo en una transacción.
// Soporta cancelación compensatoria (repone stock, nunca borra el registro).
type UseCase struct {
	txRunner TxRunner
	sales    repository.SaleRepository // atado al pool, solo lecturas
}

// NewUseCase construye el procesador de ventas.
func NewUseCase(txRunner TxRunner, sales repository.SaleRepository) *UseCase {
	return &UseCase{txRunner: txRunner, sales: sales}
}

// ProcessInput entrada para registrar una venta.
type ProcessInput struct {
	Items         []entity.LineItem
	Total         decimal.Decimal
	PaymentMethod string
	SaleType      string
}

func (in *ProcessInput) validate() error {
	if len(in.Items) == 0 {
		return domain.ErrInvalidInput
	}
	if !entity.ValidPaymentMethod(in.PaymentMethod) {
		return domain.ErrInvalidInput
	}
	if in.SaleType == "" {
		in.SaleType = entity.SaleTypeCounter
	}
	if in.SaleType != entity.SaleTypeCounter && in.SaleType != entity.SaleTypeOrder {
		return domain.ErrInvalidInput
	}
	for i := range in.Items {
		in.Items[i].Normalize()
	}
	return nil
}

// Process registra una venta de mostrador: en una sola transacción lee el stock
// de todos los productos del carrito (FOR UPDATE), aborta completa con
// ErrInsufficientStock si algún ítem excede el disponible, y si todos pasan
// descuenta cada stock y escribe la venta con status completed. Sin decrementos
// parciales: o se aplica todo el carrito o nada.
func (uc *UseCase) Process(ctx context.Context, in ProcessInput) (*entity.Sale, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	var created *entity.Sale
	err := uc.txRunner.RunSale(ctx, func(
		products repository.ProductRepository,
		sales repository.SaleRepository,
	) error {
		if err := stock.ReserveAll(products, in.Items); err != nil {
			return err
		}
		s, err := uc.RegisterInTx(sales, in)
		if err != nil {
			return err
		}
		created = s
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// RegisterInTx escribe la venta usando el repositorio de la transacción del
// caller, SIN tocar stock. Es el modo "sin efecto de stock": lo usan la
// finalización de pedidos y la liquidación de comandas, donde el stock ya se
// movió en la entrega o al abrir/agregar a la comanda.
func (uc *UseCase) RegisterInTx(sales repository.SaleRepository, in ProcessInput) (*entity.Sale, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	s := &entity.Sale{
		ID:            uuid.New().String(),
		Items:         in.Items,
		Total:         in.Total,
		PaymentMethod: in.PaymentMethod,
		SaleType:      in.SaleType,
		Status:        entity.SaleStatusCompleted,
	}
	if err := sales.Create(s); err != nil {
		return nil, err
	}
	return s, nil
}

// Cancel repone el stock de todos los ítems de la venta y marca status
// canceled, en una transacción. La guarda de estado (rechazar ventas ya
// canceladas) evita el doble abono de stock ante peticiones duplicadas.
func (uc *UseCase) Cancel(ctx context.Context, saleID string) error {
	if saleID == "" {
		return domain.ErrInvalidInput
	}
	return uc.txRunner.RunSale(ctx, func(
		products repository.ProductRepository,
		sales repository.SaleRepository,
	) error {
		s, err := sales.GetForUpdate(saleID)
		if err != nil {
			return err
		}
		if s == nil {
			return fmt.Errorf("%w: %s", domain.ErrSaleNotFound, saleID)
		}
		if s.Status == entity.SaleStatusCanceled {
			return domain.ErrSaleAlreadyCanceled
		}
		if err := stock.RestoreAll(products, s.Items); err != nil {
			return err
		}
		return sales.UpdateStatus(saleID, entity.SaleStatusCanceled)
	})
}

// GetByID obtiene una venta con sus ítems.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	s, err := uc.sales.GetByID(id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrSaleNotFound, id)
	}
	return s, nil
}

// ListByDateRange lista ventas con fecha en [start, end], más recientes primero.
func (uc *UseCase) ListByDateRange(ctx context.Context, start, end time.Time) ([]*entity.Sale, error) {
	return uc.sales.ListByDateRange(ctx, start, end)
}
