// Package comanda gestiona las cuentas abiertas del mostrador: abrir reserva
// stock de inmediato, agregar ítems reserva más, cerrar es un cambio de estado
// terminal (la reserva ya ocurrió al agregar).
package comanda

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Comandas-api/internal/application/sale"
	"github.com/jhoicas/Comandas-api/internal/application/stock"
	"github.com/jhoicas/Comandas-api/internal/domain"
	"github.com/jhoicas/Comandas-api/internal/domain/entity"
	"github.com/jhoicas/Comandas-api/internal/domain/repository"
)

// UseCase gestor de comandas.
type UseCase struct {
	txRunner TxRunner
	comandas repository.ComandaRepository // atado al pool, solo lecturas
	saleUC   SaleRegistrar
}

// NewUseCase construye el gestor de comandas.
func NewUseCase(txRunner TxRunner, comandas repository.ComandaRepository, saleUC SaleRegistrar) *UseCase {
	return &UseCase{txRunner: txRunner, comandas: comandas, saleUC: saleUC}
}

// Open abre una comanda: valida y reserva stock de todos los ítems (misma
// disciplina leer-todo-luego-escribir-todo que la venta) y crea la comanda con
// status open. Si un ítem no tiene stock se aborta entera.
func (uc *UseCase) Open(ctx context.Context, customerName string, items []entity.LineItem, total decimal.Decimal) (*entity.Comanda, error) {
	if customerName == "" || len(items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for i := range items {
		items[i].Normalize()
	}
	c := &entity.Comanda{
		ID:           uuid.New().String(),
		CustomerName: customerName,
		Items:        items,
		Total:        total,
		Status:       entity.ComandaStatusOpen,
	}
	err := uc.txRunner.RunComanda(ctx, func(
		products repository.ProductRepository,
		comandas repository.ComandaRepository,
		_ repository.SaleRepository,
	) error {
		if err := stock.ReserveAll(products, items); err != nil {
			return err
		}
		return comandas.Create(c)
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// AddItems agrega ítems a una comanda abierta: valida y reserva stock de los
// nuevos ítems, los mezcla en la lista existente (mismo producto acumula
// cantidad, producto nuevo se agrega) y suma additionalTotal al total.
func (uc *UseCase) AddItems(ctx context.Context, comandaID string, newItems []entity.LineItem, additionalTotal decimal.Decimal) error {
	if comandaID == "" || len(newItems) == 0 {
		return domain.ErrInvalidInput
	}
	for i := range newItems {
		newItems[i].Normalize()
	}
	return uc.txRunner.RunComanda(ctx, func(
		products repository.ProductRepository,
		comandas repository.ComandaRepository,
		_ repository.SaleRepository,
	) error {
		c, err := uc.openForUpdate(comandas, comandaID)
		if err != nil {
			return err
		}
		if err := stock.ReserveAll(products, newItems); err != nil {
			return err
		}
		merged := entity.MergeItems(c.Items, newItems)
		return comandas.ReplaceItems(comandaID, merged, c.Total.Add(additionalTotal))
	})
}

// Close cierra la comanda: cambio de estado puro, no toca stock (ya reservado
// al abrir/agregar) ni crea venta. El caller que quiera la liquidación atómica
// usa Settle.
func (uc *UseCase) Close(ctx context.Context, comandaID string) error {
	if comandaID == "" {
		return domain.ErrInvalidInput
	}
	return uc.txRunner.RunComanda(ctx, func(
		_ repository.ProductRepository,
		comandas repository.ComandaRepository,
		_ repository.SaleRepository,
	) error {
		if _, err := uc.openForUpdate(comandas, comandaID); err != nil {
			return err
		}
		return comandas.Close(comandaID)
	})
}

// Settle liquida la comanda: en una sola transacción escribe la venta de pago
// con la lista final de ítems (modo sin efecto de stock: el stock ya se
// descontó al abrir/agregar) y cierra la comanda. Elimina el contrato implícito
// de "el caller registró la venta antes de cerrar".
func (uc *UseCase) Settle(ctx context.Context, comandaID, paymentMethod string) (*entity.Sale, error) {
	if comandaID == "" || !entity.ValidPaymentMethod(paymentMethod) {
		return nil, domain.ErrInvalidInput
	}
	var settled *entity.Sale
	err := uc.txRunner.RunComanda(ctx, func(
		_ repository.ProductRepository,
		comandas repository.ComandaRepository,
		sales repository.SaleRepository,
	) error {
		c, err := uc.openForUpdate(comandas, comandaID)
		if err != nil {
			return err
		}
		s, err := uc.saleUC.RegisterInTx(sales, sale.ProcessInput{
			Items:         c.Items,
			Total:         c.Total,
			PaymentMethod: paymentMethod,
			SaleType:      entity.SaleTypeCounter,
		})
		if err != nil {
			return err
		}
		if err := comandas.Close(comandaID); err != nil {
			return err
		}
		settled = s
		return nil
	})
	if err != nil {
		return nil, err
	}
	return settled, nil
}

// ListOpen lista las comandas abiertas, más recientes primero.
func (uc *UseCase) ListOpen(ctx context.Context) ([]*entity.Comanda, error) {
	return uc.comandas.ListOpen(ctx)
}

// openForUpdate lee la comanda con bloqueo de fila y verifica que siga abierta.
func (uc *UseCase) openForUpdate(comandas repository.ComandaRepository, id string) (*entity.Comanda, error) {
	c, err := comandas.GetForUpdate(id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrComandaNotFound, id)
	}
	if c.Status == entity.ComandaStatusClosed {
		return nil, domain.ErrComandaClosed
	}
	return c, nil
}
