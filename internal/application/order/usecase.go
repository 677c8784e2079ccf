// Package order gestiona pedidos agendados a través de su máquina de estados:
// pending → delivered → finished, con canceled desde pending o delivered.
// El stock se mueve al entregar; finalizar crea la venta sin re-descontar;
// cancelar desde delivered compensa la entrega.
package order

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Comandas-api/internal/application/sale"
	"github.com/jhoicas/Comandas-api/internal/application/stock"
	"github.com/jhoicas/Comandas-api/internal/domain"
	"github.com/jhoicas/Comandas-api/internal/domain/entity"
	"github.com/jhoicas/Comandas-api/internal/domain/repository"
)

// UseCase gestor de pedidos.
type UseCase struct {
	txRunner TxRunner
	orders   repository.OrderRepository // atado al pool, solo lecturas
	saleUC   SaleRegistrar
}

// NewUseCase construye el gestor de pedidos.
func NewUseCase(txRunner TxRunner, orders repository.OrderRepository, saleUC SaleRegistrar) *UseCase {
	return &UseCase{txRunner: txRunner, orders: orders, saleUC: saleUC}
}

// AddInput entrada para crear un pedido. El total NO se acepta del cliente:
// se calcula en el servidor como itemsTotal + shippingCost.
type AddInput struct {
	CustomerName  string
	CustomerPhone string
	Items         []entity.LineItem
	ItemsTotal    decimal.Decimal
	ShippingCost  decimal.Decimal
	DeliveryType  string
	Address       string
	ScheduledDate time.Time
	Observations  string
}

func (in *AddInput) validate() error {
	if in.CustomerName == "" || len(in.Items) == 0 {
		return domain.ErrInvalidInput
	}
	if in.DeliveryType != entity.DeliveryTypePickup && in.DeliveryType != entity.DeliveryTypeDelivery {
		return domain.ErrInvalidInput
	}
	if in.DeliveryType == entity.DeliveryTypeDelivery && in.Address == "" {
		return domain.ErrInvalidInput
	}
	if in.ItemsTotal.LessThan(decimal.Zero) || in.ShippingCost.LessThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	for i := range in.Items {
		in.Items[i].Normalize()
	}
	return nil
}

// Add crea el pedido en pending con createdAt del servidor. No mueve stock:
// eso ocurre recién al marcar delivered.
func (uc *UseCase) Add(ctx context.Context, in AddInput) (*entity.Order, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	o := &entity.Order{
		ID:            uuid.New().String(),
		CustomerName:  in.CustomerName,
		CustomerPhone: in.CustomerPhone,
		Items:         in.Items,
		ItemsTotal:    in.ItemsTotal,
		ShippingCost:  in.ShippingCost,
		Total:         in.ItemsTotal.Add(in.ShippingCost),
		DeliveryType:  in.DeliveryType,
		Address:       in.Address,
		Status:        entity.OrderStatusPending,
		ScheduledDate: in.ScheduledDate,
		Observations:  in.Observations,
	}
	if err := uc.orders.Create(o); err != nil {
		return nil, err
	}
	return o, nil
}

// MarkAsDelivered descuenta el stock de todos los ítems y pasa el pedido a
// delivered estampando actualDeliveryDate, en UNA transacción atómica (un
// fallo a mitad de camino no deja stock parcialmente ajustado). Solo válido
// desde pending.
func (uc *UseCase) MarkAsDelivered(ctx context.Context, orderID string) error {
	if orderID == "" {
		return domain.ErrOrderMissingID
	}
	return uc.txRunner.RunOrder(ctx, func(
		products repository.ProductRepository,
		orders repository.OrderRepository,
		_ repository.SaleRepository,
	) error {
		o, err := uc.getForUpdate(orders, orderID)
		if err != nil {
			return err
		}
		if o.Status != entity.OrderStatusPending {
			return fmt.Errorf("%w: %s → delivered", domain.ErrInvalidOrderStatus, o.Status)
		}
		if err := stock.ReserveAll(products, o.Items); err != nil {
			return err
		}
		return orders.MarkDelivered(orderID)
	})
}

// Finalize convierte el pedido entregado en venta registrada: escribe la venta
// con sale_type order en modo sin efecto de stock (el stock ya se movió en la
// entrega) y pasa el pedido a finished estampando paymentDate y closingDate.
// Solo válido desde delivered.
func (uc *UseCase) Finalize(ctx context.Context, orderID, paymentMethod string) (*entity.Sale, error) {
	if orderID == "" {
		return nil, domain.ErrOrderMissingID
	}
	if !entity.ValidPaymentMethod(paymentMethod) {
		return nil, domain.ErrInvalidInput
	}
	var created *entity.Sale
	err := uc.txRunner.RunOrder(ctx, func(
		_ repository.ProductRepository,
		orders repository.OrderRepository,
		sales repository.SaleRepository,
	) error {
		o, err := uc.getForUpdate(orders, orderID)
		if err != nil {
			return err
		}
		if o.Status != entity.OrderStatusDelivered {
			return fmt.Errorf("%w: %s → finished", domain.ErrInvalidOrderStatus, o.Status)
		}
		s, err := uc.saleUC.RegisterInTx(sales, sale.ProcessInput{
			Items:         o.Items,
			Total:         o.Total, // incluye el flete en el valor final de la venta
			PaymentMethod: paymentMethod,
			SaleType:      entity.SaleTypeOrder,
		})
		if err != nil {
			return err
		}
		if err := orders.MarkFinished(orderID); err != nil {
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

// Cancel cancela el pedido. Desde delivered repone el stock de todos los ítems
// (compensa el descuento de la entrega) antes de marcar canceled; desde pending
// el stock nunca se movió, así que solo cambia el estado. Un pedido ya
// canceled es no-op (nunca doble abono de stock); finished no se puede cancelar.
func (uc *UseCase) Cancel(ctx context.Context, orderID string) error {
	if orderID == "" {
		return domain.ErrOrderMissingID
	}
	return uc.txRunner.RunOrder(ctx, func(
		products repository.ProductRepository,
		orders repository.OrderRepository,
		_ repository.SaleRepository,
	) error {
		o, err := uc.getForUpdate(orders, orderID)
		if err != nil {
			return err
		}
		switch o.Status {
		case entity.OrderStatusCanceled:
			return nil
		case entity.OrderStatusFinished:
			return fmt.Errorf("%w: finished → canceled", domain.ErrInvalidOrderStatus)
		case entity.OrderStatusDelivered:
			if err := stock.RestoreAll(products, o.Items); err != nil {
				return err
			}
		}
		return orders.MarkCanceled(orderID)
	})
}

// GetByID obtiene un pedido con sus ítems.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	o, err := uc.orders.GetByID(id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrOrderNotFound, id)
	}
	return o, nil
}

// List lista todos los pedidos, más recientes primero.
func (uc *UseCase) List(ctx context.Context) ([]*entity.Order, error) {
	return uc.orders.List(ctx)
}

// ListActive filtra del lado de la aplicación los pedidos aún en curso sobre el
// stream completo ordenado por fecha (evita exigir un índice compuesto en la BD).
func (uc *UseCase) ListActive(ctx context.Context) ([]*entity.Order, error) {
	all, err := uc.orders.List(ctx)
	if err != nil {
		return nil, err
	}
	active := make([]*entity.Order, 0, len(all))
	for _, o := range all {
		if o.Active() {
			active = append(active, o)
		}
	}
	return active, nil
}

func (uc *UseCase) getForUpdate(orders repository.OrderRepository, id string) (*entity.Order, error) {
	o, err := orders.GetForUpdate(id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrOrderNotFound, id)
	}
	return o, nil
}
