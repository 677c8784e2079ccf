package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Máquina de estados del pedido: pending → delivered → finished,
// con canceled alcanzable desde pending o delivered. finished y canceled son terminales.
const (
	OrderStatusPending   = "pending"
	OrderStatusDelivered = "delivered"
	OrderStatusFinished  = "finished"
	OrderStatusCanceled  = "canceled"
)

// Tipo de entrega del pedido agendado.
const (
	DeliveryTypePickup   = "pickup"
	DeliveryTypeDelivery = "delivery"
)

// Order es un pedido agendado (entrega o retiro). El stock se descuenta al
// marcar delivered; finalizar crea la venta SIN volver a tocar stock; cancelar
// desde delivered repone el stock (compensación), desde pending no hay nada que reponer.
type Order struct {
	ID            string
	CustomerName  string
	CustomerPhone string
	Items         []LineItem
	ItemsTotal    decimal.Decimal
	ShippingCost  decimal.Decimal
	Total         decimal.Decimal // itemsTotal + shippingCost, calculado en el servidor
	DeliveryType  string
	Address       string
	Status        string
	CreatedAt     time.Time
	ScheduledDate time.Time
	// Cada fecha de estado se estampa exactamente una vez, la primera vez
	// que se alcanza ese estado.
	ActualDeliveryDate *time.Time
	PaymentDate        *time.Time
	ClosingDate        *time.Time
	Observations       string
}

// Terminal indica si el estado no admite más transiciones.
func (o *Order) Terminal() bool {
	return o.Status == OrderStatusFinished || o.Status == OrderStatusCanceled
}

// Active indica si el pedido sigue en curso (para el stream de pedidos activos).
func (o *Order) Active() bool {
	return !o.Terminal()
}
