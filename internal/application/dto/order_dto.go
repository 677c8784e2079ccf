package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Comandas-api/internal/domain/entity"
)

// AddOrderRequest creación de un pedido agendado. No acepta total: lo calcula
// el servidor como itemsTotal + shippingCost.
type AddOrderRequest struct {
	CustomerName  string          `json:"customerName"`
	CustomerPhone string          `json:"customerPhone"`
	Items         []LineItemDTO   `json:"items"`
	ItemsTotal    decimal.Decimal `json:"itemsTotal"`
	ShippingCost  decimal.Decimal `json:"shippingCost"`
	DeliveryType  string          `json:"deliveryType"`
	Address       string          `json:"address"`
	ScheduledDate time.Time       `json:"scheduledDate"`
	Observations  string          `json:"observations"`
}

// FinalizeOrderRequest pago del pedido entregado.
type FinalizeOrderRequest struct {
	PaymentMethod string `json:"paymentMethod"`
}

// OrderResponse representación de un pedido.
type OrderResponse struct {
	ID                 string          `json:"id"`
	CustomerName       string          `json:"customerName"`
	CustomerPhone      string          `json:"customerPhone,omitempty"`
	Items              []LineItemDTO   `json:"items"`
	ItemsTotal         decimal.Decimal `json:"itemsTotal"`
	ShippingCost       decimal.Decimal `json:"shippingCost"`
	Total              decimal.Decimal `json:"total"`
	DeliveryType       string          `json:"deliveryType"`
	Address            string          `json:"address,omitempty"`
	Status             string          `json:"status"`
	CreatedAt          time.Time       `json:"createdAt"`
	ScheduledDate      time.Time       `json:"scheduledDate"`
	ActualDeliveryDate *time.Time      `json:"actualDeliveryDate,omitempty"`
	PaymentDate        *time.Time      `json:"paymentDate,omitempty"`
	ClosingDate        *time.Time      `json:"closingDate,omitempty"`
	Observations       string          `json:"observations,omitempty"`
}

// OrderFromEntity arma la respuesta desde la entidad.
func OrderFromEntity(o *entity.Order) OrderResponse {
	return OrderResponse{
		ID:                 o.ID,
		CustomerName:       o.CustomerName,
		CustomerPhone:      o.CustomerPhone,
		Items:              LineItemsFromEntity(o.Items),
		ItemsTotal:         o.ItemsTotal,
		ShippingCost:       o.ShippingCost,
		Total:              o.Total,
		DeliveryType:       o.DeliveryType,
		Address:            o.Address,
		Status:             o.Status,
		CreatedAt:          o.CreatedAt,
		ScheduledDate:      o.ScheduledDate,
		ActualDeliveryDate: o.ActualDeliveryDate,
		PaymentDate:        o.PaymentDate,
		ClosingDate:        o.ClosingDate,
		Observations:       o.Observations,
	}
}

// OrdersFromEntity arma la lista de respuestas.
func OrdersFromEntity(list []*entity.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, OrderFromEntity(o))
	}
	return out
}
