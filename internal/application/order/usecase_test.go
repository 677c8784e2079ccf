package order_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Comandas-api/internal/application/order"
	"github.com/jhoicas/Comandas-api/internal/application/sale"
	"github.com/jhoicas/Comandas-api/internal/apptest"
	"github.com/jhoicas/Comandas-api/internal/domain"
	"github.com/jhoicas/Comandas-api/internal/domain/entity"
)

func newUseCase(t *testing.T) (*order.UseCase, *apptest.MemStore) {
	t.Helper()
	store := apptest.NewMemStore()
	store.SeedProduct("p1", "Cerveja Lata", 10, decimal.NewFromInt(10), decimal.NewFromInt(4))
	store.SeedProduct("p2", "Caipirinha", 3, decimal.NewFromInt(15), decimal.NewFromInt(5))
	saleUC := sale.NewUseCase(store, store.SaleRepo())
	return order.NewUseCase(store, store.OrderRepo(), saleUC), store
}

func addInput(items ...entity.LineItem) order.AddInput {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Subtotal())
	}
	return order.AddInput{
		CustomerName:  "João",
		CustomerPhone: "11 99999-0000",
		Items:         items,
		ItemsTotal:    total,
		ShippingCost:  decimal.NewFromInt(5),
		DeliveryType:  entity.DeliveryTypeDelivery,
		Address:       "Rua das Flores 123",
		ScheduledDate: time.Now().Add(24 * time.Hour),
	}
}

func item(productID string, qty int64, priceAtSale int64) entity.LineItem {
	return entity.LineItem{
		ProductID:   productID,
		ProductName: "Produto " + productID,
		Quantity:    qty,
		PriceAtSale: decimal.NewFromInt(priceAtSale),
		PriceAtCost: decimal.NewFromInt(4),
	}
}

// Crear el pedido no mueve stock: el movimiento ocurre al entregar.
func TestAdd_NoMueveStock(t *testing.T) {
	uc, store := newUseCase(t)

	o, err := uc.Add(context.Background(), addInput(item("p1", 3, 10)))
	require.NoError(t, err)

	assert.EqualValues(t, 10, store.StockOf("p1"))
	assert.Equal(t, entity.OrderStatusPending, o.Status)
	assert.False(t, o.CreatedAt.IsZero(), "createdAt lo estampa el almacén")
}

// El total nunca se acepta del cliente: itemsTotal + shippingCost.
func TestAdd_TotalCalculadoEnServidor(t *testing.T) {
	uc, _ := newUseCase(t)

	in := addInput(item("p1", 3, 10)) // itemsTotal 30, flete 5
	o, err := uc.Add(context.Background(), in)
	require.NoError(t, err)
	assert.True(t, o.Total.Equal(decimal.NewFromInt(35)))
}

func TestAdd_DeliverySinDireccion(t *testing.T) {
	uc, _ := newUseCase(t)

	in := addInput(item("p1", 1, 10))
	in.Address = ""
	_, err := uc.Add(context.Background(), in)
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	// Retiro en mostrador no exige dirección.
	in.DeliveryType = entity.DeliveryTypePickup
	_, err = uc.Add(context.Background(), in)
	require.NoError(t, err)
}

func TestAdd_EntradaInvalida(t *testing.T) {
	uc, _ := newUseCase(t)

	in := addInput(item("p1", 1, 10))
	in.CustomerName = ""
	_, err := uc.Add(context.Background(), in)
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	in = addInput(item("p1", 1, 10))
	in.ShippingCost = decimal.NewFromInt(-1)
	_, err = uc.Add(context.Background(), in)
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	in = addInput()
	_, err = uc.Add(context.Background(), in)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Escenario D: pending → delivered descuenta stock y estampa la fecha real.
func TestMarkAsDelivered_DescuentaStock(t *testing.T) {
	uc, store := newUseCase(t)

	o, err := uc.Add(context.Background(), addInput(item("p1", 3, 10)))
	require.NoError(t, err)

	require.NoError(t, uc.MarkAsDelivered(context.Background(), o.ID))

	assert.EqualValues(t, 7, store.StockOf("p1"))
	got := store.Orders[o.ID]
	assert.Equal(t, entity.OrderStatusDelivered, got.Status)
	require.NotNil(t, got.ActualDeliveryDate)
}

// Si el stock no alcanza al momento de entregar, nada cambia: ni stock parcial
// ni estado delivered.
func TestMarkAsDelivered_StockInsuficiente_Atomico(t *testing.T) {
	uc, store := newUseCase(t)

	o, err := uc.Add(context.Background(), addInput(item("p1", 2, 10), item("p2", 4, 15)))
	require.NoError(t, err)

	err = uc.MarkAsDelivered(context.Background(), o.ID)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.EqualValues(t, 10, store.StockOf("p1"), "el primer ítem no debe quedar descontado")
	assert.EqualValues(t, 3, store.StockOf("p2"))
	assert.Equal(t, entity.OrderStatusPending, store.Orders[o.ID].Status)
}

func TestMarkAsDelivered_TransicionInvalida(t *testing.T) {
	uc, store := newUseCase(t)

	o, err := uc.Add(context.Background(), addInput(item("p1", 1, 10)))
	require.NoError(t, err)
	require.NoError(t, uc.MarkAsDelivered(context.Background(), o.ID))

	err = uc.MarkAsDelivered(context.Background(), o.ID)
	require.ErrorIs(t, err, domain.ErrInvalidOrderStatus)
	assert.EqualValues(t, 9, store.StockOf("p1"), "la segunda entrega no debe descontar de nuevo")
}

func TestMarkAsDelivered_SinID(t *testing.T) {
	uc, _ := newUseCase(t)
	err := uc.MarkAsDelivered(context.Background(), "")
	require.ErrorIs(t, err, domain.ErrOrderMissingID)
}

// Finalizar crea la venta tipo order con el total del pedido (flete incluido)
// sin volver a mover stock, y estampa paymentDate y closingDate.
func TestFinalize_CreaVentaSinReDescontar(t *testing.T) {
	uc, store := newUseCase(t)

	o, err := uc.Add(context.Background(), addInput(item("p1", 3, 10)))
	require.NoError(t, err)
	require.NoError(t, uc.MarkAsDelivered(context.Background(), o.ID))
	require.EqualValues(t, 7, store.StockOf("p1"))

	s, err := uc.Finalize(context.Background(), o.ID, entity.PaymentPix)
	require.NoError(t, err)

	assert.EqualValues(t, 7, store.StockOf("p1"), "finalizar no toca el stock")
	assert.Equal(t, entity.SaleTypeOrder, s.SaleType)
	assert.True(t, s.Total.Equal(decimal.NewFromInt(35)), "la venta lleva el total con flete")
	got := store.Orders[o.ID]
	assert.Equal(t, entity.OrderStatusFinished, got.Status)
	require.NotNil(t, got.PaymentDate)
	require.NotNil(t, got.ClosingDate)
}

func TestFinalize_SoloDesdeDelivered(t *testing.T) {
	uc, store := newUseCase(t)

	o, err := uc.Add(context.Background(), addInput(item("p1", 1, 10)))
	require.NoError(t, err)

	_, err = uc.Finalize(context.Background(), o.ID, entity.PaymentCash)
	require.ErrorIs(t, err, domain.ErrInvalidOrderStatus)
	assert.Empty(t, store.Sales, "un pedido pending no puede generar venta")
}

func TestFinalize_MetodoPagoInvalido(t *testing.T) {
	uc, _ := newUseCase(t)
	_, err := uc.Finalize(context.Background(), "o1", "cheque")
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Escenario E: cancelar desde delivered repone el stock de la entrega.
func TestCancel_DesdeDelivered_ReponeStock(t *testing.T) {
	uc, store := newUseCase(t)

	o, err := uc.Add(context.Background(), addInput(item("p1", 3, 10)))
	require.NoError(t, err)
	require.NoError(t, uc.MarkAsDelivered(context.Background(), o.ID))
	require.EqualValues(t, 7, store.StockOf("p1"))

	require.NoError(t, uc.Cancel(context.Background(), o.ID))

	assert.EqualValues(t, 10, store.StockOf("p1"))
	assert.Equal(t, entity.OrderStatusCanceled, store.Orders[o.ID].Status)
}

// Desde pending el stock nunca se movió: cancelar solo cambia el estado.
func TestCancel_DesdePending_NoTocaStock(t *testing.T) {
	uc, store := newUseCase(t)

	o, err := uc.Add(context.Background(), addInput(item("p1", 3, 10)))
	require.NoError(t, err)

	require.NoError(t, uc.Cancel(context.Background(), o.ID))

	assert.EqualValues(t, 10, store.StockOf("p1"))
	assert.Equal(t, entity.OrderStatusCanceled, store.Orders[o.ID].Status)
}

// Doble cancelación: no-op, jamás doble abono de stock.
func TestCancel_Duplicado_NoDobleAbono(t *testing.T) {
	uc, store := newUseCase(t)

	o, err := uc.Add(context.Background(), addInput(item("p1", 3, 10)))
	require.NoError(t, err)
	require.NoError(t, uc.MarkAsDelivered(context.Background(), o.ID))
	require.NoError(t, uc.Cancel(context.Background(), o.ID))
	require.EqualValues(t, 10, store.StockOf("p1"))

	require.NoError(t, uc.Cancel(context.Background(), o.ID))
	assert.EqualValues(t, 10, store.StockOf("p1"), "el segundo cancel no debe abonar de nuevo")
}

func TestCancel_FinishedNoSePuedeCancelar(t *testing.T) {
	uc, _ := newUseCase(t)

	o, err := uc.Add(context.Background(), addInput(item("p1", 1, 10)))
	require.NoError(t, err)
	require.NoError(t, uc.MarkAsDelivered(context.Background(), o.ID))
	_, err = uc.Finalize(context.Background(), o.ID, entity.PaymentCash)
	require.NoError(t, err)

	err = uc.Cancel(context.Background(), o.ID)
	require.ErrorIs(t, err, domain.ErrInvalidOrderStatus)
}

func TestGetByID_NoExiste(t *testing.T) {
	uc, _ := newUseCase(t)
	_, err := uc.GetByID(context.Background(), "ghost")
	require.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestListActive_ExcluyeTerminales(t *testing.T) {
	uc, _ := newUseCase(t)

	a, err := uc.Add(context.Background(), addInput(item("p1", 1, 10)))
	require.NoError(t, err)
	b, err := uc.Add(context.Background(), addInput(item("p1", 1, 10)))
	require.NoError(t, err)
	c, err := uc.Add(context.Background(), addInput(item("p1", 1, 10)))
	require.NoError(t, err)

	require.NoError(t, uc.MarkAsDelivered(context.Background(), a.ID))
	require.NoError(t, uc.Cancel(context.Background(), b.ID))
	require.NoError(t, uc.MarkAsDelivered(context.Background(), c.ID))
	_, err = uc.Finalize(context.Background(), c.ID, entity.PaymentCash)
	require.NoError(t, err)

	active, err := uc.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, active, 1, "solo pending y delivered cuentan como activos")
	assert.Equal(t, a.ID, active[0].ID)
}
