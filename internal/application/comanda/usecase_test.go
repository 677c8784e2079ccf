package comanda_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Comandas-api/internal/application/comanda"
	"github.com/jhoicas/Comandas-api/internal/application/sale"
	"github.com/jhoicas/Comandas-api/internal/apptest"
	"github.com/jhoicas/Comandas-api/internal/domain"
	"github.com/jhoicas/Comandas-api/internal/domain/entity"
)

func newUseCase(t *testing.T) (*comanda.UseCase, *apptest.MemStore) {
	t.Helper()
	store := apptest.NewMemStore()
	store.SeedProduct("p1", "Cerveja Lata", 10, decimal.NewFromInt(10), decimal.NewFromInt(4))
	store.SeedProduct("p2", "Caipirinha", 3, decimal.NewFromInt(15), decimal.NewFromInt(5))
	saleUC := sale.NewUseCase(store, store.SaleRepo())
	return comanda.NewUseCase(store, store.ComandaRepo(), saleUC), store
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

// Abrir la comanda reserva el stock de inmediato, no al cerrar.
func TestOpen_ReservaStockAlAbrir(t *testing.T) {
	uc, store := newUseCase(t)

	c, err := uc.Open(context.Background(), "Mesa 4",
		[]entity.LineItem{item("p1", 2, 10)}, decimal.NewFromInt(20))
	require.NoError(t, err)

	assert.EqualValues(t, 8, store.StockOf("p1"))
	assert.Equal(t, entity.ComandaStatusOpen, c.Status)
	assert.False(t, c.CreatedAt.IsZero(), "la fecha de apertura la estampa el almacén")
}

func TestOpen_StockInsuficiente_NoCreaComanda(t *testing.T) {
	uc, store := newUseCase(t)

	_, err := uc.Open(context.Background(), "Mesa 4",
		[]entity.LineItem{item("p2", 4, 15)}, decimal.NewFromInt(60))
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.EqualValues(t, 3, store.StockOf("p2"))
	assert.Empty(t, store.Comandas, "la comanda no debe quedar registrada")
}

func TestOpen_EntradaInvalida(t *testing.T) {
	uc, _ := newUseCase(t)

	_, err := uc.Open(context.Background(), "", []entity.LineItem{item("p1", 1, 10)}, decimal.NewFromInt(10))
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Open(context.Background(), "Mesa 4", nil, decimal.Zero)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Agregar el mismo producto acumula cantidad en una sola línea.
func TestAddItems_MezclaPorProducto(t *testing.T) {
	uc, store := newUseCase(t)

	c, err := uc.Open(context.Background(), "Mesa 4",
		[]entity.LineItem{item("p1", 2, 10)}, decimal.NewFromInt(20))
	require.NoError(t, err)

	err = uc.AddItems(context.Background(), c.ID, []entity.LineItem{
		item("p1", 3, 10),
		item("p2", 1, 15),
	}, decimal.NewFromInt(45))
	require.NoError(t, err)

	got := store.Comandas[c.ID]
	require.Len(t, got.Items, 2, "mismo producto acumula, producto nuevo agrega línea")
	assert.EqualValues(t, 5, got.Items[0].Quantity)
	assert.Equal(t, "p2", got.Items[1].ProductID)
	assert.True(t, got.Total.Equal(decimal.NewFromInt(65)), "el total suma el adicional")
	assert.EqualValues(t, 5, store.StockOf("p1"))
	assert.EqualValues(t, 2, store.StockOf("p2"))
}

func TestAddItems_StockInsuficiente_NoMutaNada(t *testing.T) {
	uc, store := newUseCase(t)

	c, err := uc.Open(context.Background(), "Mesa 4",
		[]entity.LineItem{item("p1", 2, 10)}, decimal.NewFromInt(20))
	require.NoError(t, err)

	err = uc.AddItems(context.Background(), c.ID,
		[]entity.LineItem{item("p2", 4, 15)}, decimal.NewFromInt(60))
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	got := store.Comandas[c.ID]
	assert.Len(t, got.Items, 1, "los ítems de la comanda no deben cambiar")
	assert.True(t, got.Total.Equal(decimal.NewFromInt(20)))
	assert.EqualValues(t, 3, store.StockOf("p2"))
}

func TestAddItems_ComandaCerrada(t *testing.T) {
	uc, store := newUseCase(t)

	c, err := uc.Open(context.Background(), "Mesa 4",
		[]entity.LineItem{item("p1", 2, 10)}, decimal.NewFromInt(20))
	require.NoError(t, err)
	require.NoError(t, uc.Close(context.Background(), c.ID))

	err = uc.AddItems(context.Background(), c.ID,
		[]entity.LineItem{item("p1", 1, 10)}, decimal.NewFromInt(10))
	require.ErrorIs(t, err, domain.ErrComandaClosed)
	assert.EqualValues(t, 8, store.StockOf("p1"), "nada debe descontarse sobre una comanda cerrada")
}

func TestAddItems_ComandaNoExiste(t *testing.T) {
	uc, _ := newUseCase(t)
	err := uc.AddItems(context.Background(), "ghost",
		[]entity.LineItem{item("p1", 1, 10)}, decimal.NewFromInt(10))
	require.ErrorIs(t, err, domain.ErrComandaNotFound)
}

// Cerrar es un cambio de estado puro: ni stock ni ventas.
func TestClose_NoTocaStockNiVentas(t *testing.T) {
	uc, store := newUseCase(t)

	c, err := uc.Open(context.Background(), "Mesa 4",
		[]entity.LineItem{item("p1", 2, 10)}, decimal.NewFromInt(20))
	require.NoError(t, err)

	require.NoError(t, uc.Close(context.Background(), c.ID))

	got := store.Comandas[c.ID]
	assert.Equal(t, entity.ComandaStatusClosed, got.Status)
	require.NotNil(t, got.ClosedAt)
	assert.EqualValues(t, 8, store.StockOf("p1"))
	assert.Empty(t, store.Sales, "cerrar sin liquidar no registra venta")
}

func TestClose_Duplicado(t *testing.T) {
	uc, _ := newUseCase(t)

	c, err := uc.Open(context.Background(), "Mesa 4",
		[]entity.LineItem{item("p1", 1, 10)}, decimal.NewFromInt(10))
	require.NoError(t, err)
	require.NoError(t, uc.Close(context.Background(), c.ID))

	err = uc.Close(context.Background(), c.ID)
	require.ErrorIs(t, err, domain.ErrComandaClosed)
}

// Settle escribe la venta de pago y cierra la comanda sin volver a descontar
// stock: las unidades ya se reservaron al abrir y agregar.
func TestSettle_VentaSinDobleDescuento(t *testing.T) {
	uc, store := newUseCase(t)

	c, err := uc.Open(context.Background(), "Mesa 4",
		[]entity.LineItem{item("p1", 2, 10), item("p2", 1, 15)}, decimal.NewFromInt(35))
	require.NoError(t, err)
	require.EqualValues(t, 8, store.StockOf("p1"))
	require.EqualValues(t, 2, store.StockOf("p2"))

	s, err := uc.Settle(context.Background(), c.ID, entity.PaymentPix)
	require.NoError(t, err)

	assert.EqualValues(t, 8, store.StockOf("p1"), "liquidar no descuenta de nuevo")
	assert.EqualValues(t, 2, store.StockOf("p2"))
	assert.True(t, s.Total.Equal(decimal.NewFromInt(35)))
	assert.Equal(t, entity.SaleTypeCounter, s.SaleType)
	require.Len(t, store.Sales, 1)
	assert.Equal(t, entity.ComandaStatusClosed, store.Comandas[c.ID].Status)
}

func TestSettle_ComandaYaCerrada(t *testing.T) {
	uc, store := newUseCase(t)

	c, err := uc.Open(context.Background(), "Mesa 4",
		[]entity.LineItem{item("p1", 1, 10)}, decimal.NewFromInt(10))
	require.NoError(t, err)
	_, err = uc.Settle(context.Background(), c.ID, entity.PaymentCash)
	require.NoError(t, err)

	_, err = uc.Settle(context.Background(), c.ID, entity.PaymentCash)
	require.ErrorIs(t, err, domain.ErrComandaClosed)
	assert.Len(t, store.Sales, 1, "una segunda liquidación no duplica la venta")
}

func TestSettle_MetodoPagoInvalido(t *testing.T) {
	uc, _ := newUseCase(t)
	_, err := uc.Settle(context.Background(), "c1", "cheque")
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestListOpen_SoloAbiertas(t *testing.T) {
	uc, _ := newUseCase(t)

	a, err := uc.Open(context.Background(), "Mesa 1",
		[]entity.LineItem{item("p1", 1, 10)}, decimal.NewFromInt(10))
	require.NoError(t, err)
	b, err := uc.Open(context.Background(), "Mesa 2",
		[]entity.LineItem{item("p1", 1, 10)}, decimal.NewFromInt(10))
	require.NoError(t, err)
	require.NoError(t, uc.Close(context.Background(), a.ID))

	open, err := uc.ListOpen(context.Background())
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, b.ID, open[0].ID)
}
