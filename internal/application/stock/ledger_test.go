package stock_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Comandas-api/internal/application/stock"
	"github.com/jhoicas/Comandas-api/internal/apptest"
	"github.com/jhoicas/Comandas-api/internal/domain"
	"github.com/jhoicas/Comandas-api/internal/domain/entity"
)

func seedStore() *apptest.MemStore {
	store := apptest.NewMemStore()
	store.SeedProduct("p1", "Cerveja Lata", 5, decimal.NewFromInt(10), decimal.NewFromInt(4))
	store.SeedProduct("p2", "Caipirinha", 3, decimal.NewFromInt(15), decimal.NewFromInt(5))
	return store
}

func TestReserve_DescuentaStock(t *testing.T) {
	store := seedStore()
	err := stock.Reserve(store.ProductRepo(), "p1", 3)
	require.NoError(t, err)
	assert.EqualValues(t, 2, store.StockOf("p1"))
}

func TestReserve_StockInsuficiente_NoMuta(t *testing.T) {
	store := seedStore()
	err := stock.Reserve(store.ProductRepo(), "p1", 6)
	require.ErrorIs(t, err, domain.ErrInsufficientStock,
		"reservar más que el stock debe fallar con ErrInsufficientStock")
	assert.EqualValues(t, 5, store.StockOf("p1"), "un rechazo nunca muta el stock")
}

func TestReserve_ProductoNoExiste(t *testing.T) {
	store := seedStore()
	err := stock.Reserve(store.ProductRepo(), "ghost", 1)
	require.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestReserveAll_TodoONada(t *testing.T) {
	store := seedStore()
	items := []entity.LineItem{
		{ProductID: "p1", Quantity: 2},
		{ProductID: "p2", Quantity: 4}, // p2 solo tiene 3
	}
	err := stock.ReserveAll(store.ProductRepo(), items)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.EqualValues(t, 5, store.StockOf("p1"), "ningún ítem del carrito debe descontar si uno falla")
	assert.EqualValues(t, 3, store.StockOf("p2"))
}

func TestReserveAll_AcumulaLineasDelMismoProducto(t *testing.T) {
	store := seedStore()
	// Dos líneas del mismo producto que juntas exceden el stock (3+3 > 5).
	items := []entity.LineItem{
		{ProductID: "p1", Quantity: 3},
		{ProductID: "p1", Quantity: 3},
	}
	err := stock.ReserveAll(store.ProductRepo(), items)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.EqualValues(t, 5, store.StockOf("p1"))
}

func TestReserveAll_DescuentaTodos(t *testing.T) {
	store := seedStore()
	items := []entity.LineItem{
		{ProductID: "p1", Quantity: 2},
		{ProductID: "p2", Quantity: 3},
	}
	require.NoError(t, stock.ReserveAll(store.ProductRepo(), items))
	assert.EqualValues(t, 3, store.StockOf("p1"))
	assert.EqualValues(t, 0, store.StockOf("p2"))
}

func TestRestoreAll_ReponeStock(t *testing.T) {
	store := seedStore()
	items := []entity.LineItem{
		{ProductID: "p1", Quantity: 2},
		{ProductID: "p2", Quantity: 1},
	}
	require.NoError(t, stock.ReserveAll(store.ProductRepo(), items))
	require.NoError(t, stock.RestoreAll(store.ProductRepo(), items))
	assert.EqualValues(t, 5, store.StockOf("p1"), "reserve seguido de restore vuelve al stock original")
	assert.EqualValues(t, 3, store.StockOf("p2"))
}
