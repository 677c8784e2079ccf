package purchase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Comandas-api/internal/application/purchase"
	"github.com/jhoicas/Comandas-api/internal/apptest"
	"github.com/jhoicas/Comandas-api/internal/domain"
)

func newUseCase(t *testing.T) (*purchase.UseCase, *apptest.MemStore) {
	t.Helper()
	store := apptest.NewMemStore()
	store.SeedProduct("p1", "Cerveja Lata", 2, decimal.NewFromInt(10), decimal.NewFromInt(4))
	return purchase.NewUseCase(store, store.PurchaseRepo()), store
}

// Escenario C: compra de 10 unidades a 5 sobre stock 2 → stock 12, buyPrice 5.
func TestAdd_IncrementaStockYActualizaCosto(t *testing.T) {
	uc, store := newUseCase(t)

	p, err := uc.Add(context.Background(), "p1", 10, decimal.NewFromInt(5))
	require.NoError(t, err)

	assert.EqualValues(t, 12, store.StockOf("p1"))
	assert.True(t, store.Products["p1"].BuyPrice.Equal(decimal.NewFromInt(5)),
		"la compra sobrescribe buyPrice con el último costo pagado")
	require.Len(t, store.Purchases, 1)
	assert.False(t, p.Date.IsZero(), "la fecha la estampa el almacén")
}

func TestAdd_ProductoNoExiste(t *testing.T) {
	uc, store := newUseCase(t)

	_, err := uc.Add(context.Background(), "ghost", 5, decimal.NewFromInt(3))
	require.ErrorIs(t, err, domain.ErrProductNotFound)
	assert.Empty(t, store.Purchases, "no debe quedar registro de compra")
}

func TestAdd_EntradaInvalida(t *testing.T) {
	uc, _ := newUseCase(t)

	_, err := uc.Add(context.Background(), "p1", 0, decimal.NewFromInt(3))
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Add(context.Background(), "p1", 5, decimal.NewFromInt(-1))
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDelete_EstornaStockYBorraRegistro(t *testing.T) {
	uc, store := newUseCase(t)

	p, err := uc.Add(context.Background(), "p1", 10, decimal.NewFromInt(5))
	require.NoError(t, err)
	require.EqualValues(t, 12, store.StockOf("p1"))

	require.NoError(t, uc.Delete(context.Background(), p.ID))

	assert.EqualValues(t, 2, store.StockOf("p1"))
	assert.Empty(t, store.Purchases, "la compra sí se borra (a diferencia de la venta)")
}

// Guarda de reversa: si el stock actual no cubre la cantidad, el estorno se niega.
func TestDelete_EstornoDenegado(t *testing.T) {
	uc, store := newUseCase(t)

	p, err := uc.Add(context.Background(), "p1", 10, decimal.NewFromInt(5))
	require.NoError(t, err)

	// Simula ventas posteriores: queda menos stock que la cantidad comprada.
	store.Products["p1"].Stock = 4

	err = uc.Delete(context.Background(), p.ID)
	require.ErrorIs(t, err, domain.ErrInsufficientStockForReversal)
	assert.EqualValues(t, 4, store.StockOf("p1"), "el stock no debe mutar ante el rechazo")
	assert.Len(t, store.Purchases, 1, "el registro de compra debe seguir existiendo")
}

func TestDelete_CompraNoExiste(t *testing.T) {
	uc, _ := newUseCase(t)
	err := uc.Delete(context.Background(), "ghost")
	require.ErrorIs(t, err, domain.ErrPurchaseNotFound)
}
