package report_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Comandas-api/internal/application/report"
	"github.com/jhoicas/Comandas-api/internal/application/sale"
	"github.com/jhoicas/Comandas-api/internal/apptest"
	"github.com/jhoicas/Comandas-api/internal/domain/entity"
)

func setup(t *testing.T) (*report.UseCase, *sale.UseCase, *apptest.MemStore) {
	t.Helper()
	store := apptest.NewMemStore()
	store.SeedProduct("p1", "Cerveja Lata", 100, decimal.NewFromInt(10), decimal.NewFromInt(4))
	store.SeedProduct("p2", "Caipirinha", 100, decimal.NewFromInt(15), decimal.NewFromInt(5))
	saleUC := sale.NewUseCase(store, store.SaleRepo())
	return report.NewUseCase(store.SaleRepo()), saleUC, store
}

func item(productID string, qty int64, priceAtSale, priceAtCost int64) entity.LineItem {
	return entity.LineItem{
		ProductID:   productID,
		ProductName: "Produto " + productID,
		Quantity:    qty,
		PriceAtSale: decimal.NewFromInt(priceAtSale),
		PriceAtCost: decimal.NewFromInt(priceAtCost),
	}
}

func sell(t *testing.T, uc *sale.UseCase, items ...entity.LineItem) {
	t.Helper()
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Subtotal())
	}
	_, err := uc.Process(context.Background(), sale.ProcessInput{
		Items:         items,
		Total:         total,
		PaymentMethod: entity.PaymentCash,
	})
	require.NoError(t, err)
}

func window() (time.Time, time.Time) {
	now := time.Now()
	return now.Add(-time.Hour), now.Add(time.Hour)
}

// Facturación, costo, lucro y margen sobre dos ventas mixtas.
func TestCompute_Agregado(t *testing.T) {
	rep, saleUC, _ := setup(t)

	sell(t, saleUC, item("p1", 3, 10, 4))                     // rev 30, cost 12
	sell(t, saleUC, item("p1", 1, 10, 4), item("p2", 2, 15, 5)) // rev 40, cost 14

	start, end := window()
	r, err := rep.Compute(context.Background(), start, end, "")
	require.NoError(t, err)

	assert.True(t, r.Revenue.Equal(decimal.NewFromInt(70)), "revenue: %s", r.Revenue)
	assert.True(t, r.Cost.Equal(decimal.NewFromInt(26)), "cost: %s", r.Cost)
	assert.True(t, r.Profit.Equal(decimal.NewFromInt(44)), "profit: %s", r.Profit)
	assert.Equal(t, 2, r.SalesCount)
	// 44/70 × 100
	want := decimal.NewFromInt(44).Div(decimal.NewFromInt(70)).Mul(decimal.NewFromInt(100))
	assert.True(t, r.Margin.Equal(want), "margin: %s", r.Margin)
}

// Con filtro de producto solo suman sus ítems, y la venta mixta cuenta UNA vez.
func TestCompute_FiltroPorProducto(t *testing.T) {
	rep, saleUC, _ := setup(t)

	sell(t, saleUC, item("p1", 3, 10, 4))
	sell(t, saleUC, item("p1", 1, 10, 4), item("p2", 2, 15, 5))
	sell(t, saleUC, item("p2", 1, 15, 5))

	start, end := window()
	r, err := rep.Compute(context.Background(), start, end, "p1")
	require.NoError(t, err)

	assert.True(t, r.Revenue.Equal(decimal.NewFromInt(40)), "solo los ítems de p1 suman")
	assert.True(t, r.Cost.Equal(decimal.NewFromInt(16)))
	assert.Equal(t, 2, r.SalesCount, "la venta mixta cuenta una sola vez; la de p2 puro no cuenta")
}

// Rango sin ventas: todo en cero y margen 0 (sin división por cero).
func TestCompute_RangoVacio(t *testing.T) {
	rep, saleUC, _ := setup(t)
	sell(t, saleUC, item("p1", 1, 10, 4))

	past := time.Now().Add(-48 * time.Hour)
	r, err := rep.Compute(context.Background(), past, past.Add(time.Hour), "")
	require.NoError(t, err)

	assert.True(t, r.Revenue.IsZero())
	assert.True(t, r.Cost.IsZero())
	assert.True(t, r.Profit.IsZero())
	assert.True(t, r.Margin.IsZero())
	assert.Zero(t, r.SalesCount)
}

// Venta a precio de costo: lucro y margen cero, sin error.
func TestCompute_MargenCeroConFacturacion(t *testing.T) {
	rep, saleUC, _ := setup(t)
	sell(t, saleUC, item("p1", 2, 4, 4))

	start, end := window()
	r, err := rep.Compute(context.Background(), start, end, "")
	require.NoError(t, err)

	assert.True(t, r.Revenue.Equal(decimal.NewFromInt(8)))
	assert.True(t, r.Profit.IsZero())
	assert.True(t, r.Margin.IsZero())
}
