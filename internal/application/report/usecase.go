// Package report calcula el reporte financiero sobre las ventas de un rango de
// fechas: facturación, costo, lucro y margen. Solo lectura, sin efectos.
package report

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Comandas-api/internal/domain/repository"
)

// Report resultado agregado del rango consultado.
type Report struct {
	Revenue    decimal.Decimal
	Cost       decimal.Decimal
	Profit     decimal.Decimal
	SalesCount int
	Margin     decimal.Decimal // lucro / facturación × 100; 0 si facturación es 0
}

// UseCase agregador de reportes.
type UseCase struct {
	sales repository.SaleRepository
}

// NewUseCase construye el agregador.
func NewUseCase(sales repository.SaleRepository) *UseCase {
	return &UseCase{sales: sales}
}

var hundred = decimal.NewFromInt(100)

// Compute lee las ventas con fecha en [start, end] y agrega por ítem:
// facturación = Σ precioVenta×cantidad, costo = Σ precioCosto×cantidad.
// Con productFilter solo cuentan los ítems de ese producto, y una venta se
// cuenta una única vez si al menos un ítem pasó el filtro.
func (uc *UseCase) Compute(ctx context.Context, start, end time.Time, productFilter string) (*Report, error) {
	sales, err := uc.sales.ListByDateRange(ctx, start, end)
	if err != nil {
		return nil, err
	}

	r := &Report{}
	for _, s := range sales {
		matched := false
		for _, item := range s.Items {
			if productFilter != "" && item.ProductID != productFilter {
				continue
			}
			r.Revenue = r.Revenue.Add(item.Subtotal())
			r.Cost = r.Cost.Add(item.CostSubtotal())
			matched = true
		}
		if matched {
			r.SalesCount++
		}
	}

	r.Profit = r.Revenue.Sub(r.Cost)
	if r.Revenue.GreaterThan(decimal.Zero) {
		r.Margin = r.Profit.Div(r.Revenue).Mul(hundred)
	}
	return r, nil
}
