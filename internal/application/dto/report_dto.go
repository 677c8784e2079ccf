package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Comandas-api/internal/application/report"
)

// ReportResponse reporte financiero del rango consultado.
type ReportResponse struct {
	Revenue    decimal.Decimal `json:"revenue"`
	Cost       decimal.Decimal `json:"cost"`
	Profit     decimal.Decimal `json:"profit"`
	SalesCount int             `json:"salesCount"`
	Margin     decimal.Decimal `json:"margin"`
}

// ReportFromResult arma la respuesta desde el resultado del agregador.
func ReportFromResult(r *report.Report) ReportResponse {
	return ReportResponse{
		Revenue:    r.Revenue,
		Cost:       r.Cost,
		Profit:     r.Profit,
		SalesCount: r.SalesCount,
		Margin:     r.Margin,
	}
}
