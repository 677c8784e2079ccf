package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Comandas-api/internal/domain/entity"
)

// AddPurchaseRequest registro de una entrada de stock.
type AddPurchaseRequest struct {
	ProductID  string          `json:"idProduct"`
	Amount     int64           `json:"amount"`
	UnityValue decimal.Decimal `json:"unityValue"`
}

// PurchaseResponse representación de una compra.
type PurchaseResponse struct {
	ID         string          `json:"id"`
	ProductID  string          `json:"idProduct"`
	Amount     int64           `json:"amount"`
	UnityValue decimal.Decimal `json:"unityValue"`
	Date       time.Time       `json:"date"`
}

// PurchaseFromEntity arma la respuesta desde la entidad.
func PurchaseFromEntity(p *entity.Purchase) PurchaseResponse {
	return PurchaseResponse{
		ID:         p.ID,
		ProductID:  p.ProductID,
		Amount:     p.Amount,
		UnityValue: p.UnityValue,
		Date:       p.Date,
	}
}

// PurchasesFromEntity arma la lista de respuestas.
func PurchasesFromEntity(list []*entity.Purchase) []PurchaseResponse {
	out := make([]PurchaseResponse, 0, len(list))
	for _, p := range list {
		out = append(out, PurchaseFromEntity(p))
	}
	return out
}
