// Package purchase registra entradas de stock (compras a proveedor) y su
// reversa guardada.
package purchase

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Comandas-api/internal/domain"
	"github.com/jhoicas/Comandas-api/internal/domain/entity"
	"github.com/jhoicas/Comandas-api/internal/domain/repository"
)

// TxRunner transacción con repositorios de productos y compras.
type TxRunner interface {
	RunPurchase(ctx context.Context, fn func(
		products repository.ProductRepository,
		purchases repository.PurchaseRepository,
	) error) error
}

// UseCase registra y revierte compras de forma transaccional: el incremento de
// stock, la sobrescritura de BuyPrice y el registro de la compra son una sola unidad.
type UseCase struct {
	txRunner  TxRunner
	purchases repository.PurchaseRepository
}

// NewUseCase construye el registrador de compras.
func NewUseCase(txRunner TxRunner, purchases repository.PurchaseRepository) *UseCase {
	return &UseCase{txRunner: txRunner, purchases: purchases}
}

// Add registra una compra: incrementa el stock del producto en amount,
// sobrescribe BuyPrice con el costo unitario pagado y escribe el registro de
// compra con fecha del servidor, todo en una transacción.
func (uc *UseCase) Add(ctx context.Context, productID string, amount int64, unityValue decimal.Decimal) (*entity.Purchase, error) {
	if productID == "" || amount <= 0 || unityValue.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	p := &entity.Purchase{
		ID:         uuid.New().String(),
		ProductID:  productID,
		Amount:     amount,
		UnityValue: unityValue,
	}
	err := uc.txRunner.RunPurchase(ctx, func(
		products repository.ProductRepository,
		purchases repository.PurchaseRepository,
	) error {
		product, err := products.GetForUpdate(productID)
		if err != nil {
			return err
		}
		if product == nil {
			return fmt.Errorf("%w: %s", domain.ErrProductNotFound, productID)
		}
		// Entrada sin validación de suficiencia: primitiva atómica de suma.
		if err := products.AddStock(productID, amount); err != nil {
			return err
		}
		if err := products.UpdateBuyPrice(productID, unityValue); err != nil {
			return err
		}
		return purchases.Create(p)
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Delete revierte una compra. Guarda de reversa: solo procede si el stock
// actual cubre la cantidad de la compra (el estorno nunca deja stock negativo).
// Descuenta el stock y borra el registro en la misma transacción.
func (uc *UseCase) Delete(ctx context.Context, purchaseID string) error {
	if purchaseID == "" {
		return domain.ErrInvalidInput
	}
	return uc.txRunner.RunPurchase(ctx, func(
		products repository.ProductRepository,
		purchases repository.PurchaseRepository,
	) error {
		p, err := purchases.GetForUpdate(purchaseID)
		if err != nil {
			return err
		}
		if p == nil {
			return fmt.Errorf("%w: %s", domain.ErrPurchaseNotFound, purchaseID)
		}
		product, err := products.GetForUpdate(p.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return fmt.Errorf("%w: %s", domain.ErrProductNotFound, p.ProductID)
		}
		if product.Stock < p.Amount {
			return domain.ErrInsufficientStockForReversal
		}
		if err := products.UpdateStock(p.ProductID, product.Stock-p.Amount); err != nil {
			return err
		}
		return purchases.Delete(purchaseID)
	})
}

// List lista el histórico de compras.
func (uc *UseCase) List(ctx context.Context) ([]*entity.Purchase, error) {
	return uc.purchases.List(ctx)
}
