// Package stock implementa la disciplina del libro de stock: las dos
// primitivas guardadas (reserve decrementa con chequeo de suficiencia,
// restore incrementa sin condición) que usan todos los demás componentes.
//
// Todas las funciones operan sobre un ProductRepository atado a la
// transacción del caller (TxRunner); fuera de una transacción no garantizan nada.
package stock

import (
	"fmt"
	"sort"

	"github.com/jhoicas/Comandas-api/internal/domain"
	"github.com/jhoicas/Comandas-api/internal/domain/entity"
	"github.com/jhoicas/Comandas-api/internal/domain/repository"
)

// Reserve descuenta qty del stock de un producto con chequeo de suficiencia.
// Bloquea la fila (FOR UPDATE), valida stock >= qty y recién entonces escribe.
// Un rechazo nunca muta el stock.
func Reserve(products repository.ProductRepository, productID string, qty int64) error {
	product, err := products.GetForUpdate(productID)
	if err != nil {
		return err
	}
	if product == nil {
		return fmt.Errorf("%w: %s", domain.ErrProductNotFound, productID)
	}
	if product.Stock < qty {
		return fmt.Errorf("%w: %s", domain.ErrInsufficientStock, productID)
	}
	return products.UpdateStock(productID, product.Stock-qty)
}

// ReserveAll reserva stock para todos los ítems como una unidad: primero TODAS
// las lecturas (FOR UPDATE, en orden de productID para evitar deadlocks) y la
// validación completa, después TODAS las escrituras. Si un solo ítem falla,
// ningún decremento se escribe y el error identifica al producto ofensor.
func ReserveAll(products repository.ProductRepository, items []entity.LineItem) error {
	ids, qtyByID := aggregate(items)

	stockByID := make(map[string]int64, len(ids))
	for _, id := range ids {
		product, err := products.GetForUpdate(id)
		if err != nil {
			return err
		}
		if product == nil {
			return fmt.Errorf("%w: %s", domain.ErrProductNotFound, id)
		}
		if product.Stock < qtyByID[id] {
			return fmt.Errorf("%w: %s", domain.ErrInsufficientStock, id)
		}
		stockByID[id] = product.Stock
	}

	for _, id := range ids {
		if err := products.UpdateStock(id, stockByID[id]-qtyByID[id]); err != nil {
			return err
		}
	}
	return nil
}

// Restore repone qty unidades al stock de un producto. Nunca falla por
// suficiencia; los callers son responsables de invocarlo bajo guarda de estado
// (chequear que la venta/pedido no esté ya cancelado) para no duplicar el abono.
func Restore(products repository.ProductRepository, productID string, qty int64) error {
	return products.AddStock(productID, qty)
}

// RestoreAll repone el stock de todos los ítems (compensación de una
// cancelación) dentro de la transacción del caller.
func RestoreAll(products repository.ProductRepository, items []entity.LineItem) error {
	ids, qtyByID := aggregate(items)
	for _, id := range ids {
		if err := products.AddStock(id, qtyByID[id]); err != nil {
			return err
		}
	}
	return nil
}

// aggregate acumula cantidades por producto (un carrito puede repetir el mismo
// producto en varias líneas) y devuelve los IDs en orden estable.
func aggregate(items []entity.LineItem) ([]string, map[string]int64) {
	qtyByID := make(map[string]int64, len(items))
	for _, item := range items {
		qtyByID[item.ProductID] += item.Quantity
	}
	ids := make([]string, 0, len(qtyByID))
	for id := range qtyByID {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, qtyByID
}
