package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Comandas-api/internal/domain/entity"
)

// Las tablas sale_items, comanda_items y order_items comparten esquema: la
// columna padre cambia, las líneas son idénticas. Estos helpers concentran el
// insert y la carga ordenada por posición.

func insertLineItems(q Querier, table, parentCol, parentID string, items []entity.LineItem) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, position, product_id, product_name, quantity, price_at_sale, price_at_cost)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`, table, parentCol)
	for i, item := range items {
		_, err := q.Exec(context.Background(), query,
			parentID, i, item.ProductID, item.ProductName,
			item.Quantity, item.PriceAtSale, item.PriceAtCost)
		if err != nil {
			return err
		}
	}
	return nil
}

func loadLineItems(q Querier, table, parentCol, parentID string) ([]entity.LineItem, error) {
	query := fmt.Sprintf(`
		SELECT product_id, product_name, quantity, price_at_sale, price_at_cost
		FROM %s WHERE %s = $1 ORDER BY position`, table, parentCol)
	rows, err := q.Query(context.Background(), query, parentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []entity.LineItem
	for rows.Next() {
		var it entity.LineItem
		if err := rows.Scan(&it.ProductID, &it.ProductName, &it.Quantity, &it.PriceAtSale, &it.PriceAtCost); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func replaceLineItems(q Querier, table, parentCol, parentID string, items []entity.LineItem) error {
	_, err := q.Exec(context.Background(),
		fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, table, parentCol), parentID)
	if err != nil {
		return err
	}
	return insertLineItems(q, table, parentCol, parentID, items)
}
