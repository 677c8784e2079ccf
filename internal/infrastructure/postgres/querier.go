package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier es el subconjunto de la API de pgx común a *pgxpool.Pool y pgx.Tx.
// Los adaptadores de este paquete lo reciben para poder operar igual atados al
// pool (lecturas sueltas) o a una transacción (escrituras del TxRunner).
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}
