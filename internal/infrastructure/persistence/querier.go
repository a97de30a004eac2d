package persistence

import (
	"context"
	"database/sql"
)

// Querier es la superficie común de *sql.DB y *sql.Tx; los repositorios la aceptan para
// funcionar igual dentro o fuera de una transacción.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ Querier = (*sql.DB)(nil)
	_ Querier = (*sql.Tx)(nil)
)

type scanner interface {
	Scan(dest ...any) error
}
