// Package pgstore persists the dataset in PostgreSQL via pgx. It is the
// backend of choice when the CRM runs against a managed SQL instance; the
// leads table carries a unique index on place_id so concurrent approval
// batches cannot insert the same business twice.
package pgstore

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// pgxPool is the subset of pgxpool.Pool the repositories use; tests provide
// stub implementations.
type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var _ pgxPool = (*pgxpool.Pool)(nil)

const uniqueViolationCode = "23505"

func stringOrNil(value *string) any {
	if value == nil {
		return nil
	}
	return *value
}
