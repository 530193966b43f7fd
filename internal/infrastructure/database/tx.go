package database

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
)

// dbtx is satisfied by both *sqlx.DB and *sqlx.Tx, letting repository query
// methods run unmodified whether or not RouteRepository.WithTx has opened a
// transaction for the current context.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryxContext(ctx context.Context, query string, args ...interface{}) (*sqlx.Rows, error)
	QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	NamedExecContext(ctx context.Context, query string, arg interface{}) (sql.Result, error)
}

type txCtxKey struct{}

// executorFrom returns the transaction stashed in ctx by WithTx, falling
// back to db for reads and one-off writes made outside a unit of work.
func executorFrom(ctx context.Context, db *sqlx.DB) dbtx {
	if tx, ok := ctx.Value(txCtxKey{}).(*sqlx.Tx); ok {
		return tx
	}
	return db
}

// withTx opens a transaction, stashes it in ctx for executorFrom, runs fn,
// and commits or rolls back based on fn's returned error — the shared
// implementation behind every repository's WithTx method (spec.md §9
// "Transaction boundaries": a whole plan/edit either commits completely or
// leaves no trace).
func withTx(ctx context.Context, db *sqlx.DB, fn func(ctx context.Context) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	ctx = context.WithValue(ctx, txCtxKey{}, tx)

	if err := fn(ctx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
