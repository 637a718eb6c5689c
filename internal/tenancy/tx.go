package tenancy

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
)

// Querier is the query surface available inside a scoped unit of work.
// Repositories accept a Querier so they never see the unscoped pool.
type Querier interface {
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// Tx is a transaction whose role and session variables have been established
// by the Propagator. Its fields are unexported so a Tx cannot be constructed
// outside this package: the only way to issue a scoped query is through
// Propagator.Run.
type Tx struct {
	tx    *sqlx.Tx
	scope SessionContext
}

var _ Querier = (*Tx)(nil)

// Scope returns the session context this transaction was established under.
func (t *Tx) Scope() SessionContext {
	return t.scope
}

func (t *Tx) GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	return t.tx.GetContext(ctx, dest, query, args...)
}

func (t *Tx) SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	return t.tx.SelectContext(ctx, dest, query, args...)
}

func (t *Tx) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return t.tx.ExecContext(ctx, query, args...)
}

func (t *Tx) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return t.tx.QueryRowContext(ctx, query, args...)
}
