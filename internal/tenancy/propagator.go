package tenancy

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/helmdesk/ops-server-go/internal/audit"
)

// Session variable names shared with the row policies. These are part of the
// wire contract between the application and the store; renaming one silently
// breaks every policy that reads it.
const (
	VarTenantID = "app.tenant_id"
	VarUserID   = "app.user_id"
	VarAudience = "app.aud"
)

// TxFunc is a unit of work executed inside a scoped transaction.
type TxFunc func(q Querier) error

// Runner executes a unit of work under a session scope. It exists so services
// can be tested without a live Propagator.
type Runner interface {
	Run(ctx context.Context, sc SessionContext, fn TxFunc) error
}

// Propagator is the single choke point between request handling and the
// store. Every business query runs inside a transaction whose role and
// session variables it established first.
type Propagator struct {
	db *sqlx.DB
}

func NewPropagator(db *sqlx.DB) *Propagator {
	return &Propagator{db: db}
}

var _ Runner = (*Propagator)(nil)

// Run opens a transaction, switches it to the role mapped from the scope's
// audience, sets the three session variables, and only then invokes fn.
// On success the transaction is committed; any failure during establishment
// or in fn rolls it back.
//
// The role switch uses SET LOCAL and the variables are set with
// set_config(..., is_local => true), so both are discarded when the
// transaction ends. A pooled connection handed to the next request always
// starts with a clean, unset context.
func (p *Propagator) Run(ctx context.Context, sc SessionContext, fn TxFunc) error {
	// Configuration errors are rejected before any transaction opens.
	role, err := RoleFor(sc.Audience)
	if err != nil {
		return err
	}
	if err := sc.Validate(); err != nil {
		return err
	}

	tx, err := p.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback()
			panic(r)
		}
	}()

	if err := establish(ctx, tx, role, sc); err != nil {
		_ = tx.Rollback()
		audit.Log(ctx, audit.Event{
			Type:     audit.EventScopeEstablishFailure,
			TenantID: string(sc.TenantID),
			UserID:   string(sc.UserID),
			Audience: string(sc.Audience),
			Details:  map[string]interface{}{"role": role, "error": err.Error()},
		})
		return fmt.Errorf("%w: %v", ErrScopeEstablish, err)
	}

	if err := fn(&Tx{tx: tx, scope: sc}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// ErrScopeEstablish marks a transaction that was rolled back because the
// role switch or a session-variable assignment was rejected by the store.
var ErrScopeEstablish = errors.New("tenancy: scope establishment failed")

// establish switches the transaction's role and sets the session variables.
// No query from the unit of work may run before this completes.
func establish(ctx context.Context, tx *sqlx.Tx, role string, sc SessionContext) error {
	// Role names are schema constants, never user input, but quote anyway.
	if _, err := tx.ExecContext(ctx, "SET LOCAL ROLE "+pq.QuoteIdentifier(role)); err != nil {
		return fmt.Errorf("switch to role %s: %w", role, err)
	}

	// Empty string, never NULL, for absent fields: the policies read the
	// variables through NULLIF(..., '') and fail closed on empty.
	vars := []struct {
		name  string
		value string
	}{
		{VarTenantID, string(sc.TenantID)},
		{VarUserID, string(sc.UserID)},
		{VarAudience, string(sc.Audience)},
	}
	for _, v := range vars {
		if _, err := tx.ExecContext(ctx, "SELECT set_config($1, $2, true)", v.name, v.value); err != nil {
			return fmt.Errorf("set %s: %w", v.name, err)
		}
	}

	log.Debug().
		Str("role", role).
		Str("audience", string(sc.Audience)).
		Msg("session scope established")

	return nil
}
