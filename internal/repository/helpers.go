// Package repository holds the data access layer. Every method takes a
// tenancy.Querier, which is only obtainable through the Propagator, so a
// query cannot run without an established session scope.
//
// None of the queries filter by tenant or owner: the row policies evaluate
// the transaction's session variables and do that transparently. An
// out-of-scope id and an absent id are indistinguishable here, both coming
// back as no rows.
package repository

import (
	"database/sql"
	"errors"
)

// HandleNotFound processes a database query result, converting sql.ErrNoRows
// to a nil result without error. A row hidden by a policy reads exactly like
// a row that does not exist, so callers take the same "not found" path for
// both.
//
// Usage:
//
//	var item model.Item
//	err := q.GetContext(ctx, &item, query, args...)
//	return HandleNotFound(&item, err)
func HandleNotFound[T any](result *T, err error) (*T, error) {
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}
