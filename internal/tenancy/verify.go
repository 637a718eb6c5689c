package tenancy

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// PolicyStats summarizes the store-side policy state, for health reporting.
type PolicyStats struct {
	TablesWithRLS int      `json:"tablesWithRls"`
	PolicyCount   int      `json:"policyCount"`
	EnabledTables []string `json:"enabledTables"`
}

// VerifyPolicies checks that the store enforces the catalog: every protected
// table must have row security enabled and forced, and must carry at least
// one policy per catalog role. A mismatch means the migrations and the
// application disagree about the isolation contract, which is fatal.
func VerifyPolicies(ctx context.Context, db *sqlx.DB) error {
	for _, table := range ProtectedTables() {
		var enabled, forced bool
		err := db.QueryRowContext(ctx, `
			SELECT c.relrowsecurity, c.relforcerowsecurity
			FROM pg_class c
			JOIN pg_namespace n ON n.oid = c.relnamespace
			WHERE n.nspname = 'public' AND c.relname = $1
		`, table).Scan(&enabled, &forced)
		if err != nil {
			return fmt.Errorf("verify row security on %s: %w", table, err)
		}
		if !enabled {
			return fmt.Errorf("row security not enabled on %s", table)
		}
		if !forced {
			return fmt.Errorf("row security not forced on %s", table)
		}

		for _, p := range PoliciesFor(table) {
			var count int
			err := db.QueryRowContext(ctx, `
				SELECT COUNT(*)
				FROM pg_policies
				WHERE schemaname = 'public' AND tablename = $1 AND $2 = ANY(roles)
			`, table, p.Role).Scan(&count)
			if err != nil {
				return fmt.Errorf("verify policy on %s for %s: %w", table, p.Role, err)
			}
			if count == 0 {
				return fmt.Errorf("no policy on %s for role %s", table, p.Role)
			}
		}
	}
	return nil
}

// Stats reports the store-side policy counts for the health endpoint.
func Stats(ctx context.Context, db *sqlx.DB) (*PolicyStats, error) {
	stats := &PolicyStats{}

	err := db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM pg_tables
		WHERE schemaname = 'public' AND rowsecurity = true
	`).Scan(&stats.TablesWithRLS)
	if err != nil {
		return nil, fmt.Errorf("count row-secured tables: %w", err)
	}

	err = db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM pg_policies WHERE schemaname = 'public'
	`).Scan(&stats.PolicyCount)
	if err != nil {
		return nil, fmt.Errorf("count policies: %w", err)
	}

	rows, err := db.QueryContext(ctx, `
		SELECT tablename FROM pg_tables
		WHERE schemaname = 'public' AND rowsecurity = true
		ORDER BY tablename
	`)
	if err != nil {
		return nil, fmt.Errorf("list row-secured tables: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var table string
		if err := rows.Scan(&table); err != nil {
			return nil, fmt.Errorf("scan table name: %w", err)
		}
		stats.EnabledTables = append(stats.EnabledTables, table)
	}
	return stats, rows.Err()
}
