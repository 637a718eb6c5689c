package tenancy

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_CoversEveryRoleOnEveryTable(t *testing.T) {
	for _, table := range ProtectedTables() {
		covered := make(map[string]bool)
		for _, p := range PoliciesFor(table) {
			assert.False(t, covered[p.Role], "duplicate policy for %s/%s", table, p.Role)
			covered[p.Role] = true
		}
		for _, role := range Roles {
			assert.True(t, covered[role], "table %s has no policy for %s", table, role)
		}
	}
}

func TestCatalog_ShapesCarryColumnsConsistently(t *testing.T) {
	for _, p := range Catalog {
		switch p.Shape {
		case ShapeTenantMatch, ShapeOwnerMatch:
			assert.NotEmpty(t, p.Column, "%s/%s needs a column", p.Table, p.Role)
		case ShapeDenyAll, ShapeUnrestricted:
			assert.Empty(t, p.Column, "%s/%s must not name a column", p.Table, p.Role)
		default:
			t.Fatalf("unknown shape %q on %s/%s", p.Shape, p.Table, p.Role)
		}
	}
}

func TestCatalog_PortalNeverTenantScoped(t *testing.T) {
	// The portal role carries no tenant id, so a tenant-match policy on it
	// would fail closed on every row. Any such entry is a catalog bug.
	for _, p := range Catalog {
		if p.Role == RolePortal {
			assert.NotEqual(t, ShapeTenantMatch, p.Shape,
				"portal policy on %s is tenant scoped", p.Table)
		}
	}
}

func TestCatalog_UnrestrictedConfinedToServiceAndWorker(t *testing.T) {
	for _, p := range Catalog {
		if p.Shape == ShapeUnrestricted {
			assert.Contains(t, []string{RoleService, RoleWorker}, p.Role,
				"unrestricted policy on %s granted to %s", p.Table, p.Role)
		}
	}
}

func TestCatalog_InternalTablesHiddenFromPortal(t *testing.T) {
	for _, table := range []string{"tenants", "invoices", "staff_members"} {
		found := false
		for _, p := range PoliciesFor(table) {
			if p.Role == RolePortal {
				found = true
				assert.Equal(t, ShapeDenyAll, p.Shape, "portal must be denied on %s", table)
			}
		}
		require.True(t, found, "no portal policy on %s", table)
	}
}

func TestPredicate(t *testing.T) {
	tenant := TablePolicy{Table: "work_orders", Role: RoleInternal, Shape: ShapeTenantMatch, Column: "tenant_id"}
	assert.Equal(t,
		"tenant_id = NULLIF(current_setting('app.tenant_id', true), '')::uuid",
		tenant.Predicate())

	owner := TablePolicy{Table: "documents", Role: RolePortal, Shape: ShapeOwnerMatch, Column: "owner_user_id"}
	assert.Equal(t,
		"owner_user_id = NULLIF(current_setting('app.user_id', true), '')::uuid",
		owner.Predicate())

	assert.Equal(t, "false", TablePolicy{Shape: ShapeDenyAll}.Predicate())
	assert.Equal(t, "true", TablePolicy{Shape: ShapeUnrestricted}.Predicate())

	// Unknown shapes fail closed.
	assert.Equal(t, "false", TablePolicy{Shape: Shape("bogus")}.Predicate())
}

func TestPredicate_MatchShapesFailClosedOnEmptyVariable(t *testing.T) {
	// The NULLIF wrapper is the fail-closed mechanism: an unset or empty
	// session variable becomes NULL, and NULL comparisons hide every row.
	for _, p := range Catalog {
		if p.Shape != ShapeTenantMatch && p.Shape != ShapeOwnerMatch {
			continue
		}
		assert.Contains(t, p.Predicate(), "NULLIF(current_setting(",
			fmt.Sprintf("%s/%s", p.Table, p.Role))
	}
}

func TestProtectedTables(t *testing.T) {
	tables := ProtectedTables()
	assert.ElementsMatch(t, []string{
		"tenants", "work_orders", "documents", "invoices",
		"staff_members", "portal_users", "portal_sessions",
	}, tables)
}
