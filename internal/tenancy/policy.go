package tenancy

import "fmt"

// Shape is the predicate form a row policy takes for one (table, role) pair.
type Shape string

const (
	// ShapeTenantMatch makes a row visible iff its tenant column equals the
	// app.tenant_id session variable.
	ShapeTenantMatch Shape = "tenant-match"
	// ShapeOwnerMatch makes a row visible iff its owner column equals the
	// app.user_id session variable.
	ShapeOwnerMatch Shape = "owner-match"
	// ShapeDenyAll hides every row from the role regardless of context.
	ShapeDenyAll Shape = "deny-all"
	// ShapeUnrestricted makes every row visible. Reserved for the service
	// role (migrations, fixtures) and worker maintenance tables.
	ShapeUnrestricted Shape = "unrestricted"
)

// TablePolicy declares the predicate shape one role gets on one table. The
// authoritative DDL lives in the SQL migrations; this catalog is the
// application-side statement of the same contract, used by the verification
// suite and the startup health check.
type TablePolicy struct {
	Table  string
	Role   string
	Shape  Shape
	Column string // row column the predicate compares; empty for deny-all and unrestricted
}

// Predicate returns the USING expression the migration DDL must carry for
// this policy. The NULLIF(..., '') form is what makes an unset or empty
// session variable evaluate to zero visible rows instead of an error or
// unfiltered access.
func (p TablePolicy) Predicate() string {
	switch p.Shape {
	case ShapeTenantMatch:
		return fmt.Sprintf("%s = NULLIF(current_setting('%s', true), '')::uuid", p.Column, VarTenantID)
	case ShapeOwnerMatch:
		return fmt.Sprintf("%s = NULLIF(current_setting('%s', true), '')::uuid", p.Column, VarUserID)
	case ShapeDenyAll:
		return "false"
	case ShapeUnrestricted:
		return "true"
	}
	return "false"
}

// Catalog is the full policy matrix, one entry per (table, role) pair.
//
// Table classes:
//   - tenants, invoices, staff_members: internal business records. Tenant
//     scoped for internal roles, invisible to the portal.
//   - work_orders, documents: externally sourced rows. Owner scoped for the
//     portal, tenant scoped internally.
//   - portal_users, portal_sessions: portal identity. A portal user sees only
//     itself; sessions are cleaned up cross-tenant by the worker.
var Catalog = []TablePolicy{
	{Table: "tenants", Role: RoleInternal, Shape: ShapeTenantMatch, Column: "id"},
	{Table: "tenants", Role: RoleWorker, Shape: ShapeTenantMatch, Column: "id"},
	{Table: "tenants", Role: RolePortal, Shape: ShapeDenyAll},
	{Table: "tenants", Role: RoleService, Shape: ShapeUnrestricted},

	{Table: "work_orders", Role: RoleInternal, Shape: ShapeTenantMatch, Column: "tenant_id"},
	{Table: "work_orders", Role: RoleWorker, Shape: ShapeTenantMatch, Column: "tenant_id"},
	{Table: "work_orders", Role: RolePortal, Shape: ShapeOwnerMatch, Column: "owner_user_id"},
	{Table: "work_orders", Role: RoleService, Shape: ShapeUnrestricted},

	{Table: "documents", Role: RoleInternal, Shape: ShapeTenantMatch, Column: "tenant_id"},
	{Table: "documents", Role: RoleWorker, Shape: ShapeTenantMatch, Column: "tenant_id"},
	{Table: "documents", Role: RolePortal, Shape: ShapeOwnerMatch, Column: "owner_user_id"},
	{Table: "documents", Role: RoleService, Shape: ShapeUnrestricted},

	{Table: "invoices", Role: RoleInternal, Shape: ShapeTenantMatch, Column: "tenant_id"},
	{Table: "invoices", Role: RoleWorker, Shape: ShapeTenantMatch, Column: "tenant_id"},
	{Table: "invoices", Role: RolePortal, Shape: ShapeDenyAll},
	{Table: "invoices", Role: RoleService, Shape: ShapeUnrestricted},

	{Table: "staff_members", Role: RoleInternal, Shape: ShapeTenantMatch, Column: "tenant_id"},
	{Table: "staff_members", Role: RoleWorker, Shape: ShapeDenyAll},
	{Table: "staff_members", Role: RolePortal, Shape: ShapeDenyAll},
	{Table: "staff_members", Role: RoleService, Shape: ShapeUnrestricted},

	{Table: "portal_users", Role: RoleInternal, Shape: ShapeTenantMatch, Column: "tenant_id"},
	{Table: "portal_users", Role: RoleWorker, Shape: ShapeDenyAll},
	{Table: "portal_users", Role: RolePortal, Shape: ShapeOwnerMatch, Column: "id"},
	{Table: "portal_users", Role: RoleService, Shape: ShapeUnrestricted},

	{Table: "portal_sessions", Role: RoleInternal, Shape: ShapeDenyAll},
	{Table: "portal_sessions", Role: RoleWorker, Shape: ShapeUnrestricted},
	{Table: "portal_sessions", Role: RolePortal, Shape: ShapeOwnerMatch, Column: "user_id"},
	{Table: "portal_sessions", Role: RoleService, Shape: ShapeUnrestricted},
}

// ProtectedTables returns the distinct tables covered by the catalog, in
// declaration order.
func ProtectedTables() []string {
	var tables []string
	seen := make(map[string]bool)
	for _, p := range Catalog {
		if !seen[p.Table] {
			seen[p.Table] = true
			tables = append(tables, p.Table)
		}
	}
	return tables
}

// PoliciesFor returns the catalog entries for one table.
func PoliciesFor(table string) []TablePolicy {
	var out []TablePolicy
	for _, p := range Catalog {
		if p.Table == table {
			out = append(out, p)
		}
	}
	return out
}
