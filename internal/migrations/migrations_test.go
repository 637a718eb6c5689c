package migrations

import (
	"fmt"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helmdesk/ops-server-go/internal/tenancy"
)

func TestVersions_SortedAndComplete(t *testing.T) {
	names, err := Versions()
	require.NoError(t, err)
	require.NotEmpty(t, names)

	assert.True(t, sort.StringsAreSorted(names), "migrations must apply in lexical order")
	assert.Contains(t, names, "0001_schema.sql")
	assert.Contains(t, names, "0002_roles.sql")
	assert.Contains(t, names, "0003_policies.sql")
}

func TestRolesDDL_CoversEveryRole(t *testing.T) {
	ddl, err := files.ReadFile("sql/0002_roles.sql")
	require.NoError(t, err)

	for _, role := range tenancy.Roles {
		assert.Contains(t, string(ddl), fmt.Sprintf("CREATE ROLE %s", role))
	}
}

// The policy DDL and the in-process catalog state the same contract twice.
// This test keeps them in lockstep without a database: every catalog entry
// must have a CREATE POLICY statement with the exact predicate the catalog
// prescribes, and every protected table must enable and force row security.
func TestPolicyDDL_MatchesCatalog(t *testing.T) {
	ddl, err := files.ReadFile("sql/0003_policies.sql")
	require.NoError(t, err)
	statements := strings.Split(string(ddl), ";")

	find := func(fragment string) string {
		for _, stmt := range statements {
			if strings.Contains(stmt, fragment) {
				return stmt
			}
		}
		return ""
	}

	for _, table := range tenancy.ProtectedTables() {
		assert.NotEmpty(t, find(fmt.Sprintf("ALTER TABLE %s ENABLE ROW LEVEL SECURITY", table)),
			"missing ENABLE for %s", table)
		assert.NotEmpty(t, find(fmt.Sprintf("ALTER TABLE %s FORCE ROW LEVEL SECURITY", table)),
			"missing FORCE for %s", table)
	}

	for _, p := range tenancy.Catalog {
		name := fmt.Sprintf("%s_%s", p.Table, strings.TrimPrefix(p.Role, "ops_"))
		stmt := find(fmt.Sprintf("CREATE POLICY %s ON %s", name, p.Table))
		require.NotEmpty(t, stmt, "missing policy %s", name)

		assert.Contains(t, stmt, fmt.Sprintf("TO %s", p.Role), "policy %s", name)
		assert.Contains(t, stmt, fmt.Sprintf("USING (%s)", p.Predicate()), "policy %s", name)

		// Write paths must be constrained the same way reads are. Deny-all
		// policies need no WITH CHECK: USING (false) already blocks both.
		if p.Shape != tenancy.ShapeDenyAll {
			assert.Contains(t, stmt, "WITH CHECK (", "policy %s", name)
		}
	}
}

func TestPolicyDDL_NoPolicylessRole(t *testing.T) {
	// Exactly one policy per (table, role): the catalog is the full matrix.
	ddl, err := files.ReadFile("sql/0003_policies.sql")
	require.NoError(t, err)

	count := strings.Count(string(ddl), "CREATE POLICY ")
	assert.Equal(t, len(tenancy.Catalog), count)
}
