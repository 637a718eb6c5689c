package tenancy

import "fmt"

// Database roles created by the schema migrations. Every request runs as one
// of these least-privilege principals, never as the connecting user.
const (
	RoleInternal = "ops_internal"
	RolePortal   = "ops_portal"
	RoleWorker   = "ops_worker"
	RoleService  = "ops_service"
)

// Roles lists every schema-known principal.
var Roles = []string{RoleInternal, RolePortal, RoleWorker, RoleService}

// RoleFor maps an audience to the database role its transactions run as.
// An unmapped audience is a configuration bug and fails loudly rather than
// defaulting to a privileged role.
func RoleFor(aud Audience) (string, error) {
	switch aud {
	case AudienceInternalWeb, AudienceInternalStudio:
		return RoleInternal, nil
	case AudienceExternalPortal:
		return RolePortal, nil
	case AudienceBackgroundWorker:
		return RoleWorker, nil
	case AudienceTrustedService:
		return RoleService, nil
	}
	return "", fmt.Errorf("%w: no role mapped for %q", ErrUnknownAudience, aud)
}
