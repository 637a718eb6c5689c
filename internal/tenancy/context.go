package tenancy

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// TenantID and UserID are distinct types so that a user id can never be
// passed where a tenant id is expected. Both are UUID strings on the wire;
// the zero value means "not present".
type TenantID string

type UserID string

func (id TenantID) String() string { return string(id) }

func (id UserID) String() string { return string(id) }

var (
	ErrUnknownAudience = errors.New("tenancy: unknown audience")
	ErrInvalidScope    = errors.New("tenancy: invalid session scope")
)

// SessionContext is the per-request (tenant, user, audience) triple consumed
// exactly once by the Propagator. It is never persisted and never shared
// across transactions.
type SessionContext struct {
	TenantID TenantID
	UserID   UserID
	Audience Audience
}

// InternalContext scopes a unit of work to an internal staff member of the
// given tenant.
func InternalContext(tenantID TenantID, userID UserID) SessionContext {
	return SessionContext{TenantID: tenantID, UserID: userID, Audience: AudienceInternalWeb}
}

// PortalContext scopes a unit of work to an external portal user. Portal
// visibility is owner-based, so no tenant id is carried.
func PortalContext(userID UserID) SessionContext {
	return SessionContext{UserID: userID, Audience: AudienceExternalPortal}
}

// WorkerContext scopes a background job. Jobs that operate on a single
// tenant pass its id; cross-tenant maintenance jobs pass the zero value.
func WorkerContext(tenantID TenantID) SessionContext {
	return SessionContext{TenantID: tenantID, Audience: AudienceBackgroundWorker}
}

// ServiceContext scopes trusted automation such as migrations and test
// fixture setup. It must never be used for request handling.
func ServiceContext() SessionContext {
	return SessionContext{Audience: AudienceTrustedService}
}

// Validate rejects malformed scopes before any transaction is opened. Empty
// tenant and user ids are legal (the store fails closed on them); non-empty
// ids must be UUIDs so a corrupted claim cannot reach the session variables.
func (sc SessionContext) Validate() error {
	if !sc.Audience.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownAudience, sc.Audience)
	}
	if sc.TenantID != "" {
		if _, err := uuid.Parse(string(sc.TenantID)); err != nil {
			return fmt.Errorf("%w: tenant id %q is not a UUID", ErrInvalidScope, sc.TenantID)
		}
	}
	if sc.UserID != "" {
		if _, err := uuid.Parse(string(sc.UserID)); err != nil {
			return fmt.Errorf("%w: user id %q is not a UUID", ErrInvalidScope, sc.UserID)
		}
	}
	return nil
}
