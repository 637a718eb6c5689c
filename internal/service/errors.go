package service

import (
	"errors"

	apperrors "github.com/helmdesk/ops-server-go/internal/errors"
	"github.com/helmdesk/ops-server-go/internal/tenancy"
)

// wrapScopeError translates isolation-layer failures into the client-facing
// taxonomy. Authorization-driven absence never reaches here: it surfaces as
// ordinary empty results from the repositories.
func wrapScopeError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, tenancy.ErrUnknownAudience) || errors.Is(err, tenancy.ErrInvalidScope) {
		return apperrors.Config(err)
	}
	if errors.Is(err, tenancy.ErrScopeEstablish) {
		return apperrors.ScopeFailure(err)
	}
	return err
}
