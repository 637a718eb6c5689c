package repository

import (
	"context"
	"time"

	"github.com/helmdesk/ops-server-go/internal/model"
	"github.com/helmdesk/ops-server-go/internal/tenancy"
)

type PortalUserRepository interface {
	FindByID(ctx context.Context, q tenancy.Querier, id string) (*model.PortalUser, error)
	List(ctx context.Context, q tenancy.Querier) ([]model.PortalUser, error)
	Create(ctx context.Context, q tenancy.Querier, params model.CreatePortalUserParams) (*model.PortalUser, error)
	UpdateLastLogin(ctx context.Context, q tenancy.Querier, id string) error
}

type portalUserRepo struct{}

func NewPortalUserRepository() PortalUserRepository {
	return &portalUserRepo{}
}

func (r *portalUserRepo) FindByID(ctx context.Context, q tenancy.Querier, id string) (*model.PortalUser, error) {
	var user model.PortalUser
	err := q.GetContext(ctx, &user, `SELECT * FROM portal_users WHERE id = $1`, id)
	return HandleNotFound(&user, err)
}

func (r *portalUserRepo) List(ctx context.Context, q tenancy.Querier) ([]model.PortalUser, error) {
	users := []model.PortalUser{}
	err := q.SelectContext(ctx, &users, `SELECT * FROM portal_users ORDER BY created_at`)
	return users, err
}

func (r *portalUserRepo) Create(ctx context.Context, q tenancy.Querier, params model.CreatePortalUserParams) (*model.PortalUser, error) {
	var user model.PortalUser
	err := q.GetContext(ctx, &user, `
		INSERT INTO portal_users (tenant_id, email)
		VALUES ($1, $2)
		RETURNING *
	`, params.TenantID, params.Email)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *portalUserRepo) UpdateLastLogin(ctx context.Context, q tenancy.Querier, id string) error {
	_, err := q.ExecContext(ctx, `
		UPDATE portal_users SET last_login_at = $2 WHERE id = $1
	`, id, time.Now())
	return err
}

// Portal Session Repository

type PortalSessionRepository interface {
	FindByTokenHash(ctx context.Context, q tenancy.Querier, tokenHash string) (*model.PortalSession, error)
	Create(ctx context.Context, q tenancy.Querier, params model.CreatePortalSessionParams) (*model.PortalSession, error)
	DeleteExpired(ctx context.Context, q tenancy.Querier) (int64, error)
}

type portalSessionRepo struct{}

func NewPortalSessionRepository() PortalSessionRepository {
	return &portalSessionRepo{}
}

func (r *portalSessionRepo) FindByTokenHash(ctx context.Context, q tenancy.Querier, tokenHash string) (*model.PortalSession, error) {
	var session model.PortalSession
	err := q.GetContext(ctx, &session, `
		SELECT * FROM portal_sessions
		WHERE token_hash = $1 AND expires_at > NOW()
	`, tokenHash)
	return HandleNotFound(&session, err)
}

func (r *portalSessionRepo) Create(ctx context.Context, q tenancy.Querier, params model.CreatePortalSessionParams) (*model.PortalSession, error) {
	var session model.PortalSession
	err := q.GetContext(ctx, &session, `
		INSERT INTO portal_sessions (token_hash, user_id, expires_at)
		VALUES ($1, $2, $3)
		RETURNING *
	`, params.TokenHash, params.UserID, params.ExpiresAt)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *portalSessionRepo) DeleteExpired(ctx context.Context, q tenancy.Querier) (int64, error) {
	result, err := q.ExecContext(ctx, `DELETE FROM portal_sessions WHERE expires_at < NOW()`)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
