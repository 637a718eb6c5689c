package model

import (
	"time"
)

// PortalUser is an external, individually-identified caller. Portal users
// own rows (work orders, documents) rather than seeing a whole tenant.
type PortalUser struct {
	ID          string     `db:"id" json:"id"`
	TenantID    string     `db:"tenant_id" json:"tenantId"`
	Email       string     `db:"email" json:"email"`
	CreatedAt   time.Time  `db:"created_at" json:"createdAt"`
	LastLoginAt *time.Time `db:"last_login_at" json:"lastLoginAt,omitempty"`
}

type CreatePortalUserParams struct {
	TenantID string
	Email    string
}

type PortalSession struct {
	ID        string    `db:"id" json:"id"`
	TokenHash string    `db:"token_hash" json:"-"`
	UserID    string    `db:"user_id" json:"userId"`
	ExpiresAt time.Time `db:"expires_at" json:"expiresAt"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

type CreatePortalSessionParams struct {
	TokenHash string
	UserID    string
	ExpiresAt time.Time
}
