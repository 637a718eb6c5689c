package model

import (
	"time"
)

// WorkOrder is tenant-scoped and, when it originated from the portal,
// additionally owned by the submitting portal user.
type WorkOrder struct {
	ID          string          `db:"id" json:"id"`
	TenantID    string          `db:"tenant_id" json:"tenantId"`
	OwnerUserID *string         `db:"owner_user_id" json:"ownerUserId,omitempty"`
	Title       string          `db:"title" json:"title"`
	Status      WorkOrderStatus `db:"status" json:"status"`
	CreatedAt   time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time       `db:"updated_at" json:"updatedAt"`
}

type CreateWorkOrderParams struct {
	TenantID    string
	OwnerUserID *string
	Title       string
}
