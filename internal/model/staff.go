package model

import (
	"time"
)

// StaffMember is internal roster data with no legitimate cross-audience use
// case: the portal role never sees any row of it.
type StaffMember struct {
	ID        string    `db:"id" json:"id"`
	TenantID  string    `db:"tenant_id" json:"tenantId"`
	Email     string    `db:"email" json:"email"`
	FullName  string    `db:"full_name" json:"fullName"`
	Role      StaffRole `db:"role" json:"role"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

type CreateStaffMemberParams struct {
	TenantID string
	Email    string
	FullName string
	Role     StaffRole
}
