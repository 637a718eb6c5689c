package repository

import (
	"context"

	"github.com/helmdesk/ops-server-go/internal/model"
	"github.com/helmdesk/ops-server-go/internal/tenancy"
)

type StaffRepository interface {
	List(ctx context.Context, q tenancy.Querier) ([]model.StaffMember, error)
	Create(ctx context.Context, q tenancy.Querier, params model.CreateStaffMemberParams) (*model.StaffMember, error)
}

type staffRepo struct{}

func NewStaffRepository() StaffRepository {
	return &staffRepo{}
}

func (r *staffRepo) List(ctx context.Context, q tenancy.Querier) ([]model.StaffMember, error) {
	members := []model.StaffMember{}
	err := q.SelectContext(ctx, &members, `SELECT * FROM staff_members ORDER BY full_name`)
	return members, err
}

func (r *staffRepo) Create(ctx context.Context, q tenancy.Querier, params model.CreateStaffMemberParams) (*model.StaffMember, error) {
	var member model.StaffMember
	err := q.GetContext(ctx, &member, `
		INSERT INTO staff_members (tenant_id, email, full_name, role)
		VALUES ($1, $2, $3, $4)
		RETURNING *
	`, params.TenantID, params.Email, params.FullName, params.Role)
	if err != nil {
		return nil, err
	}
	return &member, nil
}
