package repository

import (
	"context"

	"github.com/helmdesk/ops-server-go/internal/model"
	"github.com/helmdesk/ops-server-go/internal/tenancy"
)

type TenantRepository interface {
	FindByID(ctx context.Context, q tenancy.Querier, id string) (*model.Tenant, error)
	Create(ctx context.Context, q tenancy.Querier, params model.CreateTenantParams) (*model.Tenant, error)
}

type tenantRepo struct{}

func NewTenantRepository() TenantRepository {
	return &tenantRepo{}
}

func (r *tenantRepo) FindByID(ctx context.Context, q tenancy.Querier, id string) (*model.Tenant, error) {
	var tenant model.Tenant
	err := q.GetContext(ctx, &tenant, `SELECT * FROM tenants WHERE id = $1`, id)
	return HandleNotFound(&tenant, err)
}

func (r *tenantRepo) Create(ctx context.Context, q tenancy.Querier, params model.CreateTenantParams) (*model.Tenant, error) {
	var tenant model.Tenant
	err := q.GetContext(ctx, &tenant, `
		INSERT INTO tenants (name) VALUES ($1) RETURNING *
	`, params.Name)
	if err != nil {
		return nil, err
	}
	return &tenant, nil
}
