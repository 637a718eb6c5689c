package repository

import (
	"context"

	"github.com/helmdesk/ops-server-go/internal/model"
	"github.com/helmdesk/ops-server-go/internal/tenancy"
)

type WorkOrderRepository interface {
	FindByID(ctx context.Context, q tenancy.Querier, id string) (*model.WorkOrder, error)
	List(ctx context.Context, q tenancy.Querier) ([]model.WorkOrder, error)
	Create(ctx context.Context, q tenancy.Querier, params model.CreateWorkOrderParams) (*model.WorkOrder, error)
	UpdateStatus(ctx context.Context, q tenancy.Querier, id string, status model.WorkOrderStatus) (bool, error)
}

type workOrderRepo struct{}

func NewWorkOrderRepository() WorkOrderRepository {
	return &workOrderRepo{}
}

func (r *workOrderRepo) FindByID(ctx context.Context, q tenancy.Querier, id string) (*model.WorkOrder, error) {
	var wo model.WorkOrder
	err := q.GetContext(ctx, &wo, `SELECT * FROM work_orders WHERE id = $1`, id)
	return HandleNotFound(&wo, err)
}

func (r *workOrderRepo) List(ctx context.Context, q tenancy.Querier) ([]model.WorkOrder, error) {
	orders := []model.WorkOrder{}
	err := q.SelectContext(ctx, &orders, `SELECT * FROM work_orders ORDER BY created_at DESC`)
	return orders, err
}

func (r *workOrderRepo) Create(ctx context.Context, q tenancy.Querier, params model.CreateWorkOrderParams) (*model.WorkOrder, error) {
	var wo model.WorkOrder
	err := q.GetContext(ctx, &wo, `
		INSERT INTO work_orders (tenant_id, owner_user_id, title)
		VALUES ($1, $2, $3)
		RETURNING *
	`, params.TenantID, params.OwnerUserID, params.Title)
	if err != nil {
		return nil, err
	}
	return &wo, nil
}

func (r *workOrderRepo) UpdateStatus(ctx context.Context, q tenancy.Querier, id string, status model.WorkOrderStatus) (bool, error) {
	result, err := q.ExecContext(ctx, `
		UPDATE work_orders SET status = $2, updated_at = now() WHERE id = $1
	`, id, status)
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	return n > 0, err
}
