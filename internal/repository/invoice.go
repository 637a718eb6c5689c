package repository

import (
	"context"

	"github.com/helmdesk/ops-server-go/internal/model"
	"github.com/helmdesk/ops-server-go/internal/tenancy"
)

type InvoiceRepository interface {
	FindByID(ctx context.Context, q tenancy.Querier, id string) (*model.Invoice, error)
	List(ctx context.Context, q tenancy.Querier) ([]model.Invoice, error)
	Create(ctx context.Context, q tenancy.Querier, params model.CreateInvoiceParams) (*model.Invoice, error)
}

type invoiceRepo struct{}

func NewInvoiceRepository() InvoiceRepository {
	return &invoiceRepo{}
}

func (r *invoiceRepo) FindByID(ctx context.Context, q tenancy.Querier, id string) (*model.Invoice, error) {
	var inv model.Invoice
	err := q.GetContext(ctx, &inv, `SELECT * FROM invoices WHERE id = $1`, id)
	return HandleNotFound(&inv, err)
}

func (r *invoiceRepo) List(ctx context.Context, q tenancy.Querier) ([]model.Invoice, error) {
	invoices := []model.Invoice{}
	err := q.SelectContext(ctx, &invoices, `SELECT * FROM invoices ORDER BY created_at DESC`)
	return invoices, err
}

func (r *invoiceRepo) Create(ctx context.Context, q tenancy.Querier, params model.CreateInvoiceParams) (*model.Invoice, error) {
	var inv model.Invoice
	err := q.GetContext(ctx, &inv, `
		INSERT INTO invoices (tenant_id, work_order_id, number, amount_cents)
		VALUES ($1, $2, $3, $4)
		RETURNING *
	`, params.TenantID, params.WorkOrderID, params.Number, params.AmountCents)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}
