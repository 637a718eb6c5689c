package repository

import (
	"context"

	"github.com/helmdesk/ops-server-go/internal/model"
	"github.com/helmdesk/ops-server-go/internal/tenancy"
)

type DocumentRepository interface {
	FindByID(ctx context.Context, q tenancy.Querier, id string) (*model.Document, error)
	List(ctx context.Context, q tenancy.Querier) ([]model.Document, error)
	ListByWorkOrder(ctx context.Context, q tenancy.Querier, workOrderID string) ([]model.Document, error)
	Create(ctx context.Context, q tenancy.Querier, params model.CreateDocumentParams) (*model.Document, error)
	Delete(ctx context.Context, q tenancy.Querier, id string) (bool, error)
}

type documentRepo struct{}

func NewDocumentRepository() DocumentRepository {
	return &documentRepo{}
}

func (r *documentRepo) FindByID(ctx context.Context, q tenancy.Querier, id string) (*model.Document, error) {
	var doc model.Document
	err := q.GetContext(ctx, &doc, `SELECT * FROM documents WHERE id = $1`, id)
	return HandleNotFound(&doc, err)
}

func (r *documentRepo) List(ctx context.Context, q tenancy.Querier) ([]model.Document, error) {
	docs := []model.Document{}
	err := q.SelectContext(ctx, &docs, `SELECT * FROM documents ORDER BY created_at DESC`)
	return docs, err
}

func (r *documentRepo) ListByWorkOrder(ctx context.Context, q tenancy.Querier, workOrderID string) ([]model.Document, error) {
	docs := []model.Document{}
	err := q.SelectContext(ctx, &docs, `
		SELECT * FROM documents WHERE work_order_id = $1 ORDER BY created_at DESC
	`, workOrderID)
	return docs, err
}

func (r *documentRepo) Create(ctx context.Context, q tenancy.Querier, params model.CreateDocumentParams) (*model.Document, error) {
	var doc model.Document
	err := q.GetContext(ctx, &doc, `
		INSERT INTO documents (tenant_id, owner_user_id, work_order_id, file_name, content_type, byte_size)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING *
	`, params.TenantID, params.OwnerUserID, params.WorkOrderID, params.FileName, params.ContentType, params.ByteSize)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *documentRepo) Delete(ctx context.Context, q tenancy.Querier, id string) (bool, error) {
	result, err := q.ExecContext(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	return n > 0, err
}
