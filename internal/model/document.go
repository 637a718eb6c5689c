package model

import (
	"time"
)

// Document is an externally uploaded file record, owned by the portal user
// who submitted it.
type Document struct {
	ID          string    `db:"id" json:"id"`
	TenantID    string    `db:"tenant_id" json:"tenantId"`
	OwnerUserID string    `db:"owner_user_id" json:"ownerUserId"`
	WorkOrderID *string   `db:"work_order_id" json:"workOrderId,omitempty"`
	FileName    string    `db:"file_name" json:"fileName"`
	ContentType string    `db:"content_type" json:"contentType"`
	ByteSize    int64     `db:"byte_size" json:"byteSize"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

type CreateDocumentParams struct {
	TenantID    string
	OwnerUserID string
	WorkOrderID *string
	FileName    string
	ContentType string
	ByteSize    int64
}
