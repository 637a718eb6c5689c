package model

import (
	"time"
)

type Invoice struct {
	ID          string        `db:"id" json:"id"`
	TenantID    string        `db:"tenant_id" json:"tenantId"`
	WorkOrderID *string       `db:"work_order_id" json:"workOrderId,omitempty"`
	Number      string        `db:"number" json:"number"`
	AmountCents int64         `db:"amount_cents" json:"amountCents"`
	Status      InvoiceStatus `db:"status" json:"status"`
	IssuedAt    *time.Time    `db:"issued_at" json:"issuedAt,omitempty"`
	CreatedAt   time.Time     `db:"created_at" json:"createdAt"`
}

type CreateInvoiceParams struct {
	TenantID    string
	WorkOrderID *string
	Number      string
	AmountCents int64
}
