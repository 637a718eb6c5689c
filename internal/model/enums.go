package model

type WorkOrderStatus string

const (
	WorkOrderStatusOpen       WorkOrderStatus = "open"
	WorkOrderStatusInProgress WorkOrderStatus = "in_progress"
	WorkOrderStatusDone       WorkOrderStatus = "done"
	WorkOrderStatusCancelled  WorkOrderStatus = "cancelled"
)

type InvoiceStatus string

const (
	InvoiceStatusDraft  InvoiceStatus = "draft"
	InvoiceStatusIssued InvoiceStatus = "issued"
	InvoiceStatusPaid   InvoiceStatus = "paid"
	InvoiceStatusVoid   InvoiceStatus = "void"
)

type StaffRole string

const (
	StaffRoleMember  StaffRole = "member"
	StaffRoleManager StaffRole = "manager"
	StaffRoleAdmin   StaffRole = "admin"
)
