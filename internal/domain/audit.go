package domain

import "time"

// Audit action vocabulary. Every state-changing service operation logs
// exactly one of these per mutated entity.
const (
	AuditBookingCreated            = "booking_created"
	AuditBookingConfirmed          = "booking_confirmed"
	AuditBookingCancelled          = "booking_cancelled"
	AuditBookingExpired            = "booking_expired"
	AuditBookingConfirmationResent = "booking_confirmation_resent"
	AuditReceiptCreated            = "receipt_created"
	AuditReceiptCompleted          = "receipt_completed"
	AuditDiscrepancyCreated        = "discrepancy_created"
	AuditDiscrepancyResolved       = "discrepancy_resolved"
	AuditAvizoCreated              = "avizo_created"
	AuditAvizoUpdated              = "avizo_updated"
	AuditAvizoCancelled            = "avizo_cancelled"
)

type AuditEntry struct {
	ID         int32             `json:"id"`
	TenantID   int32             `json:"tenant_id"`
	UserID     int32             `json:"user_id"` // 0 for system-initiated actions
	Action     string            `json:"action"`
	EntityType string            `json:"entity_type"`
	EntityID   int32             `json:"entity_id"`
	Metadata   map[string]string `json:"metadata,omitempty"`
	CreatedOn  time.Time         `json:"created_on"`
}
