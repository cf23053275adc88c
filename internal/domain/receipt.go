package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type ReceiptStatus string

const (
	ReceiptStatusDraft       ReceiptStatus = "DRAFT"
	ReceiptStatusInProgress  ReceiptStatus = "IN_PROGRESS"
	ReceiptStatusCompleted   ReceiptStatus = "COMPLETED"
	ReceiptStatusDiscrepancy ReceiptStatus = "DISCREPANCY"
)

// Receipt is a goods receipt ("bevételezés"), optionally taken against an
// advance shipment notice (avizo). Quantities are decimals because goods
// can arrive in fractional units.
type Receipt struct {
	ID             int32           `json:"id"`
	TenantID       int32           `json:"tenant_id"`
	ReceiptNumber  string          `json:"receipt_number"` // BEV-<year>-<4-digit-seq>
	AvizoID        *int32          `json:"avizo_id,omitempty"`
	SupplierID     int32           `json:"supplier_id"`
	SupplierName   string          `json:"supplier_name"`
	Status         ReceiptStatus   `json:"status"`
	HasDiscrepancy bool            `json:"has_discrepancy"`
	TotalItems     int32           `json:"total_items"`
	TotalQuantity  decimal.Decimal `json:"total_quantity"`
	Notes          string          `json:"notes,omitempty"`
	CompletedAt    *time.Time      `json:"completed_at,omitempty"`
	Items          []ReceiptItem   `json:"items,omitempty"`
	CreatedBy      int32           `json:"created_by"`
	CreatedOn      time.Time       `json:"created_on"`
	UpdatedOn      time.Time       `json:"updated_on"`
}

type ReceiptItem struct {
	ID               int32           `json:"id"`
	ReceiptID        int32           `json:"receipt_id"`
	ProductID        int32           `json:"product_id"`
	ProductCode      string          `json:"product_code"`
	ProductName      string          `json:"product_name"`
	ExpectedQuantity decimal.Decimal `json:"expected_quantity"`
	ReceivedQuantity decimal.Decimal `json:"received_quantity"`
	UnitPrice        int64           `json:"unit_price"`
	LocationCode     string          `json:"location_code,omitempty"`
}

type DiscrepancyType string

const (
	DiscrepancyTypeShortage  DiscrepancyType = "SHORTAGE"
	DiscrepancyTypeSurplus   DiscrepancyType = "SURPLUS"
	DiscrepancyTypeDamaged   DiscrepancyType = "DAMAGED"
	DiscrepancyTypeWrongItem DiscrepancyType = "WRONG_ITEM"
)

// Discrepancy records one receipt item deviating from its expectation.
// Difference is signed: actual minus expected.
type Discrepancy struct {
	ID               int32           `json:"id"`
	TenantID         int32           `json:"tenant_id"`
	ReceiptID        int32           `json:"receipt_id"`
	ReceiptItemID    int32           `json:"receipt_item_id"`
	Type             DiscrepancyType `json:"type"`
	ExpectedQuantity decimal.Decimal `json:"expected_quantity"`
	ActualQuantity   decimal.Decimal `json:"actual_quantity"`
	Difference       decimal.Decimal `json:"difference"`
	Note             string          `json:"note,omitempty"`
	SupplierNotified bool            `json:"supplier_notified"`
	ResolutionNote   string          `json:"resolution_note,omitempty"`
	ResolvedBy       *int32          `json:"resolved_by,omitempty"`
	ResolvedAt       *time.Time      `json:"resolved_at,omitempty"`
	CreatedOn        time.Time       `json:"created_on"`
}
