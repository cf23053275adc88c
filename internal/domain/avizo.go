package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type AvizoStatus string

const (
	AvizoStatusPending   AvizoStatus = "PENDING"
	AvizoStatusPartial   AvizoStatus = "PARTIAL"
	AvizoStatusReceived  AvizoStatus = "RECEIVED"
	AvizoStatusCancelled AvizoStatus = "CANCELLED"
)

// Avizo is an advance shipment notice. Only a PENDING avizo may be
// updated or cancelled; receipts taken against it accumulate received
// quantities on its items.
type Avizo struct {
	ID            int32           `json:"id"`
	TenantID      int32           `json:"tenant_id"`
	AvizoNumber   string          `json:"avizo_number"` // AV-<year>-<4-digit-seq>
	SupplierID    int32           `json:"supplier_id"`
	SupplierName  string          `json:"supplier_name"`
	ExpectedDate  time.Time       `json:"expected_date"`
	Status        AvizoStatus     `json:"status"`
	TotalItems    int32           `json:"total_items"`
	TotalQuantity decimal.Decimal `json:"total_quantity"`
	Notes         string          `json:"notes,omitempty"`
	PdfURL        string          `json:"pdf_url,omitempty"`
	Items         []AvizoItem     `json:"items,omitempty"`
	CreatedBy     int32           `json:"created_by"`
	CreatedOn     time.Time       `json:"created_on"`
	UpdatedOn     time.Time       `json:"updated_on"`
}

type AvizoItem struct {
	ID               int32           `json:"id"`
	AvizoID          int32           `json:"avizo_id"`
	ProductID        int32           `json:"product_id"`
	ProductCode      string          `json:"product_code"`
	ProductName      string          `json:"product_name"`
	ExpectedQuantity decimal.Decimal `json:"expected_quantity"`
	ReceivedQuantity decimal.Decimal `json:"received_quantity"`
}

// FullyReceived reports whether every item's cumulative received quantity
// has reached its expectation.
func (a *Avizo) FullyReceived() bool {
	for _, item := range a.Items {
		if item.ReceivedQuantity.LessThan(item.ExpectedQuantity) {
			return false
		}
	}
	return true
}
