package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"rentflow-backend/internal/domain"
)

// Sequence scopes for human-readable document numbering.
const (
	SequenceScopeBooking = "booking"
	SequenceScopeReceipt = "receipt"
	SequenceScopeAvizo   = "avizo"
)

type BookingRepository interface {
	// Create persists a booking together with its items in one transaction.
	Create(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id int32) (*domain.Booking, error)
	GetByNumber(ctx context.Context, number string) (*domain.Booking, error)
	GetByToken(ctx context.Context, token string) (*domain.Booking, error)
	Update(ctx context.Context, booking *domain.Booking) error
	ListByTenant(ctx context.Context, tenantID int32, status string, page, pageSize int32) ([]domain.Booking, int32, error)
	// ListExpiredPending returns all PENDING bookings across tenants whose
	// expiry timestamp is before now.
	ListExpiredPending(ctx context.Context, now time.Time) ([]domain.Booking, error)
	// CountForDay counts a tenant's PENDING and CONFIRMED bookings starting
	// on the given calendar day.
	CountForDay(ctx context.Context, tenantID int32, day time.Time) (int32, error)
}

type ReceiptRepository interface {
	Create(ctx context.Context, receipt *domain.Receipt) error
	GetByID(ctx context.Context, id int32) (*domain.Receipt, error)
	Update(ctx context.Context, receipt *domain.Receipt) error
	ListByTenant(ctx context.Context, tenantID int32, status string, page, pageSize int32) ([]domain.Receipt, int32, error)
}

type DiscrepancyRepository interface {
	Create(ctx context.Context, discrepancy *domain.Discrepancy) error
	GetByID(ctx context.Context, id int32) (*domain.Discrepancy, error)
	Update(ctx context.Context, discrepancy *domain.Discrepancy) error
	ListByReceipt(ctx context.Context, receiptID int32) ([]domain.Discrepancy, error)
	ListUnresolvedByReceipt(ctx context.Context, receiptID int32) ([]domain.Discrepancy, error)
}

type AvizoRepository interface {
	Create(ctx context.Context, avizo *domain.Avizo) error
	GetByID(ctx context.Context, id int32) (*domain.Avizo, error)
	Update(ctx context.Context, avizo *domain.Avizo) error
	// AddReceivedQuantity accumulates a received quantity onto the avizo
	// item matching the product. Products not on the avizo are ignored.
	AddReceivedQuantity(ctx context.Context, avizoID, productID int32, quantity decimal.Decimal) error
	ListByTenant(ctx context.Context, tenantID int32, status string, page, pageSize int32) ([]domain.Avizo, int32, error)
}

type SequenceRepository interface {
	// Next atomically increments and returns the per-tenant counter for a
	// document scope and year.
	Next(ctx context.Context, tenantID int32, scope string, year int) (int32, error)
}

type AuditRepository interface {
	Create(ctx context.Context, entry *domain.AuditEntry) error
}
