package service

import (
	"context"
	"time"

	"rentflow-backend/internal/domain"

	"github.com/shopspring/decimal"
)

type BookingService interface {
	CreateBooking(ctx context.Context, tenantID int32, input *CreateBookingInput) (*domain.Booking, error)
	CheckAvailability(ctx context.Context, tenantID int32, equipmentIDs []int32, start, end time.Time) ([]domain.EquipmentAvailability, error)
	GetTimeSlots(ctx context.Context, tenantID int32, date time.Time, bookingType domain.BookingType) ([]domain.TimeSlot, error)
	GetBookingByNumber(ctx context.Context, tenantID int32, number string) (*domain.Booking, error)
	ListBookings(ctx context.Context, tenantID int32, status string, page, pageSize int32) ([]domain.Booking, int32, error)
	GetBookingStatus(ctx context.Context, tenantID int32, token string) (*domain.Booking, error)
	ConfirmBooking(ctx context.Context, tenantID int32, token string) (*domain.BookingConfirmation, error)
	CancelBooking(ctx context.Context, tenantID, bookingID int32, reason string, userID int32) (*domain.Booking, error)
	ResendConfirmation(ctx context.Context, tenantID, bookingID, userID int32) (*domain.Booking, error)
	// ExpirePendingBookings sweeps all tenants and returns the number of
	// bookings transitioned to EXPIRED. Invoked by the cron runner.
	ExpirePendingBookings(ctx context.Context) (int, error)
}

type ReceiptService interface {
	CreateReceipt(ctx context.Context, tenantID, userID int32, input *CreateReceiptInput) (*domain.Receipt, error)
	CompleteReceipt(ctx context.Context, tenantID, userID, receiptID int32) (*domain.Receipt, error)
	GetReceipt(ctx context.Context, tenantID, receiptID int32) (*domain.Receipt, error)
	ListReceipts(ctx context.Context, tenantID int32, status string, page, pageSize int32) ([]domain.Receipt, int32, error)
	CreateDiscrepancy(ctx context.Context, tenantID, userID, receiptID int32, input *CreateDiscrepancyInput) (*domain.Discrepancy, error)
	ResolveDiscrepancy(ctx context.Context, tenantID, userID, discrepancyID int32, input *ResolveDiscrepancyInput) (*domain.Discrepancy, error)
}

type AvizoService interface {
	CreateAvizo(ctx context.Context, tenantID, userID int32, input *CreateAvizoInput) (*domain.Avizo, error)
	UpdateAvizo(ctx context.Context, tenantID, userID, avizoID int32, input *UpdateAvizoInput) (*domain.Avizo, error)
	CancelAvizo(ctx context.Context, tenantID, userID, avizoID int32) (*domain.Avizo, error)
	GetAvizo(ctx context.Context, tenantID, avizoID int32) (*domain.Avizo, error)
	ListAvizos(ctx context.Context, tenantID int32, status string, page, pageSize int32) ([]domain.Avizo, int32, error)
}

// InventoryService is the equipment/inventory partner contract.
type InventoryService interface {
	CheckAvailability(ctx context.Context, tenantID, equipmentID int32, start, end time.Time) (*domain.EquipmentAvailability, error)
	IncreaseStock(ctx context.Context, tenantID, productID int32, quantity decimal.Decimal, locationCode string) error
}

// PaymentResult is the outcome of a deposit capture attempt.
type PaymentResult struct {
	Success       bool   `json:"success"`
	TransactionID string `json:"transaction_id,omitempty"`
	Error         string `json:"error,omitempty"`
}

type PaymentService interface {
	ProcessDeposit(ctx context.Context, bookingID int32, amount int64, reference string) (*PaymentResult, error)
	RefundDeposit(ctx context.Context, bookingID int32, transactionID string) error
}

// ReservationService creates the downstream rental reservation once a
// booking is confirmed.
type ReservationService interface {
	CreateReservation(ctx context.Context, tenantID int32, booking *domain.Booking) (int32, error)
	CancelReservation(ctx context.Context, reservationID int32) error
}

type EmailService interface {
	SendBookingCreated(ctx context.Context, booking *domain.Booking) error
	SendBookingConfirmed(ctx context.Context, booking *domain.Booking) error
	SendBookingCancelled(ctx context.Context, booking *domain.Booking, reason string) error
	SendSupplierDiscrepancyNotification(ctx context.Context, supplierID int32, supplierName, supplierEmail string, discrepancy *domain.Discrepancy, receiptNumber string) error
}

// AuditService records every state-changing operation. A failed audit
// write is logged but never fails the business operation.
type AuditService interface {
	Log(ctx context.Context, entry *domain.AuditEntry)
}

// Input DTOs. Validated with validator/v10 before any side effect;
// violations are aggregated into a single ValidationFailed error.

type BookingItemInput struct {
	EquipmentID *int32 `json:"equipment_id" validate:"omitempty,gt=0"`
	Name        string `json:"name" validate:"required"`
	Quantity    int32  `json:"quantity" validate:"required,gt=0"`
	DailyRate   int64  `json:"daily_rate" validate:"required,gt=0"`
}

type CreateBookingInput struct {
	Type          domain.BookingType `json:"type" validate:"required,oneof=RENTAL SERVICE"`
	CustomerName  string             `json:"customer_name" validate:"required"`
	CustomerEmail string             `json:"customer_email" validate:"required,email"`
	CustomerPhone string             `json:"customer_phone"`
	StartDate     time.Time          `json:"start_date" validate:"required"`
	EndDate       *time.Time         `json:"end_date"`
	DepositAmount int64              `json:"deposit_amount" validate:"gte=0"`
	Notes         string             `json:"notes"`
	Items         []BookingItemInput `json:"items" validate:"required,min=1,dive"`
}

type ReceiptItemInput struct {
	ProductID        int32   `json:"product_id" validate:"required,gt=0"`
	ProductCode      string  `json:"product_code" validate:"required"`
	ProductName      string  `json:"product_name" validate:"required"`
	ExpectedQuantity float64 `json:"expected_quantity" validate:"gte=0"`
	ReceivedQuantity float64 `json:"received_quantity" validate:"gte=0"`
	UnitPrice        int64   `json:"unit_price" validate:"gte=0"`
	LocationCode     string  `json:"location_code"`
}

type CreateReceiptInput struct {
	AvizoID      *int32             `json:"avizo_id" validate:"omitempty,gt=0"`
	SupplierID   int32              `json:"supplier_id" validate:"required,gt=0"`
	SupplierName string             `json:"supplier_name" validate:"required"`
	Notes        string             `json:"notes"`
	Items        []ReceiptItemInput `json:"items" validate:"required,min=1,dive"`
}

type CreateDiscrepancyInput struct {
	ReceiptItemID    int32                  `json:"receipt_item_id" validate:"required,gt=0"`
	Type             domain.DiscrepancyType `json:"type" validate:"required,oneof=SHORTAGE SURPLUS DAMAGED WRONG_ITEM"`
	ExpectedQuantity float64                `json:"expected_quantity" validate:"gte=0"`
	ActualQuantity   float64                `json:"actual_quantity" validate:"gte=0"`
	Note             string                 `json:"note"`
}

type ResolveDiscrepancyInput struct {
	ResolutionNote string `json:"resolution_note" validate:"required"`
	NotifySupplier bool   `json:"notify_supplier"`
}

type AvizoItemInput struct {
	ProductID        int32   `json:"product_id" validate:"required,gt=0"`
	ProductCode      string  `json:"product_code" validate:"required"`
	ProductName      string  `json:"product_name" validate:"required"`
	ExpectedQuantity float64 `json:"expected_quantity" validate:"required,gt=0"`
}

type CreateAvizoInput struct {
	SupplierID   int32            `json:"supplier_id" validate:"required,gt=0"`
	SupplierName string           `json:"supplier_name" validate:"required"`
	ExpectedDate time.Time        `json:"expected_date" validate:"required"`
	Notes        string           `json:"notes"`
	PdfURL       string           `json:"pdf_url" validate:"omitempty,url"`
	Items        []AvizoItemInput `json:"items" validate:"required,min=1,dive"`
}

// UpdateAvizoInput patches only the mutable fields of a PENDING avizo.
type UpdateAvizoInput struct {
	ExpectedDate *time.Time `json:"expected_date"`
	Notes        *string    `json:"notes"`
	PdfURL       *string    `json:"pdf_url" validate:"omitempty,url"`
}
