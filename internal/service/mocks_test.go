package service_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"rentflow-backend/internal/domain"
	"rentflow-backend/internal/service"
)

type MockBookingRepo struct {
	mock.Mock
}

func (m *MockBookingRepo) Create(ctx context.Context, booking *domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockBookingRepo) GetByID(ctx context.Context, id int32) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepo) GetByNumber(ctx context.Context, number string) (*domain.Booking, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepo) GetByToken(ctx context.Context, token string) (*domain.Booking, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepo) Update(ctx context.Context, booking *domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockBookingRepo) ListByTenant(ctx context.Context, tenantID int32, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	args := m.Called(ctx, tenantID, status, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Booking), args.Get(1).(int32), args.Error(2)
}

func (m *MockBookingRepo) ListExpiredPending(ctx context.Context, now time.Time) ([]domain.Booking, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepo) CountForDay(ctx context.Context, tenantID int32, day time.Time) (int32, error) {
	args := m.Called(ctx, tenantID, day)
	return args.Get(0).(int32), args.Error(1)
}

type MockReceiptRepo struct {
	mock.Mock
}

func (m *MockReceiptRepo) Create(ctx context.Context, receipt *domain.Receipt) error {
	args := m.Called(ctx, receipt)
	return args.Error(0)
}

func (m *MockReceiptRepo) GetByID(ctx context.Context, id int32) (*domain.Receipt, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Receipt), args.Error(1)
}

func (m *MockReceiptRepo) Update(ctx context.Context, receipt *domain.Receipt) error {
	args := m.Called(ctx, receipt)
	return args.Error(0)
}

func (m *MockReceiptRepo) ListByTenant(ctx context.Context, tenantID int32, status string, page, pageSize int32) ([]domain.Receipt, int32, error) {
	args := m.Called(ctx, tenantID, status, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Receipt), args.Get(1).(int32), args.Error(2)
}

type MockDiscrepancyRepo struct {
	mock.Mock
}

func (m *MockDiscrepancyRepo) Create(ctx context.Context, discrepancy *domain.Discrepancy) error {
	args := m.Called(ctx, discrepancy)
	return args.Error(0)
}

func (m *MockDiscrepancyRepo) GetByID(ctx context.Context, id int32) (*domain.Discrepancy, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Discrepancy), args.Error(1)
}

func (m *MockDiscrepancyRepo) Update(ctx context.Context, discrepancy *domain.Discrepancy) error {
	args := m.Called(ctx, discrepancy)
	return args.Error(0)
}

func (m *MockDiscrepancyRepo) ListByReceipt(ctx context.Context, receiptID int32) ([]domain.Discrepancy, error) {
	args := m.Called(ctx, receiptID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Discrepancy), args.Error(1)
}

func (m *MockDiscrepancyRepo) ListUnresolvedByReceipt(ctx context.Context, receiptID int32) ([]domain.Discrepancy, error) {
	args := m.Called(ctx, receiptID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Discrepancy), args.Error(1)
}

type MockAvizoRepo struct {
	mock.Mock
}

func (m *MockAvizoRepo) Create(ctx context.Context, avizo *domain.Avizo) error {
	args := m.Called(ctx, avizo)
	return args.Error(0)
}

func (m *MockAvizoRepo) GetByID(ctx context.Context, id int32) (*domain.Avizo, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Avizo), args.Error(1)
}

func (m *MockAvizoRepo) Update(ctx context.Context, avizo *domain.Avizo) error {
	args := m.Called(ctx, avizo)
	return args.Error(0)
}

func (m *MockAvizoRepo) AddReceivedQuantity(ctx context.Context, avizoID, productID int32, quantity decimal.Decimal) error {
	args := m.Called(ctx, avizoID, productID, quantity)
	return args.Error(0)
}

func (m *MockAvizoRepo) ListByTenant(ctx context.Context, tenantID int32, status string, page, pageSize int32) ([]domain.Avizo, int32, error) {
	args := m.Called(ctx, tenantID, status, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Avizo), args.Get(1).(int32), args.Error(2)
}

type MockSequenceRepo struct {
	mock.Mock
}

func (m *MockSequenceRepo) Next(ctx context.Context, tenantID int32, scope string, year int) (int32, error) {
	args := m.Called(ctx, tenantID, scope, year)
	return args.Get(0).(int32), args.Error(1)
}

type MockAuditRepo struct {
	mock.Mock
}

func (m *MockAuditRepo) Create(ctx context.Context, entry *domain.AuditEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

type MockInventoryService struct {
	mock.Mock
}

func (m *MockInventoryService) CheckAvailability(ctx context.Context, tenantID, equipmentID int32, start, end time.Time) (*domain.EquipmentAvailability, error) {
	args := m.Called(ctx, tenantID, equipmentID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EquipmentAvailability), args.Error(1)
}

func (m *MockInventoryService) IncreaseStock(ctx context.Context, tenantID, productID int32, quantity decimal.Decimal, locationCode string) error {
	args := m.Called(ctx, tenantID, productID, quantity, locationCode)
	return args.Error(0)
}

type MockPaymentService struct {
	mock.Mock
}

func (m *MockPaymentService) ProcessDeposit(ctx context.Context, bookingID int32, amount int64, reference string) (*service.PaymentResult, error) {
	args := m.Called(ctx, bookingID, amount, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.PaymentResult), args.Error(1)
}

func (m *MockPaymentService) RefundDeposit(ctx context.Context, bookingID int32, transactionID string) error {
	args := m.Called(ctx, bookingID, transactionID)
	return args.Error(0)
}

type MockReservationService struct {
	mock.Mock
}

func (m *MockReservationService) CreateReservation(ctx context.Context, tenantID int32, booking *domain.Booking) (int32, error) {
	args := m.Called(ctx, tenantID, booking)
	return args.Get(0).(int32), args.Error(1)
}

func (m *MockReservationService) CancelReservation(ctx context.Context, reservationID int32) error {
	args := m.Called(ctx, reservationID)
	return args.Error(0)
}

type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendBookingCreated(ctx context.Context, booking *domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockEmailService) SendBookingConfirmed(ctx context.Context, booking *domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockEmailService) SendBookingCancelled(ctx context.Context, booking *domain.Booking, reason string) error {
	args := m.Called(ctx, booking, reason)
	return args.Error(0)
}

func (m *MockEmailService) SendSupplierDiscrepancyNotification(ctx context.Context, supplierID int32, supplierName, supplierEmail string, discrepancy *domain.Discrepancy, receiptNumber string) error {
	args := m.Called(ctx, supplierID, supplierName, supplierEmail, discrepancy, receiptNumber)
	return args.Error(0)
}

type MockAuditService struct {
	mock.Mock
}

func (m *MockAuditService) Log(ctx context.Context, entry *domain.AuditEntry) {
	m.Called(ctx, entry)
}
