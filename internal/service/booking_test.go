package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"rentflow-backend/internal/domain"
	"rentflow-backend/internal/service"
)

func newBookingFixture() (*MockBookingRepo, *MockSequenceRepo, *MockInventoryService, *MockPaymentService, *MockReservationService, *MockEmailService, *MockAuditService, service.BookingService) {
	bookingRepo := new(MockBookingRepo)
	sequenceRepo := new(MockSequenceRepo)
	inventorySvc := new(MockInventoryService)
	paymentSvc := new(MockPaymentService)
	reservationSvc := new(MockReservationService)
	emailSvc := new(MockEmailService)
	auditSvc := new(MockAuditService)
	svc := service.NewBookingService(bookingRepo, sequenceRepo, inventorySvc, paymentSvc, reservationSvc, emailSvc, auditSvc, 24*time.Hour, 10)
	return bookingRepo, sequenceRepo, inventorySvc, paymentSvc, reservationSvc, emailSvc, auditSvc, svc
}

func timePtr(t time.Time) *time.Time { return &t }

func TestBookingService_CreateBooking(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	end := time.Date(2026, 2, 3, 9, 0, 0, 0, time.UTC)

	t.Run("computes totals and starts pending", func(t *testing.T) {
		bookingRepo, sequenceRepo, _, _, _, emailSvc, auditSvc, svc := newBookingFixture()

		sequenceRepo.On("Next", ctx, int32(1), "booking", time.Now().Year()).Return(int32(7), nil).Once()
		bookingRepo.On("Create", ctx, mock.AnythingOfType("*domain.Booking")).Return(nil).Once()
		emailSvc.On("SendBookingCreated", ctx, mock.AnythingOfType("*domain.Booking")).Return(nil).Once()
		auditSvc.On("Log", ctx, mock.MatchedBy(func(e *domain.AuditEntry) bool {
			return e.Action == domain.AuditBookingCreated && e.TenantID == 1
		})).Once()

		booking, err := svc.CreateBooking(ctx, 1, &service.CreateBookingInput{
			Type:          domain.BookingTypeRental,
			CustomerName:  "Kovacs Anna",
			CustomerEmail: "anna@example.com",
			StartDate:     start,
			EndDate:       timePtr(end),
			DepositAmount: 5000,
			Items: []service.BookingItemInput{
				{Name: "Scaffold tower", Quantity: 1, DailyRate: 10000},
			},
		})

		assert.NoError(t, err)
		assert.Equal(t, domain.BookingStatusPending, booking.Status)
		assert.Equal(t, domain.PaymentStatusPending, booking.PaymentStatus)
		assert.Equal(t, int32(2), booking.TotalDays)
		assert.Equal(t, int64(20000), booking.TotalAmount)
		assert.Len(t, booking.ConfirmationToken, 64)
		assert.WithinDuration(t, time.Now().Add(24*time.Hour), booking.ExpiresAt, 5*time.Second)
		bookingRepo.AssertExpectations(t)
		sequenceRepo.AssertExpectations(t)
		auditSvc.AssertExpectations(t)
	})

	t.Run("booking number uses per-year sequence", func(t *testing.T) {
		bookingRepo, sequenceRepo, _, _, _, emailSvc, auditSvc, svc := newBookingFixture()

		year := time.Now().Year()
		sequenceRepo.On("Next", ctx, int32(1), "booking", year).Return(int32(42), nil).Once()
		bookingRepo.On("Create", ctx, mock.AnythingOfType("*domain.Booking")).Return(nil).Once()
		emailSvc.On("SendBookingCreated", ctx, mock.Anything).Return(nil).Once()
		auditSvc.On("Log", ctx, mock.Anything).Once()

		booking, err := svc.CreateBooking(ctx, 1, &service.CreateBookingInput{
			Type:          domain.BookingTypeService,
			CustomerName:  "Nagy Peter",
			CustomerEmail: "peter@example.com",
			StartDate:     start,
			Items: []service.BookingItemInput{
				{Name: "Chainsaw service", Quantity: 1, DailyRate: 8000},
			},
		})

		assert.NoError(t, err)
		assert.Regexp(t, `^FOG-\d{4}-00042$`, booking.BookingNumber)
		assert.Equal(t, int32(1), booking.TotalDays)
		assert.Equal(t, int64(8000), booking.TotalAmount)
	})

	t.Run("rejects end date before start date", func(t *testing.T) {
		bookingRepo, _, _, _, _, _, _, svc := newBookingFixture()

		_, err := svc.CreateBooking(ctx, 1, &service.CreateBookingInput{
			Type:          domain.BookingTypeRental,
			CustomerName:  "Kovacs Anna",
			CustomerEmail: "anna@example.com",
			StartDate:     start,
			EndDate:       timePtr(start.Add(-time.Hour)),
			Items: []service.BookingItemInput{
				{Name: "Scaffold tower", Quantity: 1, DailyRate: 10000},
			},
		})

		assert.ErrorIs(t, err, domain.ErrValidation)
		bookingRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("rejects invalid input without side effects", func(t *testing.T) {
		bookingRepo, sequenceRepo, _, _, _, _, _, svc := newBookingFixture()

		_, err := svc.CreateBooking(ctx, 1, &service.CreateBookingInput{
			Type:      domain.BookingTypeRental,
			StartDate: start,
		})

		assert.ErrorIs(t, err, domain.ErrValidation)
		bookingRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		sequenceRepo.AssertNotCalled(t, "Next", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unavailable equipment blocks creation", func(t *testing.T) {
		bookingRepo, _, inventorySvc, _, _, _, _, svc := newBookingFixture()

		equipmentID := int32(55)
		inventorySvc.On("CheckAvailability", ctx, int32(1), equipmentID, start, end).
			Return(&domain.EquipmentAvailability{EquipmentID: equipmentID, Available: false}, nil).Once()

		_, err := svc.CreateBooking(ctx, 1, &service.CreateBookingInput{
			Type:          domain.BookingTypeRental,
			CustomerName:  "Kovacs Anna",
			CustomerEmail: "anna@example.com",
			StartDate:     start,
			EndDate:       timePtr(end),
			Items: []service.BookingItemInput{
				{EquipmentID: &equipmentID, Name: "Excavator", Quantity: 1, DailyRate: 50000},
			},
		})

		assert.ErrorIs(t, err, domain.ErrDependencyFailed)
		bookingRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("email failure does not fail the booking", func(t *testing.T) {
		bookingRepo, sequenceRepo, _, _, _, emailSvc, auditSvc, svc := newBookingFixture()

		sequenceRepo.On("Next", ctx, int32(1), "booking", time.Now().Year()).Return(int32(8), nil).Once()
		bookingRepo.On("Create", ctx, mock.Anything).Return(nil).Once()
		emailSvc.On("SendBookingCreated", ctx, mock.Anything).Return(assert.AnError).Once()
		auditSvc.On("Log", ctx, mock.Anything).Once()

		booking, err := svc.CreateBooking(ctx, 1, &service.CreateBookingInput{
			Type:          domain.BookingTypeRental,
			CustomerName:  "Kovacs Anna",
			CustomerEmail: "anna@example.com",
			StartDate:     start,
			Items: []service.BookingItemInput{
				{Name: "Scaffold tower", Quantity: 1, DailyRate: 10000},
			},
		})

		assert.NoError(t, err)
		assert.NotNil(t, booking)
	})
}

func TestBookingService_ConfirmBooking(t *testing.T) {
	ctx := context.Background()

	pendingBooking := func() *domain.Booking {
		return &domain.Booking{
			ID:                3,
			TenantID:          1,
			BookingNumber:     "FOG-2026-00003",
			Type:              domain.BookingTypeRental,
			Status:            domain.BookingStatusPending,
			PaymentStatus:     domain.PaymentStatusPending,
			DepositAmount:     5000,
			TotalAmount:       20000,
			ConfirmationToken: "tok-3",
			ExpiresAt:         time.Now().Add(time.Hour),
		}
	}

	t.Run("confirms with deposit and reservation", func(t *testing.T) {
		bookingRepo, _, _, paymentSvc, reservationSvc, emailSvc, auditSvc, svc := newBookingFixture()

		booking := pendingBooking()
		bookingRepo.On("GetByToken", ctx, "tok-3").Return(booking, nil).Once()
		paymentSvc.On("ProcessDeposit", ctx, int32(3), int64(5000), mock.AnythingOfType("string")).
			Return(&service.PaymentResult{Success: true, TransactionID: "tx-1"}, nil).Once()
		reservationSvc.On("CreateReservation", ctx, int32(1), booking).Return(int32(77), nil).Once()
		bookingRepo.On("Update", ctx, mock.MatchedBy(func(b *domain.Booking) bool {
			return b.Status == domain.BookingStatusConfirmed &&
				b.PaymentStatus == domain.PaymentStatusPaid &&
				b.ReservationID != nil && *b.ReservationID == 77 &&
				b.ConfirmedAt != nil
		})).Return(nil).Once()
		emailSvc.On("SendBookingConfirmed", ctx, booking).Return(nil).Once()
		auditSvc.On("Log", ctx, mock.MatchedBy(func(e *domain.AuditEntry) bool {
			return e.Action == domain.AuditBookingConfirmed
		})).Once()

		conf, err := svc.ConfirmBooking(ctx, 1, "tok-3")
		assert.NoError(t, err)
		assert.Equal(t, "FOG-2026-00003", conf.BookingNumber)
		assert.Equal(t, int64(20000), conf.TotalAmount)
		bookingRepo.AssertExpectations(t)
		paymentSvc.AssertExpectations(t)
		reservationSvc.AssertExpectations(t)
	})

	t.Run("declined deposit leaves booking pending", func(t *testing.T) {
		bookingRepo, _, _, paymentSvc, reservationSvc, _, _, svc := newBookingFixture()

		booking := pendingBooking()
		bookingRepo.On("GetByToken", ctx, "tok-3").Return(booking, nil).Once()
		paymentSvc.On("ProcessDeposit", ctx, int32(3), int64(5000), mock.AnythingOfType("string")).
			Return(&service.PaymentResult{Success: false, Error: "card declined"}, nil).Once()

		_, err := svc.ConfirmBooking(ctx, 1, "tok-3")
		assert.ErrorIs(t, err, domain.ErrDependencyFailed)
		assert.Equal(t, domain.BookingStatusPending, booking.Status)
		bookingRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		reservationSvc.AssertNotCalled(t, "CreateReservation", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("second confirmation is rejected", func(t *testing.T) {
		bookingRepo, _, _, _, _, _, _, svc := newBookingFixture()

		booking := pendingBooking()
		booking.Status = domain.BookingStatusConfirmed
		bookingRepo.On("GetByToken", ctx, "tok-3").Return(booking, nil).Once()

		_, err := svc.ConfirmBooking(ctx, 1, "tok-3")
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	})

	t.Run("expired booking is marked and rejected", func(t *testing.T) {
		bookingRepo, _, _, paymentSvc, _, _, auditSvc, svc := newBookingFixture()

		booking := pendingBooking()
		booking.ExpiresAt = time.Now().Add(-time.Minute)
		bookingRepo.On("GetByToken", ctx, "tok-3").Return(booking, nil).Once()
		bookingRepo.On("Update", ctx, mock.MatchedBy(func(b *domain.Booking) bool {
			return b.Status == domain.BookingStatusExpired
		})).Return(nil).Once()
		auditSvc.On("Log", ctx, mock.MatchedBy(func(e *domain.AuditEntry) bool {
			return e.Action == domain.AuditBookingExpired
		})).Once()

		_, err := svc.ConfirmBooking(ctx, 1, "tok-3")
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
		paymentSvc.AssertNotCalled(t, "ProcessDeposit", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		bookingRepo.AssertExpectations(t)
	})

	t.Run("wrong tenant gets access denied without mutation", func(t *testing.T) {
		bookingRepo, _, _, paymentSvc, _, _, _, svc := newBookingFixture()

		booking := pendingBooking()
		bookingRepo.On("GetByToken", ctx, "tok-3").Return(booking, nil).Once()

		_, err := svc.ConfirmBooking(ctx, 2, "tok-3")
		assert.ErrorIs(t, err, domain.ErrAccessDenied)
		assert.Equal(t, domain.BookingStatusPending, booking.Status)
		bookingRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		paymentSvc.AssertNotCalled(t, "ProcessDeposit", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("zero deposit skips payment", func(t *testing.T) {
		bookingRepo, _, _, paymentSvc, reservationSvc, emailSvc, auditSvc, svc := newBookingFixture()

		booking := pendingBooking()
		booking.DepositAmount = 0
		bookingRepo.On("GetByToken", ctx, "tok-3").Return(booking, nil).Once()
		reservationSvc.On("CreateReservation", ctx, int32(1), booking).Return(int32(78), nil).Once()
		bookingRepo.On("Update", ctx, mock.MatchedBy(func(b *domain.Booking) bool {
			return b.Status == domain.BookingStatusConfirmed && b.PaymentStatus == domain.PaymentStatusPending
		})).Return(nil).Once()
		emailSvc.On("SendBookingConfirmed", ctx, booking).Return(nil).Once()
		auditSvc.On("Log", ctx, mock.Anything).Once()

		_, err := svc.ConfirmBooking(ctx, 1, "tok-3")
		assert.NoError(t, err)
		paymentSvc.AssertNotCalled(t, "ProcessDeposit", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestBookingService_CancelBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("cancels confirmed booking and refunds deposit", func(t *testing.T) {
		bookingRepo, _, _, _, reservationSvc, emailSvc, auditSvc, svc := newBookingFixture()

		reservationID := int32(77)
		booking := &domain.Booking{
			ID:            3,
			TenantID:      1,
			BookingNumber: "FOG-2026-00003",
			Status:        domain.BookingStatusConfirmed,
			PaymentStatus: domain.PaymentStatusPaid,
			ReservationID: &reservationID,
		}
		bookingRepo.On("GetByID", ctx, int32(3)).Return(booking, nil).Once()
		bookingRepo.On("Update", ctx, mock.MatchedBy(func(b *domain.Booking) bool {
			return b.Status == domain.BookingStatusCancelled &&
				b.PaymentStatus == domain.PaymentStatusRefunded &&
				b.CancelledAt != nil &&
				b.CancellationReason == "customer request"
		})).Return(nil).Once()
		reservationSvc.On("CancelReservation", ctx, reservationID).Return(nil).Once()
		emailSvc.On("SendBookingCancelled", ctx, booking, "customer request").Return(nil).Once()
		auditSvc.On("Log", ctx, mock.MatchedBy(func(e *domain.AuditEntry) bool {
			return e.Action == domain.AuditBookingCancelled && e.UserID == 9
		})).Once()

		cancelled, err := svc.CancelBooking(ctx, 1, 3, "customer request", 9)
		assert.NoError(t, err)
		assert.Equal(t, domain.BookingStatusCancelled, cancelled.Status)
		reservationSvc.AssertExpectations(t)
	})

	t.Run("completed booking cannot be cancelled", func(t *testing.T) {
		bookingRepo, _, _, _, _, _, _, svc := newBookingFixture()

		booking := &domain.Booking{ID: 3, TenantID: 1, Status: domain.BookingStatusCompleted}
		bookingRepo.On("GetByID", ctx, int32(3)).Return(booking, nil).Once()

		_, err := svc.CancelBooking(ctx, 1, 3, "too late", 9)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
		bookingRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("tenant isolation", func(t *testing.T) {
		bookingRepo, _, _, _, _, _, _, svc := newBookingFixture()

		booking := &domain.Booking{ID: 3, TenantID: 1, Status: domain.BookingStatusPending}
		bookingRepo.On("GetByID", ctx, int32(3)).Return(booking, nil).Once()

		_, err := svc.CancelBooking(ctx, 2, 3, "wrong tenant", 9)
		assert.ErrorIs(t, err, domain.ErrAccessDenied)
		bookingRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestBookingService_ResendConfirmation(t *testing.T) {
	ctx := context.Background()

	t.Run("extends expiry and resends email", func(t *testing.T) {
		bookingRepo, _, _, _, _, emailSvc, auditSvc, svc := newBookingFixture()

		booking := &domain.Booking{
			ID:            4,
			TenantID:      1,
			BookingNumber: "FOG-2026-00004",
			Status:        domain.BookingStatusPending,
			ExpiresAt:     time.Now().Add(10 * time.Minute),
		}
		bookingRepo.On("GetByID", ctx, int32(4)).Return(booking, nil).Once()
		bookingRepo.On("Update", ctx, booking).Return(nil).Once()
		emailSvc.On("SendBookingCreated", ctx, booking).Return(nil).Once()
		auditSvc.On("Log", ctx, mock.MatchedBy(func(e *domain.AuditEntry) bool {
			return e.Action == domain.AuditBookingConfirmationResent
		})).Once()

		updated, err := svc.ResendConfirmation(ctx, 1, 4, 9)
		assert.NoError(t, err)
		assert.WithinDuration(t, time.Now().Add(24*time.Hour), updated.ExpiresAt, 5*time.Second)
	})

	t.Run("only pending bookings qualify", func(t *testing.T) {
		bookingRepo, _, _, _, _, _, _, svc := newBookingFixture()

		booking := &domain.Booking{ID: 4, TenantID: 1, Status: domain.BookingStatusConfirmed}
		bookingRepo.On("GetByID", ctx, int32(4)).Return(booking, nil).Once()

		_, err := svc.ResendConfirmation(ctx, 1, 4, 9)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	})
}

func TestBookingService_ExpirePendingBookings(t *testing.T) {
	ctx := context.Background()

	t.Run("expires all overdue bookings across tenants", func(t *testing.T) {
		bookingRepo, _, _, _, _, _, auditSvc, svc := newBookingFixture()

		overdue := []domain.Booking{
			{ID: 1, TenantID: 1, BookingNumber: "FOG-2026-00001", Status: domain.BookingStatusPending},
			{ID: 2, TenantID: 2, BookingNumber: "FOG-2026-00002", Status: domain.BookingStatusPending},
		}
		bookingRepo.On("ListExpiredPending", ctx, mock.AnythingOfType("time.Time")).Return(overdue, nil).Once()
		bookingRepo.On("Update", ctx, mock.MatchedBy(func(b *domain.Booking) bool {
			return b.Status == domain.BookingStatusExpired
		})).Return(nil).Twice()
		auditSvc.On("Log", ctx, mock.MatchedBy(func(e *domain.AuditEntry) bool {
			return e.Action == domain.AuditBookingExpired
		})).Twice()

		count, err := svc.ExpirePendingBookings(ctx)
		assert.NoError(t, err)
		assert.Equal(t, 2, count)
		bookingRepo.AssertExpectations(t)
		auditSvc.AssertExpectations(t)
	})

	t.Run("a failed update skips that booking only", func(t *testing.T) {
		bookingRepo, _, _, _, _, _, auditSvc, svc := newBookingFixture()

		overdue := []domain.Booking{
			{ID: 1, TenantID: 1, BookingNumber: "FOG-2026-00001", Status: domain.BookingStatusPending},
			{ID: 2, TenantID: 1, BookingNumber: "FOG-2026-00002", Status: domain.BookingStatusPending},
		}
		bookingRepo.On("ListExpiredPending", ctx, mock.AnythingOfType("time.Time")).Return(overdue, nil).Once()
		bookingRepo.On("Update", ctx, mock.MatchedBy(func(b *domain.Booking) bool { return b.ID == 1 })).Return(assert.AnError).Once()
		bookingRepo.On("Update", ctx, mock.MatchedBy(func(b *domain.Booking) bool { return b.ID == 2 })).Return(nil).Once()
		auditSvc.On("Log", ctx, mock.Anything).Once()

		count, err := svc.ExpirePendingBookings(ctx)
		assert.NoError(t, err)
		assert.Equal(t, 1, count)
	})
}

func TestBookingService_GetTimeSlots(t *testing.T) {
	ctx := context.Background()
	date := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	t.Run("slots available under the daily cap", func(t *testing.T) {
		bookingRepo, _, _, _, _, _, _, svc := newBookingFixture()

		bookingRepo.On("CountForDay", ctx, int32(1), date).Return(int32(3), nil).Once()

		slots, err := svc.GetTimeSlots(ctx, 1, date, domain.BookingTypeService)
		assert.NoError(t, err)
		assert.Len(t, slots, 10)
		for _, s := range slots {
			assert.True(t, s.Available)
		}
	})

	t.Run("slots blocked at the daily cap", func(t *testing.T) {
		bookingRepo, _, _, _, _, _, _, svc := newBookingFixture()

		bookingRepo.On("CountForDay", ctx, int32(1), date).Return(int32(10), nil).Once()

		slots, err := svc.GetTimeSlots(ctx, 1, date, domain.BookingTypeRental)
		assert.NoError(t, err)
		assert.Len(t, slots, 5)
		for _, s := range slots {
			assert.False(t, s.Available)
		}
	})
}

func TestBookingService_ListBookings(t *testing.T) {
	ctx := context.Background()

	bookingRepo, _, _, _, _, _, _, svc := newBookingFixture()
	bookingRepo.On("ListByTenant", ctx, int32(1), "PENDING", int32(1), int32(20)).
		Return([]domain.Booking{{ID: 1, TenantID: 1}}, int32(1), nil).Once()

	bookings, total, err := svc.ListBookings(ctx, 1, "PENDING", 1, 20)
	assert.NoError(t, err)
	assert.Equal(t, int32(1), total)
	assert.Len(t, bookings, 1)
}

func TestBookingService_GetBookingByNumber(t *testing.T) {
	ctx := context.Background()

	t.Run("returns own booking", func(t *testing.T) {
		bookingRepo, _, _, _, _, _, _, svc := newBookingFixture()

		booking := &domain.Booking{ID: 5, TenantID: 1, BookingNumber: "FOG-2026-00005"}
		bookingRepo.On("GetByNumber", ctx, "FOG-2026-00005").Return(booking, nil).Once()

		got, err := svc.GetBookingByNumber(ctx, 1, "FOG-2026-00005")
		assert.NoError(t, err)
		assert.Equal(t, booking, got)
	})

	t.Run("denies other tenant", func(t *testing.T) {
		bookingRepo, _, _, _, _, _, _, svc := newBookingFixture()

		booking := &domain.Booking{ID: 5, TenantID: 1, BookingNumber: "FOG-2026-00005"}
		bookingRepo.On("GetByNumber", ctx, "FOG-2026-00005").Return(booking, nil).Once()

		_, err := svc.GetBookingByNumber(ctx, 2, "FOG-2026-00005")
		assert.ErrorIs(t, err, domain.ErrAccessDenied)
	})
}
