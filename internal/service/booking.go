package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"

	"rentflow-backend/internal/domain"
	"rentflow-backend/internal/logger"
	"rentflow-backend/internal/repository"
	"rentflow-backend/internal/utils"
)

type bookingService struct {
	bookingRepo    repository.BookingRepository
	sequenceRepo   repository.SequenceRepository
	inventorySvc   InventoryService
	paymentSvc     PaymentService
	reservationSvc ReservationService
	emailSvc       EmailService
	auditSvc       AuditService
	expiryWindow   time.Duration
	dailyCapacity  int32
}

func NewBookingService(
	bookingRepo repository.BookingRepository,
	sequenceRepo repository.SequenceRepository,
	inventorySvc InventoryService,
	paymentSvc PaymentService,
	reservationSvc ReservationService,
	emailSvc EmailService,
	auditSvc AuditService,
	expiryWindow time.Duration,
	dailyCapacity int32,
) BookingService {
	return &bookingService{
		bookingRepo:    bookingRepo,
		sequenceRepo:   sequenceRepo,
		inventorySvc:   inventorySvc,
		paymentSvc:     paymentSvc,
		reservationSvc: reservationSvc,
		emailSvc:       emailSvc,
		auditSvc:       auditSvc,
		expiryWindow:   expiryWindow,
		dailyCapacity:  dailyCapacity,
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, tenantID int32, input *CreateBookingInput) (*domain.Booking, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	if input.EndDate != nil && !input.EndDate.After(input.StartDate) {
		return nil, domain.NewValidationError([]string{"end_date: must be after start_date"})
	}

	// Every item carrying an equipment reference gets an availability
	// check before anything is written.
	end := input.StartDate
	if input.EndDate != nil {
		end = *input.EndDate
	}
	for _, item := range input.Items {
		if item.EquipmentID == nil {
			continue
		}
		avail, err := s.inventorySvc.CheckAvailability(ctx, tenantID, *item.EquipmentID, input.StartDate, end)
		if err != nil {
			return nil, domain.NewDependencyError("inventory", err.Error())
		}
		if !avail.Available {
			return nil, domain.NewDependencyError("inventory",
				fmt.Sprintf("equipment %d not available for the requested period", *item.EquipmentID))
		}
	}

	totalDays := utils.TotalDays(input.StartDate, input.EndDate)
	items := make([]domain.BookingItem, 0, len(input.Items))
	var totalAmount int64
	for _, in := range input.Items {
		itemTotal := in.DailyRate * int64(in.Quantity) * int64(totalDays)
		items = append(items, domain.BookingItem{
			EquipmentID: in.EquipmentID,
			Name:        in.Name,
			Quantity:    in.Quantity,
			DailyRate:   in.DailyRate,
			TotalDays:   totalDays,
			ItemTotal:   itemTotal,
		})
		totalAmount += itemTotal
	}

	now := time.Now()
	seq, err := s.sequenceRepo.Next(ctx, tenantID, repository.SequenceScopeBooking, now.Year())
	if err != nil {
		return nil, fmt.Errorf("booking number sequence: %w", err)
	}

	token, err := newConfirmationToken()
	if err != nil {
		return nil, err
	}

	booking := &domain.Booking{
		TenantID:          tenantID,
		BookingNumber:     utils.FormatBookingNumber(now.Year(), seq),
		Type:              input.Type,
		Status:            domain.BookingStatusPending,
		CustomerName:      input.CustomerName,
		CustomerEmail:     input.CustomerEmail,
		CustomerPhone:     input.CustomerPhone,
		StartDate:         input.StartDate,
		EndDate:           input.EndDate,
		TotalDays:         totalDays,
		TotalAmount:       totalAmount,
		DepositAmount:     input.DepositAmount,
		PaymentStatus:     domain.PaymentStatusPending,
		ConfirmationToken: token,
		ExpiresAt:         now.Add(s.expiryWindow),
		Notes:             input.Notes,
		Items:             items,
	}

	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, err
	}

	// The booking record is authoritative once persisted; a failed
	// notification does not roll it back.
	if err := s.emailSvc.SendBookingCreated(ctx, booking); err != nil {
		logger.Warn("booking created notification failed", "booking_number", booking.BookingNumber, "error", err)
	}

	s.auditSvc.Log(ctx, &domain.AuditEntry{
		TenantID:   tenantID,
		Action:     domain.AuditBookingCreated,
		EntityType: "booking",
		EntityID:   booking.ID,
		Metadata: map[string]string{
			"booking_number": booking.BookingNumber,
			"total_amount":   fmt.Sprintf("%d", booking.TotalAmount),
		},
	})

	return booking, nil
}

func (s *bookingService) CheckAvailability(ctx context.Context, tenantID int32, equipmentIDs []int32, start, end time.Time) ([]domain.EquipmentAvailability, error) {
	results := make([]domain.EquipmentAvailability, 0, len(equipmentIDs))
	for _, id := range equipmentIDs {
		avail, err := s.inventorySvc.CheckAvailability(ctx, tenantID, id, start, end)
		if err != nil {
			return nil, domain.NewDependencyError("inventory", err.Error())
		}
		results = append(results, *avail)
	}
	return results, nil
}

func (s *bookingService) GetTimeSlots(ctx context.Context, tenantID int32, date time.Time, bookingType domain.BookingType) ([]domain.TimeSlot, error) {
	count, err := s.bookingRepo.CountForDay(ctx, tenantID, date)
	if err != nil {
		return nil, err
	}
	// Global daily cap, not per-slot occupancy.
	return utils.BuildTimeSlots(date, bookingType, count < s.dailyCapacity), nil
}

func (s *bookingService) GetBookingByNumber(ctx context.Context, tenantID int32, number string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	if err := tenantGuard(booking.TenantID, tenantID, "booking", number); err != nil {
		return nil, err
	}
	return booking, nil
}

func (s *bookingService) ListBookings(ctx context.Context, tenantID int32, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	return s.bookingRepo.ListByTenant(ctx, tenantID, status, page, pageSize)
}

func (s *bookingService) GetBookingStatus(ctx context.Context, tenantID int32, token string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if err := tenantGuard(booking.TenantID, tenantID, "booking", booking.ID); err != nil {
		return nil, err
	}
	return booking, nil
}

func (s *bookingService) ConfirmBooking(ctx context.Context, tenantID int32, token string) (*domain.BookingConfirmation, error) {
	booking, err := s.bookingRepo.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if err := tenantGuard(booking.TenantID, tenantID, "booking", booking.ID); err != nil {
		return nil, err
	}
	if booking.Status != domain.BookingStatusPending {
		return nil, domain.NewTransitionError("booking %s cannot be confirmed from status %s", booking.BookingNumber, booking.Status)
	}

	now := time.Now()
	if now.After(booking.ExpiresAt) {
		// Lazy expiry: the sweep has not caught this booking yet.
		booking.Status = domain.BookingStatusExpired
		if err := s.bookingRepo.Update(ctx, booking); err != nil {
			return nil, err
		}
		s.auditSvc.Log(ctx, &domain.AuditEntry{
			TenantID:   tenantID,
			Action:     domain.AuditBookingExpired,
			EntityType: "booking",
			EntityID:   booking.ID,
			Metadata:   map[string]string{"booking_number": booking.BookingNumber},
		})
		return nil, domain.NewTransitionError("booking %s has expired", booking.BookingNumber)
	}

	depositTaken := false
	if booking.DepositAmount > 0 {
		result, err := s.paymentSvc.ProcessDeposit(ctx, booking.ID, booking.DepositAmount, uuid.NewString())
		if err != nil {
			return nil, domain.NewDependencyError("payment failed", err.Error())
		}
		if !result.Success {
			return nil, domain.NewDependencyError("payment failed", result.Error)
		}
		depositTaken = true
	}

	reservationID, err := s.reservationSvc.CreateReservation(ctx, tenantID, booking)
	if err != nil {
		return nil, domain.NewDependencyError("reservation", err.Error())
	}

	booking.Status = domain.BookingStatusConfirmed
	booking.ConfirmedAt = &now
	booking.ReservationID = &reservationID
	if depositTaken {
		booking.PaymentStatus = domain.PaymentStatusPaid
	}
	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return nil, err
	}

	if err := s.emailSvc.SendBookingConfirmed(ctx, booking); err != nil {
		logger.Warn("booking confirmation notification failed", "booking_number", booking.BookingNumber, "error", err)
	}

	s.auditSvc.Log(ctx, &domain.AuditEntry{
		TenantID:   tenantID,
		Action:     domain.AuditBookingConfirmed,
		EntityType: "booking",
		EntityID:   booking.ID,
		Metadata: map[string]string{
			"booking_number": booking.BookingNumber,
			"reservation_id": fmt.Sprintf("%d", reservationID),
		},
	})

	return &domain.BookingConfirmation{
		BookingID:     booking.ID,
		BookingNumber: booking.BookingNumber,
		Token:         booking.ConfirmationToken,
		ConfirmedAt:   now,
		TotalAmount:   booking.TotalAmount,
	}, nil
}

func (s *bookingService) CancelBooking(ctx context.Context, tenantID, bookingID int32, reason string, userID int32) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if err := tenantGuard(booking.TenantID, tenantID, "booking", bookingID); err != nil {
		return nil, err
	}
	if booking.Status == domain.BookingStatusCancelled || booking.Status == domain.BookingStatusCompleted {
		return nil, domain.NewTransitionError("booking %s cannot be cancelled from status %s", booking.BookingNumber, booking.Status)
	}

	// Refund execution lives with the payment provider; here only the
	// status flips.
	if booking.PaymentStatus == domain.PaymentStatusPaid {
		booking.PaymentStatus = domain.PaymentStatusRefunded
	}

	now := time.Now()
	booking.Status = domain.BookingStatusCancelled
	booking.CancelledAt = &now
	booking.CancellationReason = reason
	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return nil, err
	}

	if booking.ReservationID != nil {
		if err := s.reservationSvc.CancelReservation(ctx, *booking.ReservationID); err != nil {
			logger.Warn("reservation cancel failed", "booking_number", booking.BookingNumber, "reservation_id", *booking.ReservationID, "error", err)
		}
	}

	if err := s.emailSvc.SendBookingCancelled(ctx, booking, reason); err != nil {
		logger.Warn("booking cancellation notification failed", "booking_number", booking.BookingNumber, "error", err)
	}

	s.auditSvc.Log(ctx, &domain.AuditEntry{
		TenantID:   tenantID,
		UserID:     userID,
		Action:     domain.AuditBookingCancelled,
		EntityType: "booking",
		EntityID:   booking.ID,
		Metadata: map[string]string{
			"booking_number": booking.BookingNumber,
			"reason":         reason,
		},
	})

	return booking, nil
}

func (s *bookingService) ResendConfirmation(ctx context.Context, tenantID, bookingID, userID int32) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if err := tenantGuard(booking.TenantID, tenantID, "booking", bookingID); err != nil {
		return nil, err
	}
	if booking.Status != domain.BookingStatusPending {
		return nil, domain.NewTransitionError("confirmation can only be resent while booking %s is pending", booking.BookingNumber)
	}

	// Fresh window from now, not cumulative.
	booking.ExpiresAt = time.Now().Add(s.expiryWindow)
	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return nil, err
	}

	if err := s.emailSvc.SendBookingCreated(ctx, booking); err != nil {
		logger.Warn("confirmation resend failed", "booking_number", booking.BookingNumber, "error", err)
	}

	s.auditSvc.Log(ctx, &domain.AuditEntry{
		TenantID:   tenantID,
		UserID:     userID,
		Action:     domain.AuditBookingConfirmationResent,
		EntityType: "booking",
		EntityID:   booking.ID,
		Metadata:   map[string]string{"booking_number": booking.BookingNumber},
	})

	return booking, nil
}

func (s *bookingService) ExpirePendingBookings(ctx context.Context) (int, error) {
	expired, err := s.bookingRepo.ListExpiredPending(ctx, time.Now())
	if err != nil {
		return 0, err
	}

	count := 0
	for i := range expired {
		booking := &expired[i]
		booking.Status = domain.BookingStatusExpired
		if err := s.bookingRepo.Update(ctx, booking); err != nil {
			logger.Error("failed to expire booking", "booking_number", booking.BookingNumber, "error", err)
			continue
		}
		s.auditSvc.Log(ctx, &domain.AuditEntry{
			TenantID:   booking.TenantID,
			Action:     domain.AuditBookingExpired,
			EntityType: "booking",
			EntityID:   booking.ID,
			Metadata:   map[string]string{"booking_number": booking.BookingNumber},
		})
		count++
	}
	return count, nil
}

func newConfirmationToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("confirmation token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
