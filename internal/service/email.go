package service

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"rentflow-backend/internal/domain"
)

type emailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &emailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *emailService) send(to, toName, subject, plainText string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(toName, to)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, "")

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}

func (s *emailService) SendBookingCreated(ctx context.Context, booking *domain.Booking) error {
	subject := fmt.Sprintf("Booking %s received", booking.BookingNumber)
	body := fmt.Sprintf(
		"Hello %s,\n\nWe received your booking %s for %s.\nTotal: %d HUF.\n\nPlease confirm it before %s using your confirmation link, otherwise it expires automatically.\n",
		booking.CustomerName, booking.BookingNumber, booking.StartDate.Format("2006-01-02"),
		booking.TotalAmount, booking.ExpiresAt.Format("2006-01-02 15:04"))
	return s.send(booking.CustomerEmail, booking.CustomerName, subject, body)
}

func (s *emailService) SendBookingConfirmed(ctx context.Context, booking *domain.Booking) error {
	subject := fmt.Sprintf("Booking %s confirmed", booking.BookingNumber)
	body := fmt.Sprintf(
		"Hello %s,\n\nYour booking %s is confirmed for %s.\nTotal: %d HUF.\n\nSee you soon!\n",
		booking.CustomerName, booking.BookingNumber, booking.StartDate.Format("2006-01-02"), booking.TotalAmount)
	return s.send(booking.CustomerEmail, booking.CustomerName, subject, body)
}

func (s *emailService) SendBookingCancelled(ctx context.Context, booking *domain.Booking, reason string) error {
	subject := fmt.Sprintf("Booking %s cancelled", booking.BookingNumber)
	body := fmt.Sprintf("Hello %s,\n\nYour booking %s has been cancelled.", booking.CustomerName, booking.BookingNumber)
	if reason != "" {
		body += fmt.Sprintf("\nReason: %s", reason)
	}
	body += "\n"
	return s.send(booking.CustomerEmail, booking.CustomerName, subject, body)
}

func (s *emailService) SendSupplierDiscrepancyNotification(ctx context.Context, supplierID int32, supplierName, supplierEmail string, discrepancy *domain.Discrepancy, receiptNumber string) error {
	if supplierEmail == "" {
		// Supplier contact lives in the partner CRM; fall back to the
		// shared purchasing inbox.
		supplierEmail = s.fromEmail
	}
	subject := fmt.Sprintf("Delivery discrepancy on receipt %s", receiptNumber)
	body := fmt.Sprintf(
		"Dear %s,\n\nA %s discrepancy was recorded on goods receipt %s.\nExpected: %s, actual: %s (difference %s).\n\nPlease review and respond.\n",
		supplierName, discrepancy.Type, receiptNumber,
		discrepancy.ExpectedQuantity.String(), discrepancy.ActualQuantity.String(), discrepancy.Difference.String())
	return s.send(supplierEmail, supplierName, subject, body)
}
