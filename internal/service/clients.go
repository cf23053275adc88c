package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"rentflow-backend/internal/domain"
)

// JSON-over-HTTP clients for the partner services this core depends on.
// Retries and backoff are deliberately left to the caller.

type partnerClient struct {
	baseURL string
	http    *http.Client
}

func newPartnerClient(baseURL string, timeout time.Duration) partnerClient {
	return partnerClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *partnerClient) postJSON(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("%s returned status %d", path, resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

type inventoryClient struct {
	partnerClient
}

func NewInventoryClient(baseURL string, timeout time.Duration) InventoryService {
	return &inventoryClient{newPartnerClient(baseURL, timeout)}
}

func (c *inventoryClient) CheckAvailability(ctx context.Context, tenantID, equipmentID int32, start, end time.Time) (*domain.EquipmentAvailability, error) {
	payload := map[string]any{
		"tenant_id":    tenantID,
		"equipment_id": equipmentID,
		"start":        start,
		"end":          end,
	}
	var result domain.EquipmentAvailability
	if err := c.postJSON(ctx, "/availability/check", payload, &result); err != nil {
		return nil, err
	}
	result.EquipmentID = equipmentID
	return &result, nil
}

func (c *inventoryClient) IncreaseStock(ctx context.Context, tenantID, productID int32, quantity decimal.Decimal, locationCode string) error {
	payload := map[string]any{
		"tenant_id":     tenantID,
		"product_id":    productID,
		"quantity":      quantity,
		"location_code": locationCode,
	}
	return c.postJSON(ctx, "/stock/increase", payload, nil)
}

type paymentClient struct {
	partnerClient
}

func NewPaymentClient(baseURL string, timeout time.Duration) PaymentService {
	return &paymentClient{newPartnerClient(baseURL, timeout)}
}

func (c *paymentClient) ProcessDeposit(ctx context.Context, bookingID int32, amount int64, reference string) (*PaymentResult, error) {
	payload := map[string]any{
		"booking_id": bookingID,
		"amount":     amount,
		"reference":  reference,
	}
	var result PaymentResult
	if err := c.postJSON(ctx, "/deposits", payload, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *paymentClient) RefundDeposit(ctx context.Context, bookingID int32, transactionID string) error {
	payload := map[string]any{
		"booking_id":     bookingID,
		"transaction_id": transactionID,
	}
	return c.postJSON(ctx, "/refunds", payload, nil)
}

type reservationClient struct {
	partnerClient
}

func NewReservationClient(baseURL string, timeout time.Duration) ReservationService {
	return &reservationClient{newPartnerClient(baseURL, timeout)}
}

func (c *reservationClient) CreateReservation(ctx context.Context, tenantID int32, booking *domain.Booking) (int32, error) {
	payload := map[string]any{
		"tenant_id":      tenantID,
		"booking_number": booking.BookingNumber,
		"start_date":     booking.StartDate,
		"end_date":       booking.EndDate,
		"items":          booking.Items,
	}
	var result struct {
		ReservationID int32 `json:"reservation_id"`
	}
	if err := c.postJSON(ctx, "/reservations", payload, &result); err != nil {
		return 0, err
	}
	return result.ReservationID, nil
}

func (c *reservationClient) CancelReservation(ctx context.Context, reservationID int32) error {
	return c.postJSON(ctx, fmt.Sprintf("/reservations/%d/cancel", reservationID), map[string]any{}, nil)
}
