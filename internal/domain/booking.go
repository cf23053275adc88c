package domain

import "time"

type BookingType string

const (
	BookingTypeRental  BookingType = "RENTAL"
	BookingTypeService BookingType = "SERVICE"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
	BookingStatusExpired   BookingStatus = "EXPIRED"
	BookingStatusCompleted BookingStatus = "COMPLETED"
)

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "PENDING"
	PaymentStatusPaid     PaymentStatus = "PAID"
	PaymentStatusFailed   PaymentStatus = "FAILED"
	PaymentStatusRefunded PaymentStatus = "REFUNDED"
)

// Booking is an online reservation made by a customer against a tenant's
// equipment. Amounts are integer HUF.
type Booking struct {
	ID                 int32         `json:"id"`
	TenantID           int32         `json:"tenant_id"`
	BookingNumber      string        `json:"booking_number"` // FOG-<year>-<5-digit-seq>
	Type               BookingType   `json:"type"`
	Status             BookingStatus `json:"status"`
	CustomerName       string        `json:"customer_name"`
	CustomerEmail      string        `json:"customer_email"`
	CustomerPhone      string        `json:"customer_phone"`
	StartDate          time.Time     `json:"start_date"`
	EndDate            *time.Time    `json:"end_date,omitempty"`
	TotalDays          int32         `json:"total_days"`
	TotalAmount        int64         `json:"total_amount"`
	DepositAmount      int64         `json:"deposit_amount"`
	PaymentStatus      PaymentStatus `json:"payment_status"`
	ConfirmationToken  string        `json:"-"`
	ExpiresAt          time.Time     `json:"expires_at"`
	ConfirmedAt        *time.Time    `json:"confirmed_at,omitempty"`
	CancelledAt        *time.Time    `json:"cancelled_at,omitempty"`
	CancellationReason string        `json:"cancellation_reason,omitempty"`
	ReservationID      *int32        `json:"reservation_id,omitempty"`
	Notes              string        `json:"notes,omitempty"`
	Items              []BookingItem `json:"items,omitempty"`
	CreatedOn          time.Time     `json:"created_on"`
	UpdatedOn          time.Time     `json:"updated_on"`
}

type BookingItem struct {
	ID          int32  `json:"id"`
	BookingID   int32  `json:"booking_id"`
	EquipmentID *int32 `json:"equipment_id,omitempty"`
	Name        string `json:"name"`
	Quantity    int32  `json:"quantity"`
	DailyRate   int64  `json:"daily_rate"`
	TotalDays   int32  `json:"total_days"`
	ItemTotal   int64  `json:"item_total"` // daily_rate * quantity * total_days
}

// BookingConfirmation is the receipt returned after a successful confirm.
type BookingConfirmation struct {
	BookingID     int32     `json:"booking_id"`
	BookingNumber string    `json:"booking_number"`
	Token         string    `json:"token"`
	ConfirmedAt   time.Time `json:"confirmed_at"`
	TotalAmount   int64     `json:"total_amount"`
}

// EquipmentAvailability is one fan-out result of an availability check,
// order-preserving with respect to the requested equipment ids.
type EquipmentAvailability struct {
	EquipmentID           int32   `json:"equipment_id"`
	Available             bool    `json:"available"`
	ConflictingBookingIDs []int32 `json:"conflicting_booking_ids,omitempty"`
}

// TimeSlot is one bookable business-hour window on a given day. Available
// reflects the tenant's global daily capacity, not per-slot occupancy.
type TimeSlot struct {
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Available bool      `json:"available"`
}
