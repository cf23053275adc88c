package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"rentflow-backend/internal/domain"
	"rentflow-backend/internal/repository"
)

const bookingColumns = `id, tenant_id, booking_number, type, status, customer_name, customer_email, customer_phone,
	start_date, end_date, total_days, total_amount, deposit_amount, payment_status, confirmation_token,
	expires_at, confirmed_at, cancelled_at, cancellation_reason, reservation_id, notes, created_on, updated_on`

type bookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) repository.BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now()
	query := `INSERT INTO bookings (tenant_id, booking_number, type, status, customer_name, customer_email, customer_phone,
	          start_date, end_date, total_days, total_amount, deposit_amount, payment_status, confirmation_token,
	          expires_at, notes, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18) RETURNING id`
	err = tx.QueryRowContext(ctx, query,
		b.TenantID, b.BookingNumber, b.Type, b.Status, b.CustomerName, b.CustomerEmail, b.CustomerPhone,
		b.StartDate, b.EndDate, b.TotalDays, b.TotalAmount, b.DepositAmount, b.PaymentStatus, b.ConfirmationToken,
		b.ExpiresAt, b.Notes, now, now).Scan(&b.ID)
	if err != nil {
		return err
	}

	itemQuery := `INSERT INTO booking_items (booking_id, equipment_id, name, quantity, daily_rate, total_days, item_total)
	              VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	for i := range b.Items {
		item := &b.Items[i]
		item.BookingID = b.ID
		if err := tx.QueryRowContext(ctx, itemQuery,
			b.ID, item.EquipmentID, item.Name, item.Quantity, item.DailyRate, item.TotalDays, item.ItemTotal).Scan(&item.ID); err != nil {
			return err
		}
	}

	b.CreatedOn = now
	b.UpdatedOn = now
	return tx.Commit()
}

func (r *bookingRepository) GetByID(ctx context.Context, id int32) (*domain.Booking, error) {
	return r.getOne(ctx, "id = $1", id)
}

func (r *bookingRepository) GetByNumber(ctx context.Context, number string) (*domain.Booking, error) {
	return r.getOne(ctx, "booking_number = $1", number)
}

func (r *bookingRepository) GetByToken(ctx context.Context, token string) (*domain.Booking, error) {
	return r.getOne(ctx, "confirmation_token = $1", token)
}

func (r *bookingRepository) getOne(ctx context.Context, where string, arg any) (*domain.Booking, error) {
	b := &domain.Booking{}
	query := fmt.Sprintf("SELECT %s FROM bookings WHERE %s", bookingColumns, where)
	err := scanBooking(r.db.QueryRowContext(ctx, query, arg), b)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFoundError("booking", arg)
	}
	if err != nil {
		return nil, err
	}

	items, err := r.loadItems(ctx, b.ID)
	if err != nil {
		return nil, err
	}
	b.Items = items
	return b, nil
}

func (r *bookingRepository) loadItems(ctx context.Context, bookingID int32) ([]domain.BookingItem, error) {
	query := `SELECT id, booking_id, equipment_id, name, quantity, daily_rate, total_days, item_total
	          FROM booking_items WHERE booking_id = $1 ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.BookingItem
	for rows.Next() {
		var it domain.BookingItem
		if err := rows.Scan(&it.ID, &it.BookingID, &it.EquipmentID, &it.Name, &it.Quantity, &it.DailyRate, &it.TotalDays, &it.ItemTotal); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *bookingRepository) Update(ctx context.Context, b *domain.Booking) error {
	query := `UPDATE bookings SET status=$1, payment_status=$2, expires_at=$3, confirmed_at=$4, cancelled_at=$5,
	          cancellation_reason=$6, reservation_id=$7, updated_on=$8 WHERE id=$9`
	_, err := r.db.ExecContext(ctx, query,
		b.Status, b.PaymentStatus, b.ExpiresAt, b.ConfirmedAt, b.CancelledAt,
		b.CancellationReason, b.ReservationID, time.Now(), b.ID)
	return err
}

func (r *bookingRepository) ListByTenant(ctx context.Context, tenantID int32, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	offset := (page - 1) * pageSize
	query := fmt.Sprintf("SELECT %s FROM bookings WHERE tenant_id = $1", bookingColumns)

	args := []any{tenantID}
	argIdx := 2
	if status != "" {
		query += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, status)
		argIdx++
	}

	var count int32
	countQuery := "SELECT count(*) FROM (" + query + ") as sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(" ORDER BY created_on DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		var b domain.Booking
		if err := scanBooking(rows, &b); err != nil {
			return nil, 0, err
		}
		bookings = append(bookings, b)
	}
	return bookings, count, rows.Err()
}

func (r *bookingRepository) ListExpiredPending(ctx context.Context, now time.Time) ([]domain.Booking, error) {
	query := fmt.Sprintf("SELECT %s FROM bookings WHERE status = $1 AND expires_at < $2 ORDER BY expires_at", bookingColumns)
	rows, err := r.db.QueryContext(ctx, query, domain.BookingStatusPending, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		var b domain.Booking
		if err := scanBooking(rows, &b); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func (r *bookingRepository) CountForDay(ctx context.Context, tenantID int32, day time.Time) (int32, error) {
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)
	query := `SELECT count(*) FROM bookings WHERE tenant_id = $1 AND status IN ($2, $3) AND start_date >= $4 AND start_date < $5`
	var count int32
	err := r.db.QueryRowContext(ctx, query, tenantID,
		domain.BookingStatusPending, domain.BookingStatusConfirmed, dayStart, dayEnd).Scan(&count)
	return count, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(row rowScanner, b *domain.Booking) error {
	return row.Scan(&b.ID, &b.TenantID, &b.BookingNumber, &b.Type, &b.Status, &b.CustomerName, &b.CustomerEmail, &b.CustomerPhone,
		&b.StartDate, &b.EndDate, &b.TotalDays, &b.TotalAmount, &b.DepositAmount, &b.PaymentStatus, &b.ConfirmationToken,
		&b.ExpiresAt, &b.ConfirmedAt, &b.CancelledAt, &b.CancellationReason, &b.ReservationID, &b.Notes, &b.CreatedOn, &b.UpdatedOn)
}
