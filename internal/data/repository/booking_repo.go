package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"villa-booking/internal/data/entity"
	"villa-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// Errors mapped from persistence-layer constraints. The exclusion constraint
// over (villa_id, daterange) and the unique index over
// (user_id, idempotency_key) make check-then-act races lose at commit time.
var (
	ErrDateConflict            = errors.New("booking date range conflicts with an existing booking")
	ErrDuplicateIdempotencyKey = errors.New("idempotency key already used for this user")
)

// BookingFilter selects a slice of a user's booking history.
type BookingFilter string

const (
	BookingFilterAll        BookingFilter = ""
	BookingFilterUpcoming   BookingFilter = "upcoming"
	BookingFilterPast       BookingFilter = "past"
	BookingFilterIncomplete BookingFilter = "incomplete"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindByIdempotencyKey(ctx context.Context, userID uuid.UUID, key string) (*entity.Booking, error)
	FindForVerification(ctx context.Context, bookingID uuid.UUID, orderID string, userID uuid.UUID) (*entity.Booking, error)
	FindByUserID(ctx context.Context, userID uuid.UUID, filter BookingFilter, now time.Time) ([]*entity.Booking, error)
	Update(ctx context.Context, booking *entity.Booking) error

	// Business queries
	HasDateConflict(ctx context.Context, villaID uuid.UUID, checkIn, checkOut time.Time) (bool, error)
	MarkCancelled(ctx context.Context, bookingID uuid.UUID, reason string, at time.Time) error
	MarkPaid(ctx context.Context, bookingID uuid.UUID, paymentID, signature string, paidAt time.Time) error
	MarkPaymentFailed(ctx context.Context, bookingID uuid.UUID, lastError string) error
	PromoteCompleted(ctx context.Context, before time.Time) (int64, error)
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `id, villa_id, user_id, check_in, check_out, adults, children, pets,
	nightly_rate, nights, discount_percent, coupon_code, coupon_discount, extra_charges,
	total_amount, currency, payment_method, is_paid, paid_at, status, cancel_reason,
	cancelled_at, order_id, payment_id, signature, payment_status, payment_gateway,
	payment_amount, payment_currency, contact_number, idempotency_key, payment_attempts,
	last_payment_error, created_at, updated_at`

func scanBooking(row pgx.Row) (*entity.Booking, error) {
	var b entity.Booking
	err := row.Scan(
		&b.ID, &b.VillaID, &b.UserID, &b.CheckIn, &b.CheckOut, &b.Adults, &b.Children, &b.Pets,
		&b.NightlyRate, &b.Nights, &b.DiscountPercent, &b.CouponCode, &b.CouponDiscount, &b.ExtraCharges,
		&b.TotalAmount, &b.Currency, &b.PaymentMethod, &b.IsPaid, &b.PaidAt, &b.Status, &b.CancelReason,
		&b.CancelledAt, &b.OrderID, &b.PaymentID, &b.Signature, &b.PaymentStatus, &b.PaymentGateway,
		&b.PaymentAmount, &b.PaymentCurrency, &b.ContactNumber, &b.IdempotencyKey, &b.PaymentAttempts,
		&b.LastPaymentError, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// mapConstraintError translates constraint violations into domain-visible
// repository errors. 23P01 is exclusion_violation, 23505 unique_violation.
func mapConstraintError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case "23P01":
		return ErrDateConflict
	case "23505":
		if strings.Contains(pgErr.ConstraintName, "idempotency") {
			return ErrDuplicateIdempotencyKey
		}
	}
	return err
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (` + bookingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17,
		        $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29, $30, $31, $32,
		        $33, $34, $35)
	`

	_, err := r.db.Exec(ctx, query,
		booking.ID, booking.VillaID, booking.UserID, booking.CheckIn, booking.CheckOut,
		booking.Adults, booking.Children, booking.Pets,
		booking.NightlyRate, booking.Nights, booking.DiscountPercent, booking.CouponCode,
		booking.CouponDiscount, booking.ExtraCharges, booking.TotalAmount, booking.Currency,
		booking.PaymentMethod, booking.IsPaid, booking.PaidAt, booking.Status,
		booking.CancelReason, booking.CancelledAt, booking.OrderID, booking.PaymentID,
		booking.Signature, booking.PaymentStatus, booking.PaymentGateway, booking.PaymentAmount,
		booking.PaymentCurrency, booking.ContactNumber, booking.IdempotencyKey,
		booking.PaymentAttempts, booking.LastPaymentError, booking.CreatedAt, booking.UpdatedAt,
	)

	if err != nil {
		if mapped := mapConstraintError(err); mapped != err {
			return mapped
		}
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("villa_id", booking.VillaID.String()),
			zap.String("user_id", booking.UserID.String()),
		)
		return fmt.Errorf("create booking: %w", err)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return booking, nil
}

func (r *bookingRepository) FindByIdempotencyKey(ctx context.Context, userID uuid.UUID, key string) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE user_id = $1 AND idempotency_key = $2`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, userID, key))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by idempotency key",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find booking by idempotency key: %w", err)
	}

	return booking, nil
}

func (r *bookingRepository) FindForVerification(ctx context.Context, bookingID uuid.UUID, orderID string, userID uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1 AND order_id = $2 AND user_id = $3`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, bookingID, orderID, userID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking for verification",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
			zap.String("order_id", orderID),
		)
		return nil, fmt.Errorf("find booking %s for order %s: %w", bookingID.String(), orderID, err)
	}

	return booking, nil
}

func (r *bookingRepository) FindByUserID(ctx context.Context, userID uuid.UUID, filter BookingFilter, now time.Time) ([]*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE user_id = $1`
	args := []any{userID}

	switch filter {
	case BookingFilterUpcoming:
		query += ` AND check_in > $2 AND status NOT IN ('cancelled', 'completed')`
		args = append(args, now)
	case BookingFilterPast:
		query += ` AND check_out <= $2`
		args = append(args, now)
	case BookingFilterIncomplete:
		query += ` AND is_paid = FALSE AND status = 'pending'`
	}
	query += ` ORDER BY check_in DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to find bookings by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("filter", string(filter)),
		)
		return nil, fmt.Errorf("find bookings by user ID %s: %w", userID.String(), err)
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}

	return bookings, rows.Err()
}

func (r *bookingRepository) Update(ctx context.Context, booking *entity.Booking) error {
	query := `
		UPDATE bookings
		SET status = $2, is_paid = $3, paid_at = $4, payment_method = $5, order_id = $6,
		    payment_status = $7, cancel_reason = $8, cancelled_at = $9, updated_at = $10
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		booking.ID,
		booking.Status,
		booking.IsPaid,
		booking.PaidAt,
		booking.PaymentMethod,
		booking.OrderID,
		booking.PaymentStatus,
		booking.CancelReason,
		booking.CancelledAt,
		booking.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update booking",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
		)
		return fmt.Errorf("update booking %s: %w", booking.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found", booking.ID.String())
	}

	return nil
}

// HasDateConflict applies the half-open overlap law: [a,b) and [c,d)
// overlap iff a < d AND b > c. Cancelled bookings never conflict.
func (r *bookingRepository) HasDateConflict(ctx context.Context, villaID uuid.UUID, checkIn, checkOut time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM bookings
			WHERE villa_id = $1
			  AND status <> 'cancelled'
			  AND check_in < $3
			  AND check_out > $2
		)
	`

	var conflict bool
	err := r.db.QueryRow(ctx, query, villaID, checkIn, checkOut).Scan(&conflict)
	if err != nil {
		r.log.Error("Failed to check date conflict",
			zap.Error(err),
			zap.String("villa_id", villaID.String()),
		)
		return false, fmt.Errorf("check date conflict for villa %s: %w", villaID.String(), err)
	}

	return conflict, nil
}

func (r *bookingRepository) MarkCancelled(ctx context.Context, bookingID uuid.UUID, reason string, at time.Time) error {
	query := `
		UPDATE bookings
		SET status = 'cancelled', cancel_reason = $2, cancelled_at = $3, updated_at = NOW()
		WHERE id = $1 AND status = 'confirmed'
	`

	result, err := r.db.Exec(ctx, query, bookingID, reason, at)
	if err != nil {
		r.log.Error("Failed to cancel booking",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return fmt.Errorf("cancel booking %s: %w", bookingID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s is not in a cancellable status", bookingID.String())
	}

	return nil
}

// MarkPaid records a verified payment and moves the booking into
// paid_awaiting_confirmation. The payment_status guard keeps a concurrent
// duplicate verification from double-incrementing the attempt counter; the
// status guard keeps a late payment from pulling a cancelled or completed
// booking out of its terminal status.
func (r *bookingRepository) MarkPaid(ctx context.Context, bookingID uuid.UUID, paymentID, signature string, paidAt time.Time) error {
	query := `
		UPDATE bookings
		SET payment_id = $2, signature = $3, payment_status = 'paid', is_paid = TRUE,
		    paid_at = $4, payment_attempts = payment_attempts + 1,
		    status = 'paid_awaiting_confirmation', last_payment_error = NULL, updated_at = NOW()
		WHERE id = $1 AND payment_status <> 'paid' AND status NOT IN ('cancelled', 'completed')
	`

	result, err := r.db.Exec(ctx, query, bookingID, paymentID, signature, paidAt)
	if err != nil {
		r.log.Error("Failed to mark booking paid",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
			zap.String("payment_id", paymentID),
		)
		return fmt.Errorf("mark booking %s paid: %w", bookingID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found, already paid or in a terminal status", bookingID.String())
	}

	return nil
}

func (r *bookingRepository) MarkPaymentFailed(ctx context.Context, bookingID uuid.UUID, lastError string) error {
	query := `
		UPDATE bookings
		SET payment_status = 'failed', payment_attempts = payment_attempts + 1,
		    last_payment_error = $2, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query, bookingID, lastError)
	if err != nil {
		r.log.Error("Failed to record payment failure",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return fmt.Errorf("record payment failure for booking %s: %w", bookingID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found", bookingID.String())
	}

	return nil
}

// PromoteCompleted advances confirmed bookings whose stay has ended. Called
// by the scheduled completion sweep, never as a side effect of a read.
func (r *bookingRepository) PromoteCompleted(ctx context.Context, before time.Time) (int64, error) {
	query := `
		UPDATE bookings
		SET status = 'completed', updated_at = NOW()
		WHERE status = 'confirmed' AND check_out <= $1
	`

	result, err := r.db.Exec(ctx, query, before)
	if err != nil {
		r.log.Error("Failed to promote completed bookings", zap.Error(err))
		return 0, fmt.Errorf("promote completed bookings: %w", err)
	}

	return result.RowsAffected(), nil
}
