package entity

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending                  BookingStatus = "pending"
	BookingStatusPaidAwaitingConfirmation BookingStatus = "paid_awaiting_confirmation"
	BookingStatusConfirmed                BookingStatus = "confirmed"
	BookingStatusCancelled                BookingStatus = "cancelled"
	BookingStatusCompleted                BookingStatus = "completed"
)

// Terminal reports whether no further status transition is allowed.
func (s BookingStatus) Terminal() bool {
	return s == BookingStatusCancelled || s == BookingStatusCompleted
}

type PaymentStatus string

const (
	PaymentStatusCreated PaymentStatus = "created"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
)

// Booking is the central record linking a user, a villa, a date range and
// settlement state. Monetary fields are int64 minor currency units.
// [CheckIn, CheckOut) is half-open: a stay starting on another stay's
// check-out date does not conflict with it.
type Booking struct {
	Base
	VillaID  uuid.UUID `db:"villa_id"`
	UserID   uuid.UUID `db:"user_id"`
	CheckIn  time.Time `db:"check_in"`
	CheckOut time.Time `db:"check_out"`
	Adults   int       `db:"adults"`
	Children int       `db:"children"`
	Pets     int       `db:"pets"`

	// Pricing snapshot, immutable once set.
	NightlyRate     int64   `db:"nightly_rate"`
	Nights          int     `db:"nights"`
	DiscountPercent int     `db:"discount_percent"`
	CouponCode      *string `db:"coupon_code"`
	CouponDiscount  int64   `db:"coupon_discount"`
	ExtraCharges    int64   `db:"extra_charges"`
	TotalAmount     int64   `db:"total_amount"`
	Currency        string  `db:"currency"`

	// Settlement.
	PaymentMethod *string       `db:"payment_method"`
	IsPaid        bool          `db:"is_paid"`
	PaidAt        *time.Time    `db:"paid_at"`
	Status        BookingStatus `db:"status"`
	CancelReason  *string       `db:"cancel_reason"`
	CancelledAt   *time.Time    `db:"cancelled_at"`

	// Payment-provider reconciliation.
	OrderID          *string       `db:"order_id"`
	PaymentID        *string       `db:"payment_id"`
	Signature        *string       `db:"signature"`
	PaymentStatus    PaymentStatus `db:"payment_status"`
	PaymentGateway   *string       `db:"payment_gateway"`
	PaymentAmount    *int64        `db:"payment_amount"`
	PaymentCurrency  *string       `db:"payment_currency"`
	ContactNumber    *string       `db:"contact_number"`
	IdempotencyKey   *string       `db:"idempotency_key"`
	PaymentAttempts  int           `db:"payment_attempts"`
	LastPaymentError *string       `db:"last_payment_error"`
}
