package usecase

import (
	"context"

	"villa-booking/internal/data/entity"
)

type NotificationKind string

const (
	NotificationPaymentReceived  NotificationKind = "payment_received"
	NotificationBookingConfirmed NotificationKind = "booking_confirmed"
)

// Notifier delivers outbound booking notifications. Deliveries are
// best-effort: callers log failures and never let them fail a transition.
type Notifier interface {
	Notify(ctx context.Context, email string, booking *entity.Booking, kind NotificationKind) error
}
