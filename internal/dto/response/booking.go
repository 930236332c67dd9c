package response

import (
	"time"

	"villa-booking/internal/data/entity"
)

type BookingResponse struct {
	ID              string               `json:"id"`
	VillaID         string               `json:"villa_id"`
	UserID          string               `json:"user_id"`
	CheckIn         string               `json:"check_in"`
	CheckOut        string               `json:"check_out"`
	Adults          int                  `json:"adults"`
	Children        int                  `json:"children"`
	Pets            int                  `json:"pets"`
	Nights          int                  `json:"nights"`
	NightlyRate     int64                `json:"nightly_rate"`
	TotalAmount     int64                `json:"total_amount"`
	Currency        string               `json:"currency"`
	PaymentMethod   *string              `json:"payment_method,omitempty"`
	IsPaid          bool                 `json:"is_paid"`
	PaidAt          *time.Time           `json:"paid_at,omitempty"`
	Status          entity.BookingStatus `json:"status"`
	PaymentStatus   entity.PaymentStatus `json:"payment_status"`
	OrderID         *string              `json:"order_id,omitempty"`
	PaymentAttempts int                  `json:"payment_attempts"`
	CancelReason    *string              `json:"cancel_reason,omitempty"`
	CancelledAt     *time.Time           `json:"cancelled_at,omitempty"`
	CreatedAt       time.Time            `json:"created_at"`
}

// PricingBreakdown mirrors the pricing computation for client display.
// All amounts are int64 minor currency units.
type PricingBreakdown struct {
	SubTotal       int64  `json:"sub_total"`
	Discount       int64  `json:"discount"`
	CouponDiscount int64  `json:"coupon_discount"`
	TaxableAmount  int64  `json:"taxable_amount"`
	Tax            int64  `json:"tax"`
	ExtraCharges   int64  `json:"extra_charges"`
	TotalAmount    int64  `json:"total_amount"`
	Currency       string `json:"currency"`
}

type BookingCreatedResponse struct {
	Booking BookingResponse  `json:"booking"`
	Pricing PricingBreakdown `json:"pricing"`
}

type AvailabilityResponse struct {
	VillaID   string `json:"villa_id"`
	CheckIn   string `json:"check_in"`
	CheckOut  string `json:"check_out"`
	Available bool   `json:"available"`
}

const dateLayout = "2006-01-02"

func BookingToResponse(b *entity.Booking) BookingResponse {
	return BookingResponse{
		ID:              b.ID.String(),
		VillaID:         b.VillaID.String(),
		UserID:          b.UserID.String(),
		CheckIn:         b.CheckIn.Format(dateLayout),
		CheckOut:        b.CheckOut.Format(dateLayout),
		Adults:          b.Adults,
		Children:        b.Children,
		Pets:            b.Pets,
		Nights:          b.Nights,
		NightlyRate:     b.NightlyRate,
		TotalAmount:     b.TotalAmount,
		Currency:        b.Currency,
		PaymentMethod:   b.PaymentMethod,
		IsPaid:          b.IsPaid,
		PaidAt:          b.PaidAt,
		Status:          b.Status,
		PaymentStatus:   b.PaymentStatus,
		OrderID:         b.OrderID,
		PaymentAttempts: b.PaymentAttempts,
		CancelReason:    b.CancelReason,
		CancelledAt:     b.CancelledAt,
		CreatedAt:       b.CreatedAt,
	}
}
