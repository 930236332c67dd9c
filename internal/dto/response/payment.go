package response

import (
	"villa-booking/internal/data/entity"
)

type OrderResponse struct {
	OrderID   string `json:"order_id"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
	BookingID string `json:"booking_id"`
}

type VerifyPaymentResponse struct {
	BookingID     string               `json:"booking_id"`
	PaymentStatus entity.PaymentStatus `json:"payment_status"`
	BookingStatus entity.BookingStatus `json:"booking_status"`
}
