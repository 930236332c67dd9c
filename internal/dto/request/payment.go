package request

// CreateOrderRequest creates a provider payment order together with the
// booking it settles. Amount is int64 minor currency units. The idempotency
// key makes retried submissions replay the original order.
type CreateOrderRequest struct {
	Amount         int64                `json:"amount" validate:"required,min=1"`
	Currency       string               `json:"currency" validate:"required,len=3,uppercase"`
	Receipt        string               `json:"receipt,omitempty" validate:"omitempty,max=40"`
	Notes          map[string]string    `json:"notes,omitempty" validate:"omitempty,max=15"`
	IdempotencyKey string               `json:"idempotency_key" validate:"required,min=16,max=64"`
	Booking        CreateBookingRequest `json:"booking" validate:"required"`
}

type VerifyPaymentRequest struct {
	OrderID   string `json:"order_id" validate:"required,max=64"`
	PaymentID string `json:"payment_id" validate:"required,max=64"`
	Signature string `json:"signature" validate:"required,len=64,hexadecimal"`
	BookingID string `json:"booking_id" validate:"required,uuid4"`
}
