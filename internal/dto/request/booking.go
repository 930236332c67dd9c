package request

// Monetary fields are int64 minor currency units (e.g. paise).

type CreateBookingRequest struct {
	VillaID         string `json:"villa_id" validate:"required,uuid4"`
	CheckIn         string `json:"check_in" validate:"required,datetime=2006-01-02"`
	CheckOut        string `json:"check_out" validate:"required,datetime=2006-01-02"`
	Adults          int    `json:"adults" validate:"required,min=1"`
	Children        int    `json:"children" validate:"min=0"`
	Pets            int    `json:"pets" validate:"min=0"`
	NightlyRate     int64  `json:"nightly_rate" validate:"required,min=1"`
	DiscountPercent int    `json:"discount_percent" validate:"min=0,max=100"`
	CouponCode      string `json:"coupon_code,omitempty" validate:"omitempty,max=64"`
	CouponDiscount  int64  `json:"coupon_discount" validate:"min=0"`
	ExtraCharges    int64  `json:"extra_charges" validate:"min=0"`
	PaymentMethod   string `json:"payment_method,omitempty" validate:"omitempty,max=32"`
	ContactNumber   string `json:"contact_number,omitempty" validate:"omitempty,max=20"`
}

type CancelBookingRequest struct {
	Reason string `json:"reason" validate:"required,min=3,max=500"`
}

type AvailabilityRequest struct {
	CheckIn  string `json:"check_in" validate:"required,datetime=2006-01-02"`
	CheckOut string `json:"check_out" validate:"required,datetime=2006-01-02"`
}
