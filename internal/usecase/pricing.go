package usecase

import (
	"villa-booking/internal/dto/response"
)

// Fixed tax rate applied to the discounted subtotal.
const taxRatePercent = 18

type PricingInput struct {
	NightlyRate     int64
	Nights          int
	DiscountPercent int
	CouponDiscount  int64
	ExtraCharges    int64
}

// percentOf computes pct% of amount in minor units, rounding half-up.
func percentOf(amount int64, pct int64) int64 {
	return (amount*pct + 50) / 100
}

// ComputePricing is the pure pricing calculator:
//
//	subTotal = nightlyRate * nights
//	discount = subTotal * discountPercent/100
//	taxable  = subTotal - discount - couponDiscount
//	tax      = taxable * 18/100
//	total    = taxable + tax + extraCharges
//
// All arithmetic is int64 minor currency units; the two percentage steps
// round half-up at the minor-unit boundary.
func ComputePricing(in PricingInput, currency string) (*response.PricingBreakdown, error) {
	if in.NightlyRate < 0 || in.CouponDiscount < 0 || in.ExtraCharges < 0 {
		return nil, newError(KindValidation, "pricing inputs must be non-negative")
	}
	if in.Nights < 1 {
		return nil, newError(KindValidation, "stay must be at least one night")
	}
	if in.DiscountPercent < 0 || in.DiscountPercent > 100 {
		return nil, newError(KindValidation, "discount percent must be between 0 and 100")
	}

	subTotal := in.NightlyRate * int64(in.Nights)
	discount := percentOf(subTotal, int64(in.DiscountPercent))

	taxable := subTotal - discount - in.CouponDiscount
	if taxable < 0 {
		return nil, newError(KindValidation, "coupon discount exceeds discounted subtotal")
	}

	tax := percentOf(taxable, taxRatePercent)

	return &response.PricingBreakdown{
		SubTotal:       subTotal,
		Discount:       discount,
		CouponDiscount: in.CouponDiscount,
		TaxableAmount:  taxable,
		Tax:            tax,
		ExtraCharges:   in.ExtraCharges,
		TotalAmount:    taxable + tax + in.ExtraCharges,
		Currency:       currency,
	}, nil
}
