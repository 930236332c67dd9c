package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputePricing(t *testing.T) {
	pricing, err := ComputePricing(PricingInput{
		NightlyRate:     5000,
		Nights:          3,
		DiscountPercent: 10,
		CouponDiscount:  500,
		ExtraCharges:    200,
	}, "INR")
	require.NoError(t, err)

	assert.Equal(t, int64(15000), pricing.SubTotal)
	assert.Equal(t, int64(1500), pricing.Discount)
	assert.Equal(t, int64(500), pricing.CouponDiscount)
	assert.Equal(t, int64(13000), pricing.TaxableAmount)
	assert.Equal(t, int64(2340), pricing.Tax)
	assert.Equal(t, int64(200), pricing.ExtraCharges)
	assert.Equal(t, int64(15540), pricing.TotalAmount)
	assert.Equal(t, "INR", pricing.Currency)
}

func TestComputePricing_NoDiscounts(t *testing.T) {
	pricing, err := ComputePricing(PricingInput{
		NightlyRate: 10000,
		Nights:      2,
	}, "INR")
	require.NoError(t, err)

	assert.Equal(t, int64(20000), pricing.SubTotal)
	assert.Equal(t, int64(0), pricing.Discount)
	assert.Equal(t, int64(20000), pricing.TaxableAmount)
	assert.Equal(t, int64(3600), pricing.Tax)
	assert.Equal(t, int64(23600), pricing.TotalAmount)
}

func TestComputePricing_RoundsHalfUp(t *testing.T) {
	// 10% of 105 is 10.5 minor units, which rounds up to 11.
	pricing, err := ComputePricing(PricingInput{
		NightlyRate:     105,
		Nights:          1,
		DiscountPercent: 10,
	}, "INR")
	require.NoError(t, err)
	assert.Equal(t, int64(11), pricing.Discount)

	// 10% of 101 is 10.1, which rounds down to 10.
	pricing, err = ComputePricing(PricingInput{
		NightlyRate:     101,
		Nights:          1,
		DiscountPercent: 10,
	}, "INR")
	require.NoError(t, err)
	assert.Equal(t, int64(10), pricing.Discount)
}

func TestComputePricing_CouponExceedsSubtotal(t *testing.T) {
	_, err := ComputePricing(PricingInput{
		NightlyRate:    1000,
		Nights:         1,
		CouponDiscount: 1500,
	}, "INR")
	require.Error(t, err)
	assert.Equal(t, KindValidation, Kind(err))
	assert.Contains(t, err.Error(), "coupon discount exceeds")
}

func TestComputePricing_CouponConsumesFullSubtotal(t *testing.T) {
	// A coupon equal to the discounted subtotal is allowed: total is
	// extra charges only.
	pricing, err := ComputePricing(PricingInput{
		NightlyRate:    1000,
		Nights:         1,
		CouponDiscount: 1000,
		ExtraCharges:   250,
	}, "INR")
	require.NoError(t, err)
	assert.Equal(t, int64(0), pricing.TaxableAmount)
	assert.Equal(t, int64(0), pricing.Tax)
	assert.Equal(t, int64(250), pricing.TotalAmount)
}

func TestComputePricing_InvalidInputs(t *testing.T) {
	cases := []struct {
		name string
		in   PricingInput
	}{
		{"negative rate", PricingInput{NightlyRate: -1, Nights: 1}},
		{"zero nights", PricingInput{NightlyRate: 1000, Nights: 0}},
		{"negative coupon", PricingInput{NightlyRate: 1000, Nights: 1, CouponDiscount: -5}},
		{"negative extras", PricingInput{NightlyRate: 1000, Nights: 1, ExtraCharges: -5}},
		{"discount above 100", PricingInput{NightlyRate: 1000, Nights: 1, DiscountPercent: 101}},
		{"negative discount", PricingInput{NightlyRate: 1000, Nights: 1, DiscountPercent: -1}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ComputePricing(tc.in, "INR")
			require.Error(t, err)
			assert.Equal(t, KindValidation, Kind(err))
		})
	}
}
