package services

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCouponCode(t *testing.T) {
	tests := []struct {
		code       string
		percentage bool
		value      string
		wantErr    bool
	}{
		{code: "SUMMER%20", percentage: true, value: "20"},
		{code: "WELCOME50", value: "50"},
		{code: "VIP%12.5", percentage: true, value: "12.5"},
		{code: "A%B%15", percentage: true, value: "15"},
		{code: "BADCODE", wantErr: true},
		{code: "SALE%", wantErr: true},
		{code: "SALE%abc", wantErr: true},
		{code: "FULL%100", percentage: true, value: "100"},
		{code: "X%150", wantErr: true},
		{code: "X%1e2", wantErr: true},
		{code: "X%-5", wantErr: true},
		{code: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			terms, err := ParseCouponCode(tt.code)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidCouponFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.percentage, terms.IsPercentage)
			assert.True(t, terms.Value.Equal(decimal.RequireFromString(tt.value)), "got %s", terms.Value)
		})
	}
}

func TestCouponDiscountClampsToTotal(t *testing.T) {
	db := newTestDB(t)
	flat := createCoupon(t, db, "HUGE5000", nil, true)
	percent := createCoupon(t, db, "TEN%10", nil, true)

	subtotal := decimal.NewFromInt(100)
	total := subtotal.Add(ShippingFee)

	assert.True(t, CouponDiscount(flat, subtotal, total).Equal(total))
	assert.True(t, CouponDiscount(percent, subtotal, total).Equal(decimal.NewFromInt(10)))
}

func TestCouponTargeting(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	a := createCustomer(t, db, "a@example.com", "05551110001")
	b := createCustomer(t, db, "b@example.com", "05551110002")
	product := createProduct(t, db, "Mouse", "100", 5, true)
	createCoupon(t, db, "FORA%10", &a.ID, true)
	createCoupon(t, db, "OFF30", nil, false)

	cart := NewCartService(db)
	_, err := cart.Add(ctx, a.ID, product.ID)
	require.NoError(t, err)
	_, err = cart.Add(ctx, b.ID, product.ID)
	require.NoError(t, err)

	scratch := newScratch()
	svc := NewCouponService(db, scratch)

	quote, err := svc.Apply(ctx, a.ID, "FORA%10")
	require.NoError(t, err)
	assert.True(t, quote.Discount.Equal(decimal.NewFromInt(10)))
	assert.True(t, quote.Total.Equal(decimal.NewFromInt(290)))
	pending, err := svc.Pending(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "FORA%10", pending)

	_, err = svc.Apply(ctx, b.ID, "FORA%10")
	assert.ErrorIs(t, err, ErrCouponNotApplicable)
	pending, err = svc.Pending(ctx, b.ID)
	require.NoError(t, err)
	assert.Empty(t, pending)

	_, err = svc.Apply(ctx, a.ID, "OFF30")
	assert.ErrorIs(t, err, ErrCouponNotApplicable, "inactive coupons do not apply")

	_, err = svc.Apply(ctx, a.ID, "NOPE10")
	assert.ErrorIs(t, err, ErrCouponNotApplicable)

	require.NoError(t, svc.Clear(ctx, a.ID))
	pending, err = svc.Pending(ctx, a.ID)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestCouponApplyRequiresCart(t *testing.T) {
	db := newTestDB(t)
	customer := createCustomer(t, db, "a@example.com", "05551110001")
	createCoupon(t, db, "WELCOME50", nil, true)

	_, err := NewCouponService(db, newScratch()).Apply(context.Background(), customer.ID, "WELCOME50")
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestCouponDefine(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	customer := createCustomer(t, db, "a@example.com", "05551110001")
	svc := NewCouponService(db, newScratch())

	coupon, err := svc.Define(ctx, "SUMMER%20", nil)
	require.NoError(t, err)
	assert.True(t, coupon.IsPercentage)
	assert.True(t, coupon.IsActive)
	assert.True(t, coupon.IsGlobal())

	_, err = svc.Define(ctx, "SUMMER%20", nil)
	assert.ErrorIs(t, err, ErrUniquenessViolation)

	_, err = svc.Define(ctx, "BADCODE", nil)
	assert.ErrorIs(t, err, ErrInvalidCouponFormat)
	_, err = svc.Define(ctx, "MEGA%150", nil)
	assert.ErrorIs(t, err, ErrInvalidCouponFormat)

	missing := uint(999)
	_, err = svc.Define(ctx, "VIP100", &missing)
	assert.ErrorIs(t, err, ErrNotFound)

	targeted, err := svc.Define(ctx, "VIP100", &customer.ID)
	require.NoError(t, err)
	require.NotNil(t, targeted.TargetCustomerID)
	assert.Equal(t, customer.ID, *targeted.TargetCustomerID)

	toggled, err := svc.ToggleActive(ctx, targeted.ID)
	require.NoError(t, err)
	assert.False(t, toggled.IsActive)

	coupons, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, coupons, 2)

	require.NoError(t, svc.Delete(ctx, coupon.ID))
	assert.ErrorIs(t, svc.Delete(ctx, coupon.ID), ErrNotFound)

	_, err = svc.Define(ctx, "SUMMER%20", nil)
	assert.NoError(t, err, "a deleted code can be defined again")
}
