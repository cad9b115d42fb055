package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParsePaymentState(t *testing.T) {
	tests := map[string]PaymentState{
		"Completed":  PaymentCompleted,
		" FAILED ":   PaymentFailed,
		"Invalid":    PaymentInvalid,
		"reversed":   PaymentReversed,
		"":           PaymentPending,
		"Processing": PaymentPending,
	}
	for description, want := range tests {
		assert.Equal(t, want, ParsePaymentState(description), description)
	}

	assert.True(t, PaymentFailed.Rejected())
	assert.True(t, PaymentReversed.Rejected())
	assert.False(t, PaymentPending.Rejected())
	assert.False(t, PaymentCompleted.Rejected())
}

func TestOrderLineTotal(t *testing.T) {
	order := Order{Quantity: 3, Price: decimal.NewFromInt(40), Discount: decimal.RequireFromString("12.50")}
	assert.True(t, order.LineTotal().Equal(decimal.RequireFromString("107.50")), order.LineTotal().String())
}
