package models

import (
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PaymentState mirrors the payment provider's view of an order's payment.
type PaymentState string

const (
	PaymentPending   PaymentState = "PENDING"
	PaymentCompleted PaymentState = "COMPLETED"
	PaymentFailed    PaymentState = "FAILED"
	PaymentInvalid   PaymentState = "INVALID"
	PaymentReversed  PaymentState = "REVERSED"
)

// ParsePaymentState normalizes a provider status description such as
// "Completed". Unknown descriptions are treated as pending.
func ParsePaymentState(description string) PaymentState {
	switch state := PaymentState(strings.ToUpper(strings.TrimSpace(description))); state {
	case PaymentCompleted, PaymentFailed, PaymentInvalid, PaymentReversed:
		return state
	default:
		return PaymentPending
	}
}

// Rejected reports whether the provider refused or reversed the payment.
func (s PaymentState) Rejected() bool {
	return s == PaymentFailed || s == PaymentInvalid || s == PaymentReversed
}

// Order is one purchased product line. Price is the unit price at purchase
// time and Discount is this line's share of the checkout coupon discount.
type Order struct {
	gorm.Model
	Quantity        int                                 `json:"quantity" gorm:"not null"`
	Price           decimal.Decimal                     `json:"price" gorm:"type:decimal(12,2);not null"`
	Discount        decimal.Decimal                     `json:"discount" gorm:"type:decimal(12,2);not null"`
	CouponCode      string                              `json:"couponCode" gorm:"size:50"`
	Status          OrderStatus                         `json:"status" gorm:"not null;index"`
	PaymentID       string                              `json:"paymentId" gorm:"size:1000;not null;index"`
	PaymentState    PaymentState                        `json:"paymentState" gorm:"size:20;not null;index"`
	DeliveryAddress datatypes.JSONType[AddressSnapshot] `json:"deliveryAddress"`
	CustomerID      uint                                `json:"customerId" gorm:"not null;index"`
	ProductID       uint                                `json:"productId" gorm:"not null;index"`
	Customer        Customer                            `json:"-" gorm:"foreignKey:CustomerID"`
	Product         Product                             `json:"product" gorm:"foreignKey:ProductID"`
}

// LineTotal is what the customer paid for this line.
func (o Order) LineTotal() decimal.Decimal {
	return o.Price.Mul(decimal.NewFromInt(int64(o.Quantity))).Sub(o.Discount)
}
