package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Coupon rows are hard deleted so a code can be defined again later.
// A nil TargetCustomerID makes the coupon global.
type Coupon struct {
	ID               uint            `json:"id" gorm:"primarykey"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
	Code             string          `json:"code" gorm:"size:50;uniqueIndex;not null"`
	DiscountValue    decimal.Decimal `json:"discountValue" gorm:"type:decimal(12,2);not null"`
	IsPercentage     bool            `json:"isPercentage" gorm:"not null"`
	TargetCustomerID *uint           `json:"targetCustomerId" gorm:"index"`
	IsActive         bool            `json:"isActive" gorm:"not null"`
}

func (c Coupon) IsGlobal() bool {
	return c.TargetCustomerID == nil
}

func (c Coupon) UsableBy(customerID uint) bool {
	if !c.IsActive {
		return false
	}
	return c.TargetCustomerID == nil || *c.TargetCustomerID == customerID
}

// Amount is the raw deduction for a cart subtotal, before any clamping.
func (c Coupon) Amount(subtotal decimal.Decimal) decimal.Decimal {
	if c.IsPercentage {
		return subtotal.Mul(c.DiscountValue).Div(decimal.NewFromInt(100)).Round(2)
	}
	return c.DiscountValue
}
