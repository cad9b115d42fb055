package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cart is one line of a customer's cart. Rows are hard deleted so the
// (customer, product) unique index can be reused.
type Cart struct {
	ID         uint      `json:"id" gorm:"primarykey"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
	Quantity   int       `json:"quantity" gorm:"not null"`
	CustomerID uint      `json:"customerId" gorm:"not null;uniqueIndex:idx_cart_customer_product"`
	ProductID  uint      `json:"productId" gorm:"not null;uniqueIndex:idx_cart_customer_product"`
	Product    Product   `json:"product" gorm:"foreignKey:ProductID"`
}

func (c Cart) LineTotal() decimal.Decimal {
	return c.Product.CurrentPrice.Mul(decimal.NewFromInt(int64(c.Quantity)))
}
