package models

import (
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Category string

const (
	CategoryHomeLiving    Category = "home_living"
	CategoryFashion       Category = "fashion"
	CategoryElectronics   Category = "electronics"
	CategoryGaming        Category = "gaming"
	CategoryAccessories   Category = "accessories"
	CategoryBeauty        Category = "beauty"
	CategorySportsOutdoor Category = "sports_outdoor"
)

var categories = map[Category]string{
	CategoryHomeLiving:    "Home & Living",
	CategoryFashion:       "Fashion & Clothing",
	CategoryElectronics:   "Electronics",
	CategoryGaming:        "Gaming & Hobby",
	CategoryAccessories:   "Watches & Accessories",
	CategoryBeauty:        "Beauty & Personal Care",
	CategorySportsOutdoor: "Sports & Outdoor",
}

// Categories returns the categories in display order.
func Categories() []Category {
	return []Category{
		CategoryHomeLiving,
		CategoryFashion,
		CategoryElectronics,
		CategoryGaming,
		CategoryAccessories,
		CategoryBeauty,
		CategorySportsOutdoor,
	}
}

func (c Category) Valid() bool {
	_, ok := categories[c]
	return ok
}

func (c Category) Label() string {
	return categories[c]
}

type Product struct {
	gorm.Model
	Name          string          `json:"name" gorm:"size:100;not null"`
	CurrentPrice  decimal.Decimal `json:"currentPrice" gorm:"type:decimal(12,2);not null"`
	PreviousPrice decimal.Decimal `json:"previousPrice" gorm:"type:decimal(12,2);not null"`
	InStock       int             `json:"inStock" gorm:"not null"`
	Picture       string          `json:"picture" gorm:"size:1000"`
	FlashSale     *string         `json:"flashSale" gorm:"size:100"`
	Category      Category        `json:"category" gorm:"size:100;index"`
	IsActive      bool            `json:"isActive" gorm:"not null;index"`
}

// DecrementStock lowers InStock by quantity, never below zero.
func (p *Product) DecrementStock(quantity int) {
	p.InStock -= quantity
	if p.InStock < 0 {
		p.InStock = 0
	}
}

// ChangePrice moves the current price to PreviousPrice and recomputes the
// flash sale label. It reports whether the price actually changed.
func (p *Product) ChangePrice(newPrice decimal.Decimal) bool {
	if newPrice.Equal(p.CurrentPrice) {
		return false
	}
	p.PreviousPrice = p.CurrentPrice
	p.CurrentPrice = newPrice
	p.FlashSale = FlashSaleLabel(p.PreviousPrice, p.CurrentPrice)
	return true
}

// FlashSaleLabel returns nil unless current is below previous.
func FlashSaleLabel(previous, current decimal.Decimal) *string {
	if !current.LessThan(previous) || !previous.IsPositive() {
		return nil
	}
	percent := previous.Sub(current).Div(previous).Mul(decimal.NewFromInt(100)).IntPart()
	label := fmt.Sprintf("%%%d OFF", percent)
	return &label
}
