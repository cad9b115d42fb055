package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Kariqs/amexan-store/models"
)

// ShippingFee is added to every non-empty cart.
var ShippingFee = decimal.NewFromInt(200)

type CartSummary struct {
	Lines    []models.Cart   `json:"lines"`
	Subtotal decimal.Decimal `json:"subtotal"`
	Shipping decimal.Decimal `json:"shipping"`
	Total    decimal.Decimal `json:"total"`
}

func (s CartSummary) Empty() bool {
	return len(s.Lines) == 0
}

func summarize(lines []models.Cart) CartSummary {
	summary := CartSummary{
		Lines:    lines,
		Subtotal: decimal.Zero,
		Shipping: decimal.Zero,
	}
	for _, line := range lines {
		summary.Subtotal = summary.Subtotal.Add(line.LineTotal())
	}
	if len(lines) > 0 {
		summary.Shipping = ShippingFee
	}
	summary.Total = summary.Subtotal.Add(summary.Shipping)
	return summary
}

type CartService struct {
	db *gorm.DB
}

func NewCartService(db *gorm.DB) *CartService {
	return &CartService{db: db}
}

// Add puts one unit of the product into the customer's cart, merging with an
// existing line for the same product.
func (s *CartService) Add(ctx context.Context, customerID, productID uint) (CartSummary, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.First(&product, productID).Error; err != nil {
			return translateDBError(err, "product")
		}
		if !product.IsActive {
			return fmt.Errorf("%w: %s", ErrProductUnavailable, product.Name)
		}

		var line models.Cart
		err := tx.Where("customer_id = ? AND product_id = ?", customerID, productID).First(&line).Error
		if err == nil {
			return tx.Model(&models.Cart{}).
				Where("id = ?", line.ID).
				Update("quantity", gorm.Expr("quantity + ?", 1)).Error
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		line = models.Cart{CustomerID: customerID, ProductID: productID, Quantity: 1}
		return tx.Omit(clause.Associations).Create(&line).Error
	})
	if err != nil {
		return CartSummary{}, err
	}
	return s.Summary(ctx, customerID)
}

func (s *CartService) Increment(ctx context.Context, customerID, cartID uint) (CartSummary, error) {
	return s.adjust(ctx, customerID, cartID, 1)
}

// Decrement lowers the quantity by one. A line never drops below one unit;
// use Remove to delete it.
func (s *CartService) Decrement(ctx context.Context, customerID, cartID uint) (CartSummary, error) {
	return s.adjust(ctx, customerID, cartID, -1)
}

func (s *CartService) adjust(ctx context.Context, customerID, cartID uint, delta int) (CartSummary, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		line, err := findCartLine(tx, customerID, cartID)
		if err != nil {
			return err
		}
		quantity := line.Quantity + delta
		if quantity < 1 {
			return nil
		}
		return tx.Model(&models.Cart{}).Where("id = ?", line.ID).Update("quantity", quantity).Error
	})
	if err != nil {
		return CartSummary{}, err
	}
	return s.Summary(ctx, customerID)
}

func (s *CartService) Remove(ctx context.Context, customerID, cartID uint) (CartSummary, error) {
	result := s.db.WithContext(ctx).
		Where("id = ? AND customer_id = ?", cartID, customerID).
		Delete(&models.Cart{})
	if result.Error != nil {
		return CartSummary{}, result.Error
	}
	if result.RowsAffected == 0 {
		return CartSummary{}, fmt.Errorf("%w: cart item", ErrNotFound)
	}
	return s.Summary(ctx, customerID)
}

func (s *CartService) Summary(ctx context.Context, customerID uint) (CartSummary, error) {
	lines, err := loadCart(s.db.WithContext(ctx), customerID)
	if err != nil {
		return CartSummary{}, err
	}
	return summarize(lines), nil
}

func findCartLine(tx *gorm.DB, customerID, cartID uint) (models.Cart, error) {
	var line models.Cart
	err := tx.Where("id = ? AND customer_id = ?", cartID, customerID).First(&line).Error
	if err != nil {
		return models.Cart{}, translateDBError(err, "cart item")
	}
	return line, nil
}

func loadCart(tx *gorm.DB, customerID uint) ([]models.Cart, error) {
	var lines []models.Cart
	err := tx.Preload("Product").
		Where("customer_id = ?", customerID).
		Order("id").
		Find(&lines).Error
	return lines, err
}
