package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Kariqs/amexan-store/models"
)

var (
	trailingDigits = regexp.MustCompile(`(\d+)$`)
	percentValue   = regexp.MustCompile(`^\d+(\.\d+)?$`)
	maxPercent     = decimal.NewFromInt(100)
)

type CouponTerms struct {
	IsPercentage bool
	Value        decimal.Decimal
}

// ParseCouponCode reads the discount embedded in a coupon code. "SUMMER%20"
// is 20 percent off and "WELCOME50" is 50 off.
func ParseCouponCode(code string) (CouponTerms, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return CouponTerms{}, fmt.Errorf("%w: empty code", ErrInvalidCouponFormat)
	}

	if idx := strings.LastIndex(code, "%"); idx >= 0 {
		digits := strings.TrimSpace(code[idx+1:])
		if !percentValue.MatchString(digits) {
			return CouponTerms{}, fmt.Errorf("%w: %q has no percentage after '%%'", ErrInvalidCouponFormat, code)
		}
		value := decimal.RequireFromString(digits)
		if value.GreaterThan(maxPercent) {
			return CouponTerms{}, fmt.Errorf("%w: %q is more than 100 percent", ErrInvalidCouponFormat, code)
		}
		return CouponTerms{IsPercentage: true, Value: value}, nil
	}

	match := trailingDigits.FindStringSubmatch(code)
	if match == nil {
		return CouponTerms{}, fmt.Errorf("%w: %q has no trailing amount", ErrInvalidCouponFormat, code)
	}
	value, err := decimal.NewFromString(match[1])
	if err != nil {
		return CouponTerms{}, fmt.Errorf("%w: %v", ErrInvalidCouponFormat, err)
	}
	return CouponTerms{Value: value}, nil
}

// CouponDiscount is the amount deducted from total. The result never
// exceeds total, so the checkout total stays at or above zero.
func CouponDiscount(coupon models.Coupon, subtotal, total decimal.Decimal) decimal.Decimal {
	amount := coupon.Amount(subtotal)
	if amount.IsNegative() || !total.IsPositive() {
		return decimal.Zero
	}
	if amount.GreaterThan(total) {
		return total
	}
	return amount
}

func ValidateCoupon(coupon models.Coupon, customerID uint) error {
	if !coupon.UsableBy(customerID) {
		return fmt.Errorf("%w: %s", ErrCouponNotApplicable, coupon.Code)
	}
	return nil
}

type CouponQuote struct {
	Code     string          `json:"code"`
	Subtotal decimal.Decimal `json:"subtotal"`
	Shipping decimal.Decimal `json:"shipping"`
	Discount decimal.Decimal `json:"discount"`
	Total    decimal.Decimal `json:"total"`
}

type CouponService struct {
	db      *gorm.DB
	scratch ScratchStore
}

func NewCouponService(db *gorm.DB, scratch ScratchStore) *CouponService {
	return &CouponService{db: db, scratch: scratch}
}

func findCouponByCode(tx *gorm.DB, code string) (models.Coupon, error) {
	var coupon models.Coupon
	err := tx.Where("code = ?", strings.TrimSpace(code)).First(&coupon).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Coupon{}, fmt.Errorf("%w: unknown code %q", ErrCouponNotApplicable, code)
	}
	return coupon, err
}

// Apply validates the coupon against the customer's cart and keeps it as the
// pending coupon for the next checkout.
func (s *CouponService) Apply(ctx context.Context, customerID uint, code string) (CouponQuote, error) {
	db := s.db.WithContext(ctx)
	coupon, err := findCouponByCode(db, code)
	if err != nil {
		return CouponQuote{}, err
	}
	if err := ValidateCoupon(coupon, customerID); err != nil {
		return CouponQuote{}, err
	}

	lines, err := loadCart(db, customerID)
	if err != nil {
		return CouponQuote{}, err
	}
	if len(lines) == 0 {
		return CouponQuote{}, ErrEmptyCart
	}
	summary := summarize(lines)
	discount := CouponDiscount(coupon, summary.Subtotal, summary.Total)

	if err := s.scratch.Set(ctx, pendingCouponKey(customerID), coupon.Code, pendingCouponTTL); err != nil {
		return CouponQuote{}, err
	}

	return CouponQuote{
		Code:     coupon.Code,
		Subtotal: summary.Subtotal,
		Shipping: summary.Shipping,
		Discount: discount,
		Total:    summary.Total.Sub(discount),
	}, nil
}

func (s *CouponService) Pending(ctx context.Context, customerID uint) (string, error) {
	code, _, err := s.scratch.Get(ctx, pendingCouponKey(customerID))
	return code, err
}

func (s *CouponService) Clear(ctx context.Context, customerID uint) error {
	return s.scratch.Delete(ctx, pendingCouponKey(customerID))
}

// Define creates a coupon from its code. A nil target makes it global.
func (s *CouponService) Define(ctx context.Context, code string, targetCustomerID *uint) (models.Coupon, error) {
	terms, err := ParseCouponCode(code)
	if err != nil {
		return models.Coupon{}, err
	}

	db := s.db.WithContext(ctx)
	if targetCustomerID != nil {
		var customer models.Customer
		if err := db.First(&customer, *targetCustomerID).Error; err != nil {
			return models.Coupon{}, translateDBError(err, "target customer")
		}
	}

	var count int64
	if err := db.Model(&models.Coupon{}).Where("code = ?", strings.TrimSpace(code)).Count(&count).Error; err != nil {
		return models.Coupon{}, err
	}
	if count > 0 {
		return models.Coupon{}, fmt.Errorf("%w: coupon code %s", ErrUniquenessViolation, code)
	}

	coupon := models.Coupon{
		Code:             strings.TrimSpace(code),
		DiscountValue:    terms.Value,
		IsPercentage:     terms.IsPercentage,
		TargetCustomerID: targetCustomerID,
		IsActive:         true,
	}
	if err := db.Create(&coupon).Error; err != nil {
		return models.Coupon{}, translateDBError(err, "coupon code")
	}
	log.Printf("Coupon %s defined (percentage=%t value=%s)", coupon.Code, coupon.IsPercentage, coupon.DiscountValue)
	return coupon, nil
}

func (s *CouponService) List(ctx context.Context) ([]models.Coupon, error) {
	var coupons []models.Coupon
	err := s.db.WithContext(ctx).Order("created_at desc").Find(&coupons).Error
	return coupons, err
}

func (s *CouponService) ToggleActive(ctx context.Context, id uint) (models.Coupon, error) {
	db := s.db.WithContext(ctx)
	var coupon models.Coupon
	if err := db.First(&coupon, id).Error; err != nil {
		return models.Coupon{}, translateDBError(err, "coupon")
	}
	coupon.IsActive = !coupon.IsActive
	if err := db.Model(&coupon).Update("is_active", coupon.IsActive).Error; err != nil {
		return models.Coupon{}, err
	}
	return coupon, nil
}

func (s *CouponService) Delete(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&models.Coupon{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: coupon", ErrNotFound)
	}
	return nil
}
