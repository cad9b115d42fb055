package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Kariqs/amexan-store/models"
)

type NewCard struct {
	Name   string
	Number string
	Expiry string
	Save   bool
}

// PaymentMethod is either a saved card confirmed with the emailed one-time
// code, or a new card.
type PaymentMethod struct {
	SavedCardID      uint
	VerificationCode string
	NewCard          *NewCard
}

// CheckoutRequest carries everything one checkout attempt needs, including
// the pending coupon code that was applied earlier in the session.
type CheckoutRequest struct {
	CustomerID uint
	AddressID  uint
	Payment    PaymentMethod
	CouponCode string
}

// Receipt describes a completed checkout. Total equals the sum of the order
// line totals plus Shipping minus ShippingDiscount.
type Receipt struct {
	Orders           []models.Order      `json:"orders"`
	Subtotal         decimal.Decimal     `json:"subtotal"`
	Shipping         decimal.Decimal     `json:"shipping"`
	Discount         decimal.Decimal     `json:"discount"`
	ShippingDiscount decimal.Decimal     `json:"shippingDiscount"`
	Total            decimal.Decimal     `json:"total"`
	CouponCode       string              `json:"couponCode,omitempty"`
	PaymentReference string              `json:"paymentReference"`
	PaymentState     models.PaymentState `json:"paymentState"`
	RedirectURL      string              `json:"redirectUrl,omitempty"`
}

type CheckoutService struct {
	db       *gorm.DB
	scratch  ScratchStore
	payments PaymentGateway
	notifier Notifier
	events   EventPublisher
}

func NewCheckoutService(db *gorm.DB, scratch ScratchStore, payments PaymentGateway, notifier Notifier, events EventPublisher) *CheckoutService {
	return &CheckoutService{
		db:       db,
		scratch:  scratch,
		payments: payments,
		notifier: notifier,
		events:   events,
	}
}

// SendVerificationCode stores a fresh one-time code for the saved-card path
// and emails it. The code stays stored even if sending fails.
func (s *CheckoutService) SendVerificationCode(ctx context.Context, customerID uint) error {
	var customer models.Customer
	if err := s.db.WithContext(ctx).First(&customer, customerID).Error; err != nil {
		return translateDBError(err, "customer")
	}

	code, err := generateNumericCode(6)
	if err != nil {
		return err
	}
	if err := s.scratch.Set(ctx, verificationCodeKey(customerID), code, verificationCodeTTL); err != nil {
		return err
	}
	if err := s.notifier.SendVerificationCode(ctx, customer.Email, code); err != nil {
		return fmt.Errorf("sending verification code: %w", err)
	}
	return nil
}

// verifyCode consumes the stored code whether or not it matches.
func (s *CheckoutService) verifyCode(ctx context.Context, customerID uint, submitted string) error {
	stored, ok, err := s.scratch.Take(ctx, verificationCodeKey(customerID))
	if err != nil {
		return err
	}
	if !ok || submitted == "" || subtle.ConstantTimeCompare([]byte(stored), []byte(submitted)) != 1 {
		return ErrVerificationCodeMismatch
	}
	return nil
}

// Checkout turns the customer's cart into orders. Either every cart line
// becomes an order or nothing changes.
func (s *CheckoutService) Checkout(ctx context.Context, req CheckoutRequest) (Receipt, error) {
	db := s.db.WithContext(ctx)

	var customer models.Customer
	if err := db.First(&customer, req.CustomerID).Error; err != nil {
		return Receipt{}, translateDBError(err, "customer")
	}

	var newCard *models.Card
	switch {
	case req.Payment.NewCard != nil:
		card, err := buildCard(req.CustomerID, *req.Payment.NewCard)
		if err != nil {
			return Receipt{}, err
		}
		if req.Payment.NewCard.Save {
			newCard = &card
		}
	case req.Payment.SavedCardID != 0:
		if err := s.verifyCode(ctx, req.CustomerID, req.Payment.VerificationCode); err != nil {
			return Receipt{}, err
		}
		var card models.Card
		err := db.Where("id = ? AND customer_id = ?", req.Payment.SavedCardID, req.CustomerID).First(&card).Error
		if err != nil {
			return Receipt{}, translateDBError(err, "card")
		}
	default:
		return Receipt{}, fmt.Errorf("%w: payment method is required", ErrInvalidInput)
	}

	var address models.Address
	if err := db.Where("id = ? AND customer_id = ?", req.AddressID, req.CustomerID).First(&address).Error; err != nil {
		return Receipt{}, translateDBError(err, "address")
	}

	var receipt Receipt
	err := db.Transaction(func(tx *gorm.DB) error {
		lines, err := loadCart(tx, req.CustomerID)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return ErrEmptyCart
		}
		for _, line := range lines {
			if !line.Product.IsActive {
				return fmt.Errorf("%w: %s", ErrProductUnavailable, line.Product.Name)
			}
		}

		summary := summarize(lines)
		discount := decimal.Zero
		if req.CouponCode != "" {
			coupon, err := findCouponByCode(tx, req.CouponCode)
			if err != nil {
				return err
			}
			if err := ValidateCoupon(coupon, req.CustomerID); err != nil {
				return err
			}
			discount = CouponDiscount(coupon, summary.Subtotal, summary.Total)
		}

		// Lines carry at most their own value; whatever is left of the
		// discount comes off shipping.
		lineDiscount := decimal.Min(discount, summary.Subtotal)
		shippingDiscount := discount.Sub(lineDiscount)
		shares := apportionDiscount(lineDiscount, lines, summary.Subtotal)
		snapshot := datatypes.NewJSONType(address.Snapshot())

		orders := make([]models.Order, 0, len(lines))
		total := summary.Shipping.Sub(shippingDiscount)
		for i, line := range lines {
			order := models.Order{
				Quantity:        line.Quantity,
				Price:           line.Product.CurrentPrice,
				Discount:        shares[i],
				CouponCode:      req.CouponCode,
				Status:          models.OrderPendingApproval,
				DeliveryAddress: snapshot,
				CustomerID:      req.CustomerID,
				ProductID:       line.ProductID,
			}
			total = total.Add(order.LineTotal())
			orders = append(orders, order)
		}

		reference := uuid.NewString()
		payment, err := s.payments.Charge(ctx, PaymentRequest{
			Reference:   reference,
			Amount:      total,
			Description: fmt.Sprintf("Payment for %d item(s)", len(lines)),
			Email:       customer.Email,
			Phone:       customer.Phone,
			FirstName:   customer.FirstName,
			LastName:    customer.LastName,
			City:        address.City,
			AddressLine: address.GeneralAddress,
		})
		if err != nil {
			return fmt.Errorf("%w: %v", ErrPaymentCollaboratorFailure, err)
		}
		if payment.Reference == "" {
			payment.Reference = reference
		}
		if payment.State == "" {
			payment.State = models.PaymentPending
		}

		for i, line := range lines {
			order := &orders[i]
			order.PaymentID = payment.Reference
			order.PaymentState = payment.State
			if err := tx.Omit(clause.Associations).Create(order).Error; err != nil {
				return err
			}

			product := line.Product
			product.DecrementStock(line.Quantity)
			if err := tx.Model(&models.Product{}).Where("id = ?", product.ID).Update("in_stock", product.InStock).Error; err != nil {
				return err
			}
			if err := tx.Delete(&models.Cart{}, line.ID).Error; err != nil {
				return err
			}
			order.Product = product
		}

		if newCard != nil {
			if err := tx.Create(newCard).Error; err != nil {
				return err
			}
		}

		receipt = Receipt{
			Orders:           orders,
			Subtotal:         summary.Subtotal,
			Shipping:         summary.Shipping,
			Discount:         discount,
			ShippingDiscount: shippingDiscount,
			Total:            total,
			CouponCode:       req.CouponCode,
			PaymentReference: payment.Reference,
			PaymentState:     payment.State,
			RedirectURL:      payment.RedirectURL,
		}
		return nil
	})
	if err != nil {
		if req.CouponCode != "" && errors.Is(err, ErrCouponNotApplicable) {
			if clearErr := s.scratch.Delete(ctx, pendingCouponKey(req.CustomerID)); clearErr != nil {
				log.Println("Failed to clear pending coupon:", clearErr)
			}
		}
		return Receipt{}, err
	}

	log.Printf("Checkout complete for customer %d: %d order(s), payment %s", req.CustomerID, len(receipt.Orders), receipt.PaymentReference)

	if req.CouponCode != "" {
		if err := s.scratch.Delete(ctx, pendingCouponKey(req.CustomerID)); err != nil {
			log.Println("Failed to clear pending coupon:", err)
		}
	}
	for _, order := range receipt.Orders {
		if err := s.events.Publish(ctx, newOrderEvent(EventOrderPlaced, order)); err != nil {
			log.Printf("Failed to publish %s for order %d: %v", EventOrderPlaced, order.ID, err)
		}
	}
	return receipt, nil
}

func buildCard(customerID uint, card NewCard) (models.Card, error) {
	masked, err := MaskCardNumber(card.Number)
	if err != nil {
		return models.Card{}, err
	}
	if err := ValidateExpiry(card.Expiry); err != nil {
		return models.Card{}, err
	}
	name := card.Name
	if name == "" {
		name = "Card " + masked[len(masked)-4:]
	}
	return models.Card{
		CustomerID:   customerID,
		CardName:     name,
		MaskedNumber: masked,
		ExpiryDate:   card.Expiry,
	}, nil
}

// apportionDiscount splits discount across lines in proportion to their
// totals. discount must not exceed subtotal. No share exceeds its line total
// and the shares always sum to discount.
func apportionDiscount(discount decimal.Decimal, lines []models.Cart, subtotal decimal.Decimal) []decimal.Decimal {
	shares := make([]decimal.Decimal, len(lines))
	remaining := discount
	for i, line := range lines {
		share := remaining
		if i < len(lines)-1 && subtotal.IsPositive() {
			share = decimal.Min(discount.Mul(line.LineTotal()).Div(subtotal).Round(2), remaining)
		}
		shares[i] = decimal.Min(share, line.LineTotal())
		remaining = remaining.Sub(shares[i])
	}
	// Rounding can leave a few cents the last line had no room for.
	for i, line := range lines {
		if !remaining.IsPositive() {
			break
		}
		extra := decimal.Min(remaining, line.LineTotal().Sub(shares[i]))
		shares[i] = shares[i].Add(extra)
		remaining = remaining.Sub(extra)
	}
	return shares
}
