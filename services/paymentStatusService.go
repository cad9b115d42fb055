package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"gorm.io/gorm"

	"github.com/Kariqs/amexan-store/models"
)

// PaymentStatusService keeps Order.PaymentState in step with the payment
// provider. It is driven by the provider's payment notifications.
type PaymentStatusService struct {
	db       *gorm.DB
	payments PaymentGateway
}

func NewPaymentStatusService(db *gorm.DB, payments PaymentGateway) *PaymentStatusService {
	return &PaymentStatusService{db: db, payments: payments}
}

// Refresh asks the provider for the state of the payment identified by
// reference and stores it on every order paid with it.
func (s *PaymentStatusService) Refresh(ctx context.Context, reference string) (models.PaymentState, error) {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return "", fmt.Errorf("%w: payment reference is required", ErrInvalidInput)
	}

	db := s.db.WithContext(ctx)
	var count int64
	if err := db.Model(&models.Order{}).Where("payment_id = ?", reference).Count(&count).Error; err != nil {
		return "", err
	}
	if count == 0 {
		return "", fmt.Errorf("%w: no orders for payment %s", ErrNotFound, reference)
	}

	state, err := s.payments.Status(ctx, reference)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPaymentCollaboratorFailure, err)
	}

	err = db.Model(&models.Order{}).Where("payment_id = ?", reference).Update("payment_state", state).Error
	if err != nil {
		return "", err
	}
	log.Printf("Payment %s is now %s (%d order(s))", reference, state, count)
	return state, nil
}
