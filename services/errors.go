package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	ErrProductUnavailable         = errors.New("product unavailable")
	ErrEmptyCart                  = errors.New("cart is empty")
	ErrInvalidCouponFormat        = errors.New("invalid coupon format")
	ErrCouponNotApplicable        = errors.New("coupon not applicable")
	ErrInvalidStatus              = errors.New("invalid order status")
	ErrVerificationCodeMismatch   = errors.New("verification code mismatch")
	ErrUniquenessViolation        = errors.New("already exists")
	ErrPaymentCollaboratorFailure = errors.New("payment failed")

	ErrNotFound           = errors.New("not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrCustomerBanned     = errors.New("customer is banned")

	ErrImageStorageDisabled = errors.New("image storage is not configured")
)

// translateDBError maps gorm sentinel errors onto service errors and adds
// the name of the entity involved.
func translateDBError(err error, entity string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%w: %s", ErrNotFound, entity)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %s", ErrUniquenessViolation, entity)
	default:
		return err
	}
}
