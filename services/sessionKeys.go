package services

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

const (
	verificationCodeTTL = 10 * time.Minute
	pendingCouponTTL    = time.Hour
)

func verificationCodeKey(customerID uint) string {
	return fmt.Sprintf("session:%d:verification_code", customerID)
}

func pendingCouponKey(customerID uint) string {
	return fmt.Sprintf("session:%d:pending_coupon", customerID)
}

// generateNumericCode returns a zero-padded random code of the given length.
func generateNumericCode(length int) (string, error) {
	max := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(length)), nil)
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", length, n), nil
}
