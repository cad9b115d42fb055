package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/Kariqs/amexan-store/models"
)

const passwordResetTTL = time.Hour

func passwordResetKey(token string) string {
	return "password_reset:" + token
}

func generateToken(size int) (string, error) {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// PasswordResetService issues single-use reset links by email.
type PasswordResetService struct {
	db       *gorm.DB
	scratch  ScratchStore
	notifier Notifier
	baseURL  string
}

func NewPasswordResetService(db *gorm.DB, scratch ScratchStore, notifier Notifier, baseURL string) *PasswordResetService {
	return &PasswordResetService{db: db, scratch: scratch, notifier: notifier, baseURL: baseURL}
}

// Request emails a reset link. Unknown emails are reported as ErrNotFound.
func (s *PasswordResetService) Request(ctx context.Context, email string) error {
	var customer models.Customer
	err := s.db.WithContext(ctx).Where("email = ?", NormalizeEmail(email)).First(&customer).Error
	if err != nil {
		return translateDBError(err, "customer")
	}

	token, err := generateToken(16)
	if err != nil {
		return err
	}
	if err := s.scratch.Set(ctx, passwordResetKey(token), strconv.FormatUint(uint64(customer.ID), 10), passwordResetTTL); err != nil {
		return err
	}

	link := s.baseURL + "/auth/reset-password?token=" + url.QueryEscape(token)
	if err := s.notifier.SendPasswordReset(ctx, customer.Email, customer.FullName(), link); err != nil {
		return fmt.Errorf("sending password reset email: %w", err)
	}
	log.Println("Password reset email sent to:", customer.Email)
	return nil
}

// Reset sets a new password. The token is consumed even when validation
// fails.
func (s *PasswordResetService) Reset(ctx context.Context, token, password1, password2 string) error {
	value, ok, err := s.scratch.Take(ctx, passwordResetKey(token))
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: invalid or expired reset link", ErrInvalidInput)
	}
	customerID, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return errors.New("corrupt password reset entry")
	}
	if err := ValidatePassword(password1, password2); err != nil {
		return err
	}

	hash, err := hashPassword(password1)
	if err != nil {
		return err
	}
	result := s.db.WithContext(ctx).Model(&models.Customer{}).Where("id = ?", customerID).Update("password_hash", hash)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: customer", ErrNotFound)
	}
	return nil
}
