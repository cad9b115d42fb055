package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Kariqs/amexan-store/models"
)

const (
	bcryptCost        = 10
	minPasswordLength = 6
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^05\d{9}$`)
)

func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func comparePasswords(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizePhone strips spaces and dashes.
func NormalizePhone(phone string) string {
	return strings.NewReplacer(" ", "", "-", "").Replace(strings.TrimSpace(phone))
}

func ValidateEmail(email string) error {
	if !emailPattern.MatchString(email) {
		return fmt.Errorf("%w: enter a valid email address", ErrInvalidInput)
	}
	return nil
}

// ValidatePhone expects an already normalized number: 11 digits starting with 05.
func ValidatePhone(phone string) error {
	if !phonePattern.MatchString(phone) {
		return fmt.Errorf("%w: phone number must be 11 digits and start with 05", ErrInvalidInput)
	}
	return nil
}

func ValidatePassword(password, confirmation string) error {
	if password != confirmation {
		return fmt.Errorf("%w: passwords do not match", ErrInvalidInput)
	}
	if len(password) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLength)
	}
	return nil
}

type CustomerService struct {
	db *gorm.DB
}

func NewCustomerService(db *gorm.DB) *CustomerService {
	return &CustomerService{db: db}
}

func (s *CustomerService) Signup(ctx context.Context, data models.SignupData) (models.Customer, error) {
	email := NormalizeEmail(data.Email)
	phone := NormalizePhone(data.Phone)
	if err := ValidateEmail(email); err != nil {
		return models.Customer{}, err
	}
	if err := ValidatePhone(phone); err != nil {
		return models.Customer{}, err
	}
	if err := ValidatePassword(data.Password1, data.Password2); err != nil {
		return models.Customer{}, err
	}

	db := s.db.WithContext(ctx)
	if err := s.ensureUnique(db, "email", email, 0); err != nil {
		return models.Customer{}, err
	}
	if err := s.ensureUnique(db, "phone", phone, 0); err != nil {
		return models.Customer{}, err
	}

	hash, err := hashPassword(data.Password1)
	if err != nil {
		return models.Customer{}, err
	}
	customer := models.Customer{
		Email:        email,
		Phone:        phone,
		FirstName:    strings.TrimSpace(data.FirstName),
		LastName:     strings.TrimSpace(data.LastName),
		PasswordHash: hash,
	}
	if err := db.Create(&customer).Error; err != nil {
		return models.Customer{}, translateDBError(err, "customer")
	}
	log.Printf("Customer %d signed up", customer.ID)
	return customer, nil
}

// Authenticate accepts an email address or a phone number as identifier.
func (s *CustomerService) Authenticate(ctx context.Context, identifier, password string) (models.Customer, error) {
	var customer models.Customer
	err := s.db.WithContext(ctx).
		Where("email = ? OR phone = ?", NormalizeEmail(identifier), NormalizePhone(identifier)).
		First(&customer).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Customer{}, ErrInvalidCredentials
	}
	if err != nil {
		return models.Customer{}, err
	}
	if err := comparePasswords(customer.PasswordHash, password); err != nil {
		return models.Customer{}, ErrInvalidCredentials
	}
	if customer.IsBanned {
		return models.Customer{}, ErrCustomerBanned
	}
	return customer, nil
}

func (s *CustomerService) Get(ctx context.Context, id uint) (models.Customer, error) {
	var customer models.Customer
	if err := s.db.WithContext(ctx).First(&customer, id).Error; err != nil {
		return models.Customer{}, translateDBError(err, "customer")
	}
	return customer, nil
}

func (s *CustomerService) ChangePassword(ctx context.Context, id uint, current, password1, password2 string) error {
	customer, err := s.verifiedCustomer(ctx, id, current)
	if err != nil {
		return err
	}
	if err := ValidatePassword(password1, password2); err != nil {
		return err
	}
	hash, err := hashPassword(password1)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Model(&customer).Update("password_hash", hash).Error
}

func (s *CustomerService) ChangeEmail(ctx context.Context, id uint, current, email string) (models.Customer, error) {
	email = NormalizeEmail(email)
	if err := ValidateEmail(email); err != nil {
		return models.Customer{}, err
	}
	return s.changeField(ctx, id, current, "email", email)
}

func (s *CustomerService) ChangePhone(ctx context.Context, id uint, current, phone string) (models.Customer, error) {
	phone = NormalizePhone(phone)
	if err := ValidatePhone(phone); err != nil {
		return models.Customer{}, err
	}
	return s.changeField(ctx, id, current, "phone", phone)
}

func (s *CustomerService) changeField(ctx context.Context, id uint, current, column, value string) (models.Customer, error) {
	customer, err := s.verifiedCustomer(ctx, id, current)
	if err != nil {
		return models.Customer{}, err
	}
	db := s.db.WithContext(ctx)
	if err := s.ensureUnique(db, column, value, customer.ID); err != nil {
		return models.Customer{}, err
	}
	if err := db.Model(&customer).Update(column, value).Error; err != nil {
		return models.Customer{}, translateDBError(err, column)
	}
	return s.Get(ctx, id)
}

// List returns non-admin customers, newest first.
func (s *CustomerService) List(ctx context.Context, page Page) ([]models.Customer, PageMetadata, error) {
	db := s.db.WithContext(ctx)
	var count int64
	if err := db.Model(&models.Customer{}).Where("is_admin = ?", false).Count(&count).Error; err != nil {
		return nil, PageMetadata{}, err
	}
	var customers []models.Customer
	err := db.Where("is_admin = ?", false).
		Scopes(page.Scope).
		Order("created_at desc").
		Find(&customers).Error
	if err != nil {
		return nil, PageMetadata{}, err
	}
	return customers, newPageMetadata(page, count), nil
}

// ToggleBan flips the ban flag. Admin accounts cannot be banned.
func (s *CustomerService) ToggleBan(ctx context.Context, id uint) (models.Customer, error) {
	customer, err := s.Get(ctx, id)
	if err != nil {
		return models.Customer{}, err
	}
	if customer.IsAdmin {
		return models.Customer{}, fmt.Errorf("%w: admin accounts cannot be banned", ErrInvalidInput)
	}
	customer.IsBanned = !customer.IsBanned
	if err := s.db.WithContext(ctx).Model(&customer).Update("is_banned", customer.IsBanned).Error; err != nil {
		return models.Customer{}, err
	}
	log.Printf("Customer %d banned=%t", customer.ID, customer.IsBanned)
	return customer, nil
}

// EnsureAdmin creates the bootstrap admin account unless the email is
// already registered.
func (s *CustomerService) EnsureAdmin(ctx context.Context, email, phone, password string) error {
	email = NormalizeEmail(email)
	db := s.db.WithContext(ctx)

	var count int64
	if err := db.Model(&models.Customer{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := hashPassword(password)
	if err != nil {
		return err
	}
	admin := models.Customer{
		Email:        email,
		Phone:        NormalizePhone(phone),
		FirstName:    "Admin",
		PasswordHash: hash,
		IsAdmin:      true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return translateDBError(err, "admin")
	}
	log.Printf("Seeded admin account %s", admin.Email)
	return nil
}

func (s *CustomerService) verifiedCustomer(ctx context.Context, id uint, password string) (models.Customer, error) {
	customer, err := s.Get(ctx, id)
	if err != nil {
		return models.Customer{}, err
	}
	if err := comparePasswords(customer.PasswordHash, password); err != nil {
		return models.Customer{}, ErrInvalidCredentials
	}
	return customer, nil
}

func (s *CustomerService) ensureUnique(db *gorm.DB, column, value string, exceptID uint) error {
	var count int64
	query := db.Model(&models.Customer{}).Where(column+" = ?", value)
	if exceptID != 0 {
		query = query.Where("id <> ?", exceptID)
	}
	if err := query.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: %s %s", ErrUniquenessViolation, column, value)
	}
	return nil
}
