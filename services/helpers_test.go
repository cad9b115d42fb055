package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Kariqs/amexan-store/models"
	"github.com/Kariqs/amexan-store/session"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(t.TempDir()+"/store.db"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&models.Customer{},
		&models.Product{},
		&models.Cart{},
		&models.Order{},
		&models.Address{},
		&models.Card{},
		&models.Coupon{},
		&models.Favorite{},
	))
	return db
}

func createCustomer(t *testing.T, db *gorm.DB, email, phone string) models.Customer {
	t.Helper()
	customer := models.Customer{Email: email, Phone: phone, FirstName: "Test", LastName: "Customer", PasswordHash: "x"}
	require.NoError(t, db.Create(&customer).Error)
	return customer
}

func createProduct(t *testing.T, db *gorm.DB, name, price string, stock int, active bool) models.Product {
	t.Helper()
	p := decimal.RequireFromString(price)
	product := models.Product{
		Name:          name,
		CurrentPrice:  p,
		PreviousPrice: p,
		InStock:       stock,
		Category:      models.CategoryElectronics,
		IsActive:      active,
	}
	require.NoError(t, db.Create(&product).Error)
	return product
}

func createAddress(t *testing.T, db *gorm.DB, customerID uint) models.Address {
	t.Helper()
	address := models.Address{
		CustomerID:     customerID,
		AddressTitle:   "Home",
		GeneralAddress: "1 Main Street",
		City:           "Istanbul",
		District:       "Kadikoy",
		ZipCode:        "34710",
		RecipientName:  "Test Customer",
		Phone:          "05551234567",
	}
	require.NoError(t, db.Create(&address).Error)
	return address
}

func createCoupon(t *testing.T, db *gorm.DB, code string, target *uint, active bool) models.Coupon {
	t.Helper()
	terms, err := ParseCouponCode(code)
	require.NoError(t, err)
	coupon := models.Coupon{
		Code:             code,
		DiscountValue:    terms.Value,
		IsPercentage:     terms.IsPercentage,
		TargetCustomerID: target,
		IsActive:         active,
	}
	require.NoError(t, db.Create(&coupon).Error)
	return coupon
}

func stockOf(t *testing.T, db *gorm.DB, productID uint) int {
	t.Helper()
	var product models.Product
	require.NoError(t, db.First(&product, productID).Error)
	return product.InStock
}

func countRows(t *testing.T, db *gorm.DB, model any) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(model).Count(&count).Error)
	return count
}

type fakeGateway struct {
	err       error
	requests  []PaymentRequest
	state     models.PaymentState
	statusErr error
	lookups   []string
}

func (g *fakeGateway) Charge(_ context.Context, req PaymentRequest) (PaymentResult, error) {
	g.requests = append(g.requests, req)
	if g.err != nil {
		return PaymentResult{}, g.err
	}
	return PaymentResult{Reference: "pay-" + req.Reference, State: models.PaymentPending, RedirectURL: "https://pay.example.com"}, nil
}

func (g *fakeGateway) Status(_ context.Context, reference string) (models.PaymentState, error) {
	g.lookups = append(g.lookups, reference)
	if g.statusErr != nil {
		return "", g.statusErr
	}
	return g.state, nil
}

type fakeNotifier struct {
	mu       sync.Mutex
	err      error
	codes    map[string]string
	statuses []models.Order
	resets   map[string]string
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{codes: map[string]string{}, resets: map[string]string{}}
}

func (n *fakeNotifier) SendVerificationCode(_ context.Context, to string, code string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.codes[to] = code
	return n.err
}

func (n *fakeNotifier) SendOrderStatus(_ context.Context, _ string, order models.Order) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.statuses = append(n.statuses, order)
	return n.err
}

func (n *fakeNotifier) SendPasswordReset(_ context.Context, to string, _ string, resetURL string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.resets[to] = resetURL
	return n.err
}

type fakePublisher struct {
	events []OrderEvent
	err    error
}

func (p *fakePublisher) Publish(_ context.Context, event OrderEvent) error {
	p.events = append(p.events, event)
	return p.err
}

func newScratch() ScratchStore {
	return session.NewMemoryStore()
}

var errBoom = errors.New("boom")
