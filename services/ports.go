package services

import (
	"context"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Kariqs/amexan-store/models"
)

type PaymentRequest struct {
	Reference   string
	Amount      decimal.Decimal
	Description string
	Email       string
	Phone       string
	FirstName   string
	LastName    string
	City        string
	AddressLine string
}

// PaymentResult is the provider's answer to a charge. State is only the
// initial state; later changes arrive through payment notifications.
type PaymentResult struct {
	Reference   string
	State       models.PaymentState
	RedirectURL string
}

// PaymentGateway charges a customer and reports the current state of an
// earlier charge. Any Charge error aborts the checkout.
type PaymentGateway interface {
	Charge(ctx context.Context, req PaymentRequest) (PaymentResult, error)
	Status(ctx context.Context, reference string) (models.PaymentState, error)
}

type Notifier interface {
	SendVerificationCode(ctx context.Context, to string, code string) error
	SendOrderStatus(ctx context.Context, to string, order models.Order) error
	SendPasswordReset(ctx context.Context, to string, name string, resetURL string) error
}

// ScratchStore is short-lived per-customer key/value state kept between
// requests.
type ScratchStore interface {
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, bool, error)
	// Take returns the value and deletes the key in one step.
	Take(ctx context.Context, key string) (string, bool, error)
	Delete(ctx context.Context, key string) error
}

type OrderEvent struct {
	Type       string    `json:"type"`
	OrderID    uint      `json:"orderId"`
	CustomerID uint      `json:"customerId"`
	ProductID  uint      `json:"productId"`
	Quantity   int       `json:"quantity"`
	Status     string    `json:"status"`
	PaymentID  string    `json:"paymentId"`
	OccurredAt time.Time `json:"occurredAt"`
}

const (
	EventOrderPlaced        = "order.placed"
	EventOrderStatusChanged = "order.status_changed"
)

type EventPublisher interface {
	Publish(ctx context.Context, event OrderEvent) error
}

type ImageUploader interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
}

func newOrderEvent(eventType string, order models.Order) OrderEvent {
	return OrderEvent{
		Type:       eventType,
		OrderID:    order.ID,
		CustomerID: order.CustomerID,
		ProductID:  order.ProductID,
		Quantity:   order.Quantity,
		Status:     order.Status.String(),
		PaymentID:  order.PaymentID,
		OccurredAt: time.Now().UTC(),
	}
}
