package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Kariqs/amexan-store/models"
)

func placeOrder(t *testing.T, db *gorm.DB, customer models.Customer, product models.Product, quantity int) models.Order {
	t.Helper()
	order := models.Order{
		Quantity:     quantity,
		Price:        product.CurrentPrice,
		Status:       models.OrderPendingApproval,
		PaymentID:    "ref",
		PaymentState: models.PaymentPending,
		CustomerID:   customer.ID,
		ProductID:    product.ID,
	}
	require.NoError(t, db.Omit("Customer", "Product").Create(&order).Error)
	return order
}

func TestUpdateStatusDeliveredDecrementsStockOnce(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	customer := createCustomer(t, db, "a@example.com", "05551110001")
	product := createProduct(t, db, "Kettle", "70", 10, true)
	order := placeOrder(t, db, customer, product, 3)
	notifier := newFakeNotifier()
	events := &fakePublisher{}
	svc := NewOrderService(db, notifier, events)

	updated, err := svc.UpdateStatus(ctx, order.ID, "Delivered")
	require.NoError(t, err)
	assert.Equal(t, models.OrderDelivered, updated.Status)
	assert.Equal(t, 7, stockOf(t, db, product.ID))

	_, err = svc.UpdateStatus(ctx, order.ID, "Delivered")
	require.NoError(t, err)
	assert.Equal(t, 7, stockOf(t, db, product.ID), "repeating Delivered leaves stock alone")

	require.Len(t, events.events, 1)
	assert.Equal(t, EventOrderStatusChanged, events.events[0].Type)
	assert.Equal(t, "Delivered", events.events[0].Status)
	require.Len(t, notifier.statuses, 1)
}

func TestUpdateStatusRejectsInvalidMoves(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	customer := createCustomer(t, db, "a@example.com", "05551110001")
	product := createProduct(t, db, "Kettle", "70", 10, true)
	order := placeOrder(t, db, customer, product, 1)
	svc := NewOrderService(db, newFakeNotifier(), &fakePublisher{})

	_, err := svc.UpdateStatus(ctx, order.ID, "Not Delivered")
	assert.ErrorIs(t, err, ErrInvalidStatus, "labels are matched exactly")

	_, err = svc.UpdateStatus(ctx, order.ID, "Shipped")
	require.NoError(t, err)
	_, err = svc.UpdateStatus(ctx, order.ID, "Approved")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = svc.UpdateStatus(ctx, order.ID, "Cancelled")
	require.NoError(t, err)
	_, err = svc.UpdateStatus(ctx, order.ID, "Delivered")
	assert.ErrorIs(t, err, ErrInvalidStatus)
	assert.Equal(t, 10, stockOf(t, db, product.ID))

	_, err = svc.UpdateStatus(ctx, 999, "Approved")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateStatusRejectedPaymentOnlyAllowsCancel(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	customer := createCustomer(t, db, "a@example.com", "05551110001")
	product := createProduct(t, db, "Kettle", "70", 10, true)
	order := placeOrder(t, db, customer, product, 2)
	require.NoError(t, db.Model(&models.Order{}).Where("id = ?", order.ID).Update("payment_state", models.PaymentFailed).Error)
	events := &fakePublisher{}
	svc := NewOrderService(db, newFakeNotifier(), events)

	for _, label := range []string{"Approved", "Shipped", "Delivered"} {
		_, err := svc.UpdateStatus(ctx, order.ID, label)
		assert.ErrorIs(t, err, ErrInvalidStatus, label)
	}
	assert.Equal(t, 10, stockOf(t, db, product.ID))
	assert.Empty(t, events.events)

	updated, err := svc.UpdateStatus(ctx, order.ID, "Cancelled")
	require.NoError(t, err)
	assert.Equal(t, models.OrderCancelled, updated.Status)
}

func TestUpdateStatusNotificationFailureKeepsTransition(t *testing.T) {
	db := newTestDB(t)
	customer := createCustomer(t, db, "a@example.com", "05551110001")
	product := createProduct(t, db, "Kettle", "70", 10, true)
	order := placeOrder(t, db, customer, product, 1)
	notifier := newFakeNotifier()
	notifier.err = errBoom
	svc := NewOrderService(db, notifier, &fakePublisher{err: errBoom})

	updated, err := svc.UpdateStatus(context.Background(), order.ID, "Approved")
	require.NoError(t, err)
	assert.Equal(t, models.OrderApproved, updated.Status)
}

func TestOrderQueries(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	a := createCustomer(t, db, "a@example.com", "05551110001")
	b := createCustomer(t, db, "b@example.com", "05551110002")
	kettle := createProduct(t, db, "Kettle", "70", 100, true)
	toaster := createProduct(t, db, "Toaster", "90", 100, true)
	svc := NewOrderService(db, newFakeNotifier(), &fakePublisher{})

	o1 := placeOrder(t, db, a, kettle, 2)
	o2 := placeOrder(t, db, a, toaster, 5)
	o3 := placeOrder(t, db, b, kettle, 4)
	placeOrder(t, db, b, toaster, 1)
	for _, id := range []uint{o1.ID, o2.ID, o3.ID} {
		_, err := svc.UpdateStatus(ctx, id, "Delivered")
		require.NoError(t, err)
	}

	mine, err := svc.ForCustomer(ctx, a.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	_, err = svc.Get(ctx, o3.ID, a.ID)
	assert.ErrorIs(t, err, ErrNotFound, "customers cannot read other customers' orders")
	order, err := svc.Get(ctx, o3.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, "Kettle", order.Product.Name)

	pending, err := svc.PendingCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), pending)

	delivered := models.OrderDelivered
	orders, metadata, err := svc.List(ctx, OrderFilter{Status: &delivered, Page: Page{Page: 1, Limit: 2}})
	require.NoError(t, err)
	assert.Len(t, orders, 2)
	assert.Equal(t, int64(3), metadata.Total)
	assert.True(t, metadata.HasNextPage)

	sellers, err := svc.BestSellers(ctx, 10)
	require.NoError(t, err)
	require.Len(t, sellers, 2)
	assert.Equal(t, "Kettle", sellers[0].Name)
	assert.Equal(t, int64(6), sellers[0].Quantity)
	assert.Equal(t, int64(5), sellers[1].Quantity)
}
