package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"gorm.io/gorm"

	"github.com/Kariqs/amexan-store/models"
)

type OrderFilter struct {
	Status     *models.OrderStatus
	CustomerID uint
	Sort       string
	Page
}

type BestSeller struct {
	ProductID uint   `json:"productId"`
	Name      string `json:"name"`
	Quantity  int64  `json:"quantity"`
}

type OrderService struct {
	db       *gorm.DB
	notifier Notifier
	events   EventPublisher
}

func NewOrderService(db *gorm.DB, notifier Notifier, events EventPublisher) *OrderService {
	return &OrderService{db: db, notifier: notifier, events: events}
}

// UpdateStatus moves an order to the state named by label. Moving into
// Delivered lowers the product's stock once; repeating Delivered leaves
// stock alone. Orders whose payment was rejected can only be cancelled.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID uint, label string) (models.Order, error) {
	next, ok := models.ParseOrderStatus(label)
	if !ok {
		return models.Order{}, fmt.Errorf("%w: %q", ErrInvalidStatus, label)
	}

	var order models.Order
	var changed bool
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Product").Preload("Customer").First(&order, orderID).Error; err != nil {
			return translateDBError(err, "order")
		}
		if !order.Status.CanTransitionTo(next) {
			return fmt.Errorf("%w: cannot move from %s to %s", ErrInvalidStatus, order.Status, next)
		}
		if order.Status == next {
			return nil
		}
		if order.PaymentState.Rejected() && next != models.OrderCancelled {
			return fmt.Errorf("%w: payment %s, order can only be cancelled", ErrInvalidStatus, strings.ToLower(string(order.PaymentState)))
		}

		if next == models.OrderDelivered {
			order.Product.DecrementStock(order.Quantity)
			if err := tx.Model(&models.Product{}).Where("id = ?", order.ProductID).Update("in_stock", order.Product.InStock).Error; err != nil {
				return err
			}
		}
		if err := tx.Model(&models.Order{}).Where("id = ?", order.ID).Update("status", next).Error; err != nil {
			return err
		}
		order.Status = next
		changed = true
		return nil
	})
	if err != nil {
		return models.Order{}, err
	}
	if !changed {
		return order, nil
	}

	log.Printf("Order %d moved to %s", order.ID, order.Status)
	if err := s.events.Publish(ctx, newOrderEvent(EventOrderStatusChanged, order)); err != nil {
		log.Printf("Failed to publish %s for order %d: %v", EventOrderStatusChanged, order.ID, err)
	}
	if err := s.notifier.SendOrderStatus(ctx, order.Customer.Email, order); err != nil {
		log.Printf("Failed to notify customer about order %d: %v", order.ID, err)
	}
	return order, nil
}

func (s *OrderService) ForCustomer(ctx context.Context, customerID uint) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.WithContext(ctx).
		Preload("Product").
		Where("customer_id = ?", customerID).
		Order("created_at desc, id desc").
		Find(&orders).Error
	return orders, err
}

// Get returns an order. A non-zero customerID restricts the lookup to that
// customer's orders.
func (s *OrderService) Get(ctx context.Context, orderID, customerID uint) (models.Order, error) {
	query := s.db.WithContext(ctx).Preload("Product").Where("id = ?", orderID)
	if customerID != 0 {
		query = query.Where("customer_id = ?", customerID)
	}
	var order models.Order
	if err := query.First(&order).Error; err != nil {
		return models.Order{}, translateDBError(err, "order")
	}
	return order, nil
}

func (s *OrderService) List(ctx context.Context, filter OrderFilter) ([]models.Order, PageMetadata, error) {
	sortOrder := filter.Sort
	if sortOrder != "asc" && sortOrder != "desc" {
		sortOrder = "desc"
	}

	filtered := func(db *gorm.DB) *gorm.DB {
		if filter.Status != nil {
			db = db.Where("status = ?", *filter.Status)
		}
		if filter.CustomerID != 0 {
			db = db.Where("customer_id = ?", filter.CustomerID)
		}
		return db
	}

	db := s.db.WithContext(ctx)
	var count int64
	if err := db.Model(&models.Order{}).Scopes(filtered).Count(&count).Error; err != nil {
		return nil, PageMetadata{}, err
	}

	var orders []models.Order
	err := db.Preload("Product").
		Scopes(filtered, filter.Page.Scope).
		Order("created_at " + sortOrder).
		Order("id " + sortOrder).
		Find(&orders).Error
	if err != nil {
		return nil, PageMetadata{}, err
	}
	return orders, newPageMetadata(filter.Page, count), nil
}

func (s *OrderService) PendingCount(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("status = ?", models.OrderPendingApproval).
		Count(&count).Error
	return count, err
}

// BestSellers ranks products by delivered quantity.
func (s *OrderService) BestSellers(ctx context.Context, limit int) ([]BestSeller, error) {
	if limit < 1 {
		limit = 10
	}
	var rows []BestSeller
	err := s.db.WithContext(ctx).
		Table("orders").
		Select("orders.product_id AS product_id, products.name AS name, SUM(orders.quantity) AS quantity").
		Joins("JOIN products ON products.id = orders.product_id").
		Where("orders.status = ? AND orders.deleted_at IS NULL", models.OrderDelivered).
		Group("orders.product_id, products.name").
		Order("quantity desc").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}
