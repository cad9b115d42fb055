package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Kariqs/amexan-store/models"
)

type FavoriteService struct {
	db *gorm.DB
}

func NewFavoriteService(db *gorm.DB) *FavoriteService {
	return &FavoriteService{db: db}
}

func (s *FavoriteService) List(ctx context.Context, customerID uint) ([]models.Favorite, error) {
	var favorites []models.Favorite
	err := s.db.WithContext(ctx).
		Preload("Product").
		Where("customer_id = ?", customerID).
		Order("id desc").
		Find(&favorites).Error
	return favorites, err
}

// Toggle adds the product to the customer's favorites or removes it when it
// is already there. It reports whether the product is now a favorite.
func (s *FavoriteService) Toggle(ctx context.Context, customerID, productID uint) (bool, error) {
	var favorited bool
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Favorite
		err := tx.Where("customer_id = ? AND product_id = ?", customerID, productID).First(&existing).Error
		if err == nil {
			return tx.Delete(&existing).Error
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		var product models.Product
		if err := tx.First(&product, productID).Error; err != nil {
			return translateDBError(err, "product")
		}
		if !product.IsActive {
			return fmt.Errorf("%w: %s", ErrProductUnavailable, product.Name)
		}
		favorited = true
		return tx.Omit(clause.Associations).Create(&models.Favorite{CustomerID: customerID, ProductID: productID}).Error
	})
	return favorited, err
}
