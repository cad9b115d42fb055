package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/Kariqs/amexan-store/models"
)

type AddressService struct {
	db *gorm.DB
}

func NewAddressService(db *gorm.DB) *AddressService {
	return &AddressService{db: db}
}

func (s *AddressService) List(ctx context.Context, customerID uint) ([]models.Address, error) {
	var addresses []models.Address
	err := s.db.WithContext(ctx).Where("customer_id = ?", customerID).Order("id").Find(&addresses).Error
	return addresses, err
}

func (s *AddressService) Add(ctx context.Context, customerID uint, address models.Address) (models.Address, error) {
	address.ID = 0
	address.CustomerID = customerID
	if err := s.db.WithContext(ctx).Create(&address).Error; err != nil {
		return models.Address{}, err
	}
	return address, nil
}

func (s *AddressService) Delete(ctx context.Context, customerID, addressID uint) error {
	result := s.db.WithContext(ctx).
		Where("id = ? AND customer_id = ?", addressID, customerID).
		Delete(&models.Address{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: address", ErrNotFound)
	}
	return nil
}
