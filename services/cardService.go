package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/Kariqs/amexan-store/models"
)

// CardService manages saved cards. Only masked numbers are stored.
type CardService struct {
	db *gorm.DB
}

func NewCardService(db *gorm.DB) *CardService {
	return &CardService{db: db}
}

func (s *CardService) List(ctx context.Context, customerID uint) ([]models.Card, error) {
	var cards []models.Card
	err := s.db.WithContext(ctx).Where("customer_id = ?", customerID).Order("id").Find(&cards).Error
	return cards, err
}

func (s *CardService) Add(ctx context.Context, customerID uint, card NewCard) (models.Card, error) {
	row, err := buildCard(customerID, card)
	if err != nil {
		return models.Card{}, err
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return models.Card{}, err
	}
	return row, nil
}

func (s *CardService) Delete(ctx context.Context, customerID, cardID uint) error {
	result := s.db.WithContext(ctx).
		Where("id = ? AND customer_id = ?", cardID, customerID).
		Delete(&models.Card{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: card", ErrNotFound)
	}
	return nil
}
