package models

import "gorm.io/gorm"

type Card struct {
	gorm.Model
	CustomerID   uint   `json:"customerId" gorm:"not null;index"`
	CardName     string `json:"cardName" gorm:"size:100;not null"`
	MaskedNumber string `json:"maskedNumber" gorm:"size:20;not null"`
	ExpiryDate   string `json:"expiryDate" gorm:"size:5;not null"`
}
