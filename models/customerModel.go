package models

import "gorm.io/gorm"

type Customer struct {
	gorm.Model
	Email        string `json:"email" gorm:"size:100;uniqueIndex;not null"`
	Phone        string `json:"phone" gorm:"size:20;uniqueIndex;not null"`
	FirstName    string `json:"firstName" gorm:"size:100"`
	LastName     string `json:"lastName" gorm:"size:100"`
	PasswordHash string `json:"-" gorm:"size:255;not null"`
	IsBanned     bool   `json:"isBanned" gorm:"not null"`
	IsAdmin      bool   `json:"isAdmin" gorm:"not null"`
}

func (c Customer) FullName() string {
	if c.LastName == "" {
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}

type SignupData struct {
	Email     string `json:"email" binding:"required"`
	Phone     string `json:"phone" binding:"required"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Password1 string `json:"password1" binding:"required"`
	Password2 string `json:"password2" binding:"required"`
}

// LoginData accepts either the email or the phone number as Identifier.
type LoginData struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}
