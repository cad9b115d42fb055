package models

import "gorm.io/gorm"

type Address struct {
	gorm.Model
	CustomerID     uint   `json:"customerId" gorm:"not null;index"`
	AddressTitle   string `json:"addressTitle" gorm:"size:100;not null" binding:"required"`
	GeneralAddress string `json:"generalAddress" gorm:"size:300;not null" binding:"required"`
	City           string `json:"city" gorm:"size:100;not null" binding:"required"`
	District       string `json:"district" gorm:"size:100;not null" binding:"required"`
	ZipCode        string `json:"zipCode" gorm:"size:20;not null" binding:"required"`
	RecipientName  string `json:"recipientName" gorm:"size:100;not null" binding:"required"`
	Phone          string `json:"phone" gorm:"size:20;not null" binding:"required"`
}

// AddressSnapshot is the copy of an address stored on each order.
type AddressSnapshot struct {
	Title          string `json:"title"`
	GeneralAddress string `json:"generalAddress"`
	City           string `json:"city"`
	District       string `json:"district"`
	ZipCode        string `json:"zipCode"`
	RecipientName  string `json:"recipientName"`
	Phone          string `json:"phone"`
}

func (a Address) Snapshot() AddressSnapshot {
	return AddressSnapshot{
		Title:          a.AddressTitle,
		GeneralAddress: a.GeneralAddress,
		City:           a.City,
		District:       a.District,
		ZipCode:        a.ZipCode,
		RecipientName:  a.RecipientName,
		Phone:          a.Phone,
	}
}
