package models

import "time"

type Favorite struct {
	ID         uint      `json:"id" gorm:"primarykey"`
	CreatedAt  time.Time `json:"createdAt"`
	CustomerID uint      `json:"customerId" gorm:"not null;uniqueIndex:idx_favorite_customer_product"`
	ProductID  uint      `json:"productId" gorm:"not null;uniqueIndex:idx_favorite_customer_product"`
	Product    Product   `json:"product" gorm:"foreignKey:ProductID"`
}
