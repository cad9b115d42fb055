package initializers

import (
	"log"

	"gorm.io/gorm"

	"github.com/Kariqs/amexan-store/models"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Customer{},
		&models.Product{},
		&models.Cart{},
		&models.Order{},
		&models.Address{},
		&models.Card{},
		&models.Coupon{},
		&models.Favorite{},
	)
}

func SyncDatabase() {
	if err := Migrate(DB); err != nil {
		log.Fatalf("Failed to sync database: %v", err)
	}
	log.Println("Database synced successfully.")
}
