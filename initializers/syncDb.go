package initializers

import (
	"log"

	"github.com/techshop/techshop-api/models"
)

func SyncDatabase() {
	DB.AutoMigrate(
		&models.User{},
		&models.Customer{},
		&models.Category{},
		&models.Notebook{},
		&models.Smartphone{},
		&models.SmartTV{},
		&models.Headphones{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
	)
	log.Println("Database synced successfully.")
}
