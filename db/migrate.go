package db

import (
	"log"

	"gorm.io/gorm"

	"github.com/workerbuddy/workerbuddy-api/models"
)

// Migrate runs AutoMigrate for every collection.
func Migrate(conn *gorm.DB) error {
	err := conn.AutoMigrate(
		&models.User{},
		&models.Worker{},
		&models.Booking{},
		&models.Review{},
	)
	if err != nil {
		return err
	}

	log.Println("✅ Migrations applied successfully!")
	return nil
}
