package database

import (
	"fmt"

	"tourbay_backend/internal/logger"
	"tourbay_backend/internal/models"

	"gorm.io/gorm"
)

// Migrate brings the schema up to date. It is idempotent and runs on
// every startup before the server accepts traffic.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Tour{},
		&models.Booking{},
		&models.Message{},
		&models.Notification{},
		&models.Dispute{},
		&models.BadgeRequest{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	logger.Info("Database migration completed")
	return nil
}
