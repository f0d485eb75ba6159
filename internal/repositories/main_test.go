package repositories_test

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"tourbay_backend/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Tour{},
		&models.Booking{},
		&models.Message{},
		&models.Notification{},
	)
	require.NoError(t, err)

	return db
}

func seedBooking(t *testing.T, db *gorm.DB, status models.BookingStatus) *models.Booking {
	t.Helper()

	guide := &models.User{
		Email: fmt.Sprintf("guide_%d@test.com", time.Now().UnixNano()),
		Name:  "Guide", Role: models.UserRoleGuide,
		PasswordHash: "irrelevant", Status: models.UserStatusActive,
	}
	require.NoError(t, db.Create(guide).Error)

	tourist := &models.User{
		Email: fmt.Sprintf("tourist_%d@test.com", time.Now().UnixNano()),
		Name:  "Tourist", Role: models.UserRoleTourist,
		PasswordHash: "irrelevant", Status: models.UserStatusActive,
	}
	require.NoError(t, db.Create(tourist).Error)

	tour := &models.Tour{
		ProviderID: guide.ID, Title: "Harbor Tour", Location: "Split",
		Price: 25, IsPublished: true,
	}
	require.NoError(t, db.Create(tour).Error)

	booking := &models.Booking{
		TouristID: tourist.ID, TourID: tour.ID,
		Date: time.Now().AddDate(0, 0, 3), PartySize: 2,
		TotalAmount: 50, Status: status,
	}
	require.NoError(t, db.Create(booking).Error)
	return booking
}
