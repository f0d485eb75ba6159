package services_test

import (
	"testing"

	"tourbay_backend/internal/models"
	"tourbay_backend/internal/repositories"
	"tourbay_backend/internal/services"
	"tourbay_backend/internal/services/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTourService(db *gorm.DB) (services.TourService, services.NotificationService) {
	userRepo := repositories.NewUserRepository(db)
	notificationService := services.NewNotificationService(repositories.NewNotificationRepository(db), userRepo)
	tourService := services.NewTourService(repositories.NewTourRepository(db), notificationService)
	return tourService, notificationService
}

func TestTourService_Create(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc, _ := newTourService(db)

	guide := createUser(t, db, "Guide", models.UserRoleGuide)

	tour, err := svc.Create(guide.ID, &dto.CreateTourRequest{
		Title:    "Old Town Food Tour",
		Location: "Porto",
		Price:    35,
	})
	require.NoError(t, err)
	assert.False(t, tour.IsPublished, "new tours start as drafts")

	_, err = svc.Create(guide.ID, &dto.CreateTourRequest{
		Title: "Freebie", Location: "Porto", Price: -1,
	})
	require.Error(t, err)
}

func TestTourService_Publish(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc, notifications := newTourService(db)

	guide := createUser(t, db, "Guide", models.UserRoleGuide)
	other := createUser(t, db, "Other", models.UserRoleGuide)
	touristOne := createUser(t, db, "TouristOne", models.UserRoleTourist)
	touristTwo := createUser(t, db, "TouristTwo", models.UserRoleTourist)
	tour := createTour(t, db, guide.ID, 35, false)

	_, err := svc.Publish(tour.ID, other.ID)
	require.Error(t, err, "only the owner can publish")

	published, err := svc.Publish(tour.ID, guide.ID)
	require.NoError(t, err)
	assert.True(t, published.IsPublished)

	// Every tourist is told once.
	for _, u := range []*models.User{touristOne, touristTwo} {
		count, err := notifications.UnreadCount(u.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	}

	// Re-publishing is a no-op and never re-announces.
	published, err = svc.Publish(tour.ID, guide.ID)
	require.NoError(t, err)
	assert.True(t, published.IsPublished)

	count, err := notifications.UnreadCount(touristOne.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
