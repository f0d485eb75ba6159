package services_test

import (
	"testing"
	"time"

	"tourbay_backend/internal/models"
	"tourbay_backend/internal/repositories"
	"tourbay_backend/internal/services"
	"tourbay_backend/internal/services/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newDisputeService(db *gorm.DB) (services.DisputeService, services.NotificationService) {
	userRepo := repositories.NewUserRepository(db)
	notificationService := services.NewNotificationService(repositories.NewNotificationRepository(db), userRepo)
	disputeService := services.NewDisputeService(
		repositories.NewDisputeRepository(db),
		repositories.NewBadgeRequestRepository(db),
		repositories.NewBookingRepository(db),
		repositories.NewTourRepository(db),
		userRepo,
		notificationService,
	)
	return disputeService, notificationService
}

func createBooking(t *testing.T, db *gorm.DB, touristID, tourID string) *models.Booking {
	t.Helper()

	booking := &models.Booking{
		TouristID:   touristID,
		TourID:      tourID,
		Date:        time.Now().AddDate(0, 0, 7),
		PartySize:   1,
		TotalAmount: 50,
		Status:      models.BookingStatusConfirmed,
	}
	require.NoError(t, db.Create(booking).Error)
	return booking
}

func TestDisputeService_Submit(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc, notifications := newDisputeService(db)

	admin := createUser(t, db, "Admin", models.UserRoleAdmin)
	guide := createUser(t, db, "Guide", models.UserRoleGuide)
	tourist := createUser(t, db, "Tourist", models.UserRoleTourist)
	outsider := createUser(t, db, "Outsider", models.UserRoleTourist)
	tour := createTour(t, db, guide.ID, 50, true)
	booking := createBooking(t, db, tourist.ID, tour.ID)

	dispute, err := svc.Submit(tourist.ID, &dto.CreateDisputeRequest{
		BookingID: booking.ID,
		Reason:    "Guide never showed up",
	})
	require.NoError(t, err)
	assert.Equal(t, guide.ID, dispute.DefendantID, "the other participant is the defendant")
	assert.Equal(t, models.DisputeStatusOpen, dispute.Status)

	// Admins are alerted.
	count, err := notifications.UnreadCount(admin.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// The provider can open one too, against the tourist.
	fromGuide, err := svc.Submit(guide.ID, &dto.CreateDisputeRequest{
		BookingID: booking.ID,
		Reason:    "Tourist damaged equipment",
	})
	require.NoError(t, err)
	assert.Equal(t, tourist.ID, fromGuide.DefendantID)

	_, err = svc.Submit(outsider.ID, &dto.CreateDisputeRequest{
		BookingID: booking.ID,
		Reason:    "I just felt like it",
	})
	require.Error(t, err, "outsiders cannot open disputes")
}

func TestDisputeService_UpdateStatus(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc, notifications := newDisputeService(db)

	guide := createUser(t, db, "Guide", models.UserRoleGuide)
	tourist := createUser(t, db, "Tourist", models.UserRoleTourist)
	tour := createTour(t, db, guide.ID, 50, true)
	booking := createBooking(t, db, tourist.ID, tour.ID)

	dispute, err := svc.Submit(tourist.ID, &dto.CreateDisputeRequest{
		BookingID: booking.ID,
		Reason:    "Refund requested",
	})
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(dispute.ID, models.DisputeStatusResolved)
	require.NoError(t, err)
	assert.Equal(t, models.DisputeStatusResolved, updated.Status)

	// The complainant hears about the decision.
	count, err := notifications.UnreadCount(tourist.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestDisputeService_BadgeRequestFlow(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc, notifications := newDisputeService(db)

	admin := createUser(t, db, "Admin", models.UserRoleAdmin)
	guide := createUser(t, db, "Guide", models.UserRoleGuide)

	request, err := svc.SubmitBadgeRequest(guide.ID, &dto.CreateBadgeRequestRequest{
		Motivation: "Five years of guiding experience",
	})
	require.NoError(t, err)
	assert.Equal(t, models.BadgeRequestStatusPending, request.Status)

	count, err := notifications.UnreadCount(admin.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	pending, err := svc.ListPendingBadgeRequests()
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	decided, err := svc.DecideBadgeRequest(request.ID, true)
	require.NoError(t, err)
	assert.Equal(t, models.BadgeRequestStatusApproved, decided.Status)

	// Approval flips the provider's verified flag.
	var provider models.User
	require.NoError(t, db.First(&provider, "id = ?", guide.ID).Error)
	assert.True(t, provider.IsVerified)

	count, err = notifications.UnreadCount(guide.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	pending, err = svc.ListPendingBadgeRequests()
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestDisputeService_DecideBadgeRequest_Rejection(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc, _ := newDisputeService(db)

	guide := createUser(t, db, "Guide", models.UserRoleGuide)

	request, err := svc.SubmitBadgeRequest(guide.ID, &dto.CreateBadgeRequestRequest{})
	require.NoError(t, err)

	decided, err := svc.DecideBadgeRequest(request.ID, false)
	require.NoError(t, err)
	assert.Equal(t, models.BadgeRequestStatusRejected, decided.Status)

	var provider models.User
	require.NoError(t, db.First(&provider, "id = ?", guide.ID).Error)
	assert.False(t, provider.IsVerified, "a rejection never verifies")
}
