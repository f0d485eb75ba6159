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

func newNotificationService(db *gorm.DB) services.NotificationService {
	return services.NewNotificationService(
		repositories.NewNotificationRepository(db),
		repositories.NewUserRepository(db),
	)
}

func TestNotificationService_CreateForRole_IncludesRoleSynonym(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newNotificationService(db)

	guide := createUser(t, db, "Guide", models.UserRoleGuide)
	local := createUser(t, db, "Local", models.UserRoleLocal)
	tourist := createUser(t, db, "Tourist", models.UserRoleTourist)

	created, err := svc.CreateForRole(
		models.UserRoleGuide,
		repositories.NotificationTypeBadgeRequested,
		"Badge verification requested",
		"A provider requested a badge",
		"",
		map[string]interface{}{"request_id": "r-1"},
	)
	require.NoError(t, err)
	assert.Equal(t, 2, created, "guide and local spellings are one audience")

	for _, u := range []*models.User{guide, local} {
		count, err := svc.UnreadCount(u.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	}

	count, err := svc.UnreadCount(tourist.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestNotificationService_CreateForRole_Snapshot(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newNotificationService(db)

	createUser(t, db, "GuideOne", models.UserRoleGuide)

	created, err := svc.CreateForRole(
		models.UserRoleGuide,
		repositories.NotificationTypeBadgeRequested,
		"Badge verification requested", "body", "",
		nil,
	)
	require.NoError(t, err)
	assert.Equal(t, 1, created)

	// A user who gains the role afterwards receives nothing.
	latecomer := createUser(t, db, "Latecomer", models.UserRoleGuide)
	count, err := svc.UnreadCount(latecomer.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestNotificationService_MetadataValidation(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newNotificationService(db)

	user := createUser(t, db, "User", models.UserRoleTourist)

	err := svc.CreateForUser(
		user.ID,
		repositories.NotificationTypeBookingCreated,
		"New booking request", "body", "",
		map[string]interface{}{"surprise_key": "nope"},
	)
	require.Error(t, err, "unknown metadata keys are rejected")

	err = svc.CreateForUser(
		user.ID,
		"made_up_type",
		"Title", "body", "",
		map[string]interface{}{"booking_id": "b-1"},
	)
	require.Error(t, err, "unknown notification types are rejected")

	err = svc.CreateForUser(
		user.ID,
		repositories.NotificationTypeBookingCreated,
		"New booking request", "body", "/bookings/b-1",
		map[string]interface{}{"booking_id": "b-1", "tour_id": "t-1", "tourist_id": "u-1"},
	)
	require.NoError(t, err)

	list, err := svc.List(user.ID, dto.NotificationCriteria{})
	require.NoError(t, err)
	require.Len(t, list.Notifications, 1)
	assert.Equal(t, "b-1", list.Notifications[0].Data["booking_id"])
}

func TestNotificationService_List_PageClamp(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newNotificationService(db)

	user := createUser(t, db, "User", models.UserRoleTourist)

	for i := 0; i < 3; i++ {
		require.NoError(t, svc.NotifyBadgeDecided(user.ID, true))
	}

	list, err := svc.List(user.ID, dto.NotificationCriteria{Page: 0, PageSize: 500})
	require.NoError(t, err)
	assert.Equal(t, 1, list.Page)
	assert.Equal(t, 50, list.PageSize)
	assert.Equal(t, int64(3), list.Total)
}

func TestNotificationService_MarkRead_Scoping(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newNotificationService(db)

	owner := createUser(t, db, "Owner", models.UserRoleTourist)
	intruder := createUser(t, db, "Intruder", models.UserRoleTourist)

	require.NoError(t, svc.CreateForUser(
		owner.ID,
		repositories.NotificationTypeMessageReceived,
		"New message", "body", "",
		map[string]interface{}{"sender_id": "s-1", "conversation_key": "a_b"},
	))

	list, err := svc.List(owner.ID, dto.NotificationCriteria{})
	require.NoError(t, err)
	require.Len(t, list.Notifications, 1)
	id := list.Notifications[0].ID

	err = svc.MarkRead(intruder.ID, id)
	require.Error(t, err, "a notification can only be acknowledged by its owner")

	require.NoError(t, svc.MarkRead(owner.ID, id))

	count, err := svc.UnreadCount(owner.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestNotificationService_MarkAllRead(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newNotificationService(db)

	user := createUser(t, db, "User", models.UserRoleTourist)

	for i := 0; i < 4; i++ {
		require.NoError(t, svc.NotifyBadgeDecided(user.ID, true))
	}

	updated, err := svc.MarkAllRead(user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(4), updated)

	unreadOnly, err := svc.List(user.ID, dto.NotificationCriteria{UnreadOnly: true})
	require.NoError(t, err)
	assert.Empty(t, unreadOnly.Notifications)
	assert.Equal(t, int64(0), unreadOnly.Total)
}
