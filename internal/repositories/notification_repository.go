package repositories

import (
	"encoding/json"
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"tourbay_backend/internal/models"
)

var (
	ErrNotificationNotFound    = errors.New("notification not found")
	ErrInvalidNotificationData = errors.New("invalid notification data")
)

// Notification type tags, one per triggering event.
const (
	NotificationTypeBookingCreated       = "booking_created"
	NotificationTypeBookingStatusUpdated = "booking_status_updated"
	NotificationTypeMessageReceived      = "message_received"
	NotificationTypeDisputeSubmitted     = "dispute_submitted"
	NotificationTypeDisputeUpdated       = "dispute_updated"
	NotificationTypeBadgeRequested       = "badge_verification_requested"
	NotificationTypeBadgeDecided         = "badge_verification_decided"
	NotificationTypeTourPublished        = "tour_published"
)

// NotificationCriteria bounds the feed query. PageSize is clamped to
// 1..50 by the service, small enough for a badge/feed widget.
type NotificationCriteria struct {
	Page       int
	PageSize   int
	UnreadOnly bool
}

type NotificationRepository interface {
	Create(notification *models.Notification) error
	CreateForUsers(userIDs []string, template *models.Notification) (int, error)
	FindByID(id string) (*models.Notification, error)
	FindUserNotifications(userID string, criteria NotificationCriteria) ([]models.Notification, int64, error)
	MarkRead(userID, notificationID string) error
	MarkAllRead(userID string) (int64, error)
	CountUnread(userID string) (int64, error)
}

type NotificationRepositoryImpl struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &NotificationRepositoryImpl{db: db}
}

func (r *NotificationRepositoryImpl) Create(notification *models.Notification) error {
	if err := validateNotification(notification); err != nil {
		return err
	}
	return r.db.Create(notification).Error
}

// CreateForUsers inserts one copy of the template per recipient in a
// single batched statement. Returns the number of rows written.
func (r *NotificationRepositoryImpl) CreateForUsers(userIDs []string, template *models.Notification) (int, error) {
	if err := validateNotification(template); err != nil {
		return 0, err
	}
	if len(userIDs) == 0 {
		return 0, nil
	}

	notifications := make([]*models.Notification, 0, len(userIDs))
	for _, userID := range userIDs {
		n := *template
		n.ID = ""
		n.UserID = userID
		notifications = append(notifications, &n)
	}

	if err := r.db.Create(&notifications).Error; err != nil {
		return 0, err
	}
	return len(notifications), nil
}

func (r *NotificationRepositoryImpl) FindByID(id string) (*models.Notification, error) {
	var notification models.Notification
	err := r.db.First(&notification, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotificationNotFound
		}
		return nil, err
	}
	return &notification, nil
}

func (r *NotificationRepositoryImpl) FindUserNotifications(userID string, criteria NotificationCriteria) ([]models.Notification, int64, error) {
	query := r.db.Where("user_id = ?", userID)
	if criteria.UnreadOnly {
		query = query.Where("is_read = ?", false)
	}

	var total int64
	if err := query.Model(&models.Notification{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var notifications []models.Notification
	err := query.Order("created_at DESC").
		Limit(criteria.PageSize).
		Offset((criteria.Page - 1) * criteria.PageSize).
		Find(&notifications).Error

	return notifications, total, err
}

// MarkRead flips the flag only when the row belongs to the caller, so a
// user cannot acknowledge someone else's notification by guessing ids.
func (r *NotificationRepositoryImpl) MarkRead(userID, notificationID string) error {
	result := r.db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Updates(map[string]interface{}{
			"is_read": true,
			"read_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

func (r *NotificationRepositoryImpl) MarkAllRead(userID string) (int64, error) {
	result := r.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Updates(map[string]interface{}{
			"is_read": true,
			"read_at": time.Now(),
		})
	return result.RowsAffected, result.Error
}

func (r *NotificationRepositoryImpl) CountUnread(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

func validateNotification(notification *models.Notification) error {
	if notification.Type == "" {
		return errors.New("notification type is required")
	}
	if notification.Title == "" {
		return errors.New("notification title is required")
	}
	if len(notification.Data) > 0 && !json.Valid(notification.Data) {
		return ErrInvalidNotificationData
	}
	return nil
}

// MetadataJSON marshals a metadata map into the stored blob form.
func MetadataJSON(data map[string]interface{}) (datatypes.JSON, error) {
	if data == nil {
		return nil, nil
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}
