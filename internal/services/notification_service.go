package services

import (
	"encoding/json"
	"fmt"

	"tourbay_backend/internal/models"
	"tourbay_backend/internal/repositories"
	"tourbay_backend/internal/services/dto"
	"tourbay_backend/pkg/apperrors"
)

const (
	defaultNotificationPageSize = 20
	maxNotificationPageSize     = 50
)

type NotificationService interface {
	CreateForUser(userID, notificationType, title, message, link string, metadata map[string]interface{}) error
	CreateForRole(role models.UserRole, notificationType, title, message, link string, metadata map[string]interface{}) (int, error)
	List(userID string, criteria dto.NotificationCriteria) (*dto.NotificationListResponse, error)
	UnreadCount(userID string) (int64, error)
	MarkRead(userID, notificationID string) error
	MarkAllRead(userID string) (int64, error)

	// Factory methods, one per triggering event.
	NotifyBookingCreated(providerID, bookingID, tourID, touristID, tourTitle string) error
	NotifyBookingStatus(touristID, bookingID, tourTitle string, status models.BookingStatus) error
	NotifyMessageReceived(receiverID, senderID, senderName, conversationKey string) error
	NotifyDisputeSubmitted(disputeID, bookingID string) error
	NotifyDisputeUpdated(complainantID, disputeID string, status models.DisputeStatus) error
	NotifyBadgeRequested(requestID, providerName string) error
	NotifyBadgeDecided(providerID string, approved bool) error
	NotifyTourPublished(tourID, tourTitle string) error
}

type notificationService struct {
	notificationRepo repositories.NotificationRepository
	userRepo         repositories.UserRepository
}

func NewNotificationService(
	notificationRepo repositories.NotificationRepository,
	userRepo repositories.UserRepository,
) NotificationService {
	return &notificationService{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
	}
}

// metadataShapes names the keys each notification type is allowed to
// carry. Arbitrary payloads are rejected at creation, not on read.
var metadataShapes = map[string][]string{
	repositories.NotificationTypeBookingCreated:       {"booking_id", "tour_id", "tourist_id"},
	repositories.NotificationTypeBookingStatusUpdated: {"booking_id", "status"},
	repositories.NotificationTypeMessageReceived:      {"sender_id", "conversation_key"},
	repositories.NotificationTypeDisputeSubmitted:     {"dispute_id", "booking_id"},
	repositories.NotificationTypeDisputeUpdated:       {"dispute_id", "status"},
	repositories.NotificationTypeBadgeRequested:       {"request_id"},
	repositories.NotificationTypeBadgeDecided:         {"approved"},
	repositories.NotificationTypeTourPublished:        {"tour_id"},
}

func validateMetadata(notificationType string, metadata map[string]interface{}) error {
	if metadata == nil {
		return nil
	}
	allowed, ok := metadataShapes[notificationType]
	if !ok {
		return fmt.Errorf("unknown notification type: %s", notificationType)
	}
	allowedSet := make(map[string]bool, len(allowed))
	for _, key := range allowed {
		allowedSet[key] = true
	}
	for key := range metadata {
		if !allowedSet[key] {
			return fmt.Errorf("metadata key %q is not valid for type %s", key, notificationType)
		}
	}
	return nil
}

func (s *notificationService) CreateForUser(userID, notificationType, title, message, link string, metadata map[string]interface{}) error {
	if _, err := s.userRepo.FindByID(userID); err != nil {
		return apperrors.ErrNotFound(err, "notification", "Recipient not found")
	}
	if err := validateMetadata(notificationType, metadata); err != nil {
		return apperrors.NewBadRequestError(err.Error())
	}

	dataJSON, err := repositories.MetadataJSON(metadata)
	if err != nil {
		return apperrors.InternalError(err)
	}

	notification := &models.Notification{
		UserID:  userID,
		Type:    notificationType,
		Title:   title,
		Message: message,
		Link:    link,
		Data:    dataJSON,
	}
	return s.notificationRepo.Create(notification)
}

// CreateForRole fans one notification out to every current member of the
// normalized role. Snapshot semantics: the member list is resolved once
// and written in one batched insert; users who gain the role later are
// unaffected.
func (s *notificationService) CreateForRole(role models.UserRole, notificationType, title, message, link string, metadata map[string]interface{}) (int, error) {
	if err := validateMetadata(notificationType, metadata); err != nil {
		return 0, apperrors.NewBadRequestError(err.Error())
	}

	userIDs, err := s.userRepo.FindIDsByRole(role)
	if err != nil {
		return 0, err
	}

	dataJSON, err := repositories.MetadataJSON(metadata)
	if err != nil {
		return 0, apperrors.InternalError(err)
	}

	template := &models.Notification{
		Type:    notificationType,
		Title:   title,
		Message: message,
		Link:    link,
		Data:    dataJSON,
	}
	return s.notificationRepo.CreateForUsers(userIDs, template)
}

func (s *notificationService) List(userID string, criteria dto.NotificationCriteria) (*dto.NotificationListResponse, error) {
	if criteria.Page < 1 {
		criteria.Page = 1
	}
	if criteria.PageSize < 1 {
		criteria.PageSize = defaultNotificationPageSize
	}
	if criteria.PageSize > maxNotificationPageSize {
		criteria.PageSize = maxNotificationPageSize
	}

	notifications, total, err := s.notificationRepo.FindUserNotifications(userID, repositories.NotificationCriteria{
		Page:       criteria.Page,
		PageSize:   criteria.PageSize,
		UnreadOnly: criteria.UnreadOnly,
	})
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.NotificationResponse, 0, len(notifications))
	for i := range notifications {
		responses = append(responses, buildNotificationResponse(&notifications[i]))
	}

	return &dto.NotificationListResponse{
		Notifications: responses,
		Total:         total,
		Page:          criteria.Page,
		PageSize:      criteria.PageSize,
	}, nil
}

func (s *notificationService) UnreadCount(userID string) (int64, error) {
	return s.notificationRepo.CountUnread(userID)
}

func (s *notificationService) MarkRead(userID, notificationID string) error {
	err := s.notificationRepo.MarkRead(userID, notificationID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrNotificationNotFound) {
			return apperrors.ErrNotificationNotFound
		}
		return err
	}
	return nil
}

func (s *notificationService) MarkAllRead(userID string) (int64, error) {
	return s.notificationRepo.MarkAllRead(userID)
}

// --- Factory methods ---

func (s *notificationService) NotifyBookingCreated(providerID, bookingID, tourID, touristID, tourTitle string) error {
	return s.CreateForUser(
		providerID,
		repositories.NotificationTypeBookingCreated,
		"New booking request",
		fmt.Sprintf("You have a new booking request for '%s'", tourTitle),
		"/bookings/"+bookingID,
		map[string]interface{}{
			"booking_id": bookingID,
			"tour_id":    tourID,
			"tourist_id": touristID,
		},
	)
}

func (s *notificationService) NotifyBookingStatus(touristID, bookingID, tourTitle string, status models.BookingStatus) error {
	label := models.StatusLabel(status)
	return s.CreateForUser(
		touristID,
		repositories.NotificationTypeBookingStatusUpdated,
		fmt.Sprintf("Booking %s", label),
		fmt.Sprintf("Your booking for '%s' is now %s", tourTitle, label),
		"/bookings/"+bookingID,
		map[string]interface{}{
			"booking_id": bookingID,
			"status":     string(status),
		},
	)
}

func (s *notificationService) NotifyMessageReceived(receiverID, senderID, senderName, conversationKey string) error {
	return s.CreateForUser(
		receiverID,
		repositories.NotificationTypeMessageReceived,
		"New message",
		fmt.Sprintf("You have a new message from %s", senderName),
		"/messages?conversation="+conversationKey,
		map[string]interface{}{
			"sender_id":        senderID,
			"conversation_key": conversationKey,
		},
	)
}

func (s *notificationService) NotifyDisputeSubmitted(disputeID, bookingID string) error {
	_, err := s.CreateForRole(
		models.UserRoleAdmin,
		repositories.NotificationTypeDisputeSubmitted,
		"New dispute submitted",
		"A dispute was opened on a booking and needs review",
		"/admin/disputes/"+disputeID,
		map[string]interface{}{
			"dispute_id": disputeID,
			"booking_id": bookingID,
		},
	)
	return err
}

func (s *notificationService) NotifyDisputeUpdated(complainantID, disputeID string, status models.DisputeStatus) error {
	return s.CreateForUser(
		complainantID,
		repositories.NotificationTypeDisputeUpdated,
		"Dispute status updated",
		fmt.Sprintf("Your dispute is now %s", status),
		"/disputes/"+disputeID,
		map[string]interface{}{
			"dispute_id": disputeID,
			"status":     string(status),
		},
	)
}

func (s *notificationService) NotifyBadgeRequested(requestID, providerName string) error {
	_, err := s.CreateForRole(
		models.UserRoleAdmin,
		repositories.NotificationTypeBadgeRequested,
		"Badge verification requested",
		fmt.Sprintf("%s requested a verification badge", providerName),
		"/admin/badge-requests/"+requestID,
		map[string]interface{}{
			"request_id": requestID,
		},
	)
	return err
}

func (s *notificationService) NotifyBadgeDecided(providerID string, approved bool) error {
	title := "Badge request rejected"
	message := "Your verification badge request was rejected"
	if approved {
		title = "Badge request approved"
		message = "Congratulations, your profile is now verified"
	}
	return s.CreateForUser(
		providerID,
		repositories.NotificationTypeBadgeDecided,
		title,
		message,
		"",
		map[string]interface{}{"approved": approved},
	)
}

func (s *notificationService) NotifyTourPublished(tourID, tourTitle string) error {
	_, err := s.CreateForRole(
		models.UserRoleTourist,
		repositories.NotificationTypeTourPublished,
		"New tour available",
		fmt.Sprintf("A new tour '%s' was just published", tourTitle),
		"/tours/"+tourID,
		map[string]interface{}{
			"tour_id": tourID,
		},
	)
	return err
}

func buildNotificationResponse(notification *models.Notification) *dto.NotificationResponse {
	response := &dto.NotificationResponse{
		ID:        notification.ID,
		UserID:    notification.UserID,
		Type:      notification.Type,
		Title:     notification.Title,
		Message:   notification.Message,
		Link:      notification.Link,
		IsRead:    notification.IsRead,
		ReadAt:    notification.ReadAt,
		CreatedAt: notification.CreatedAt,
	}

	if len(notification.Data) > 0 {
		var data map[string]interface{}
		if err := json.Unmarshal(notification.Data, &data); err == nil {
			response.Data = data
		}
	}

	return response
}
