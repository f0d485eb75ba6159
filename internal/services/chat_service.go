package services

import (
	"strings"
	"time"

	"tourbay_backend/internal/logger"
	"tourbay_backend/internal/models"
	"tourbay_backend/internal/repositories"
	"tourbay_backend/internal/services/dto"
	"tourbay_backend/pkg/apperrors"
)

// EventPublisher is what the chat service needs from the realtime
// bridge: a fire-and-forget push. The persisted store stays the source
// of truth; a lost event is recovered by the next conversation fetch.
type EventPublisher interface {
	Publish(channelName, eventName string, payload interface{})
}

type ChatService interface {
	Send(senderID string, req *dto.SendMessageRequest) (*dto.MessageResponse, error)
	GetConversation(requesterID, userA, userB string, bookingID *string) ([]*dto.MessageResponse, error)
	GetUserConversations(userID string) ([]*dto.ConversationSummaryResponse, error)
	MarkRead(requesterID, messageID string) (*dto.MessageResponse, error)
	MarkConversationRead(receiverID, senderID string) (int64, error)
	UnreadCount(userID string) (int64, error)
}

type chatService struct {
	messageRepo         repositories.MessageRepository
	userRepo            repositories.UserRepository
	notificationService NotificationService
	publisher           EventPublisher
}

func NewChatService(
	messageRepo repositories.MessageRepository,
	userRepo repositories.UserRepository,
	notificationService NotificationService,
	publisher EventPublisher,
) ChatService {
	return &chatService{
		messageRepo:         messageRepo,
		userRepo:            userRepo,
		notificationService: notificationService,
		publisher:           publisher,
	}
}

func (s *chatService) Send(senderID string, req *dto.SendMessageRequest) (*dto.MessageResponse, error) {
	if senderID == req.ReceiverID {
		return nil, apperrors.ErrSelfMessage
	}
	if strings.TrimSpace(req.Text) == "" {
		return nil, apperrors.ErrEmptyMessage
	}

	sender, err := s.userRepo.FindByID(senderID)
	if err != nil {
		return nil, err
	}
	if _, err := s.userRepo.FindByID(req.ReceiverID); err != nil {
		return nil, apperrors.ErrNotFound(err, "chat", "Receiver not found")
	}

	// Store-and-forward: delivered means persisted, not acknowledged by
	// the recipient.
	message := &models.Message{
		SenderID:    senderID,
		ReceiverID:  req.ReceiverID,
		BookingID:   req.BookingID,
		Text:        req.Text,
		DeliveredAt: time.Now(),
	}
	if err := s.messageRepo.Create(message); err != nil {
		return nil, err
	}

	key := models.ConversationKey(senderID, req.ReceiverID)

	// Side effects in order: notification first, then the live event.
	// Both are best-effort and must never fail the send.
	if err := s.notificationService.NotifyMessageReceived(
		req.ReceiverID, senderID, sender.Name, key,
	); err != nil {
		logger.Error("failed to create message notification",
			"message_id", message.ID, "receiver_id", req.ReceiverID, "error", err)
	}

	response := buildMessageResponse(message)
	s.publisher.Publish("private-chat-"+key, "message:new", map[string]interface{}{
		"message": response,
	})

	return response, nil
}

func (s *chatService) GetConversation(requesterID, userA, userB string, bookingID *string) ([]*dto.MessageResponse, error) {
	if requesterID != userA && requesterID != userB {
		return nil, apperrors.ErrNotParticipant
	}

	messages, err := s.messageRepo.FindConversation(userA, userB, bookingID)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.MessageResponse, 0, len(messages))
	for i := range messages {
		responses = append(responses, buildMessageResponse(&messages[i]))
	}
	return responses, nil
}

func (s *chatService) GetUserConversations(userID string) ([]*dto.ConversationSummaryResponse, error) {
	summaries, err := s.messageRepo.FindUserConversations(userID)
	if err != nil {
		return nil, err
	}

	// Two messages persisted in the same timestamp tick can both match
	// the groupwise max; keep the first row per peer.
	seen := make(map[string]bool, len(summaries))
	responses := make([]*dto.ConversationSummaryResponse, 0, len(summaries))
	for _, summary := range summaries {
		if seen[summary.PeerID] {
			continue
		}
		seen[summary.PeerID] = true
		responses = append(responses, &dto.ConversationSummaryResponse{
			PeerID:          summary.PeerID,
			PeerName:        summary.PeerName,
			PeerAvatarURL:   summary.PeerAvatarURL,
			LastMessageText: summary.LastMessageText,
			LastMessageAt:   summary.LastMessageAt,
			LastSenderID:    summary.LastSenderID,
			UnreadCount:     summary.UnreadCount,
		})
	}
	return responses, nil
}

func (s *chatService) MarkRead(requesterID, messageID string) (*dto.MessageResponse, error) {
	message, err := s.messageRepo.FindByID(messageID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrMessageNotFound) {
			return nil, apperrors.ErrMessageNotFound
		}
		return nil, err
	}
	if message.ReceiverID != requesterID {
		return nil, apperrors.ErrNotParticipant
	}

	updated, err := s.messageRepo.MarkRead(messageID)
	if err != nil {
		return nil, err
	}
	return buildMessageResponse(updated), nil
}

func (s *chatService) MarkConversationRead(receiverID, senderID string) (int64, error) {
	return s.messageRepo.MarkConversationRead(receiverID, senderID)
}

func (s *chatService) UnreadCount(userID string) (int64, error) {
	return s.messageRepo.CountUnread(userID)
}

func buildMessageResponse(message *models.Message) *dto.MessageResponse {
	return &dto.MessageResponse{
		ID:          message.ID,
		SenderID:    message.SenderID,
		ReceiverID:  message.ReceiverID,
		BookingID:   message.BookingID,
		Text:        message.Text,
		DeliveredAt: message.DeliveredAt,
		IsRead:      message.IsRead,
		ReadAt:      message.ReadAt,
		CreatedAt:   message.CreatedAt,
	}
}
