package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"tourbay_backend/internal/models"
)

var ErrMessageNotFound = errors.New("message not found")

// ConversationSummary is one row of the per-peer inbox view: the peer
// plus the latest message exchanged with them.
type ConversationSummary struct {
	PeerID          string    `json:"peer_id"`
	PeerName        string    `json:"peer_name"`
	PeerAvatarURL   string    `json:"peer_avatar_url"`
	LastMessageText string    `json:"last_message_text"`
	LastMessageAt   time.Time `json:"last_message_at"`
	LastSenderID    string    `json:"last_sender_id"`
	UnreadCount     int64     `json:"unread_count"`
}

type MessageRepository interface {
	Create(message *models.Message) error
	FindByID(id string) (*models.Message, error)
	FindConversation(userA, userB string, bookingID *string) ([]models.Message, error)
	FindUserConversations(userID string) ([]ConversationSummary, error)
	MarkRead(messageID string) (*models.Message, error)
	MarkConversationRead(receiverID, senderID string) (int64, error)
	CountUnread(userID string) (int64, error)
}

type MessageRepositoryImpl struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &MessageRepositoryImpl{db: db}
}

func (r *MessageRepositoryImpl) Create(message *models.Message) error {
	return r.db.Create(message).Error
}

func (r *MessageRepositoryImpl) FindByID(id string) (*models.Message, error) {
	var message models.Message
	err := r.db.First(&message, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMessageNotFound
		}
		return nil, err
	}
	return &message, nil
}

// FindConversation returns the thread between two users in either
// direction, oldest first, optionally narrowed to one booking.
func (r *MessageRepositoryImpl) FindConversation(userA, userB string, bookingID *string) ([]models.Message, error) {
	query := r.db.Where(
		"(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
		userA, userB, userB, userA,
	)
	if bookingID != nil {
		query = query.Where("booking_id = ?", *bookingID)
	}

	var messages []models.Message
	err := query.Order("created_at ASC").Find(&messages).Error
	return messages, err
}

// FindUserConversations resolves one row per distinct peer: the peer's
// display info plus the most recent message with them. Classic
// groupwise-max: group by peer, take the max timestamp, join back for
// the row itself.
func (r *MessageRepositoryImpl) FindUserConversations(userID string) ([]ConversationSummary, error) {
	var rows []ConversationSummary
	err := r.db.Raw(`
		SELECT
			peers.peer_id                                   AS peer_id,
			u.name                                          AS peer_name,
			u.avatar_url                                    AS peer_avatar_url,
			m.text                                          AS last_message_text,
			m.created_at                                    AS last_message_at,
			m.sender_id                                     AS last_sender_id,
			(SELECT COUNT(*) FROM messages um
			   WHERE um.receiver_id = @uid
			     AND um.sender_id = peers.peer_id
			     AND um.is_read = false)                    AS unread_count
		FROM (
			SELECT
				CASE WHEN sender_id = @uid THEN receiver_id ELSE sender_id END AS peer_id,
				MAX(created_at) AS last_at
			FROM messages
			WHERE sender_id = @uid OR receiver_id = @uid
			GROUP BY CASE WHEN sender_id = @uid THEN receiver_id ELSE sender_id END
		) peers
		JOIN messages m
		  ON m.created_at = peers.last_at
		 AND (CASE WHEN m.sender_id = @uid THEN m.receiver_id ELSE m.sender_id END) = peers.peer_id
		 AND (m.sender_id = @uid OR m.receiver_id = @uid)
		JOIN users u ON u.id = peers.peer_id
		ORDER BY m.created_at DESC
	`, map[string]interface{}{"uid": userID}).Scan(&rows).Error
	return rows, err
}

// MarkRead flips the read flag. ReadAt is set only on the first read so
// the original acknowledgement time survives repeated calls.
func (r *MessageRepositoryImpl) MarkRead(messageID string) (*models.Message, error) {
	message, err := r.FindByID(messageID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{"is_read": true}
	if message.ReadAt == nil {
		updates["read_at"] = time.Now()
	}

	if err := r.db.Model(message).Updates(updates).Error; err != nil {
		return nil, err
	}
	return r.FindByID(messageID)
}

func (r *MessageRepositoryImpl) MarkConversationRead(receiverID, senderID string) (int64, error) {
	result := r.db.Model(&models.Message{}).
		Where("receiver_id = ? AND sender_id = ? AND is_read = ?", receiverID, senderID, false).
		Updates(map[string]interface{}{
			"is_read": true,
			"read_at": time.Now(),
		})
	return result.RowsAffected, result.Error
}

func (r *MessageRepositoryImpl) CountUnread(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Message{}).
		Where("receiver_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}
