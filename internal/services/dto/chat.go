package dto

import "time"

type SendMessageRequest struct {
	ReceiverID string  `json:"receiver_id" binding:"required"`
	BookingID  *string `json:"booking_id"`
	Text       string  `json:"text" binding:"required"`
}

type MessageResponse struct {
	ID          string     `json:"id"`
	SenderID    string     `json:"sender_id"`
	ReceiverID  string     `json:"receiver_id"`
	BookingID   *string    `json:"booking_id,omitempty"`
	Text        string     `json:"text"`
	DeliveredAt time.Time  `json:"delivered_at"`
	IsRead      bool       `json:"is_read"`
	ReadAt      *time.Time `json:"read_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

type ConversationSummaryResponse struct {
	PeerID          string    `json:"peer_id"`
	PeerName        string    `json:"peer_name"`
	PeerAvatarURL   string    `json:"peer_avatar_url,omitempty"`
	LastMessageText string    `json:"last_message_text"`
	LastMessageAt   time.Time `json:"last_message_at"`
	LastSenderID    string    `json:"last_sender_id"`
	UnreadCount     int64     `json:"unread_count"`
}
