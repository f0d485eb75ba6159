package models

import "time"

// Message is a directed text between two users, optionally attached to a
// booking for context. Conversation identity is derived from the user
// pair, never stored.
type Message struct {
	BaseModel
	SenderID    string     `gorm:"type:uuid;not null;index" json:"sender_id"`
	ReceiverID  string     `gorm:"type:uuid;not null;index" json:"receiver_id"`
	BookingID   *string    `gorm:"type:uuid;index" json:"booking_id,omitempty"`
	Text        string     `gorm:"not null" json:"text"`
	DeliveredAt time.Time  `json:"delivered_at"`
	IsRead      bool       `gorm:"default:false;index" json:"is_read"`
	ReadAt      *time.Time `json:"read_at,omitempty"`

	Sender   *User `gorm:"foreignKey:SenderID" json:"-"`
	Receiver *User `gorm:"foreignKey:ReceiverID" json:"-"`
}

// ConversationKey returns the order-independent identifier of the thread
// between two users: the lower id first, so both participants derive the
// same key no matter who initiated.
func ConversationKey(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return a + "_" + b
}
