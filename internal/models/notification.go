package models

import (
	"time"

	"gorm.io/datatypes"
)

type Notification struct {
	BaseModel
	UserID  string         `gorm:"type:uuid;not null;index" json:"user_id"`
	Type    string         `gorm:"not null" json:"type"` // "booking_created", "message_received", ...
	Title   string         `gorm:"not null" json:"title"`
	Message string         `json:"message"`
	Link    string         `json:"link,omitempty"`
	Data    datatypes.JSON `gorm:"type:jsonb" json:"-"` // {"booking_id": "...", "tour_id": "..."}
	IsRead  bool           `gorm:"default:false;index" json:"is_read"`
	ReadAt  *time.Time     `json:"read_at,omitempty"`
}
