package models

import "github.com/lib/pq"

type Tour struct {
	BaseModel
	ProviderID  string         `gorm:"type:uuid;not null;index" json:"provider_id"`
	Title       string         `gorm:"not null" json:"title"`
	Description string         `json:"description"`
	Location    string         `gorm:"not null" json:"location"`
	Price       float64        `gorm:"not null" json:"price"`
	Categories  pq.StringArray `gorm:"type:text[]" json:"categories"`
	IsPublished bool           `gorm:"default:false;index" json:"is_published"`

	Provider *User `gorm:"foreignKey:ProviderID" json:"-"`
}
