package models

// Dispute associates a booking with a complaint from one participant
// against the other. Its status is independent of the booking status.
type Dispute struct {
	BaseModel
	BookingID     string        `gorm:"type:uuid;not null;index" json:"booking_id"`
	ComplainantID string        `gorm:"type:uuid;not null;index" json:"complainant_id"`
	DefendantID   string        `gorm:"type:uuid;not null" json:"defendant_id"`
	Reason        string        `gorm:"not null" json:"reason"`
	Status        DisputeStatus `gorm:"type:varchar(20);not null;default:'open'" json:"status"`

	Booking *Booking `gorm:"foreignKey:BookingID" json:"-"`
}

// BadgeRequest is a provider's application for a verification badge.
// Submission notifies every admin; the decision notifies the provider.
type BadgeRequest struct {
	BaseModel
	ProviderID string             `gorm:"type:uuid;not null;index" json:"provider_id"`
	Motivation string             `json:"motivation"`
	Status     BadgeRequestStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`

	Provider *User `gorm:"foreignKey:ProviderID" json:"-"`
}
