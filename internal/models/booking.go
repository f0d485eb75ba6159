package models

import "time"

// Booking ties a tourist to a tour. Total is fixed at creation time
// (tour price x party size) and never recomputed, even if the tour
// price changes later.
type Booking struct {
	BaseModel
	TouristID       string        `gorm:"type:uuid;not null;index" json:"tourist_id"`
	TourID          string        `gorm:"type:uuid;not null;index" json:"tour_id"`
	Date            time.Time     `gorm:"not null" json:"date"`
	PartySize       int           `gorm:"not null" json:"party_size"`
	TotalAmount     float64       `gorm:"not null" json:"total_amount"`
	SpecialRequests string        `json:"special_requests,omitempty"`
	Status          BookingStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`

	Tourist *User `gorm:"foreignKey:TouristID" json:"-"`
	Tour    *Tour `gorm:"foreignKey:TourID" json:"-"`
}

// bookingTransitions is the full set of legal state changes. Re-applying
// the current state is handled separately as a no-op.
var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:   {BookingStatusConfirmed, BookingStatusCancelled},
	BookingStatusConfirmed: {BookingStatusCompleted},
}

// CanTransition reports whether a booking in state from may move to state to.
func CanTransition(from, to BookingStatus) bool {
	for _, next := range bookingTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// NormalizeBookingStatus maps the synonyms accepted at the API boundary
// onto the stored vocabulary.
func NormalizeBookingStatus(status string) (BookingStatus, bool) {
	switch status {
	case "approved":
		return BookingStatusConfirmed, true
	case "declined", "rejected":
		return BookingStatusCancelled, true
	case string(BookingStatusPending), string(BookingStatusConfirmed),
		string(BookingStatusCancelled), string(BookingStatusCompleted):
		return BookingStatus(status), true
	}
	return "", false
}

// StatusLabel is the human wording used in status-change notifications.
func StatusLabel(status BookingStatus) string {
	switch status {
	case BookingStatusConfirmed:
		return "Approved"
	case BookingStatusCancelled:
		return "Cancelled"
	case BookingStatusCompleted:
		return "Completed"
	case BookingStatusPending:
		return "Pending"
	}
	return string(status)
}
