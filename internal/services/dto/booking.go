package dto

import "time"

type CreateBookingRequest struct {
	TourID          string    `json:"tour_id" binding:"required"`
	Date            time.Time `json:"date" binding:"required"`
	PartySize       int       `json:"party_size" validate:"required,gte=1"`
	SpecialRequests string    `json:"special_requests"`
}

type TransitionBookingRequest struct {
	Status string `json:"status" binding:"required"`
}

// BookingResponse is the hydrated view: booking fields joined with the
// tour and counterpart display fields, so clients never need a second
// round trip after create or transition.
type BookingResponse struct {
	ID              string    `json:"id"`
	TouristID       string    `json:"tourist_id"`
	TourID          string    `json:"tour_id"`
	ProviderID      string    `json:"provider_id"`
	TourTitle       string    `json:"tour_title"`
	TourLocation    string    `json:"tour_location"`
	TourPrice       float64   `json:"tour_price"`
	Date            time.Time `json:"date"`
	PartySize       int       `json:"party_size"`
	TotalAmount     float64   `json:"total_amount"`
	SpecialRequests string    `json:"special_requests,omitempty"`
	Status          string    `json:"status"`
	TouristName     string    `json:"tourist_name,omitempty"`
	ProviderName    string    `json:"provider_name,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}
