package dto

type CreateTourRequest struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	Location    string   `json:"location" binding:"required"`
	Price       float64  `json:"price" validate:"required,gte=0"`
	Categories  []string `json:"categories"`
}

type CreateDisputeRequest struct {
	BookingID string `json:"booking_id" binding:"required"`
	Reason    string `json:"reason" binding:"required"`
}

type UpdateDisputeStatusRequest struct {
	Status string `json:"status" binding:"required" validate:"oneof=open in_progress resolved"`
}

type CreateBadgeRequestRequest struct {
	Motivation string `json:"motivation"`
}

type DecideBadgeRequestRequest struct {
	Approve bool `json:"approve"`
}
