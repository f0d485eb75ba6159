package services

import (
	"fmt"

	"tourbay_backend/internal/email"
	"tourbay_backend/internal/logger"
	"tourbay_backend/internal/models"
	"tourbay_backend/internal/repositories"
	"tourbay_backend/internal/services/dto"
	"tourbay_backend/pkg/apperrors"
)

type BookingService interface {
	Create(touristID string, req *dto.CreateBookingRequest) (*dto.BookingResponse, error)
	Transition(bookingID, actorID, requestedStatus string) (*dto.BookingResponse, error)
	ListByTourist(touristID string) ([]*dto.BookingResponse, error)
	ListByProvider(providerID string) ([]*dto.BookingResponse, error)
}

type bookingService struct {
	bookingRepo         repositories.BookingRepository
	tourRepo            repositories.TourRepository
	userRepo            repositories.UserRepository
	notificationService NotificationService
	emailSender         email.Sender
}

func NewBookingService(
	bookingRepo repositories.BookingRepository,
	tourRepo repositories.TourRepository,
	userRepo repositories.UserRepository,
	notificationService NotificationService,
	emailSender email.Sender,
) BookingService {
	return &bookingService{
		bookingRepo:         bookingRepo,
		tourRepo:            tourRepo,
		userRepo:            userRepo,
		notificationService: notificationService,
		emailSender:         emailSender,
	}
}

func (s *bookingService) Create(touristID string, req *dto.CreateBookingRequest) (*dto.BookingResponse, error) {
	tour, err := s.tourRepo.FindByID(req.TourID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrTourNotFound) {
			return nil, apperrors.ErrTourNotFound
		}
		return nil, err
	}
	if !tour.IsPublished {
		return nil, apperrors.ErrTourNotFound
	}

	if req.PartySize < 1 {
		return nil, apperrors.NewBadRequestError("Party size must be at least 1")
	}
	if req.Date.IsZero() {
		return nil, apperrors.NewBadRequestError("Booking date is required")
	}

	booking := &models.Booking{
		TouristID:       touristID,
		TourID:          tour.ID,
		Date:            req.Date,
		PartySize:       req.PartySize,
		TotalAmount:     tour.Price * float64(req.PartySize),
		SpecialRequests: req.SpecialRequests,
		Status:          models.BookingStatusPending,
	}
	if err := s.bookingRepo.Create(booking); err != nil {
		return nil, err
	}

	// Side effect only: a failed notification never fails the booking.
	if err := s.notificationService.NotifyBookingCreated(
		tour.ProviderID, booking.ID, tour.ID, touristID, tour.Title,
	); err != nil {
		logger.Error("failed to notify provider about new booking",
			"booking_id", booking.ID, "provider_id", tour.ProviderID, "error", err)
	}

	return s.hydrate(booking.ID)
}

func (s *bookingService) Transition(bookingID, actorID, requestedStatus string) (*dto.BookingResponse, error) {
	target, ok := models.NormalizeBookingStatus(requestedStatus)
	if !ok {
		return nil, apperrors.NewBadRequestError(fmt.Sprintf("Unknown booking status '%s'", requestedStatus))
	}

	booking, err := s.bookingRepo.FindByID(bookingID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrBookingNotFound) {
			return nil, apperrors.ErrBookingNotFound
		}
		return nil, err
	}

	tour, err := s.tourRepo.FindByID(booking.TourID)
	if err != nil {
		return nil, err
	}
	if tour.ProviderID != actorID {
		return nil, apperrors.ErrNotBookingOwner
	}

	// Re-applying the current state is an idempotent no-op success.
	if booking.Status == target {
		return s.hydrate(bookingID)
	}

	if !models.CanTransition(booking.Status, target) {
		return nil, apperrors.ErrInvalidTransition(string(booking.Status), string(target))
	}

	// Conditional write: if another request moved the booking between our
	// read and this update, zero rows match and the race is surfaced
	// instead of silently overwritten.
	moved, err := s.bookingRepo.UpdateStatusIf(bookingID, booking.Status, target)
	if err != nil {
		return nil, err
	}
	if !moved {
		return nil, apperrors.ErrTransitionRaceLost()
	}

	if err := s.notificationService.NotifyBookingStatus(
		booking.TouristID, bookingID, tour.Title, target,
	); err != nil {
		logger.Error("failed to notify tourist about booking status",
			"booking_id", bookingID, "tourist_id", booking.TouristID, "error", err)
	}
	s.sendStatusEmail(booking.TouristID, tour.Title, target)

	return s.hydrate(bookingID)
}

func (s *bookingService) ListByTourist(touristID string) ([]*dto.BookingResponse, error) {
	bookings, err := s.bookingRepo.FindByTourist(touristID)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.BookingResponse, 0, len(bookings))
	for i := range bookings {
		responses = append(responses, buildBookingResponse(&bookings[i]))
	}
	return responses, nil
}

func (s *bookingService) ListByProvider(providerID string) ([]*dto.BookingResponse, error) {
	bookings, err := s.bookingRepo.FindByProvider(providerID)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.BookingResponse, 0, len(bookings))
	for i := range bookings {
		responses = append(responses, buildBookingResponse(&bookings[i]))
	}
	return responses, nil
}

func (s *bookingService) hydrate(bookingID string) (*dto.BookingResponse, error) {
	booking, err := s.bookingRepo.FindByIDHydrated(bookingID)
	if err != nil {
		return nil, err
	}
	return buildBookingResponse(booking), nil
}

// sendStatusEmail is best-effort, like the realtime push: logged on
// failure, never propagated.
func (s *bookingService) sendStatusEmail(touristID, tourTitle string, status models.BookingStatus) {
	tourist, err := s.userRepo.FindByID(touristID)
	if err != nil {
		logger.Error("failed to resolve tourist for status email", "tourist_id", touristID, "error", err)
		return
	}

	label := models.StatusLabel(status)
	err = s.emailSender.Send(&email.Email{
		To:      []string{tourist.Email},
		Subject: fmt.Sprintf("Your booking for '%s' is %s", tourTitle, label),
		Body:    fmt.Sprintf("Hi %s,\n\nYour booking for '%s' is now %s.\n", tourist.Name, tourTitle, label),
	})
	if err != nil {
		logger.Error("failed to send booking status email", "tourist_id", touristID, "error", err)
	}
}

func buildBookingResponse(booking *models.Booking) *dto.BookingResponse {
	response := &dto.BookingResponse{
		ID:              booking.ID,
		TouristID:       booking.TouristID,
		TourID:          booking.TourID,
		Date:            booking.Date,
		PartySize:       booking.PartySize,
		TotalAmount:     booking.TotalAmount,
		SpecialRequests: booking.SpecialRequests,
		Status:          string(booking.Status),
		CreatedAt:       booking.CreatedAt,
	}

	if booking.Tour != nil {
		response.ProviderID = booking.Tour.ProviderID
		response.TourTitle = booking.Tour.Title
		response.TourLocation = booking.Tour.Location
		response.TourPrice = booking.Tour.Price
		if booking.Tour.Provider != nil {
			response.ProviderName = booking.Tour.Provider.Name
		}
	}
	if booking.Tourist != nil {
		response.TouristName = booking.Tourist.Name
	}

	return response
}
