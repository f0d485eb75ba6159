package services

import (
	"tourbay_backend/internal/logger"
	"tourbay_backend/internal/models"
	"tourbay_backend/internal/repositories"
	"tourbay_backend/internal/services/dto"
	"tourbay_backend/pkg/apperrors"
)

// DisputeService handles complaints between booking participants and
// provider badge-verification requests. Both share the notification
// path: submission alerts every admin, decisions alert the submitter.
type DisputeService interface {
	Submit(complainantID string, req *dto.CreateDisputeRequest) (*models.Dispute, error)
	UpdateStatus(disputeID string, status models.DisputeStatus) (*models.Dispute, error)
	ListAll() ([]models.Dispute, error)

	SubmitBadgeRequest(providerID string, req *dto.CreateBadgeRequestRequest) (*models.BadgeRequest, error)
	DecideBadgeRequest(requestID string, approve bool) (*models.BadgeRequest, error)
	ListPendingBadgeRequests() ([]models.BadgeRequest, error)
}

type disputeService struct {
	disputeRepo         repositories.DisputeRepository
	badgeRepo           repositories.BadgeRequestRepository
	bookingRepo         repositories.BookingRepository
	tourRepo            repositories.TourRepository
	userRepo            repositories.UserRepository
	notificationService NotificationService
}

func NewDisputeService(
	disputeRepo repositories.DisputeRepository,
	badgeRepo repositories.BadgeRequestRepository,
	bookingRepo repositories.BookingRepository,
	tourRepo repositories.TourRepository,
	userRepo repositories.UserRepository,
	notificationService NotificationService,
) DisputeService {
	return &disputeService{
		disputeRepo:         disputeRepo,
		badgeRepo:           badgeRepo,
		bookingRepo:         bookingRepo,
		tourRepo:            tourRepo,
		userRepo:            userRepo,
		notificationService: notificationService,
	}
}

func (s *disputeService) Submit(complainantID string, req *dto.CreateDisputeRequest) (*models.Dispute, error) {
	booking, err := s.bookingRepo.FindByID(req.BookingID)
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

	// The defendant is the other participant of the booking.
	var defendantID string
	switch complainantID {
	case booking.TouristID:
		defendantID = tour.ProviderID
	case tour.ProviderID:
		defendantID = booking.TouristID
	default:
		return nil, apperrors.NewForbiddenError("Only booking participants can open a dispute")
	}

	dispute := &models.Dispute{
		BookingID:     booking.ID,
		ComplainantID: complainantID,
		DefendantID:   defendantID,
		Reason:        req.Reason,
		Status:        models.DisputeStatusOpen,
	}
	if err := s.disputeRepo.Create(dispute); err != nil {
		return nil, err
	}

	if err := s.notificationService.NotifyDisputeSubmitted(dispute.ID, booking.ID); err != nil {
		logger.Error("failed to notify admins about dispute", "dispute_id", dispute.ID, "error", err)
	}

	return dispute, nil
}

func (s *disputeService) UpdateStatus(disputeID string, status models.DisputeStatus) (*models.Dispute, error) {
	dispute, err := s.disputeRepo.FindByID(disputeID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrDisputeNotFound) {
			return nil, apperrors.ErrDisputeNotFound
		}
		return nil, err
	}

	if err := s.disputeRepo.UpdateStatus(disputeID, status); err != nil {
		return nil, err
	}

	if err := s.notificationService.NotifyDisputeUpdated(dispute.ComplainantID, disputeID, status); err != nil {
		logger.Error("failed to notify complainant about dispute status",
			"dispute_id", disputeID, "error", err)
	}

	return s.disputeRepo.FindByID(disputeID)
}

func (s *disputeService) ListAll() ([]models.Dispute, error) {
	return s.disputeRepo.FindAll()
}

func (s *disputeService) SubmitBadgeRequest(providerID string, req *dto.CreateBadgeRequestRequest) (*models.BadgeRequest, error) {
	provider, err := s.userRepo.FindByID(providerID)
	if err != nil {
		return nil, err
	}

	request := &models.BadgeRequest{
		ProviderID: providerID,
		Motivation: req.Motivation,
		Status:     models.BadgeRequestStatusPending,
	}
	if err := s.badgeRepo.Create(request); err != nil {
		return nil, err
	}

	if err := s.notificationService.NotifyBadgeRequested(request.ID, provider.Name); err != nil {
		logger.Error("failed to notify admins about badge request",
			"request_id", request.ID, "error", err)
	}

	return request, nil
}

func (s *disputeService) DecideBadgeRequest(requestID string, approve bool) (*models.BadgeRequest, error) {
	request, err := s.badgeRepo.FindByID(requestID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrBadgeRequestNotFound) {
			return nil, apperrors.ErrBadgeRequestNotFound
		}
		return nil, err
	}

	status := models.BadgeRequestStatusRejected
	if approve {
		status = models.BadgeRequestStatusApproved
	}
	if err := s.badgeRepo.UpdateStatus(requestID, status); err != nil {
		return nil, err
	}

	if approve {
		if err := s.userRepo.UpdateVerified(request.ProviderID, true); err != nil {
			return nil, err
		}
	}

	if err := s.notificationService.NotifyBadgeDecided(request.ProviderID, approve); err != nil {
		logger.Error("failed to notify provider about badge decision",
			"request_id", requestID, "error", err)
	}

	return s.badgeRepo.FindByID(requestID)
}

func (s *disputeService) ListPendingBadgeRequests() ([]models.BadgeRequest, error) {
	return s.badgeRepo.FindPending()
}
