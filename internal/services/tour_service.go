package services

import (
	"tourbay_backend/internal/logger"
	"tourbay_backend/internal/models"
	"tourbay_backend/internal/repositories"
	"tourbay_backend/internal/services/dto"
	"tourbay_backend/pkg/apperrors"
)

// TourService is a slim catalog collaborator: just enough to own tours
// and fire the publish announcement. Search and filtering live
// elsewhere.
type TourService interface {
	Create(providerID string, req *dto.CreateTourRequest) (*models.Tour, error)
	Publish(tourID, actorID string) (*models.Tour, error)
	ListByProvider(providerID string) ([]models.Tour, error)
}

type tourService struct {
	tourRepo            repositories.TourRepository
	notificationService NotificationService
}

func NewTourService(
	tourRepo repositories.TourRepository,
	notificationService NotificationService,
) TourService {
	return &tourService{
		tourRepo:            tourRepo,
		notificationService: notificationService,
	}
}

func (s *tourService) Create(providerID string, req *dto.CreateTourRequest) (*models.Tour, error) {
	if req.Price < 0 {
		return nil, apperrors.NewBadRequestError("Price must not be negative")
	}

	tour := &models.Tour{
		ProviderID:  providerID,
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Price:       req.Price,
		Categories:  req.Categories,
	}
	if err := s.tourRepo.Create(tour); err != nil {
		return nil, err
	}
	return tour, nil
}

func (s *tourService) Publish(tourID, actorID string) (*models.Tour, error) {
	tour, err := s.tourRepo.FindByID(tourID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrTourNotFound) {
			return nil, apperrors.ErrTourNotFound
		}
		return nil, err
	}
	if tour.ProviderID != actorID {
		return nil, apperrors.NewForbiddenError("Only the tour owner can publish it")
	}

	published, err := s.tourRepo.Publish(tourID)
	if err != nil {
		return nil, err
	}

	// The announcement fans out only on the first publish; re-publishing
	// is a no-op and must not spam tourists again.
	if published {
		if err := s.notificationService.NotifyTourPublished(tour.ID, tour.Title); err != nil {
			logger.Error("failed to announce published tour", "tour_id", tour.ID, "error", err)
		}
	}

	return s.tourRepo.FindByID(tourID)
}

func (s *tourService) ListByProvider(providerID string) ([]models.Tour, error) {
	return s.tourRepo.FindByProvider(providerID)
}
