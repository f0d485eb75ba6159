package repositories

import (
	"errors"

	"gorm.io/gorm"

	"tourbay_backend/internal/models"
)

var ErrTourNotFound = errors.New("tour not found")

type TourRepository interface {
	Create(tour *models.Tour) error
	FindByID(id string) (*models.Tour, error)
	FindByProvider(providerID string) ([]models.Tour, error)
	Publish(tourID string) (bool, error)
}

type TourRepositoryImpl struct {
	db *gorm.DB
}

func NewTourRepository(db *gorm.DB) TourRepository {
	return &TourRepositoryImpl{db: db}
}

func (r *TourRepositoryImpl) Create(tour *models.Tour) error {
	return r.db.Create(tour).Error
}

func (r *TourRepositoryImpl) FindByID(id string) (*models.Tour, error) {
	var tour models.Tour
	err := r.db.First(&tour, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTourNotFound
		}
		return nil, err
	}
	return &tour, nil
}

func (r *TourRepositoryImpl) FindByProvider(providerID string) ([]models.Tour, error) {
	var tours []models.Tour
	err := r.db.Where("provider_id = ?", providerID).
		Order("created_at DESC").
		Find(&tours).Error
	return tours, err
}

// Publish flips is_published once. The returned bool is false when the
// tour was already published, so callers fan out the announcement only
// on the first publish.
func (r *TourRepositoryImpl) Publish(tourID string) (bool, error) {
	result := r.db.Model(&models.Tour{}).
		Where("id = ? AND is_published = ?", tourID, false).
		Update("is_published", true)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
