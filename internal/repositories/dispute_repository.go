package repositories

import (
	"errors"

	"gorm.io/gorm"

	"tourbay_backend/internal/models"
)

var (
	ErrDisputeNotFound      = errors.New("dispute not found")
	ErrBadgeRequestNotFound = errors.New("badge request not found")
)

type DisputeRepository interface {
	Create(dispute *models.Dispute) error
	FindByID(id string) (*models.Dispute, error)
	FindAll() ([]models.Dispute, error)
	UpdateStatus(disputeID string, status models.DisputeStatus) error
}

type DisputeRepositoryImpl struct {
	db *gorm.DB
}

func NewDisputeRepository(db *gorm.DB) DisputeRepository {
	return &DisputeRepositoryImpl{db: db}
}

func (r *DisputeRepositoryImpl) Create(dispute *models.Dispute) error {
	return r.db.Create(dispute).Error
}

func (r *DisputeRepositoryImpl) FindByID(id string) (*models.Dispute, error) {
	var dispute models.Dispute
	err := r.db.First(&dispute, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDisputeNotFound
		}
		return nil, err
	}
	return &dispute, nil
}

func (r *DisputeRepositoryImpl) FindAll() ([]models.Dispute, error) {
	var disputes []models.Dispute
	err := r.db.Order("created_at DESC").Find(&disputes).Error
	return disputes, err
}

func (r *DisputeRepositoryImpl) UpdateStatus(disputeID string, status models.DisputeStatus) error {
	result := r.db.Model(&models.Dispute{}).
		Where("id = ?", disputeID).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrDisputeNotFound
	}
	return nil
}

type BadgeRequestRepository interface {
	Create(request *models.BadgeRequest) error
	FindByID(id string) (*models.BadgeRequest, error)
	FindPending() ([]models.BadgeRequest, error)
	UpdateStatus(requestID string, status models.BadgeRequestStatus) error
}

type BadgeRequestRepositoryImpl struct {
	db *gorm.DB
}

func NewBadgeRequestRepository(db *gorm.DB) BadgeRequestRepository {
	return &BadgeRequestRepositoryImpl{db: db}
}

func (r *BadgeRequestRepositoryImpl) Create(request *models.BadgeRequest) error {
	return r.db.Create(request).Error
}

func (r *BadgeRequestRepositoryImpl) FindByID(id string) (*models.BadgeRequest, error) {
	var request models.BadgeRequest
	err := r.db.First(&request, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBadgeRequestNotFound
		}
		return nil, err
	}
	return &request, nil
}

func (r *BadgeRequestRepositoryImpl) FindPending() ([]models.BadgeRequest, error) {
	var requests []models.BadgeRequest
	err := r.db.Where("status = ?", models.BadgeRequestStatusPending).
		Order("created_at ASC").
		Find(&requests).Error
	return requests, err
}

func (r *BadgeRequestRepositoryImpl) UpdateStatus(requestID string, status models.BadgeRequestStatus) error {
	result := r.db.Model(&models.BadgeRequest{}).
		Where("id = ?", requestID).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBadgeRequestNotFound
	}
	return nil
}
