package repositories

import (
	"errors"

	"gorm.io/gorm"

	"tourbay_backend/internal/models"
)

var ErrBookingNotFound = errors.New("booking not found")

type BookingRepository interface {
	Create(booking *models.Booking) error
	FindByID(id string) (*models.Booking, error)
	FindByIDHydrated(id string) (*models.Booking, error)
	FindByTourist(touristID string) ([]models.Booking, error)
	FindByProvider(providerID string) ([]models.Booking, error)
	UpdateStatusIf(bookingID string, from, to models.BookingStatus) (bool, error)
}

type BookingRepositoryImpl struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &BookingRepositoryImpl{db: db}
}

func (r *BookingRepositoryImpl) Create(booking *models.Booking) error {
	return r.db.Create(booking).Error
}

func (r *BookingRepositoryImpl) FindByID(id string) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.First(&booking, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &booking, nil
}

// FindByIDHydrated loads the booking together with its tour, the tour's
// provider and the tourist, so callers can answer in one round trip.
func (r *BookingRepositoryImpl) FindByIDHydrated(id string) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.
		Preload("Tour").
		Preload("Tour.Provider").
		Preload("Tourist").
		First(&booking, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &booking, nil
}

func (r *BookingRepositoryImpl) FindByTourist(touristID string) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.
		Preload("Tour").
		Preload("Tour.Provider").
		Where("tourist_id = ?", touristID).
		Order("created_at DESC").
		Find(&bookings).Error
	return bookings, err
}

func (r *BookingRepositoryImpl) FindByProvider(providerID string) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.
		Preload("Tour").
		Preload("Tourist").
		Joins("JOIN tours ON tours.id = bookings.tour_id").
		Where("tours.provider_id = ?", providerID).
		Order("bookings.created_at DESC").
		Find(&bookings).Error
	return bookings, err
}

// UpdateStatusIf performs the status write conditionally on the expected
// current status. Zero rows affected means another request moved the
// booking first; the caller treats that as a lost race, not success.
func (r *BookingRepositoryImpl) UpdateStatusIf(bookingID string, from, to models.BookingStatus) (bool, error) {
	result := r.db.Model(&models.Booking{}).
		Where("id = ? AND status = ?", bookingID, from).
		Update("status", to)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
