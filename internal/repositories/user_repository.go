package repositories

import (
	"errors"

	"gorm.io/gorm"

	"tourbay_backend/internal/models"
)

var ErrUserNotFound = errors.New("user not found")

type UserRepository interface {
	Create(user *models.User) error
	FindByID(id string) (*models.User, error)
	FindByEmail(email string) (*models.User, error)
	FindIDsByRole(role models.UserRole) ([]string, error)
	UpdateVerified(userID string, verified bool) error
}

type UserRepositoryImpl struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &UserRepositoryImpl{db: db}
}

func (r *UserRepositoryImpl) Create(user *models.User) error {
	return r.db.Create(user).Error
}

func (r *UserRepositoryImpl) FindByID(id string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// FindIDsByRole returns ids of every user whose role matches the logical
// role, synonyms included. Used as the audience snapshot for fan-out.
func (r *UserRepositoryImpl) FindIDsByRole(role models.UserRole) ([]string, error) {
	var ids []string
	err := r.db.Model(&models.User{}).
		Where("role IN ?", models.ExpandRole(role)).
		Pluck("id", &ids).Error
	return ids, err
}

func (r *UserRepositoryImpl) UpdateVerified(userID string, verified bool) error {
	result := r.db.Model(&models.User{}).Where("id = ?", userID).
		Update("is_verified", verified)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}
