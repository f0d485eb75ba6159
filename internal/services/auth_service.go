package services

import (
	"tourbay_backend/internal/auth"
	"tourbay_backend/internal/models"
	"tourbay_backend/internal/repositories"
	"tourbay_backend/internal/services/dto"
	"tourbay_backend/pkg/apperrors"
)

type AuthService interface {
	Register(req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(req *dto.LoginRequest) (*dto.AuthResponse, error)
}

type authService struct {
	userRepo repositories.UserRepository
}

func NewAuthService(userRepo repositories.UserRepository) AuthService {
	return &authService{userRepo: userRepo}
}

func (s *authService) Register(req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	role := models.NormalizeRole(models.UserRole(req.Role))
	if !models.ValidRole(role) || role == models.UserRoleAdmin {
		return nil, apperrors.NewBadRequestError("Role must be 'tourist' or 'guide'")
	}

	if _, err := s.userRepo.FindByEmail(req.Email); err == nil {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: hash,
		Name:         req.Name,
		Role:         role,
		Status:       models.UserStatusActive,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	return s.issueToken(user)
}

func (s *authService) Login(req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}
	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}
	if user.Blocked() {
		return nil, apperrors.ErrAccountBlocked
	}

	return s.issueToken(user)
}

func (s *authService) issueToken(user *models.User) (*dto.AuthResponse, error) {
	token, err := auth.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.AuthResponse{
		AccessToken: token,
		UserID:      user.ID,
		Role:        string(models.NormalizeRole(user.Role)),
		Name:        user.Name,
	}, nil
}
