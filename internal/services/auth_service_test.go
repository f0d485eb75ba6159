package services_test

import (
	"testing"

	"tourbay_backend/internal/auth"
	"tourbay_backend/internal/models"
	"tourbay_backend/internal/repositories"
	"tourbay_backend/internal/services"
	"tourbay_backend/internal/services/dto"
	"tourbay_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_RegisterAndLogin(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := services.NewAuthService(repositories.NewUserRepository(db))

	registered, err := svc.Register(&dto.RegisterRequest{
		Email:    "anna@test.com",
		Password: "secret123",
		Name:     "Anna",
		Role:     "tourist",
	})
	require.NoError(t, err)
	assert.Equal(t, "tourist", registered.Role)

	claims, err := auth.ParseToken(registered.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, registered.UserID, claims.UserID)
	assert.Equal(t, "tourist", claims.Role)

	loggedIn, err := svc.Login(&dto.LoginRequest{Email: "anna@test.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, registered.UserID, loggedIn.UserID)

	_, err = svc.Login(&dto.LoginRequest{Email: "anna@test.com", Password: "wrong"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestAuthService_Register_RoleHandling(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := services.NewAuthService(repositories.NewUserRepository(db))

	// The historic "local" spelling maps onto guide.
	registered, err := svc.Register(&dto.RegisterRequest{
		Email:    "leo@test.com",
		Password: "secret123",
		Name:     "Leo",
		Role:     "local",
	})
	require.NoError(t, err)
	assert.Equal(t, "guide", registered.Role)

	_, err = svc.Register(&dto.RegisterRequest{
		Email: "root@test.com", Password: "secret123", Name: "Root", Role: "admin",
	})
	require.Error(t, err, "admin accounts cannot self-register")

	_, err = svc.Register(&dto.RegisterRequest{
		Email: "x@test.com", Password: "secret123", Name: "X", Role: "wizard",
	})
	require.Error(t, err)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := services.NewAuthService(repositories.NewUserRepository(db))

	req := &dto.RegisterRequest{
		Email: "dup@test.com", Password: "secret123", Name: "Dup", Role: "tourist",
	}
	_, err := svc.Register(req)
	require.NoError(t, err)

	_, err = svc.Register(req)
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}

func TestAuthService_Login_BlockedAccount(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := services.NewAuthService(repositories.NewUserRepository(db))

	registered, err := svc.Register(&dto.RegisterRequest{
		Email: "banned@test.com", Password: "secret123", Name: "Banned", Role: "tourist",
	})
	require.NoError(t, err)

	err = db.Model(&models.User{}).
		Where("id = ?", registered.UserID).
		Update("status", models.UserStatusSuspended).Error
	require.NoError(t, err)

	_, err = svc.Login(&dto.LoginRequest{Email: "banned@test.com", Password: "secret123"})
	assert.ErrorIs(t, err, apperrors.ErrAccountBlocked)
}
