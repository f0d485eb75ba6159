package repositories_test

import (
	"testing"

	"tourbay_backend/internal/models"
	"tourbay_backend/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingRepository_UpdateStatusIf(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := repositories.NewBookingRepository(db)
	booking := seedBooking(t, db, models.BookingStatusPending)

	moved, err := repo.UpdateStatusIf(booking.ID, models.BookingStatusPending, models.BookingStatusConfirmed)
	require.NoError(t, err)
	assert.True(t, moved)

	stored, err := repo.FindByID(booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusConfirmed, stored.Status)

	// A stale precondition matches zero rows and changes nothing. This
	// is what surfaces two providers racing on the same booking.
	moved, err = repo.UpdateStatusIf(booking.ID, models.BookingStatusPending, models.BookingStatusCancelled)
	require.NoError(t, err)
	assert.False(t, moved)

	stored, err = repo.FindByID(booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusConfirmed, stored.Status, "the lost race left no trace")
}

func TestBookingRepository_FindByIDHydrated(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := repositories.NewBookingRepository(db)
	booking := seedBooking(t, db, models.BookingStatusPending)

	hydrated, err := repo.FindByIDHydrated(booking.ID)
	require.NoError(t, err)
	require.NotNil(t, hydrated.Tour)
	require.NotNil(t, hydrated.Tour.Provider)
	require.NotNil(t, hydrated.Tourist)
	assert.Equal(t, "Harbor Tour", hydrated.Tour.Title)
	assert.Equal(t, "Guide", hydrated.Tour.Provider.Name)
	assert.Equal(t, "Tourist", hydrated.Tourist.Name)
}

func TestBookingRepository_FindByProvider(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := repositories.NewBookingRepository(db)
	booking := seedBooking(t, db, models.BookingStatusPending)
	other := seedBooking(t, db, models.BookingStatusPending)

	var tour models.Tour
	require.NoError(t, db.First(&tour, "id = ?", booking.TourID).Error)

	bookings, err := repo.FindByProvider(tour.ProviderID)
	require.NoError(t, err)
	require.Len(t, bookings, 1, "only bookings on this provider's tours")
	assert.Equal(t, booking.ID, bookings[0].ID)
	assert.NotEqual(t, other.ID, bookings[0].ID)
}
