package services_test

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"tourbay_backend/internal/config"
	"tourbay_backend/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.TTL = 60
	cfg.Realtime.Secret = "test-realtime-secret"
	config.AppConfig = cfg

	os.Exit(m.Run())
}

// newTestDB opens a fresh in-memory database per test, migrated to the
// full schema. The name is derived from the test so parallel tests do
// not share state.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Tour{},
		&models.Booking{},
		&models.Message{},
		&models.Notification{},
		&models.Dispute{},
		&models.BadgeRequest{},
	)
	require.NoError(t, err)

	return db
}

func createUser(t *testing.T, db *gorm.DB, name string, role models.UserRole) *models.User {
	t.Helper()

	user := &models.User{
		Email:        fmt.Sprintf("%s_%d@test.com", strings.ToLower(name), time.Now().UnixNano()),
		PasswordHash: "irrelevant",
		Name:         name,
		Role:         role,
		Status:       models.UserStatusActive,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTour(t *testing.T, db *gorm.DB, providerID string, price float64, published bool) *models.Tour {
	t.Helper()

	tour := &models.Tour{
		ProviderID:  providerID,
		Title:       "City Walking Tour",
		Location:    "Lisbon",
		Price:       price,
		IsPublished: published,
	}
	require.NoError(t, db.Create(tour).Error)
	return tour
}

// fakePublisher records realtime events so tests can assert on what the
// hub would have pushed.
type fakePublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

type publishedEvent struct {
	Channel string
	Event   string
	Payload interface{}
}

func (p *fakePublisher) Publish(channelName, eventName string, payload interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{Channel: channelName, Event: eventName, Payload: payload})
}

func (p *fakePublisher) Events() []publishedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]publishedEvent, len(p.events))
	copy(out, p.events)
	return out
}
