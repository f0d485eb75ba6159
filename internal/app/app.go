package app

import (
	"errors"
	"fmt"

	"tourbay_backend/database"
	"tourbay_backend/internal/config"
	"tourbay_backend/internal/email"
	"tourbay_backend/internal/handlers"
	"tourbay_backend/internal/logger"
	"tourbay_backend/internal/middleware"
	"tourbay_backend/internal/models"
	"tourbay_backend/internal/repositories"
	"tourbay_backend/internal/routes"
	"tourbay_backend/internal/services"
	"tourbay_backend/internal/validator"
	"tourbay_backend/ws"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	logger.Info("Connecting to database...")
	gormDB, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		logger.Fatal("Failed to connect to GORM", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	// Schema migration runs before any traffic is served.
	if err := database.Migrate(gormDB); err != nil {
		logger.Fatal("Migration failed", "error", err)
	}

	if err := seedFirstAdmin(gormDB, cfg); err != nil {
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	ginRouter := SetupRouter(cfg, gormDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	wsManager := ws.NewWebSocketManager()
	go wsManager.Run()

	serviceContainer := initializeServices(cfg, gormDB, wsManager)

	appHandlers := initializeHandlers(serviceContainer)

	wsHandler := ws.NewWebSocketHandler(wsManager, serviceContainer.RealtimeService)

	ginRouter := initializeGinRouter(gormDB)

	routes.RegisterRoutes(ginRouter, appHandlers, wsHandler)

	return ginRouter
}

func initializeServices(cfg *config.Config, gormDB *gorm.DB, publisher services.EventPublisher) *services.ServiceContainer {
	var emailSender email.Sender
	if cfg.Email.Enabled {
		emailSender = email.NewSMTPSender(email.Config{
			Host:      cfg.Email.SMTPHost,
			Port:      cfg.Email.SMTPPort,
			Username:  cfg.Email.Username,
			Password:  cfg.Email.Password,
			FromEmail: cfg.Email.FromEmail,
			FromName:  cfg.Email.FromName,
		})
	} else {
		logger.Warn("Email delivery disabled, outgoing mail is logged only")
		emailSender = email.NoopSender{}
	}

	userRepo := repositories.NewUserRepository(gormDB)
	tourRepo := repositories.NewTourRepository(gormDB)
	bookingRepo := repositories.NewBookingRepository(gormDB)
	messageRepo := repositories.NewMessageRepository(gormDB)
	notificationRepo := repositories.NewNotificationRepository(gormDB)
	disputeRepo := repositories.NewDisputeRepository(gormDB)
	badgeRepo := repositories.NewBadgeRequestRepository(gormDB)

	notificationService := services.NewNotificationService(notificationRepo, userRepo)
	authService := services.NewAuthService(userRepo)
	tourService := services.NewTourService(tourRepo, notificationService)
	bookingService := services.NewBookingService(bookingRepo, tourRepo, userRepo, notificationService, emailSender)
	chatService := services.NewChatService(messageRepo, userRepo, notificationService, publisher)
	disputeService := services.NewDisputeService(disputeRepo, badgeRepo, bookingRepo, tourRepo, userRepo, notificationService)
	realtimeService := services.NewRealtimeService(cfg.Realtime.Secret)

	return &services.ServiceContainer{
		AuthService:         authService,
		TourService:         tourService,
		BookingService:      bookingService,
		ChatService:         chatService,
		NotificationService: notificationService,
		DisputeService:      disputeService,
		RealtimeService:     realtimeService,
		EmailSender:         emailSender,
	}
}

func initializeHandlers(container *services.ServiceContainer) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	return &handlers.AppHandlers{
		AuthHandler:         handlers.NewAuthHandler(baseHandler, container.AuthService),
		TourHandler:         handlers.NewTourHandler(baseHandler, container.TourService),
		BookingHandler:      handlers.NewBookingHandler(baseHandler, container.BookingService),
		ChatHandler:         handlers.NewChatHandler(baseHandler, container.ChatService),
		NotificationHandler: handlers.NewNotificationHandler(baseHandler, container.NotificationService),
		DisputeHandler:      handlers.NewDisputeHandler(baseHandler, container.DisputeService),
		RealtimeHandler:     handlers.NewRealtimeHandler(baseHandler, container.RealtimeService),
	}
}

func initializeGinRouter(db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.DBMiddleware(db))
	return router
}

func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	adminEmail := cfg.FirstAdminEmail
	adminPassword := cfg.FirstAdminPassword

	if adminEmail == "" || adminPassword == "" {
		logger.Warn("FIRST_ADMIN_EMAIL or FIRST_ADMIN_PASSWORD is not set. Skipping admin seeding.")
		return nil
	}

	var adminUser models.User
	result := db.Where("email = ?", adminEmail).First(&adminUser)

	if result.Error == nil {
		logger.Info("Admin user already exists. Skipping creation.", "email", adminEmail)
		return nil
	}

	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check for admin user: %w", result.Error)
	}

	logger.Warn("No admin user found with specified email. Creating first admin...", "email", adminEmail)

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	newAdmin := &models.User{
		Email:        adminEmail,
		PasswordHash: string(hashedPassword),
		Name:         "Administrator",
		Role:         models.UserRoleAdmin,
		Status:       models.UserStatusActive,
		IsVerified:   true,
	}

	if err := db.Create(newAdmin).Error; err != nil {
		return fmt.Errorf("failed to create admin user in database: %w", err)
	}

	logger.Info("Successfully created first admin user", "email", adminEmail)
	return nil
}
