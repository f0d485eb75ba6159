package services

import "tourbay_backend/internal/email"

// ServiceContainer bundles every service for handler wiring.
type ServiceContainer struct {
	AuthService         AuthService
	TourService         TourService
	BookingService      BookingService
	ChatService         ChatService
	NotificationService NotificationService
	DisputeService      DisputeService
	RealtimeService     RealtimeService
	EmailSender         email.Sender
}
