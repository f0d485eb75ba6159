package handlers

// AppHandlers holds every HTTP handler of the application.
type AppHandlers struct {
	AuthHandler         *AuthHandler
	TourHandler         *TourHandler
	BookingHandler      *BookingHandler
	ChatHandler         *ChatHandler
	NotificationHandler *NotificationHandler
	DisputeHandler      *DisputeHandler
	RealtimeHandler     *RealtimeHandler
}
