package routes

import (
	"tourbay_backend/internal/handlers"
	"tourbay_backend/internal/logger"
	"tourbay_backend/internal/middleware"
	"tourbay_backend/ws"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires every HTTP and WebSocket route.
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
	wsHandler *ws.WebSocketHandler,
) {
	api := ginRouter.Group("/api/v1")
	{
		appHandlers.AuthHandler.RegisterRoutes(api)
		appHandlers.TourHandler.RegisterRoutes(api)
		appHandlers.BookingHandler.RegisterRoutes(api)
		appHandlers.ChatHandler.RegisterRoutes(api)
		appHandlers.NotificationHandler.RegisterRoutes(api)
		appHandlers.DisputeHandler.RegisterRoutes(api)
		appHandlers.RealtimeHandler.RegisterRoutes(api)
	}

	wsGroup := ginRouter.Group("/ws")
	wsGroup.Use(middleware.AuthMiddleware())
	{
		wsGroup.GET("", wsHandler.ServeWS)
	}
	logger.Info("WebSocket route /ws registered")
}
