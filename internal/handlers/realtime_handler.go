package handlers

import (
	"net/http"

	"tourbay_backend/internal/middleware"
	"tourbay_backend/internal/services"
	"tourbay_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type RealtimeHandler struct {
	*BaseHandler
	realtimeService services.RealtimeService
}

func NewRealtimeHandler(base *BaseHandler, realtimeService services.RealtimeService) *RealtimeHandler {
	return &RealtimeHandler{
		BaseHandler:     base,
		realtimeService: realtimeService,
	}
}

func (h *RealtimeHandler) RegisterRoutes(r *gin.RouterGroup) {
	realtime := r.Group("/realtime")
	realtime.Use(middleware.AuthMiddleware())
	{
		realtime.POST("/auth", h.AuthorizeChannel)
	}
}

// AuthorizeChannel signs a subscription grant for a private channel.
// The membership check happens here, once, before the socket is allowed
// to join the channel.
func (h *RealtimeHandler) AuthorizeChannel(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.RealtimeAuthRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.realtimeService.AuthorizeSubscription(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
