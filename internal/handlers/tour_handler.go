package handlers

import (
	"net/http"

	"tourbay_backend/internal/middleware"
	"tourbay_backend/internal/models"
	"tourbay_backend/internal/services"
	"tourbay_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type TourHandler struct {
	*BaseHandler
	tourService services.TourService
}

func NewTourHandler(base *BaseHandler, tourService services.TourService) *TourHandler {
	return &TourHandler{
		BaseHandler: base,
		tourService: tourService,
	}
}

func (h *TourHandler) RegisterRoutes(r *gin.RouterGroup) {
	tours := r.Group("/tours")
	tours.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRoleGuide))
	{
		tours.POST("", h.CreateTour)
		tours.POST("/:tourId/publish", h.PublishTour)
		tours.GET("/my", h.GetMyTours)
	}
}

func (h *TourHandler) CreateTour(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateTourRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	tour, err := h.tourService.Create(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, tour)
}

func (h *TourHandler) PublishTour(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	tourID := c.Param("tourId")

	tour, err := h.tourService.Publish(tourID, userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, tour)
}

func (h *TourHandler) GetMyTours(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	tours, err := h.tourService.ListByProvider(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tours": tours,
		"total": len(tours),
	})
}
