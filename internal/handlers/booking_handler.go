package handlers

import (
	"net/http"

	"tourbay_backend/internal/middleware"
	"tourbay_backend/internal/models"
	"tourbay_backend/internal/services"
	"tourbay_backend/internal/services/dto"
	"tourbay_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	*BaseHandler
	bookingService services.BookingService
}

func NewBookingHandler(base *BaseHandler, bookingService services.BookingService) *BookingHandler {
	return &BookingHandler{
		BaseHandler:    base,
		bookingService: bookingService,
	}
}

func (h *BookingHandler) RegisterRoutes(r *gin.RouterGroup) {
	bookings := r.Group("/bookings")
	bookings.Use(middleware.AuthMiddleware())
	{
		bookings.POST("", h.CreateBooking)
		bookings.PATCH("/:bookingId/status", h.UpdateBookingStatus)
		bookings.GET("/my", h.GetMyBookings)
		bookings.GET("/provider", h.GetProviderBookings)
	}
}

func (h *BookingHandler) CreateBooking(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateBookingRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	booking, err := h.bookingService.Create(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, booking)
}

// UpdateBookingStatus moves a booking through its lifecycle. Only the
// provider of the booked tour may call it; the status value accepts
// synonyms (approved, declined, rejected) alongside canonical names.
func (h *BookingHandler) UpdateBookingStatus(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	bookingID := c.Param("bookingId")

	var req dto.TransitionBookingRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	booking, err := h.bookingService.Transition(bookingID, userID, req.Status)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, booking)
}

func (h *BookingHandler) GetMyBookings(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	// Admins may inspect another tourist's bookings via ?user_id=.
	if target := c.Query("user_id"); target != "" && target != userID {
		if role, _ := c.Get("role"); role == models.UserRoleAdmin {
			userID = target
		} else {
			apperrors.HandleError(c, apperrors.NewForbiddenError("Cannot view another user's bookings"))
			return
		}
	}

	bookings, err := h.bookingService.ListByTourist(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"bookings": bookings,
		"total":    len(bookings),
	})
}

func (h *BookingHandler) GetProviderBookings(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	bookings, err := h.bookingService.ListByProvider(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"bookings": bookings,
		"total":    len(bookings),
	})
}
