package handlers

import (
	"net/http"

	"tourbay_backend/internal/middleware"
	"tourbay_backend/internal/models"
	"tourbay_backend/internal/services"
	"tourbay_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type DisputeHandler struct {
	*BaseHandler
	disputeService services.DisputeService
}

func NewDisputeHandler(base *BaseHandler, disputeService services.DisputeService) *DisputeHandler {
	return &DisputeHandler{
		BaseHandler:    base,
		disputeService: disputeService,
	}
}

func (h *DisputeHandler) RegisterRoutes(r *gin.RouterGroup) {
	disputes := r.Group("/disputes")
	disputes.Use(middleware.AuthMiddleware())
	{
		disputes.POST("", h.CreateDispute)
	}

	adminDisputes := r.Group("/admin/disputes")
	adminDisputes.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRoleAdmin))
	{
		adminDisputes.GET("", h.GetAllDisputes)
		adminDisputes.PATCH("/:disputeId/status", h.UpdateDisputeStatus)
	}

	badges := r.Group("/badge-requests")
	badges.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRoleGuide))
	{
		badges.POST("", h.CreateBadgeRequest)
	}

	adminBadges := r.Group("/admin/badge-requests")
	adminBadges.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRoleAdmin))
	{
		adminBadges.GET("/pending", h.GetPendingBadgeRequests)
		adminBadges.POST("/:requestId/decision", h.DecideBadgeRequest)
	}
}

func (h *DisputeHandler) CreateDispute(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateDisputeRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	dispute, err := h.disputeService.Submit(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dispute)
}

func (h *DisputeHandler) GetAllDisputes(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	disputes, err := h.disputeService.ListAll()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"disputes": disputes,
		"total":    len(disputes),
	})
}

func (h *DisputeHandler) UpdateDisputeStatus(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}
	disputeID := c.Param("disputeId")

	var req dto.UpdateDisputeStatusRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	dispute, err := h.disputeService.UpdateStatus(disputeID, models.DisputeStatus(req.Status))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dispute)
}

func (h *DisputeHandler) CreateBadgeRequest(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateBadgeRequestRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	request, err := h.disputeService.SubmitBadgeRequest(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, request)
}

func (h *DisputeHandler) GetPendingBadgeRequests(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	requests, err := h.disputeService.ListPendingBadgeRequests()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"requests": requests,
		"total":    len(requests),
	})
}

func (h *DisputeHandler) DecideBadgeRequest(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}
	requestID := c.Param("requestId")

	var req dto.DecideBadgeRequestRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	request, err := h.disputeService.DecideBadgeRequest(requestID, req.Approve)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, request)
}
