package handler

import (
	"net/http"

	"github.com/devimrittika/Green-Planet/internal/auth"
	"github.com/devimrittika/Green-Planet/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type DonationHandler interface {
	Create(c *gin.Context)
	MyDonations(c *gin.Context)
	AllPending(c *gin.Context)
	GetByID(c *gin.Context)
	UpdateStatus(c *gin.Context)
	Delete(c *gin.Context)
}

type donationHandler struct {
	donations service.DonationService
	logger    *zap.Logger
}

func NewDonationHandler(donations service.DonationService, logger *zap.Logger) DonationHandler {
	return &donationHandler{donations: donations, logger: logger}
}

type donationRequest struct {
	PlantName string `json:"plantName"`
	Quantity  int64  `json:"quantity"`
	Image     string `json:"image"`
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *donationHandler) Create(c *gin.Context) {
	callerID, ok := auth.CallerID(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "not authenticated")
		return
	}

	var req donationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	created, err := h.donations.Create(c.Request.Context(), callerID, service.CreateDonationInput{
		PlantName: req.PlantName,
		Quantity:  req.Quantity,
		Image:     req.Image,
	})
	if err != nil {
		HandleServiceError(c, h.logger, err)
		return
	}

	RespondCreated(c, created, "donation offer created")
}

func (h *donationHandler) MyDonations(c *gin.Context) {
	callerID, ok := auth.CallerID(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "not authenticated")
		return
	}

	donations, err := h.donations.MyDonations(c.Request.Context(), callerID)
	if err != nil {
		HandleServiceError(c, h.logger, err)
		return
	}

	RespondSuccess(c, donations, "")
}

func (h *donationHandler) AllPending(c *gin.Context) {
	donations, err := h.donations.AllPending(c.Request.Context())
	if err != nil {
		HandleServiceError(c, h.logger, err)
		return
	}

	RespondSuccess(c, donations, "")
}

func (h *donationHandler) GetByID(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid donation id")
		return
	}

	donation, err := h.donations.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleServiceError(c, h.logger, err)
		return
	}

	RespondSuccess(c, donation, "")
}

func (h *donationHandler) UpdateStatus(c *gin.Context) {
	callerID, ok := auth.CallerID(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "not authenticated")
		return
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid donation id")
		return
	}

	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	donation, err := h.donations.UpdateStatus(c.Request.Context(), callerID, id, req.Status)
	if err != nil {
		HandleServiceError(c, h.logger, err)
		return
	}

	RespondSuccess(c, donation, "donation status updated")
}

func (h *donationHandler) Delete(c *gin.Context) {
	callerID, ok := auth.CallerID(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "not authenticated")
		return
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid donation id")
		return
	}

	if err := h.donations.Delete(c.Request.Context(), callerID, id); err != nil {
		HandleServiceError(c, h.logger, err)
		return
	}

	RespondSuccess(c, nil, "donation deleted")
}
