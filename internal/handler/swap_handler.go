package handler

import (
	"net/http"

	"github.com/devimrittika/Green-Planet/internal/auth"
	"github.com/devimrittika/Green-Planet/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type SwapHandler interface {
	Create(c *gin.Context)
	MySwaps(c *gin.Context)
	AllOpen(c *gin.Context)
	GetByID(c *gin.Context)
	UpdateStatus(c *gin.Context)
	Delete(c *gin.Context)
}

type swapHandler struct {
	swaps  service.SwapService
	logger *zap.Logger
}

func NewSwapHandler(swaps service.SwapService, logger *zap.Logger) SwapHandler {
	return &swapHandler{swaps: swaps, logger: logger}
}

type createSwapRequest struct {
	HavePlantName string `json:"havePlantName"`
	HaveQuantity  int64  `json:"haveQuantity"`
	HaveImage     string `json:"haveImage"`
	NeedPlantName string `json:"needPlantName"`
	NeedQuantity  int64  `json:"needQuantity"`
}

type swapStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=open closed"`
}

func (h *swapHandler) Create(c *gin.Context) {
	callerID, ok := auth.CallerID(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "not authenticated")
		return
	}

	var req createSwapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	created, err := h.swaps.Create(c.Request.Context(), callerID, service.CreateSwapInput{
		HavePlantName: req.HavePlantName,
		HaveQuantity:  req.HaveQuantity,
		HaveImage:     req.HaveImage,
		NeedPlantName: req.NeedPlantName,
		NeedQuantity:  req.NeedQuantity,
	})
	if err != nil {
		HandleServiceError(c, h.logger, err)
		return
	}

	RespondCreated(c, created, "swap request created")
}

func (h *swapHandler) MySwaps(c *gin.Context) {
	callerID, ok := auth.CallerID(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "not authenticated")
		return
	}

	swaps, err := h.swaps.MySwaps(c.Request.Context(), callerID)
	if err != nil {
		HandleServiceError(c, h.logger, err)
		return
	}

	RespondSuccess(c, swaps, "")
}

func (h *swapHandler) AllOpen(c *gin.Context) {
	swaps, err := h.swaps.AllOpen(c.Request.Context())
	if err != nil {
		HandleServiceError(c, h.logger, err)
		return
	}

	RespondSuccess(c, swaps, "")
}

func (h *swapHandler) GetByID(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid swap id")
		return
	}

	swap, err := h.swaps.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleServiceError(c, h.logger, err)
		return
	}

	RespondSuccess(c, swap, "")
}

func (h *swapHandler) UpdateStatus(c *gin.Context) {
	callerID, ok := auth.CallerID(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "not authenticated")
		return
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid swap id")
		return
	}

	var req swapStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	swap, err := h.swaps.UpdateStatus(c.Request.Context(), callerID, id, req.Status)
	if err != nil {
		HandleServiceError(c, h.logger, err)
		return
	}

	RespondSuccess(c, swap, "swap status updated")
}

func (h *swapHandler) Delete(c *gin.Context) {
	callerID, ok := auth.CallerID(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "not authenticated")
		return
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid swap id")
		return
	}

	if err := h.swaps.Delete(c.Request.Context(), callerID, id); err != nil {
		HandleServiceError(c, h.logger, err)
		return
	}

	RespondSuccess(c, nil, "swap deleted")
}
