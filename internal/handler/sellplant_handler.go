package handler

import (
	"net/http"

	"github.com/devimrittika/Green-Planet/internal/auth"
	"github.com/devimrittika/Green-Planet/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type SellPlantHandler interface {
	Create(c *gin.Context)
	MyListings(c *gin.Context)
	AllAvailable(c *gin.Context)
	Search(c *gin.Context)
	GetByID(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

type sellPlantHandler struct {
	listings service.SellPlantService
	logger   *zap.Logger
}

func NewSellPlantHandler(listings service.SellPlantService, logger *zap.Logger) SellPlantHandler {
	return &sellPlantHandler{listings: listings, logger: logger}
}

type createSellPlantRequest struct {
	PlantName string  `json:"plantName"`
	PlantType string  `json:"plantType"`
	Price     float64 `json:"price"`
	Amount    int64   `json:"amount"`
	Image     string  `json:"image"`
}

type updateSellPlantRequest struct {
	PlantName string   `json:"plantName"`
	PlantType string   `json:"plantType"`
	Price     *float64 `json:"price"`
	Amount    *int64   `json:"amount"`
	Image     string   `json:"image"`
	Status    string   `json:"status" binding:"omitempty,oneof=available sold"`
}

func (h *sellPlantHandler) Create(c *gin.Context) {
	callerID, ok := auth.CallerID(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "not authenticated")
		return
	}

	var req createSellPlantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	created, err := h.listings.Create(c.Request.Context(), callerID, service.CreateSellPlantInput{
		PlantName: req.PlantName,
		PlantType: req.PlantType,
		Price:     req.Price,
		Amount:    req.Amount,
		Image:     req.Image,
	})
	if err != nil {
		HandleServiceError(c, h.logger, err)
		return
	}

	RespondCreated(c, created, "plant listed for sale")
}

func (h *sellPlantHandler) MyListings(c *gin.Context) {
	callerID, ok := auth.CallerID(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "not authenticated")
		return
	}

	listings, err := h.listings.MyListings(c.Request.Context(), callerID)
	if err != nil {
		HandleServiceError(c, h.logger, err)
		return
	}

	RespondSuccess(c, listings, "")
}

func (h *sellPlantHandler) AllAvailable(c *gin.Context) {
	listings, err := h.listings.AllAvailable(c.Request.Context())
	if err != nil {
		HandleServiceError(c, h.logger, err)
		return
	}

	RespondSuccess(c, listings, "")
}

// Search is the marketplace search endpoint; q matches plant name or
// type, case-insensitively.
func (h *sellPlantHandler) Search(c *gin.Context) {
	listings, err := h.listings.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		HandleServiceError(c, h.logger, err)
		return
	}

	RespondSuccess(c, listings, "")
}

func (h *sellPlantHandler) GetByID(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid listing id")
		return
	}

	listing, err := h.listings.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleServiceError(c, h.logger, err)
		return
	}

	RespondSuccess(c, listing, "")
}

func (h *sellPlantHandler) Update(c *gin.Context) {
	callerID, ok := auth.CallerID(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "not authenticated")
		return
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid listing id")
		return
	}

	var req updateSellPlantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	listing, err := h.listings.Update(c.Request.Context(), callerID, id, service.UpdateSellPlantInput{
		PlantName: req.PlantName,
		PlantType: req.PlantType,
		Price:     req.Price,
		Amount:    req.Amount,
		Image:     req.Image,
		Status:    req.Status,
	})
	if err != nil {
		HandleServiceError(c, h.logger, err)
		return
	}

	RespondSuccess(c, listing, "listing updated")
}

func (h *sellPlantHandler) Delete(c *gin.Context) {
	callerID, ok := auth.CallerID(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "not authenticated")
		return
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid listing id")
		return
	}

	if err := h.listings.Delete(c.Request.Context(), callerID, id); err != nil {
		HandleServiceError(c, h.logger, err)
		return
	}

	RespondSuccess(c, nil, "listing deleted")
}
