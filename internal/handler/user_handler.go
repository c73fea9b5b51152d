package handler

import (
	"net/http"

	"github.com/devimrittika/Green-Planet/internal/auth"
	"github.com/devimrittika/Green-Planet/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type UserHandler interface {
	Register(c *gin.Context)
	Login(c *gin.Context)
	GetMyProfile(c *gin.Context)
	UpdateMyProfile(c *gin.Context)
	GetMyActivities(c *gin.Context)
	GetRecommendedPlants(c *gin.Context)

	// Admin endpoints.
	ListUsers(c *gin.Context)
	GetUser(c *gin.Context)
	UpdateUser(c *gin.Context)
	DeleteUser(c *gin.Context)
}

type userHandler struct {
	users      service.UserService
	activities service.ActivityService
	swaps      service.SwapService
	logger     *zap.Logger
}

func NewUserHandler(
	users service.UserService,
	activities service.ActivityService,
	swaps service.SwapService,
	logger *zap.Logger,
) UserHandler {
	return &userHandler{
		users:      users,
		activities: activities,
		swaps:      swaps,
		logger:     logger,
	}
}

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Username string `json:"username"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type updateProfileRequest struct {
	Name           string `json:"name"`
	Username       string `json:"username"`
	Phone          string `json:"phone"`
	Address        string `json:"address"`
	ProfilePicture string `json:"profilePicture"`
	Password       string `json:"password"`
}

func (h *userHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	result, err := h.users.Register(c.Request.Context(), service.RegisterInput{
		Name:     req.Name,
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
		Address:  req.Address,
	})
	if err != nil {
		HandleServiceError(c, h.logger, err)
		return
	}

	RespondCreated(c, result, "registration successful")
}

func (h *userHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	result, err := h.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		HandleServiceError(c, h.logger, err)
		return
	}

	RespondSuccess(c, result, "login successful")
}

func (h *userHandler) GetMyProfile(c *gin.Context) {
	callerID, ok := auth.CallerID(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "not authenticated")
		return
	}

	profile, err := h.users.Profile(c.Request.Context(), callerID)
	if err != nil {
		HandleServiceError(c, h.logger, err)
		return
	}

	RespondSuccess(c, profile, "")
}

func (h *userHandler) UpdateMyProfile(c *gin.Context) {
	callerID, ok := auth.CallerID(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "not authenticated")
		return
	}

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	user, err := h.users.UpdateProfile(c.Request.Context(), callerID, service.UpdateProfileInput{
		Name:           req.Name,
		Username:       req.Username,
		Phone:          req.Phone,
		Address:        req.Address,
		ProfilePicture: req.ProfilePicture,
		Password:       req.Password,
	})
	if err != nil {
		HandleServiceError(c, h.logger, err)
		return
	}

	RespondSuccess(c, user, "profile updated")
}

func (h *userHandler) GetMyActivities(c *gin.Context) {
	callerID, ok := auth.CallerID(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "not authenticated")
		return
	}

	entries, err := h.activities.List(c.Request.Context(), callerID)
	if err != nil {
		HandleServiceError(c, h.logger, err)
		return
	}

	RespondSuccess(c, entries, "")
}

func (h *userHandler) GetRecommendedPlants(c *gin.Context) {
	callerID, ok := auth.CallerID(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "not authenticated")
		return
	}

	entries, err := h.swaps.RecommendedPlants(c.Request.Context(), callerID)
	if err != nil {
		HandleServiceError(c, h.logger, err)
		return
	}

	RespondSuccess(c, entries, "")
}

func (h *userHandler) ListUsers(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		HandleServiceError(c, h.logger, err)
		return
	}

	RespondSuccess(c, users, "")
}

func (h *userHandler) GetUser(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid user id")
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleServiceError(c, h.logger, err)
		return
	}

	RespondSuccess(c, user, "")
}

type adminUpdateRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email" binding:"omitempty,email"`
	IsAdmin *bool  `json:"isAdmin"`
}

func (h *userHandler) UpdateUser(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid user id")
		return
	}

	var req adminUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.users.AdminUpdate(c.Request.Context(), id, service.AdminUpdateInput{
		Name:    req.Name,
		Email:   req.Email,
		IsAdmin: req.IsAdmin,
	})
	if err != nil {
		HandleServiceError(c, h.logger, err)
		return
	}

	RespondSuccess(c, user, "user updated")
}

func (h *userHandler) DeleteUser(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid user id")
		return
	}

	if err := h.users.Delete(c.Request.Context(), id); err != nil {
		HandleServiceError(c, h.logger, err)
		return
	}

	RespondSuccess(c, nil, "user deleted")
}
