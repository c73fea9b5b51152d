package handler

import (
	"net/http"

	"github.com/devimrittika/Green-Planet/internal/auth"
	"github.com/devimrittika/Green-Planet/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type BlogHandler interface {
	Create(c *gin.Context)
	MyBlogs(c *gin.Context)
	AllPublic(c *gin.Context)
	Highlights(c *gin.Context)
	GetByID(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

type blogHandler struct {
	blogs  service.BlogService
	logger *zap.Logger
}

func NewBlogHandler(blogs service.BlogService, logger *zap.Logger) BlogHandler {
	return &blogHandler{blogs: blogs, logger: logger}
}

type blogRequest struct {
	Title      string `json:"title"`
	Topic      string `json:"topic"`
	Content    string `json:"content"`
	Image      string `json:"image"`
	Visibility string `json:"visibility" binding:"omitempty,visibility"`
}

func (h *blogHandler) Create(c *gin.Context) {
	callerID, ok := auth.CallerID(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "not authenticated")
		return
	}

	var req blogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	created, err := h.blogs.Create(c.Request.Context(), callerID, service.CreateBlogInput{
		Title:      req.Title,
		Topic:      req.Topic,
		Content:    req.Content,
		Image:      req.Image,
		Visibility: req.Visibility,
	})
	if err != nil {
		HandleServiceError(c, h.logger, err)
		return
	}

	RespondCreated(c, created, "blog published")
}

func (h *blogHandler) MyBlogs(c *gin.Context) {
	callerID, ok := auth.CallerID(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "not authenticated")
		return
	}

	blogs, err := h.blogs.MyBlogs(c.Request.Context(), callerID)
	if err != nil {
		HandleServiceError(c, h.logger, err)
		return
	}

	RespondSuccess(c, blogs, "")
}

func (h *blogHandler) AllPublic(c *gin.Context) {
	blogs, err := h.blogs.AllPublic(c.Request.Context())
	if err != nil {
		HandleServiceError(c, h.logger, err)
		return
	}

	RespondSuccess(c, blogs, "")
}

func (h *blogHandler) Highlights(c *gin.Context) {
	highlights, err := h.blogs.Highlights(c.Request.Context())
	if err != nil {
		HandleServiceError(c, h.logger, err)
		return
	}

	RespondSuccess(c, highlights, "")
}

func (h *blogHandler) GetByID(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid blog id")
		return
	}

	blog, err := h.blogs.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleServiceError(c, h.logger, err)
		return
	}

	RespondSuccess(c, blog, "")
}

func (h *blogHandler) Update(c *gin.Context) {
	callerID, ok := auth.CallerID(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "not authenticated")
		return
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid blog id")
		return
	}

	var req blogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	blog, err := h.blogs.Update(c.Request.Context(), callerID, id, service.UpdateBlogInput{
		Title:      req.Title,
		Topic:      req.Topic,
		Content:    req.Content,
		Image:      req.Image,
		Visibility: req.Visibility,
	})
	if err != nil {
		HandleServiceError(c, h.logger, err)
		return
	}

	RespondSuccess(c, blog, "blog updated")
}

func (h *blogHandler) Delete(c *gin.Context) {
	callerID, ok := auth.CallerID(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "not authenticated")
		return
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid blog id")
		return
	}

	if err := h.blogs.Delete(c.Request.Context(), callerID, id); err != nil {
		HandleServiceError(c, h.logger, err)
		return
	}

	RespondSuccess(c, nil, "blog deleted")
}
