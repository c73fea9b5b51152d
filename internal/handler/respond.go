package handler

import (
	"errors"
	"net/http"

	"github.com/devimrittika/Green-Planet/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// APIResponse is the envelope every endpoint returns.
type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func traceID(c *gin.Context) string {
	return c.GetString("trace_id")
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		TraceID: traceID(c),
		Data:    data,
	})
}

func RespondCreated(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusCreated, APIResponse{
		Status:  "success",
		Code:    http.StatusCreated,
		Message: message,
		TraceID: traceID(c),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: traceID(c),
	})
}

// HandleServiceError maps service errors to HTTP status codes.
func HandleServiceError(c *gin.Context, logger *zap.Logger, err error) {
	var validation *service.ValidationError

	switch {
	case errors.As(err, &validation):
		RespondError(c, http.StatusBadRequest, validation.Error())
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrBlogNotFound),
		errors.Is(err, service.ErrDonationNotFound),
		errors.Is(err, service.ErrListingNotFound),
		errors.Is(err, service.ErrSwapNotFound):
		RespondError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrNotOwner):
		RespondError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrUsernameTaken):
		RespondError(c, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		RespondError(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrInvalidStatus):
		RespondError(c, http.StatusBadRequest, err.Error())
	default:
		logger.Error("unhandled service error",
			zap.String("trace_id", traceID(c)),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		RespondError(c, http.StatusInternalServerError, "internal server error")
	}
}
