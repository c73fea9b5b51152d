package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// OrderHandler is the order-tracking surface. Checkout is not built
// yet, so every lookup reports that no order exists.
type OrderHandler interface {
	Track(c *gin.Context)
}

type orderHandler struct{}

func NewOrderHandler() OrderHandler {
	return &orderHandler{}
}

func (h *orderHandler) Track(c *gin.Context) {
	RespondError(c, http.StatusNotFound, "order tracking is being developed, full order management coming soon")
}
