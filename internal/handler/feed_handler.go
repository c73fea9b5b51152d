package handler

import (
	"net/http"

	"github.com/devimrittika/Green-Planet/internal/auth"
	"github.com/devimrittika/Green-Planet/internal/hub"

	"github.com/gin-gonic/gin"
)

// FeedHandler upgrades authenticated callers onto the live activity
// feed.
type FeedHandler interface {
	Connect(c *gin.Context)
}

type feedHandler struct {
	hub *hub.Hub
}

func NewFeedHandler(h *hub.Hub) FeedHandler {
	return &feedHandler{hub: h}
}

func (h *feedHandler) Connect(c *gin.Context) {
	callerID, ok := auth.CallerID(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "not authenticated")
		return
	}

	h.hub.ServeWS(c.Writer, c.Request, callerID.Hex(), c.Query("topic"))
}
