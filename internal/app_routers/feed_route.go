package approuters

import (
	"github.com/devimrittika/Green-Planet/internal/auth"
	"github.com/devimrittika/Green-Planet/internal/configuration"

	"github.com/gin-gonic/gin"
)

// FeedRouters mounts the websocket feed endpoint on the socket server.
func FeedRouters(router *gin.Engine, container *configuration.Container) {
	router.GET("/feed", auth.Middleware(container.TokenManager), container.FeedHandler.Connect)
}
