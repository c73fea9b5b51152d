package approuters

import (
	"github.com/devimrittika/Green-Planet/internal/auth"
	"github.com/devimrittika/Green-Planet/internal/configuration"

	"github.com/gin-gonic/gin"
)

func OrderRouters(router *gin.Engine, container *configuration.Container) {
	orderRoute := router.Group("/gp/api/orders", auth.Middleware(container.TokenManager))
	{
		orderRoute.GET("/track/:trackingId", container.OrderHandler.Track)
	}
}
