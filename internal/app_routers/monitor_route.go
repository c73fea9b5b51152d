package approuters

import (
	"github.com/devimrittika/Green-Planet/internal/auth"
	"github.com/devimrittika/Green-Planet/internal/configuration"

	"github.com/gin-gonic/gin"
)

// MonitorRouters exposes feed hub statistics to administrators.
func MonitorRouters(router *gin.Engine, container *configuration.Container) {
	monitorGroup := router.Group("/gp/api/monitor",
		auth.Middleware(container.TokenManager), auth.AdminOnly())
	{
		monitorGroup.GET("/stats", container.MonitorHandler.GetHubStats)
	}
}
