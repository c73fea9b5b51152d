package approuters

import (
	"github.com/devimrittika/Green-Planet/internal/auth"
	"github.com/devimrittika/Green-Planet/internal/configuration"

	"github.com/gin-gonic/gin"
)

func SwapRouters(router *gin.Engine, container *configuration.Container) {
	public := router.Group("/gp/api/swaps")
	{
		public.GET("", container.SwapHandler.AllOpen)
		public.GET("/:id", container.SwapHandler.GetByID)
	}

	private := router.Group("/gp/api/swaps", auth.Middleware(container.TokenManager))
	{
		private.POST("", container.SwapHandler.Create)
		private.GET("/mine", container.SwapHandler.MySwaps)
		private.PATCH("/:id/status", container.SwapHandler.UpdateStatus)
		private.DELETE("/:id", container.SwapHandler.Delete)
	}
}
