package approuters

import (
	"github.com/devimrittika/Green-Planet/internal/auth"
	"github.com/devimrittika/Green-Planet/internal/configuration"

	"github.com/gin-gonic/gin"
)

func SellPlantRouters(router *gin.Engine, container *configuration.Container) {
	public := router.Group("/gp/api/sell-plants")
	{
		public.GET("", container.SellPlantHandler.AllAvailable)
		public.GET("/search", container.SellPlantHandler.Search)
		public.GET("/:id", container.SellPlantHandler.GetByID)
	}

	private := router.Group("/gp/api/sell-plants", auth.Middleware(container.TokenManager))
	{
		private.POST("", container.SellPlantHandler.Create)
		private.GET("/mine", container.SellPlantHandler.MyListings)
		private.PUT("/:id", container.SellPlantHandler.Update)
		private.DELETE("/:id", container.SellPlantHandler.Delete)
	}
}
