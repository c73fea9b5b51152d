package approuters

import (
	"github.com/devimrittika/Green-Planet/internal/auth"
	"github.com/devimrittika/Green-Planet/internal/configuration"

	"github.com/gin-gonic/gin"
)

func DonationRouters(router *gin.Engine, container *configuration.Container) {
	public := router.Group("/gp/api/donations")
	{
		public.GET("", container.DonationHandler.AllPending)
		public.GET("/:id", container.DonationHandler.GetByID)
	}

	private := router.Group("/gp/api/donations", auth.Middleware(container.TokenManager))
	{
		private.POST("", container.DonationHandler.Create)
		private.GET("/mine", container.DonationHandler.MyDonations)
		private.PATCH("/:id/status", container.DonationHandler.UpdateStatus)
		private.DELETE("/:id", container.DonationHandler.Delete)
	}
}
