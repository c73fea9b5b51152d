package approuters

import (
	"github.com/devimrittika/Green-Planet/internal/auth"
	"github.com/devimrittika/Green-Planet/internal/configuration"

	"github.com/gin-gonic/gin"
)

func BlogRouters(router *gin.Engine, container *configuration.Container) {
	public := router.Group("/gp/api/blogs")
	{
		public.GET("", container.BlogHandler.AllPublic)
		public.GET("/highlights", container.BlogHandler.Highlights)
		public.GET("/:id", container.BlogHandler.GetByID)
	}

	private := router.Group("/gp/api/blogs", auth.Middleware(container.TokenManager))
	{
		private.POST("", container.BlogHandler.Create)
		private.GET("/mine", container.BlogHandler.MyBlogs)
		private.PUT("/:id", container.BlogHandler.Update)
		private.DELETE("/:id", container.BlogHandler.Delete)
	}
}
