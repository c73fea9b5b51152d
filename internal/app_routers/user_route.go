package approuters

import (
	"github.com/devimrittika/Green-Planet/internal/auth"
	"github.com/devimrittika/Green-Planet/internal/configuration"

	"github.com/gin-gonic/gin"
)

func UserRouters(router *gin.Engine, container *configuration.Container) {
	authRoute := router.Group("/gp/api/auth")
	{
		authRoute.POST("/register", container.UserHandler.Register)
		authRoute.POST("/login", container.UserHandler.Login)
	}

	userRoute := router.Group("/gp/api/users", auth.Middleware(container.TokenManager))
	{
		userRoute.GET("/me", container.UserHandler.GetMyProfile)
		userRoute.PUT("/me", container.UserHandler.UpdateMyProfile)
		userRoute.GET("/me/activities", container.UserHandler.GetMyActivities)
		userRoute.GET("/me/recommended-plants", container.UserHandler.GetRecommendedPlants)
		userRoute.POST("/me/picture", container.UploadHandler.UploadImage)
	}

	adminRoute := router.Group("/gp/api/admin/users",
		auth.Middleware(container.TokenManager), auth.AdminOnly())
	{
		adminRoute.GET("", container.UserHandler.ListUsers)
		adminRoute.GET("/:id", container.UserHandler.GetUser)
		adminRoute.PUT("/:id", container.UserHandler.UpdateUser)
		adminRoute.DELETE("/:id", container.UserHandler.DeleteUser)
	}
}
