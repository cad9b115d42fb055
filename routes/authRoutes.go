package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Kariqs/amexan-store/controllers"
)

func AuthRoutes(server *gin.Engine, limiter gin.HandlerFunc) {
	auth := server.Group("/auth", limiter)
	{
		auth.POST("/signup", controllers.Signup)
		auth.POST("/login", controllers.Login)
		auth.POST("/forgot-password", controllers.SendPasswordResetLink)
		auth.POST("/reset-password", controllers.ResetPassword)
	}
}
