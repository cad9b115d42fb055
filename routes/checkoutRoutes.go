package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Kariqs/amexan-store/controllers"
	"github.com/Kariqs/amexan-store/middlewares"
)

func CheckoutRoutes(server *gin.Engine, limiter gin.HandlerFunc) {
	checkout := server.Group("/checkout", middlewares.RequireAuth, limiter)
	{
		checkout.POST("/verification-code", controllers.SendCheckoutVerificationCode)
		checkout.POST("", controllers.Checkout)
	}
}
