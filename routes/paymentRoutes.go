package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Kariqs/amexan-store/controllers"
)

// PaymentRoutes are called by the payment provider and carry no customer token.
func PaymentRoutes(server *gin.Engine) {
	payments := server.Group("/payments")
	{
		payments.GET("/pesapal/ipn", controllers.HandlePesapalIPN)
		payments.POST("/pesapal/ipn", controllers.HandlePesapalIPN)
	}
}
