package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Kariqs/amexan-store/controllers"
	"github.com/Kariqs/amexan-store/middlewares"
)

func OrderRoutes(server *gin.Engine) {
	orders := server.Group("/orders", middlewares.RequireAuth)
	{
		orders.GET("", controllers.GetMyOrders)
		orders.GET("/:orderId", controllers.GetOrderById)
	}
}
