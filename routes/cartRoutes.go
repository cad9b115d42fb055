package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Kariqs/amexan-store/controllers"
	"github.com/Kariqs/amexan-store/middlewares"
)

func CartRoutes(server *gin.Engine) {
	cart := server.Group("/cart", middlewares.RequireAuth)
	{
		cart.GET("", controllers.GetCart)
		cart.POST("", controllers.AddToCart)
		cart.POST("/coupon", controllers.ApplyCoupon)
		cart.DELETE("/coupon", controllers.RemoveCoupon)
		cart.PATCH("/:id/increment", controllers.IncrementCartItem)
		cart.PATCH("/:id/decrement", controllers.DecrementCartItem)
		cart.DELETE("/:id", controllers.RemoveCartItem)
	}
}
