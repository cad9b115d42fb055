package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Kariqs/amexan-store/controllers"
	"github.com/Kariqs/amexan-store/middlewares"
)

func AdminRoutes(server *gin.Engine) {
	admin := server.Group("/admin", middlewares.RequireAuth, middlewares.RequireAdmin())

	products := admin.Group("/products")
	{
		products.GET("", controllers.AdminGetProducts)
		products.POST("", controllers.CreateProduct)
		products.GET("/:id", controllers.AdminGetProduct)
		products.PUT("/:id", controllers.UpdateProduct)
		products.PATCH("/:id/price-stock", controllers.UpdatePriceAndStock)
		products.PATCH("/:id/toggle", controllers.ToggleProductActive)
		products.POST("/:id/picture", controllers.UploadProductPicture)
	}

	orders := admin.Group("/orders")
	{
		orders.GET("", controllers.GetOrders)
		orders.GET("/statuses", controllers.GetOrderStatuses)
		orders.GET("/pending-count", controllers.GetPendingOrderCount)
		orders.GET("/best-sellers", controllers.GetBestSellers)
		orders.GET("/:orderId", controllers.GetOrderById)
		orders.PATCH("/:orderId/status", controllers.UpdateOrderStatus)
	}

	coupons := admin.Group("/coupons")
	{
		coupons.GET("", controllers.GetCoupons)
		coupons.POST("", controllers.CreateCoupon)
		coupons.PATCH("/:id/toggle", controllers.ToggleCoupon)
		coupons.DELETE("/:id", controllers.DeleteCoupon)
	}

	customers := admin.Group("/customers")
	{
		customers.GET("", controllers.GetCustomers)
		customers.PATCH("/:id/ban", controllers.ToggleCustomerBan)
	}
}
