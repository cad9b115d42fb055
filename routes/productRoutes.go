package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Kariqs/amexan-store/controllers"
)

func ProductRoutes(server *gin.Engine) {
	products := server.Group("/products")
	{
		products.GET("", controllers.GetProducts)
		products.GET("/flash-sale", controllers.GetFlashSaleProducts)
		products.GET("/categories", controllers.GetCategories)
		products.GET("/:id", controllers.GetProduct)
	}
}
