package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Kariqs/amexan-store/controllers"
	"github.com/Kariqs/amexan-store/middlewares"
)

func AccountRoutes(server *gin.Engine) {
	account := server.Group("/account", middlewares.RequireAuth)
	{
		account.GET("", controllers.GetProfile)
		account.PATCH("/password", controllers.ChangePassword)
		account.PATCH("/email", controllers.ChangeEmail)
		account.PATCH("/phone", controllers.ChangePhone)

		account.GET("/addresses", controllers.GetAddresses)
		account.POST("/addresses", controllers.CreateAddress)
		account.DELETE("/addresses/:id", controllers.DeleteAddress)

		account.GET("/cards", controllers.GetCards)
		account.POST("/cards", controllers.CreateCard)
		account.DELETE("/cards/:id", controllers.DeleteCard)

		account.GET("/favorites", controllers.GetFavorites)
		account.POST("/favorites/:productId", controllers.ToggleFavorite)
	}
}
