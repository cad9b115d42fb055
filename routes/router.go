package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Kariqs/amexan-store/initializers"
	"github.com/Kariqs/amexan-store/middlewares"
)

// Setup registers middleware and every route group on server.
func Setup(server *gin.Engine) {
	server.Use(cors.New(cors.Config{
		AllowOrigins:     initializers.Config.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	limit, window := initializers.Config.RateLimit, initializers.Config.RateLimitWindow
	authLimiter := middlewares.RedisRateLimit(initializers.Redis, "auth", limit, window)
	checkoutLimiter := middlewares.RedisRateLimit(initializers.Redis, "checkout", limit, window)

	DefaultRoutes(server)
	AuthRoutes(server, authLimiter)
	ProductRoutes(server)
	AccountRoutes(server)
	CartRoutes(server)
	CheckoutRoutes(server, checkoutLimiter)
	OrderRoutes(server)
	PaymentRoutes(server)
	AdminRoutes(server)
}
