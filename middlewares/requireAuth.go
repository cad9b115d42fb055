package middlewares

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/Kariqs/amexan-store/initializers"
	"github.com/Kariqs/amexan-store/models"
)

// CustomerKey is the gin context key holding the authenticated models.Customer.
const CustomerKey = "customer"

func RequireAuth(ctx *gin.Context) {
	authHeader := ctx.GetHeader("Authorization")
	if authHeader == "" {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Authorization header is required"})
		return
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == authHeader {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid token format, must be 'Bearer <token>'"})
		return
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(initializers.Config.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token"})
		return
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid token claims"})
		return
	}
	customerID, ok := claims["customer_id"].(float64)
	if !ok {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid customer ID in token"})
		return
	}

	var customer models.Customer
	if err := initializers.DB.WithContext(ctx.Request.Context()).First(&customer, uint(customerID)).Error; err != nil {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Customer associated with token not found"})
		return
	}
	if customer.IsBanned {
		ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "This account has been banned"})
		return
	}

	ctx.Set(CustomerKey, customer)
	ctx.Next()
}

// CurrentCustomer returns the customer stored by RequireAuth.
func CurrentCustomer(ctx *gin.Context) (models.Customer, bool) {
	value, exists := ctx.Get(CustomerKey)
	if !exists {
		return models.Customer{}, false
	}
	customer, ok := value.(models.Customer)
	return customer, ok
}
