package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func GetHome(ctx *gin.Context) {
	message := `Welcome to Amexan Store API. Customer routes need a bearer token from /auth/login.

AUTH
- POST "/auth/signup" - Create an account
- POST "/auth/login" - Log in with email or phone
- POST "/auth/forgot-password" - Request password reset
- POST "/auth/reset-password" - Reset password

PRODUCTS
- GET "/products" - List products (category, search, page, limit)
- GET "/products/flash-sale" - Products on flash sale
- GET "/products/categories" - Product categories
- GET "/products/:id" - Get product by ID

ACCOUNT
- GET "/account" - Profile
- PATCH "/account/password", "/account/email", "/account/phone"
- GET|POST "/account/addresses", DELETE "/account/addresses/:id"
- GET|POST "/account/cards", DELETE "/account/cards/:id"
- GET "/account/favorites", POST "/account/favorites/:productId"

CART
- GET "/cart", POST "/cart"
- PATCH "/cart/:id/increment", PATCH "/cart/:id/decrement", DELETE "/cart/:id"
- POST "/cart/coupon", DELETE "/cart/coupon"

CHECKOUT
- POST "/checkout/verification-code" - Email a one-time code for saved cards
- POST "/checkout" - Place orders for the cart

ORDERS
- GET "/orders" - Your orders
- GET "/orders/:orderId" - Get order by ID

PAYMENTS
- GET|POST "/payments/pesapal/ipn" - Pesapal payment notifications

ADMIN
- /admin/products, /admin/orders, /admin/coupons, /admin/customers`

	ctx.JSON(http.StatusOK, gin.H{
		"message": message,
	})
}
