package controllers

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Kariqs/amexan-store/services"
)

func GetCart(ctx *gin.Context) {
	customer, ok := currentCustomer(ctx)
	if !ok {
		return
	}
	summary, err := cartService().Summary(ctx.Request.Context(), customer.ID)
	if err != nil {
		respondWithServiceError(ctx, err, "Failed to fetch cart")
		return
	}

	pending, err := couponService().Pending(ctx.Request.Context(), customer.ID)
	if err != nil {
		log.Println("Failed to read pending coupon:", err)
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"cart": summary, "pendingCoupon": pending})
}

func AddToCart(ctx *gin.Context) {
	customer, ok := currentCustomer(ctx)
	if !ok {
		return
	}
	var body struct {
		ProductID uint `json:"productId" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	summary, err := cartService().Add(ctx.Request.Context(), customer.ID, body.ProductID)
	if err != nil {
		respondWithServiceError(ctx, err, "Failed to add to cart")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Product added to cart", "cart": summary})
}

func IncrementCartItem(ctx *gin.Context) {
	adjustCartItem(ctx, (*services.CartService).Increment)
}

func DecrementCartItem(ctx *gin.Context) {
	adjustCartItem(ctx, (*services.CartService).Decrement)
}

func RemoveCartItem(ctx *gin.Context) {
	adjustCartItem(ctx, (*services.CartService).Remove)
}

type cartMutation func(s *services.CartService, ctx context.Context, customerID, cartID uint) (services.CartSummary, error)

func adjustCartItem(ctx *gin.Context, mutate cartMutation) {
	customer, ok := currentCustomer(ctx)
	if !ok {
		return
	}
	cartID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	summary, err := mutate(cartService(), ctx.Request.Context(), customer.ID, cartID)
	if err != nil {
		respondWithServiceError(ctx, err, "Failed to update cart")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"cart": summary})
}
