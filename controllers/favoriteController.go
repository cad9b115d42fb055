package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func GetFavorites(ctx *gin.Context) {
	customer, ok := currentCustomer(ctx)
	if !ok {
		return
	}
	favorites, err := favoriteService().List(ctx.Request.Context(), customer.ID)
	if err != nil {
		respondWithServiceError(ctx, err, "Failed to fetch favorites")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"favorites": favorites})
}

func ToggleFavorite(ctx *gin.Context) {
	customer, ok := currentCustomer(ctx)
	if !ok {
		return
	}
	productID, ok := parseIDParam(ctx, "productId")
	if !ok {
		return
	}
	favorited, err := favoriteService().Toggle(ctx.Request.Context(), customer.ID, productID)
	if err != nil {
		respondWithServiceError(ctx, err, "Failed to update favorites")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"favorited": favorited})
}
