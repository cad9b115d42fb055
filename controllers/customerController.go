package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func GetCustomers(ctx *gin.Context) {
	customers, metadata, err := customerService().List(ctx.Request.Context(), pageFromQuery(ctx))
	if err != nil {
		respondWithServiceError(ctx, err, "Unable to fetch customers")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"customers": customers, "metadata": metadata})
}

func ToggleCustomerBan(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	customer, err := customerService().ToggleBan(ctx.Request.Context(), id)
	if err != nil {
		respondWithServiceError(ctx, err, "Failed to update customer")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"customer": customer})
}
