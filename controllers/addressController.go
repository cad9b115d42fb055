package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Kariqs/amexan-store/models"
)

func GetAddresses(ctx *gin.Context) {
	customer, ok := currentCustomer(ctx)
	if !ok {
		return
	}
	addresses, err := addressService().List(ctx.Request.Context(), customer.ID)
	if err != nil {
		respondWithServiceError(ctx, err, "Failed to fetch addresses")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"addresses": addresses})
}

func CreateAddress(ctx *gin.Context) {
	customer, ok := currentCustomer(ctx)
	if !ok {
		return
	}
	var address models.Address
	if err := ctx.ShouldBindJSON(&address); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	created, err := addressService().Add(ctx.Request.Context(), customer.ID, address)
	if err != nil {
		respondWithServiceError(ctx, err, "Failed to save address")
		return
	}
	sendJSONResponse(ctx, http.StatusCreated, gin.H{"address": created})
}

func DeleteAddress(ctx *gin.Context) {
	customer, ok := currentCustomer(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	if err := addressService().Delete(ctx.Request.Context(), customer.ID, id); err != nil {
		respondWithServiceError(ctx, err, "Failed to delete address")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Address deleted"})
}
