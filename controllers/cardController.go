package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Kariqs/amexan-store/services"
)

func GetCards(ctx *gin.Context) {
	customer, ok := currentCustomer(ctx)
	if !ok {
		return
	}
	cards, err := cardService().List(ctx.Request.Context(), customer.ID)
	if err != nil {
		respondWithServiceError(ctx, err, "Failed to fetch cards")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"cards": cards})
}

func CreateCard(ctx *gin.Context) {
	customer, ok := currentCustomer(ctx)
	if !ok {
		return
	}
	var body struct {
		Name   string `json:"name"`
		Number string `json:"number" binding:"required"`
		Expiry string `json:"expiry" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	card, err := cardService().Add(ctx.Request.Context(), customer.ID, services.NewCard{
		Name:   body.Name,
		Number: body.Number,
		Expiry: body.Expiry,
	})
	if err != nil {
		respondWithServiceError(ctx, err, "Failed to save card")
		return
	}
	sendJSONResponse(ctx, http.StatusCreated, gin.H{"card": card})
}

func DeleteCard(ctx *gin.Context) {
	customer, ok := currentCustomer(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	if err := cardService().Delete(ctx.Request.Context(), customer.ID, id); err != nil {
		respondWithServiceError(ctx, err, "Failed to delete card")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Card deleted"})
}
