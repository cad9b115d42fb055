package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Kariqs/amexan-store/middlewares"
	"github.com/Kariqs/amexan-store/models"
	"github.com/Kariqs/amexan-store/services"
)

const (
	msgInvalidInput        = "invalid input"
	msgInternalServerError = "Internal server error"
	msgUnauthorized        = "Authentication required"
)

func sendJSONResponse(ctx *gin.Context, status int, data gin.H) {
	ctx.JSON(status, data)
}

func sendErrorResponse(ctx *gin.Context, status int, message string) {
	sendJSONResponse(ctx, status, gin.H{"message": message})
}

// respondWithServiceError maps service errors onto HTTP statuses. Unknown
// errors are logged and reported as 500 with the fallback message.
func respondWithServiceError(ctx *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		sendErrorResponse(ctx, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrUniquenessViolation):
		sendErrorResponse(ctx, http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		sendErrorResponse(ctx, http.StatusUnauthorized, err.Error())
	case errors.Is(err, services.ErrCustomerBanned):
		sendErrorResponse(ctx, http.StatusForbidden, err.Error())
	case errors.Is(err, services.ErrVerificationCodeMismatch):
		sendErrorResponse(ctx, http.StatusForbidden, err.Error())
	case errors.Is(err, services.ErrPaymentCollaboratorFailure):
		log.Println("Payment error:", err)
		sendErrorResponse(ctx, http.StatusBadGateway, "Failed to process payment")
	case errors.Is(err, services.ErrImageStorageDisabled):
		sendErrorResponse(ctx, http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, services.ErrProductUnavailable),
		errors.Is(err, services.ErrEmptyCart),
		errors.Is(err, services.ErrInvalidCouponFormat),
		errors.Is(err, services.ErrCouponNotApplicable),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrInvalidInput):
		sendErrorResponse(ctx, http.StatusBadRequest, err.Error())
	default:
		log.Println(fallback+":", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, fallback)
	}
}

func parseIDParam(ctx *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 64)
	if err != nil || id == 0 {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse "+name)
		return 0, false
	}
	return uint(id), true
}

func pageFromQuery(ctx *gin.Context) services.Page {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "15"))
	return services.Page{Page: page, Limit: limit}.Normalize()
}

func currentCustomer(ctx *gin.Context) (models.Customer, bool) {
	customer, ok := middlewares.CurrentCustomer(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, msgUnauthorized)
	}
	return customer, ok
}
