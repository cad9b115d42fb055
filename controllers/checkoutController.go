package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Kariqs/amexan-store/services"
)

type checkoutBody struct {
	AddressID        uint   `json:"addressId" binding:"required"`
	SavedCardID      uint   `json:"savedCardId"`
	VerificationCode string `json:"verificationCode"`
	NewCard          *struct {
		Name   string `json:"name"`
		Number string `json:"number" binding:"required"`
		Expiry string `json:"expiry" binding:"required"`
		Save   bool   `json:"save"`
	} `json:"newCard"`
}

func SendCheckoutVerificationCode(ctx *gin.Context) {
	customer, ok := currentCustomer(ctx)
	if !ok {
		return
	}
	if err := checkoutService().SendVerificationCode(ctx.Request.Context(), customer.ID); err != nil {
		respondWithServiceError(ctx, err, "Failed to send verification code")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Verification code sent to " + customer.Email})
}

// Checkout places orders for everything in the cart. The pending coupon, if
// any, is read here and passed to the checkout explicitly.
func Checkout(ctx *gin.Context) {
	customer, ok := currentCustomer(ctx)
	if !ok {
		return
	}
	var body checkoutBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}
	if (body.NewCard == nil) == (body.SavedCardID == 0) {
		sendErrorResponse(ctx, http.StatusBadRequest, "Choose either a saved card or a new card")
		return
	}

	couponCode, err := couponService().Pending(ctx.Request.Context(), customer.ID)
	if err != nil {
		respondWithServiceError(ctx, err, "Failed to read coupon")
		return
	}

	req := services.CheckoutRequest{
		CustomerID: customer.ID,
		AddressID:  body.AddressID,
		CouponCode: couponCode,
		Payment: services.PaymentMethod{
			SavedCardID:      body.SavedCardID,
			VerificationCode: body.VerificationCode,
		},
	}
	if body.NewCard != nil {
		req.Payment.NewCard = &services.NewCard{
			Name:   body.NewCard.Name,
			Number: body.NewCard.Number,
			Expiry: body.NewCard.Expiry,
			Save:   body.NewCard.Save,
		}
	}

	receipt, err := checkoutService().Checkout(ctx.Request.Context(), req)
	if err != nil {
		respondWithServiceError(ctx, err, "Failed to place order")
		return
	}
	sendJSONResponse(ctx, http.StatusCreated, gin.H{"message": "Order placed successfully", "receipt": receipt})
}
