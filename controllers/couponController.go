package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func ApplyCoupon(ctx *gin.Context) {
	customer, ok := currentCustomer(ctx)
	if !ok {
		return
	}
	var body struct {
		Code string `json:"code" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	quote, err := couponService().Apply(ctx.Request.Context(), customer.ID, body.Code)
	if err != nil {
		respondWithServiceError(ctx, err, "Failed to apply coupon")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Coupon applied", "quote": quote})
}

func RemoveCoupon(ctx *gin.Context) {
	customer, ok := currentCustomer(ctx)
	if !ok {
		return
	}
	if err := couponService().Clear(ctx.Request.Context(), customer.ID); err != nil {
		respondWithServiceError(ctx, err, "Failed to remove coupon")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Coupon removed"})
}

// CreateCoupon defines a coupon. Omitting targetCustomerId makes it global.
func CreateCoupon(ctx *gin.Context) {
	var body struct {
		Code             string `json:"code" binding:"required"`
		TargetCustomerID *uint  `json:"targetCustomerId"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	coupon, err := couponService().Define(ctx.Request.Context(), body.Code, body.TargetCustomerID)
	if err != nil {
		respondWithServiceError(ctx, err, "Failed to create coupon")
		return
	}
	sendJSONResponse(ctx, http.StatusCreated, gin.H{"message": "Coupon created", "coupon": coupon})
}

func GetCoupons(ctx *gin.Context) {
	coupons, err := couponService().List(ctx.Request.Context())
	if err != nil {
		respondWithServiceError(ctx, err, "Unable to fetch coupons")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"coupons": coupons})
}

func ToggleCoupon(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	coupon, err := couponService().ToggleActive(ctx.Request.Context(), id)
	if err != nil {
		respondWithServiceError(ctx, err, "Failed to update coupon")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"coupon": coupon})
}

func DeleteCoupon(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	if err := couponService().Delete(ctx.Request.Context(), id); err != nil {
		respondWithServiceError(ctx, err, "Failed to delete coupon")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Coupon deleted"})
}
