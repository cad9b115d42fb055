package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type pesapalNotification struct {
	OrderTrackingID        string `json:"OrderTrackingId" form:"OrderTrackingId"`
	OrderMerchantReference string `json:"OrderMerchantReference" form:"OrderMerchantReference"`
}

// HandlePesapalIPN receives Pesapal payment notifications. Pesapal posts JSON
// or calls back with query parameters depending on how the IPN URL was
// registered.
func HandlePesapalIPN(ctx *gin.Context) {
	var note pesapalNotification
	if ctx.Request.Method == http.MethodPost {
		if err := ctx.ShouldBindJSON(&note); err != nil {
			sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
			return
		}
	} else {
		note.OrderTrackingID = firstQuery(ctx, "OrderTrackingId", "orderTrackingId")
		note.OrderMerchantReference = firstQuery(ctx, "OrderMerchantReference", "orderMerchantReference")
	}
	if note.OrderTrackingID == "" {
		sendErrorResponse(ctx, http.StatusBadRequest, "Missing OrderTrackingId")
		return
	}

	if _, err := paymentStatusService().Refresh(ctx.Request.Context(), note.OrderTrackingID); err != nil {
		respondWithServiceError(ctx, err, "Failed to update payment status")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"orderNotificationType":  "IPNCHANGE",
		"orderTrackingId":        note.OrderTrackingID,
		"orderMerchantReference": note.OrderMerchantReference,
		"status":                 http.StatusOK,
	})
}

func firstQuery(ctx *gin.Context, keys ...string) string {
	for _, key := range keys {
		if v := ctx.Query(key); v != "" {
			return v
		}
	}
	return ""
}
