package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Kariqs/amexan-store/models"
	"github.com/Kariqs/amexan-store/services"
)

func GetMyOrders(ctx *gin.Context) {
	customer, ok := currentCustomer(ctx)
	if !ok {
		return
	}
	orders, err := orderService().ForCustomer(ctx.Request.Context(), customer.ID)
	if err != nil {
		respondWithServiceError(ctx, err, "Failed to fetch orders.")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"orders": orders})
}

// GetOrderById returns one order. Customers only see their own orders.
func GetOrderById(ctx *gin.Context) {
	customer, ok := currentCustomer(ctx)
	if !ok {
		return
	}
	orderID, ok := parseIDParam(ctx, "orderId")
	if !ok {
		return
	}

	ownerID := customer.ID
	if customer.IsAdmin {
		ownerID = 0
	}
	order, err := orderService().Get(ctx.Request.Context(), orderID, ownerID)
	if err != nil {
		respondWithServiceError(ctx, err, "Failed to fetch order.")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"order": order})
}

func GetOrders(ctx *gin.Context) {
	filter := services.OrderFilter{
		Sort: ctx.DefaultQuery("sort", "desc"),
		Page: pageFromQuery(ctx),
	}
	if label := ctx.Query("status"); label != "" {
		status, ok := models.ParseOrderStatus(label)
		if !ok {
			sendErrorResponse(ctx, http.StatusBadRequest, "Unknown order status")
			return
		}
		filter.Status = &status
	}
	if customerID, err := strconv.ParseUint(ctx.Query("customerId"), 10, 64); err == nil {
		filter.CustomerID = uint(customerID)
	}

	orders, metadata, err := orderService().List(ctx.Request.Context(), filter)
	if err != nil {
		respondWithServiceError(ctx, err, "Unable to fetch orders")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"orders": orders, "metadata": metadata})
}

func UpdateOrderStatus(ctx *gin.Context) {
	orderID, ok := parseIDParam(ctx, "orderId")
	if !ok {
		return
	}
	var orderStatusData struct {
		Status string `json:"status" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&orderStatusData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse request body")
		return
	}

	order, err := orderService().UpdateStatus(ctx.Request.Context(), orderID, orderStatusData.Status)
	if err != nil {
		respondWithServiceError(ctx, err, "Failed to update order status")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Order status updated successfully.", "order": order})
}

func GetOrderStatuses(ctx *gin.Context) {
	labels := make([]string, 0)
	for _, status := range models.OrderStatuses() {
		labels = append(labels, status.String())
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"statuses": labels})
}

func GetPendingOrderCount(ctx *gin.Context) {
	count, err := orderService().PendingCount(ctx.Request.Context())
	if err != nil {
		respondWithServiceError(ctx, err, "Unable to count orders")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"pending": count})
}

func GetBestSellers(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))
	sellers, err := orderService().BestSellers(ctx.Request.Context(), limit)
	if err != nil {
		respondWithServiceError(ctx, err, "Unable to fetch best sellers")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"bestSellers": sellers})
}
