package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/Kariqs/amexan-store/models"
	"github.com/Kariqs/amexan-store/services"
)

const maxPictureSize = 5 << 20

func productFilterFromQuery(ctx *gin.Context) services.ProductFilter {
	return services.ProductFilter{
		Category: models.Category(ctx.Query("category")),
		Search:   ctx.Query("search"),
		Page:     pageFromQuery(ctx),
	}
}

func listProducts(ctx *gin.Context, filter services.ProductFilter) {
	if filter.Category != "" && !filter.Category.Valid() {
		sendErrorResponse(ctx, http.StatusBadRequest, "Unknown category")
		return
	}
	products, metadata, err := catalogService().List(ctx.Request.Context(), filter)
	if err != nil {
		respondWithServiceError(ctx, err, "Unable to fetch products")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"products": products, "metadata": metadata})
}

// GetProducts lists active products
func GetProducts(ctx *gin.Context) {
	listProducts(ctx, productFilterFromQuery(ctx))
}

func GetFlashSaleProducts(ctx *gin.Context) {
	filter := productFilterFromQuery(ctx)
	filter.FlashSaleOnly = true
	listProducts(ctx, filter)
}

func GetProduct(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	product, err := catalogService().Get(ctx.Request.Context(), id, false)
	if err != nil {
		respondWithServiceError(ctx, err, "Failed to fetch product")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"product": product})
}

func GetCategories(ctx *gin.Context) {
	categories := make([]gin.H, 0)
	for _, c := range models.Categories() {
		categories = append(categories, gin.H{"value": c, "label": c.Label()})
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"categories": categories})
}

// AdminGetProducts lists every product, active or not
func AdminGetProducts(ctx *gin.Context) {
	filter := productFilterFromQuery(ctx)
	filter.IncludeInactive = true
	listProducts(ctx, filter)
}

func AdminGetProduct(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	product, err := catalogService().Get(ctx.Request.Context(), id, true)
	if err != nil {
		respondWithServiceError(ctx, err, "Failed to fetch product")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"product": product})
}

func CreateProduct(ctx *gin.Context) {
	var input services.ProductInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	product, err := catalogService().Create(ctx.Request.Context(), input)
	if err != nil {
		respondWithServiceError(ctx, err, "Failed to create product")
		return
	}
	sendJSONResponse(ctx, http.StatusCreated, gin.H{"message": "Product created successfully", "product": product})
}

func UpdateProduct(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var input services.ProductInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	product, err := catalogService().Update(ctx.Request.Context(), id, input)
	if err != nil {
		respondWithServiceError(ctx, err, "Failed to update product")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Product updated successfully", "product": product})
}

func UpdatePriceAndStock(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var body struct {
		Price   *decimal.Decimal `json:"price"`
		InStock *int             `json:"inStock"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil || (body.Price == nil && body.InStock == nil) {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	product, err := catalogService().UpdatePriceAndStock(ctx.Request.Context(), id, body.Price, body.InStock)
	if err != nil {
		respondWithServiceError(ctx, err, "Failed to update product")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Product updated successfully", "product": product})
}

func ToggleProductActive(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	product, err := catalogService().ToggleActive(ctx.Request.Context(), id)
	if err != nil {
		respondWithServiceError(ctx, err, "Failed to update product")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"product": product})
}

func UploadProductPicture(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	file, err := ctx.FormFile("picture")
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "No file uploaded")
		return
	}
	if file.Size > maxPictureSize {
		sendErrorResponse(ctx, http.StatusBadRequest, "Picture must be 5MB or smaller")
		return
	}
	contentType := file.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		sendErrorResponse(ctx, http.StatusBadRequest, "Only image files are allowed")
		return
	}

	f, err := file.Open()
	if err != nil {
		respondWithServiceError(ctx, err, "Failed to read file")
		return
	}
	defer f.Close()

	product, err := catalogService().AttachPicture(ctx.Request.Context(), id, file.Filename, f, contentType)
	if err != nil {
		respondWithServiceError(ctx, err, "Failed to upload picture")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Picture uploaded", "product": product})
}
