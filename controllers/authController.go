package controllers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/Kariqs/amexan-store/initializers"
	"github.com/Kariqs/amexan-store/models"
)

const (
	msgFailedToGenerateToken = "failed to generate token"
	msgCustomerCreated       = "Account created successfully."
	msgResetLinkSent         = "Check your email for a password reset link."
	msgPasswordChanged       = "Password changed successfully."
	msgPasswordReset         = "Password reset successful"
)

func generateJWT(customer models.Customer) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"customer_id": customer.ID,
		"email":       customer.Email,
		"is_admin":    customer.IsAdmin,
		"iat":         now.Unix(),
		"exp":         now.Add(initializers.Config.JWTTTL).Unix(),
	})
	return token.SignedString([]byte(initializers.Config.JWTSecret))
}

// Signup handles customer registration
func Signup(ctx *gin.Context) {
	var signUpData models.SignupData
	if err := ctx.ShouldBindJSON(&signUpData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	customer, err := customerService().Signup(ctx.Request.Context(), signUpData)
	if err != nil {
		respondWithServiceError(ctx, err, "Failed to create account")
		return
	}

	sendJSONResponse(ctx, http.StatusCreated, gin.H{"message": msgCustomerCreated, "customer": customer})
}

// Login accepts an email or phone number plus password and returns a token
func Login(ctx *gin.Context) {
	var loginData models.LoginData
	if err := ctx.ShouldBindJSON(&loginData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	customer, err := customerService().Authenticate(ctx.Request.Context(), loginData.Identifier, loginData.Password)
	if err != nil {
		respondWithServiceError(ctx, err, "Failed to log in")
		return
	}

	tokenString, err := generateJWT(customer)
	if err != nil {
		log.Println("JWT generation error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToGenerateToken)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"token": tokenString, "customer": customer})
}

func SendPasswordResetLink(ctx *gin.Context) {
	var body struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	if err := passwordResetService().Request(ctx.Request.Context(), body.Email); err != nil {
		respondWithServiceError(ctx, err, "There was an error trying to generate password reset link. Try again later.")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": msgResetLinkSent})
}

func ResetPassword(ctx *gin.Context) {
	var body struct {
		Token     string `json:"token" binding:"required"`
		Password1 string `json:"password1" binding:"required"`
		Password2 string `json:"password2" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	if err := passwordResetService().Reset(ctx.Request.Context(), body.Token, body.Password1, body.Password2); err != nil {
		respondWithServiceError(ctx, err, "unable to reset password")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": msgPasswordReset})
}

func GetProfile(ctx *gin.Context) {
	customer, ok := currentCustomer(ctx)
	if !ok {
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"customer": customer})
}

func ChangePassword(ctx *gin.Context) {
	customer, ok := currentCustomer(ctx)
	if !ok {
		return
	}
	var body struct {
		CurrentPassword string `json:"currentPassword" binding:"required"`
		Password1       string `json:"password1" binding:"required"`
		Password2       string `json:"password2" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	err := customerService().ChangePassword(ctx.Request.Context(), customer.ID, body.CurrentPassword, body.Password1, body.Password2)
	if err != nil {
		respondWithServiceError(ctx, err, "Failed to change password")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": msgPasswordChanged})
}

func ChangeEmail(ctx *gin.Context) {
	customer, ok := currentCustomer(ctx)
	if !ok {
		return
	}
	var body struct {
		CurrentPassword string `json:"currentPassword" binding:"required"`
		Email           string `json:"email" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	updated, err := customerService().ChangeEmail(ctx.Request.Context(), customer.ID, body.CurrentPassword, body.Email)
	if err != nil {
		respondWithServiceError(ctx, err, "Failed to change email")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Email updated.", "customer": updated})
}

func ChangePhone(ctx *gin.Context) {
	customer, ok := currentCustomer(ctx)
	if !ok {
		return
	}
	var body struct {
		CurrentPassword string `json:"currentPassword" binding:"required"`
		Phone           string `json:"phone" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	updated, err := customerService().ChangePhone(ctx.Request.Context(), customer.ID, body.CurrentPassword, body.Phone)
	if err != nil {
		respondWithServiceError(ctx, err, "Failed to change phone number")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Phone number updated.", "customer": updated})
}
