package utils

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/Kariqs/amexan-store/models"
	"github.com/Kariqs/amexan-store/services"
)

const defaultPesapalURL = "https://pay.pesapal.com/v3/api"

type PesapalConfig struct {
	BaseURL        string
	ConsumerKey    string
	ConsumerSecret string
	NotificationID string
	CallbackURL    string
	Currency       string
	CountryCode    string
}

// PesapalGateway submits checkout payments to Pesapal v3.
type PesapalGateway struct {
	cfg    PesapalConfig
	client *resty.Client
}

func NewPesapalGateway(cfg PesapalConfig) *PesapalGateway {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultPesapalURL
	}
	if cfg.Currency == "" {
		cfg.Currency = "KES"
	}
	if cfg.CountryCode == "" {
		cfg.CountryCode = "KE"
	}
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(30*time.Second).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json")
	return &PesapalGateway{cfg: cfg, client: client}
}

type pesapalTokenResponse struct {
	Token string `json:"token"`
}

type pesapalOrderResponse struct {
	OrderTrackingID   string `json:"order_tracking_id"`
	MerchantReference string `json:"merchant_reference"`
	RedirectURL       string `json:"redirect_url"`
	Status            string `json:"status"`
	Error             *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (g *PesapalGateway) accessToken(ctx context.Context) (string, error) {
	if g.cfg.ConsumerKey == "" || g.cfg.ConsumerSecret == "" {
		return "", fmt.Errorf("pesapal consumer credentials are not set")
	}

	var token pesapalTokenResponse
	resp, err := g.client.R().
		SetContext(ctx).
		SetBody(map[string]string{
			"consumer_key":    g.cfg.ConsumerKey,
			"consumer_secret": g.cfg.ConsumerSecret,
		}).
		SetResult(&token).
		Post("/Auth/RequestToken")
	if err != nil {
		return "", err
	}
	if resp.StatusCode() != 200 {
		return "", fmt.Errorf("pesapal token request failed with status %d: %s", resp.StatusCode(), string(resp.Body()))
	}
	if token.Token == "" {
		return "", fmt.Errorf("token not found in response: %s", string(resp.Body()))
	}
	return token.Token, nil
}

func (g *PesapalGateway) Charge(ctx context.Context, req services.PaymentRequest) (services.PaymentResult, error) {
	if g.cfg.NotificationID == "" {
		return services.PaymentResult{}, fmt.Errorf("missing pesapal notification id")
	}
	token, err := g.accessToken(ctx)
	if err != nil {
		return services.PaymentResult{}, err
	}

	amount, _ := req.Amount.Float64()
	body := map[string]any{
		"id":              req.Reference,
		"currency":        g.cfg.Currency,
		"amount":          amount,
		"description":     req.Description,
		"callback_url":    g.cfg.CallbackURL,
		"notification_id": g.cfg.NotificationID,
		"billing_address": map[string]any{
			"email_address": req.Email,
			"phone_number":  req.Phone,
			"country_code":  g.cfg.CountryCode,
			"first_name":    req.FirstName,
			"last_name":     req.LastName,
			"city":          req.City,
			"line_1":        req.AddressLine,
		},
	}

	var result pesapalOrderResponse
	resp, err := g.client.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetBody(body).
		SetResult(&result).
		Post("/Transactions/SubmitOrderRequest")
	if err != nil {
		return services.PaymentResult{}, err
	}
	if resp.StatusCode() != 200 {
		return services.PaymentResult{}, fmt.Errorf("pesapal order request failed with status %d: %s", resp.StatusCode(), string(resp.Body()))
	}
	if result.Error != nil && (result.Error.Code != "" || result.Error.Message != "") {
		return services.PaymentResult{}, fmt.Errorf("pesapal error %s: %s", result.Error.Code, result.Error.Message)
	}
	if result.OrderTrackingID == "" || result.RedirectURL == "" {
		return services.PaymentResult{}, fmt.Errorf("incomplete response from payment gateway")
	}

	return services.PaymentResult{
		Reference:   result.OrderTrackingID,
		State:       models.PaymentPending,
		RedirectURL: result.RedirectURL,
	}, nil
}

type pesapalStatusResponse struct {
	PaymentStatusDescription string `json:"payment_status_description"`
	StatusCode               *int   `json:"status_code"`
	MerchantReference        string `json:"merchant_reference"`
	Error                    *struct {
		ErrorType string `json:"error_type"`
		Code      string `json:"code"`
		Message   string `json:"message"`
	} `json:"error"`
}

// pesapalStatusCodes maps status_code for responses without a description.
var pesapalStatusCodes = map[int]models.PaymentState{
	0: models.PaymentInvalid,
	1: models.PaymentCompleted,
	2: models.PaymentFailed,
	3: models.PaymentReversed,
}

// Status looks up a transaction by its order tracking id.
func (g *PesapalGateway) Status(ctx context.Context, reference string) (models.PaymentState, error) {
	token, err := g.accessToken(ctx)
	if err != nil {
		return "", err
	}

	var result pesapalStatusResponse
	resp, err := g.client.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetQueryParam("orderTrackingId", reference).
		SetResult(&result).
		Get("/Transactions/GetTransactionStatus")
	if err != nil {
		return "", err
	}
	if resp.StatusCode() != 200 {
		return "", fmt.Errorf("pesapal status request failed with status %d: %s", resp.StatusCode(), string(resp.Body()))
	}
	if result.Error != nil && (result.Error.Code != "" || result.Error.Message != "" || result.Error.ErrorType != "") {
		return "", fmt.Errorf("pesapal error %s: %s", result.Error.Code, result.Error.Message)
	}
	if result.PaymentStatusDescription != "" {
		return models.ParsePaymentState(result.PaymentStatusDescription), nil
	}
	if result.StatusCode != nil {
		if state, ok := pesapalStatusCodes[*result.StatusCode]; ok {
			return state, nil
		}
	}
	return models.PaymentPending, nil
}

// ManualGateway accepts every charge with a generated reference. It stands in
// for Pesapal when no credentials are configured.
type ManualGateway struct{}

func (ManualGateway) Charge(ctx context.Context, req services.PaymentRequest) (services.PaymentResult, error) {
	if err := ctx.Err(); err != nil {
		return services.PaymentResult{}, err
	}
	reference := req.Reference
	if reference == "" {
		reference = uuid.NewString()
	}
	return services.PaymentResult{Reference: reference, State: models.PaymentPending}, nil
}

// Status reports manual payments as pending; they are settled outside the
// store.
func (ManualGateway) Status(ctx context.Context, _ string) (models.PaymentState, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return models.PaymentPending, nil
}
