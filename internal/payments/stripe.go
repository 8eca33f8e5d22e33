package payments

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rxtech-lab/tokenomics-studio/internal/models"
	"github.com/shopspring/decimal"
)

const (
	stripeBaseURL   = "https://api.stripe.com/v1"
	defaultCurrency = "usd"
)

type StripeConfig struct {
	APIKey        string
	WebhookSecret string
	// BaseURL overrides the Stripe API endpoint
	BaseURL string
	Timeout time.Duration
}

// StripeGateway implements Gateway with Stripe Checkout
type StripeGateway struct {
	client        *resty.Client
	webhookSecret string
	tolerance     time.Duration
	now           func() time.Time
}

type stripeSession struct {
	ID            string            `json:"id"`
	URL           string            `json:"url"`
	Status        string            `json:"status"`
	PaymentStatus string            `json:"payment_status"`
	AmountTotal   int64             `json:"amount_total"`
	Currency      string            `json:"currency"`
	Metadata      map[string]string `json:"metadata"`
}

type stripeError struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

func NewStripeGateway(cfg StripeConfig) *StripeGateway {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = stripeBaseURL
	}
	client := resty.New().
		SetBaseURL(baseURL).
		SetAuthToken(cfg.APIKey)
	if cfg.Timeout > 0 {
		client.SetTimeout(cfg.Timeout)
	}

	return &StripeGateway{
		client:        client,
		webhookSecret: cfg.WebhookSecret,
		tolerance:     DefaultSignatureTolerance,
		now:           time.Now,
	}
}

func (g *StripeGateway) CreateCheckoutSession(ctx context.Context, request CheckoutRequest) (*CheckoutSession, error) {
	currency := request.Currency
	if currency == "" {
		currency = defaultCurrency
	}

	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("payment_method_types[0]", "card")
	form.Set("success_url", request.SuccessURL)
	form.Set("cancel_url", request.CancelURL)
	form.Set("line_items[0][quantity]", "1")
	form.Set("line_items[0][price_data][currency]", currency)
	form.Set("line_items[0][price_data][unit_amount]", strconv.FormatInt(toMinorUnits(request.Package.Amount), 10))
	form.Set("line_items[0][price_data][product_data][name]", request.Package.Name)
	form.Set("line_items[0][price_data][product_data][description]", request.Package.Description)
	for key, value := range request.Metadata {
		form.Set("metadata["+key+"]", value)
	}

	var session stripeSession
	var apiErr stripeError
	resp, err := g.client.R().
		SetContext(ctx).
		SetFormDataFromValues(form).
		SetResult(&session).
		SetError(&apiErr).
		Post("/checkout/sessions")
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("failed to create checkout session: stripe returned status %d: %s", resp.StatusCode(), apiErr.Error.Message)
	}
	return session.toCheckoutSession(), nil
}

func (g *StripeGateway) GetCheckoutStatus(ctx context.Context, sessionID string) (*CheckoutSession, error) {
	var session stripeSession
	var apiErr stripeError
	resp, err := g.client.R().
		SetContext(ctx).
		SetPathParam("id", sessionID).
		SetResult(&session).
		SetError(&apiErr).
		Get("/checkout/sessions/{id}")
	if err != nil {
		return nil, fmt.Errorf("failed to get checkout session: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("failed to get checkout session: stripe returned status %d: %s", resp.StatusCode(), apiErr.Error.Message)
	}
	return session.toCheckoutSession(), nil
}

func (s stripeSession) toCheckoutSession() *CheckoutSession {
	return &CheckoutSession{
		ID:            s.ID,
		URL:           s.URL,
		Status:        s.Status,
		PaymentStatus: MapStatus(s.Status, s.PaymentStatus),
		AmountTotal:   decimal.New(s.AmountTotal, -2),
		Currency:      s.Currency,
		Metadata:      s.Metadata,
	}
}

// MapStatus converts Stripe's session status and payment status into ours
func MapStatus(sessionStatus, paymentStatus string) models.PaymentStatus {
	switch {
	case paymentStatus == "paid" || paymentStatus == "no_payment_required":
		return models.PaymentStatusPaid
	case sessionStatus == "expired":
		return models.PaymentStatusExpired
	default:
		return models.PaymentStatusPending
	}
}

func toMinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
