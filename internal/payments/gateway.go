package payments

import (
	"context"
	"errors"
	"fmt"

	"github.com/rxtech-lab/tokenomics-studio/internal/models"
	"github.com/shopspring/decimal"
)

var (
	ErrUnknownPackage   = errors.New("unknown pricing package")
	ErrInvalidSignature = errors.New("invalid webhook signature")
)

// CheckoutRequest asks the gateway for a hosted checkout page for one package
type CheckoutRequest struct {
	Package    models.PricingPackage
	Currency   string
	SuccessURL string
	CancelURL  string
	Metadata   map[string]string
}

// CheckoutSession is the gateway's view of a checkout
type CheckoutSession struct {
	ID            string               `json:"session_id"`
	URL           string               `json:"url,omitempty"`
	Status        string               `json:"status"`
	PaymentStatus models.PaymentStatus `json:"payment_status"`
	AmountTotal   decimal.Decimal      `json:"amount_total"`
	Currency      string               `json:"currency"`
	Metadata      map[string]string    `json:"metadata"`
}

// WebhookEvent is a verified asynchronous status notification
type WebhookEvent struct {
	ID      string
	Type    string
	Session CheckoutSession
}

// Gateway is the payment provider used for checkout
type Gateway interface {
	CreateCheckoutSession(ctx context.Context, request CheckoutRequest) (*CheckoutSession, error)
	GetCheckoutStatus(ctx context.Context, sessionID string) (*CheckoutSession, error)
	// ParseWebhook verifies the signature header and decodes the event payload
	ParseWebhook(payload []byte, signature string) (*WebhookEvent, error)
}

// ResolvePackage returns the pricing package for id or ErrUnknownPackage
func ResolvePackage(id string) (models.PricingPackage, error) {
	pkg, ok := models.LookupPricingPackage(id)
	if !ok {
		return models.PricingPackage{}, fmt.Errorf("%w: %q", ErrUnknownPackage, id)
	}
	return pkg, nil
}
