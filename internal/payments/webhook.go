package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DefaultSignatureTolerance is the accepted age of a signed webhook
const DefaultSignatureTolerance = 5 * time.Minute

type stripeEvent struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object stripeSession `json:"object"`
	} `json:"data"`
}

// ParseWebhook verifies a Stripe-Signature header of the form
// "t=<unix>,v1=<hex>" and decodes checkout session events.
func (g *StripeGateway) ParseWebhook(payload []byte, signature string) (*WebhookEvent, error) {
	if err := g.verifySignature(payload, signature); err != nil {
		return nil, err
	}

	var event stripeEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, fmt.Errorf("failed to decode webhook event: %w", err)
	}
	if !strings.HasPrefix(event.Type, "checkout.session.") {
		return nil, fmt.Errorf("unsupported webhook event type %q", event.Type)
	}

	return &WebhookEvent{
		ID:      event.ID,
		Type:    event.Type,
		Session: *event.Data.Object.toCheckoutSession(),
	}, nil
}

func (g *StripeGateway) verifySignature(payload []byte, header string) error {
	if g.webhookSecret == "" {
		return fmt.Errorf("%w: webhook secret is not configured", ErrInvalidSignature)
	}

	var timestamp string
	var signatures []string
	for _, part := range strings.Split(header, ",") {
		key, value, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			continue
		}
		switch key {
		case "t":
			timestamp = value
		case "v1":
			signatures = append(signatures, value)
		}
	}
	if timestamp == "" || len(signatures) == 0 {
		return fmt.Errorf("%w: malformed header", ErrInvalidSignature)
	}

	unix, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return fmt.Errorf("%w: bad timestamp", ErrInvalidSignature)
	}
	if age := g.now().Sub(time.Unix(unix, 0)); age > g.tolerance || age < -g.tolerance {
		return fmt.Errorf("%w: timestamp outside tolerance", ErrInvalidSignature)
	}

	expected := ComputeSignature(g.webhookSecret, timestamp, payload)
	for _, sig := range signatures {
		decoded, err := hex.DecodeString(sig)
		if err == nil && hmac.Equal(decoded, expected) {
			return nil
		}
	}
	return fmt.Errorf("%w: no matching signature", ErrInvalidSignature)
}

// ComputeSignature returns the v1 signature Stripe sends for payload
func ComputeSignature(secret, timestamp string, payload []byte) []byte {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(timestamp))
	mac.Write([]byte("."))
	mac.Write(payload)
	return mac.Sum(nil)
}
