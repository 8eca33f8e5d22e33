package payments

import (
	"context"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/rxtech-lab/tokenomics-studio/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type StripeGatewayTestSuite struct {
	suite.Suite
	server  *httptest.Server
	gateway *StripeGateway
	handler http.HandlerFunc
	now     time.Time
}

func (suite *StripeGatewayTestSuite) SetupTest() {
	suite.handler = func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}
	suite.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		suite.handler(w, r)
	}))
	suite.gateway = NewStripeGateway(StripeConfig{
		APIKey:        "sk_test_123",
		WebhookSecret: "whsec_test",
		BaseURL:       suite.server.URL,
	})
	suite.now = time.Unix(1_700_000_000, 0)
	suite.gateway.now = func() time.Time { return suite.now }
}

func (suite *StripeGatewayTestSuite) TearDownTest() {
	suite.server.Close()
}

func (suite *StripeGatewayTestSuite) TestCreateCheckoutSession() {
	suite.handler = func(w http.ResponseWriter, r *http.Request) {
		suite.Equal(http.MethodPost, r.Method)
		suite.Equal("/checkout/sessions", r.URL.Path)
		suite.Equal("Bearer sk_test_123", r.Header.Get("Authorization"))
		suite.Require().NoError(r.ParseForm())
		suite.Equal("payment", r.PostForm.Get("mode"))
		suite.Equal("19900", r.PostForm.Get("line_items[0][price_data][unit_amount]"))
		suite.Equal("usd", r.PostForm.Get("line_items[0][price_data][currency]"))
		suite.Equal("Pro Tokenomics", r.PostForm.Get("line_items[0][price_data][product_data][name]"))
		suite.Equal("https://app.example/success?session_id={CHECKOUT_SESSION_ID}", r.PostForm.Get("success_url"))
		suite.Equal("pro", r.PostForm.Get("metadata[package_id]"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"cs_test_1","url":"https://checkout.stripe.com/c/cs_test_1","status":"open","payment_status":"unpaid","amount_total":19900,"currency":"usd","metadata":{"package_id":"pro"}}`))
	}

	pkg, err := ResolvePackage("pro")
	suite.Require().NoError(err)
	session, err := suite.gateway.CreateCheckoutSession(context.Background(), CheckoutRequest{
		Package:    pkg,
		SuccessURL: "https://app.example/success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:  "https://app.example/pricing",
		Metadata:   map[string]string{"package_id": "pro"},
	})

	suite.Require().NoError(err)
	suite.Equal("cs_test_1", session.ID)
	suite.Equal("https://checkout.stripe.com/c/cs_test_1", session.URL)
	suite.Equal(models.PaymentStatusPending, session.PaymentStatus)
	suite.True(decimal.NewFromInt(199).Equal(session.AmountTotal))
}

func (suite *StripeGatewayTestSuite) TestCreateCheckoutSessionAPIError() {
	suite.handler = func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"type":"invalid_request_error","message":"Invalid API Key"}}`))
	}

	pkg, _ := ResolvePackage("basic")
	_, err := suite.gateway.CreateCheckoutSession(context.Background(), CheckoutRequest{Package: pkg})
	suite.Require().Error(err)
	suite.Contains(err.Error(), "Invalid API Key")
}

func (suite *StripeGatewayTestSuite) TestGetCheckoutStatus() {
	suite.handler = func(w http.ResponseWriter, r *http.Request) {
		suite.Equal(http.MethodGet, r.Method)
		suite.Equal("/checkout/sessions/cs_test_1", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"cs_test_1","status":"complete","payment_status":"paid","amount_total":7900,"currency":"usd"}`))
	}

	session, err := suite.gateway.GetCheckoutStatus(context.Background(), "cs_test_1")
	suite.Require().NoError(err)
	suite.Equal(models.PaymentStatusPaid, session.PaymentStatus)
	suite.Equal("complete", session.Status)
	suite.Equal("79", session.AmountTotal.String())
}

func (suite *StripeGatewayTestSuite) sign(payload []byte, at time.Time) string {
	timestamp := strconv.FormatInt(at.Unix(), 10)
	return "t=" + timestamp + ",v1=" + hex.EncodeToString(ComputeSignature("whsec_test", timestamp, payload))
}

func (suite *StripeGatewayTestSuite) TestParseWebhook() {
	payload := []byte(`{"id":"evt_1","type":"checkout.session.completed","data":{"object":{"id":"cs_test_1","status":"complete","payment_status":"paid","amount_total":49900,"currency":"usd","metadata":{"project_id":"p-1"}}}}`)

	event, err := suite.gateway.ParseWebhook(payload, suite.sign(payload, suite.now))
	suite.Require().NoError(err)
	suite.Equal("evt_1", event.ID)
	suite.Equal("checkout.session.completed", event.Type)
	suite.Equal("cs_test_1", event.Session.ID)
	suite.Equal(models.PaymentStatusPaid, event.Session.PaymentStatus)
	suite.Equal("p-1", event.Session.Metadata["project_id"])
}

func (suite *StripeGatewayTestSuite) TestParseWebhookRejectsBadSignatures() {
	payload := []byte(`{"id":"evt_1","type":"checkout.session.expired","data":{"object":{"id":"cs_test_1","status":"expired"}}}`)

	cases := map[string]string{
		"empty":        "",
		"no timestamp": "v1=abcd",
		"tampered":     suite.sign([]byte(`{"id":"evt_2"}`), suite.now),
		"stale":        suite.sign(payload, suite.now.Add(-10*time.Minute)),
		"not hex":      "t=" + strconv.FormatInt(suite.now.Unix(), 10) + ",v1=zz",
	}
	for name, header := range cases {
		_, err := suite.gateway.ParseWebhook(payload, header)
		suite.ErrorIs(err, ErrInvalidSignature, name)
	}

	event, err := suite.gateway.ParseWebhook(payload, suite.sign(payload, suite.now.Add(-time.Minute)))
	suite.Require().NoError(err)
	suite.Equal(models.PaymentStatusExpired, event.Session.PaymentStatus)
}

func (suite *StripeGatewayTestSuite) TestParseWebhookRejectsOtherEvents() {
	payload := []byte(`{"id":"evt_1","type":"invoice.paid","data":{"object":{}}}`)
	_, err := suite.gateway.ParseWebhook(payload, suite.sign(payload, suite.now))
	suite.Error(err)
	suite.NotErrorIs(err, ErrInvalidSignature)
}

func TestStripeGatewayTestSuite(t *testing.T) {
	suite.Run(t, new(StripeGatewayTestSuite))
}

func TestMapStatus(t *testing.T) {
	cases := []struct {
		status, paymentStatus string
		want                  models.PaymentStatus
	}{
		{"complete", "paid", models.PaymentStatusPaid},
		{"complete", "no_payment_required", models.PaymentStatusPaid},
		{"open", "unpaid", models.PaymentStatusPending},
		{"expired", "unpaid", models.PaymentStatusExpired},
		{"", "", models.PaymentStatusPending},
	}
	for _, c := range cases {
		if got := MapStatus(c.status, c.paymentStatus); got != c.want {
			t.Errorf("MapStatus(%q, %q) = %q, want %q", c.status, c.paymentStatus, got, c.want)
		}
	}
}

func TestResolvePackage(t *testing.T) {
	pkg, err := ResolvePackage("premium")
	if err != nil || pkg.Name != "Premium Package" {
		t.Fatalf("ResolvePackage(premium) = %+v, %v", pkg, err)
	}
	if _, err := ResolvePackage("enterprise"); err == nil {
		t.Fatal("expected ErrUnknownPackage")
	}
}
