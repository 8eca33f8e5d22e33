package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rxtech-lab/tokenomics-studio/internal/models"
	"github.com/rxtech-lab/tokenomics-studio/internal/payments"
	"github.com/rxtech-lab/tokenomics-studio/internal/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// fakeGateway records checkout requests and serves canned sessions
type fakeGateway struct {
	requests   []payments.CheckoutRequest
	sessions   map[string]*payments.CheckoutSession
	event      *payments.WebhookEvent
	err        error
	webhookErr error
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{sessions: map[string]*payments.CheckoutSession{}}
}

func (f *fakeGateway) CreateCheckoutSession(_ context.Context, request payments.CheckoutRequest) (*payments.CheckoutSession, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.requests = append(f.requests, request)
	session := &payments.CheckoutSession{
		ID:            "cs_test_1",
		URL:           "https://checkout.example/cs_test_1",
		Status:        "open",
		PaymentStatus: models.PaymentStatusPending,
		AmountTotal:   request.Package.Amount,
		Currency:      request.Currency,
		Metadata:      request.Metadata,
	}
	f.sessions[session.ID] = session
	return session, nil
}

func (f *fakeGateway) GetCheckoutStatus(_ context.Context, sessionID string) (*payments.CheckoutSession, error) {
	if f.err != nil {
		return nil, f.err
	}
	session, ok := f.sessions[sessionID]
	if !ok {
		return nil, errors.New("no such checkout session")
	}
	return session, nil
}

func (f *fakeGateway) ParseWebhook(_ []byte, signature string) (*payments.WebhookEvent, error) {
	if f.webhookErr != nil {
		return nil, f.webhookErr
	}
	if signature != "valid" {
		return nil, payments.ErrInvalidSignature
	}
	return f.event, nil
}

type CheckoutServiceTestSuite struct {
	suite.Suite
	dbService         services.DBService
	gateway           *fakeGateway
	tokenomicsService services.TokenomicsService
	paymentService    services.PaymentService
	checkoutService   services.CheckoutService
}

func (suite *CheckoutServiceTestSuite) SetupTest() {
	db, err := services.NewSqliteDBService(":memory:")
	suite.Require().NoError(err)
	suite.dbService = db

	suite.gateway = newFakeGateway()
	suite.tokenomicsService = services.NewTokenomicsService(db.GetDB())
	suite.paymentService = services.NewPaymentService(db.GetDB(), services.NewHookService())
	suite.checkoutService = services.NewCheckoutService(suite.gateway, suite.paymentService, suite.tokenomicsService, nil)

	suite.Require().NoError(suite.tokenomicsService.CreateProject(newTestProject("project-1", time.Now())))
}

func (suite *CheckoutServiceTestSuite) TearDownTest() {
	if suite.dbService != nil {
		suite.dbService.Close()
	}
}

func (suite *CheckoutServiceTestSuite) TestCreateCheckout() {
	projectID := "project-1"
	session, err := suite.checkoutService.CreateCheckout(context.Background(), services.CheckoutRequest{
		PackageID: "pro",
		OriginURL: "https://app.example/",
		ProjectID: &projectID,
	})
	suite.Require().NoError(err)
	suite.Equal("cs_test_1", session.ID)

	suite.Require().Len(suite.gateway.requests, 1)
	request := suite.gateway.requests[0]
	suite.Equal(models.PricingPackagePro, request.Package.ID)
	suite.Equal("usd", request.Currency)
	suite.Equal("https://app.example/success?session_id={CHECKOUT_SESSION_ID}", request.SuccessURL)
	suite.Equal("https://app.example/pricing", request.CancelURL)
	suite.Equal(map[string]string{
		"package_id":   "pro",
		"package_name": "Pro Tokenomics",
		"project_id":   "project-1",
	}, request.Metadata)

	transaction, err := suite.paymentService.GetTransactionBySessionID("cs_test_1")
	suite.Require().NoError(err)
	suite.True(decimal.NewFromInt(199).Equal(transaction.Amount))
	suite.Equal(models.PaymentStatusPending, transaction.PaymentStatus)
	suite.Require().NotNil(transaction.ProjectID)
	suite.Equal("project-1", *transaction.ProjectID)
}

func (suite *CheckoutServiceTestSuite) TestCreateCheckoutWithoutProject() {
	_, err := suite.checkoutService.CreateCheckout(context.Background(), services.CheckoutRequest{
		PackageID: "basic",
		OriginURL: "https://app.example",
	})
	suite.Require().NoError(err)

	suite.NotContains(suite.gateway.requests[0].Metadata, "project_id")
	transaction, err := suite.paymentService.GetTransactionBySessionID("cs_test_1")
	suite.Require().NoError(err)
	suite.Nil(transaction.ProjectID)
}

func (suite *CheckoutServiceTestSuite) TestCreateCheckoutRejections() {
	missing := "missing"
	cases := []struct {
		name    string
		request services.CheckoutRequest
		want    error
	}{
		{"unknown package", services.CheckoutRequest{PackageID: "enterprise", OriginURL: "https://app.example"}, payments.ErrUnknownPackage},
		{"missing origin", services.CheckoutRequest{PackageID: "basic"}, services.ErrInvalidCheckout},
		{"relative origin", services.CheckoutRequest{PackageID: "basic", OriginURL: "app.example"}, services.ErrInvalidCheckout},
		{"unknown project", services.CheckoutRequest{PackageID: "basic", OriginURL: "https://app.example", ProjectID: &missing}, services.ErrProjectNotFound},
	}

	for _, tc := range cases {
		suite.Run(tc.name, func() {
			session, err := suite.checkoutService.CreateCheckout(context.Background(), tc.request)
			suite.Nil(session)
			suite.ErrorIs(err, tc.want)
		})
	}
	suite.Empty(suite.gateway.requests)
}

func (suite *CheckoutServiceTestSuite) TestGatewayFailure() {
	suite.gateway.err = errors.New("gateway down")

	_, err := suite.checkoutService.CreateCheckout(context.Background(), services.CheckoutRequest{
		PackageID: "basic",
		OriginURL: "https://app.example",
	})
	suite.ErrorContains(err, "gateway down")

	_, err = suite.paymentService.GetTransactionBySessionID("cs_test_1")
	suite.ErrorIs(err, services.ErrTransactionNotFound)
}

func (suite *CheckoutServiceTestSuite) TestGetCheckoutStatusSyncsTransaction() {
	_, err := suite.checkoutService.CreateCheckout(context.Background(), services.CheckoutRequest{
		PackageID: "premium",
		OriginURL: "https://app.example",
	})
	suite.Require().NoError(err)
	suite.gateway.sessions["cs_test_1"].PaymentStatus = models.PaymentStatusPaid

	session, err := suite.checkoutService.GetCheckoutStatus(context.Background(), "cs_test_1")
	suite.Require().NoError(err)
	suite.Equal(models.PaymentStatusPaid, session.PaymentStatus)

	transaction, err := suite.paymentService.GetTransactionBySessionID("cs_test_1")
	suite.Require().NoError(err)
	suite.Equal(models.PaymentStatusPaid, transaction.PaymentStatus)
}

func (suite *CheckoutServiceTestSuite) TestHandleWebhook() {
	_, err := suite.checkoutService.CreateCheckout(context.Background(), services.CheckoutRequest{
		PackageID: "basic",
		OriginURL: "https://app.example",
	})
	suite.Require().NoError(err)

	suite.gateway.event = &payments.WebhookEvent{
		ID:   "evt_1",
		Type: "checkout.session.expired",
		Session: payments.CheckoutSession{
			ID:            "cs_test_1",
			PaymentStatus: models.PaymentStatusExpired,
		},
	}

	suite.Run("invalid signature", func() {
		_, err := suite.checkoutService.HandleWebhook([]byte(`{}`), "forged")
		suite.ErrorIs(err, payments.ErrInvalidSignature)
	})

	suite.Run("valid event", func() {
		event, err := suite.checkoutService.HandleWebhook([]byte(`{}`), "valid")
		suite.Require().NoError(err)
		suite.Equal("evt_1", event.ID)

		transaction, err := suite.paymentService.GetTransactionBySessionID("cs_test_1")
		suite.Require().NoError(err)
		suite.Equal(models.PaymentStatusExpired, transaction.PaymentStatus)
	})

	suite.Run("unknown session is ignored", func() {
		suite.gateway.event.Session.ID = "cs_elsewhere"
		event, err := suite.checkoutService.HandleWebhook([]byte(`{}`), "valid")
		suite.NoError(err)
		suite.Equal("cs_elsewhere", event.Session.ID)
	})
}

func (suite *CheckoutServiceTestSuite) TestPaymentsDisabled() {
	service := services.NewCheckoutService(nil, suite.paymentService, suite.tokenomicsService, nil)

	_, err := service.CreateCheckout(context.Background(), services.CheckoutRequest{PackageID: "basic", OriginURL: "https://app.example"})
	suite.ErrorIs(err, services.ErrPaymentsDisabled)

	_, err = service.GetCheckoutStatus(context.Background(), "cs_test_1")
	suite.ErrorIs(err, services.ErrPaymentsDisabled)

	_, err = service.HandleWebhook([]byte(`{}`), "valid")
	suite.ErrorIs(err, services.ErrPaymentsDisabled)
}

func TestCheckoutServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CheckoutServiceTestSuite))
}
