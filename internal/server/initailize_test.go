package server

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rxtech-lab/tokenomics-studio/internal/config"
	"github.com/rxtech-lab/tokenomics-studio/internal/metrics"
	"github.com/rxtech-lab/tokenomics-studio/internal/models"
	"github.com/rxtech-lab/tokenomics-studio/internal/payments"
	"github.com/rxtech-lab/tokenomics-studio/internal/services"
	"github.com/rxtech-lab/tokenomics-studio/internal/tokenomics"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeServicesWiresPaymentHooks(t *testing.T) {
	dbService, err := NewDBService(config.DatabaseConfig{Driver: "sqlite", Path: ":memory:"})
	require.NoError(t, err)
	defer dbService.Close()

	m := metrics.New("tokenomics-test")
	svcs := InitializeServices(dbService.GetDB(), Dependencies{
		Generator: NewGenerator(config.LLMConfig{}, m, nil),
		Metrics:   m,
	})
	projectPaymentHook, paymentMetricsHook := InitializeHooks(svcs, m)
	require.NoError(t, RegisterHooks(svcs.Hook, projectPaymentHook, paymentMetricsHook))

	result, err := svcs.Generation.GenerateProject(context.Background(), models.TokenomicsRequest{
		ProjectType:    "DAO",
		TargetAudience: "both",
		FundingGoals:   "treasury bootstrap",
		DesiredUtility: []string{"governance"},
	})
	require.NoError(t, err)
	assert.Equal(t, tokenomics.FallbackTotalSupply, result.Project.TotalSupply)

	projectID := result.Project.ID
	require.NoError(t, svcs.Payment.CreateTransaction(&models.PaymentTransaction{
		SessionID: "cs_test_1",
		Amount:    decimal.NewFromInt(79),
		ProjectID: &projectID,
	}))
	_, err = svcs.Payment.UpdateTransactionStatus("cs_test_1", models.PaymentStatusPaid)
	require.NoError(t, err)

	stored, err := svcs.Tokenomics.GetProjectByID(projectID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPaid, stored.PaymentStatus)

	count, err := testutil.GatherAndCount(m.Registry(), "payment_status_changes_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	_, err = svcs.Checkout.CreateCheckout(context.Background(), services.CheckoutRequest{
		PackageID: "basic",
		OriginURL: "https://app.example",
	})
	assert.ErrorIs(t, err, services.ErrPaymentsDisabled)
}

func TestInitializeHooksWithoutMetrics(t *testing.T) {
	dbService, err := NewDBService(config.DatabaseConfig{Path: ":memory:"})
	require.NoError(t, err)
	defer dbService.Close()

	svcs := InitializeServices(dbService.GetDB(), Dependencies{})
	projectPaymentHook, paymentMetricsHook := InitializeHooks(svcs, nil)
	assert.NotNil(t, projectPaymentHook)
	assert.Nil(t, paymentMetricsHook)
	assert.NoError(t, RegisterHooks(svcs.Hook, projectPaymentHook, paymentMetricsHook))
}

func TestNewDBServiceUnsupportedDriver(t *testing.T) {
	_, err := NewDBService(config.DatabaseConfig{Driver: "mongodb"})
	assert.ErrorContains(t, err, "unsupported database driver")
}

func TestNewGateway(t *testing.T) {
	assert.Nil(t, NewGateway(config.StripeConfig{}))

	gateway := NewGateway(config.StripeConfig{APIKey: "sk_test", WebhookSecret: "whsec"})
	assert.IsType(t, &payments.StripeGateway{}, gateway)
}
