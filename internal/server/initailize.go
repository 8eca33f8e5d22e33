package server

import (
	"fmt"

	"github.com/rxtech-lab/tokenomics-studio/internal/config"
	"github.com/rxtech-lab/tokenomics-studio/internal/hooks"
	"github.com/rxtech-lab/tokenomics-studio/internal/llm"
	"github.com/rxtech-lab/tokenomics-studio/internal/metrics"
	"github.com/rxtech-lab/tokenomics-studio/internal/payments"
	"github.com/rxtech-lab/tokenomics-studio/internal/services"
	"github.com/rxtech-lab/tokenomics-studio/internal/tokenomics"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Services holds every service of the application
type Services struct {
	Hook       services.HookService
	Tokenomics services.TokenomicsService
	Payment    services.PaymentService
	Generation services.GenerationService
	Report     services.ReportService
	Checkout   services.CheckoutService
}

// Dependencies are the external capabilities the services are built on. A
// nil Gateway disables payments and a nil Metrics disables instrumentation.
type Dependencies struct {
	Generator services.Generator
	Gateway   payments.Gateway
	Metrics   *metrics.Metrics
	Logger    *zap.Logger
}

func InitializeServices(db *gorm.DB, deps Dependencies) Services {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	hookService := services.NewHookService()
	tokenomicsService := services.NewTokenomicsService(db)
	paymentService := services.NewPaymentService(db, hookService)

	var reportObserver services.ReportObserver
	if deps.Metrics != nil {
		reportObserver = deps.Metrics
	}

	return Services{
		Hook:       hookService,
		Tokenomics: tokenomicsService,
		Payment:    paymentService,
		Generation: services.NewGenerationService(deps.Generator, tokenomicsService),
		Report:     services.NewReportService(tokenomicsService, reportObserver, logger.Named("report")),
		Checkout:   services.NewCheckoutService(deps.Gateway, paymentService, tokenomicsService, logger.Named("checkout")),
	}
}

// InitializeHooks creates the payment hooks. The metrics hook is nil when
// metrics are disabled.
func InitializeHooks(svcs Services, m *metrics.Metrics) (services.Hook, services.Hook) {
	projectPaymentHook := hooks.NewProjectPaymentHook(svcs.Tokenomics)

	var paymentMetricsHook services.Hook
	if m != nil {
		paymentMetricsHook = hooks.NewPaymentMetricsHook(m)
	}

	return projectPaymentHook, paymentMetricsHook
}

func RegisterHooks(hookService services.HookService, projectPaymentHook services.Hook, paymentMetricsHook services.Hook) error {
	if err := hookService.AddHook(projectPaymentHook); err != nil {
		return fmt.Errorf("failed to register project payment hook: %w", err)
	}
	if paymentMetricsHook == nil {
		return nil
	}
	if err := hookService.AddHook(paymentMetricsHook); err != nil {
		return fmt.Errorf("failed to register payment metrics hook: %w", err)
	}
	return nil
}

// NewDBService opens the configured database
func NewDBService(cfg config.DatabaseConfig) (services.DBService, error) {
	switch cfg.Driver {
	case "", "sqlite":
		return services.NewSqliteDBService(cfg.Path)
	case "postgres":
		dbService, err := services.NewPostgresDBService(cfg.PostgresURL)
		if err != nil {
			return nil, err
		}
		if cfg.MaxOpenConns > 0 {
			sqlDB, err := dbService.GetDB().DB()
			if err != nil {
				return nil, fmt.Errorf("failed to get database handle: %w", err)
			}
			sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
		}
		return dbService, nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}
}

// NewGenerator builds the design generator. Without a usable model
// configuration every generation falls back to the template design.
func NewGenerator(cfg config.LLMConfig, m *metrics.Metrics, logger *zap.Logger) *tokenomics.Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	opts := []tokenomics.Option{
		tokenomics.WithTimeout(cfg.Timeout),
		tokenomics.WithLogger(logger.Named("generator")),
	}
	if m != nil {
		opts = append(opts, tokenomics.WithObserver(m))
	}

	model, err := llm.NewModel(llm.Config{
		Provider: cfg.Provider,
		APIKey:   cfg.APIKey,
		Model:    cfg.Model,
		Timeout:  cfg.Timeout,
	})
	if err != nil {
		logger.Warn("model not configured, serving fallback designs only", zap.Error(err))
		return tokenomics.NewGenerator(nil, opts...)
	}
	return tokenomics.NewGenerator(model, opts...)
}

// NewGateway returns the Stripe gateway, or nil when no API key is configured
func NewGateway(cfg config.StripeConfig) payments.Gateway {
	if cfg.APIKey == "" {
		return nil
	}
	return payments.NewStripeGateway(payments.StripeConfig{
		APIKey:        cfg.APIKey,
		WebhookSecret: cfg.WebhookSecret,
	})
}
