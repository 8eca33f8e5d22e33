package server

import (
	"github.com/rxtech-lab/tokenomics-studio/internal/api"
	"github.com/rxtech-lab/tokenomics-studio/internal/config"
	"github.com/rxtech-lab/tokenomics-studio/internal/mcp"
	"github.com/rxtech-lab/tokenomics-studio/internal/metrics"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const ServiceName = "tokenomics-studio"

// NewApplication wires services, hooks and both servers on top of an open
// database. The returned API server has its routes set up and the MCP server
// attached but is not started.
func NewApplication(cfg *config.Config, db *gorm.DB, logger *zap.Logger) (*api.APIServer, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	m := metrics.New(ServiceName)

	svcs := InitializeServices(db, Dependencies{
		Generator: NewGenerator(cfg.LLM, m, logger),
		Gateway:   NewGateway(cfg.Stripe),
		Metrics:   m,
		Logger:    logger,
	})
	projectPaymentHook, paymentMetricsHook := InitializeHooks(svcs, m)
	if err := RegisterHooks(svcs.Hook, projectPaymentHook, paymentMetricsHook); err != nil {
		return nil, err
	}

	apiServer := api.NewAPIServer(api.Services{
		Generation: svcs.Generation,
		Tokenomics: svcs.Tokenomics,
		Report:     svcs.Report,
		Checkout:   svcs.Checkout,
	}, api.Options{
		CORSOrigins: cfg.Server.CORSOrigins,
		Metrics:     m,
		Logger:      logger.Named("api"),
	})
	apiServer.SetupRoutes()
	apiServer.SetMCPServer(mcp.NewMCPServer(svcs.Generation, svcs.Tokenomics, cfg.PortNumber()))

	return apiServer, nil
}
