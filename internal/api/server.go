package api

import (
	"fmt"
	"net"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/rxtech-lab/tokenomics-studio/internal/logging"
	"github.com/rxtech-lab/tokenomics-studio/internal/mcp"
	"github.com/rxtech-lab/tokenomics-studio/internal/metrics"
	"github.com/rxtech-lab/tokenomics-studio/internal/services"
	"go.uber.org/zap"
)

// Services bundles what the HTTP handlers depend on
type Services struct {
	Generation services.GenerationService
	Tokenomics services.TokenomicsService
	Report     services.ReportService
	Checkout   services.CheckoutService
}

// Options configures the HTTP surface around the handlers
type Options struct {
	// CORSOrigins is a comma separated origin list, "*" for any
	CORSOrigins string
	Metrics     *metrics.Metrics
	Logger      *zap.Logger
}

type APIServer struct {
	app               *fiber.App
	generationService services.GenerationService
	tokenomicsService services.TokenomicsService
	reportService     services.ReportService
	checkoutService   services.CheckoutService
	metrics           *metrics.Metrics
	logger            *zap.Logger
	mcpServer         *mcp.MCPServer
	port              int
}

func NewAPIServer(svcs Services, opts Options) *APIServer {
	logger := opts.Logger
	if logger == nil {
		logger = logging.GetLogger()
	}
	origins := opts.CORSOrigins
	if origins == "" {
		origins = "*"
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler,
	})

	// Add middleware
	app.Use(requestid.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowHeaders: "Origin, Content-Type, Accept, Stripe-Signature",
	}))
	app.Use(logging.Middleware(logger))
	if opts.Metrics != nil {
		app.Use(opts.Metrics.Middleware())
	}

	return &APIServer{
		app:               app,
		generationService: svcs.Generation,
		tokenomicsService: svcs.Tokenomics,
		reportService:     svcs.Report,
		checkoutService:   svcs.Checkout,
		metrics:           opts.Metrics,
		logger:            logger,
	}
}

func (s *APIServer) SetupRoutes() {
	api := s.app.Group("/api")

	// Tokenomics design routes
	api.Post("/tokenomics/generate", s.handleGenerateTokenomics)
	api.Get("/tokenomics", s.handleListTokenomics)
	api.Get("/tokenomics/:id", s.handleGetTokenomics)
	api.Get("/tokenomics/:id/pdf", s.handleDownloadPDF)

	// Payment routes
	api.Get("/payments/packages", s.handleListPackages)
	api.Post("/payments/checkout/session", s.handleCreateCheckoutSession)
	api.Get("/payments/checkout/status/:session_id", s.handleCheckoutStatus)
	api.Post("/webhook/stripe", s.handleStripeWebhook)

	if s.metrics != nil {
		s.app.Get("/metrics", adaptor.HTTPHandler(s.metrics.Handler()))
	}

	// Health check
	s.app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(map[string]string{"status": "ok"})
	})
}

// EnableStreamableHttp serves the MCP tools over streamable HTTP at /mcp.
// SetMCPServer must be called first.
func (s *APIServer) EnableStreamableHttp() {
	if s.mcpServer == nil {
		s.logger.Warn("streamable http requested without an MCP server")
		return
	}
	s.app.All("/mcp", adaptor.HTTPHandler(mcpserver.NewStreamableHTTPServer(s.mcpServer.GetServer())))
}

// Start listens on the given port, or on a random available port when port
// is nil, and serves in the background
func (s *APIServer) Start(port *int) (int, error) {
	addr := ":0"
	if port != nil {
		addr = fmt.Sprintf(":%d", *port)
	}

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return 0, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	s.port = listener.Addr().(*net.TCPAddr).Port

	go func() {
		if err := s.app.Listener(listener); err != nil {
			s.logger.Error("API server stopped", zap.Error(err))
		}
	}()

	s.logger.Info("API server started", zap.Int("port", s.port))
	return s.port, nil
}

func (s *APIServer) Shutdown() error {
	return s.app.Shutdown()
}

func (s *APIServer) GetPort() int {
	return s.port
}

// GetFiberApp exposes the app for adapters such as serverless handlers
func (s *APIServer) GetFiberApp() *fiber.App {
	return s.app
}

// SetMCPServer sets the MCP server instance served by EnableStreamableHttp
func (s *APIServer) SetMCPServer(mcpServer *mcp.MCPServer) {
	s.mcpServer = mcpServer
}

// GetMCPServer returns the MCP server instance
func (s *APIServer) GetMCPServer() *mcp.MCPServer {
	return s.mcpServer
}
