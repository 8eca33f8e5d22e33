package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rxtech-lab/tokenomics-studio/internal/api"
	"github.com/rxtech-lab/tokenomics-studio/internal/config"
	"github.com/rxtech-lab/tokenomics-studio/internal/logging"
	"github.com/rxtech-lab/tokenomics-studio/internal/mcp"
	"github.com/rxtech-lab/tokenomics-studio/internal/server"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Build information (set via ldflags)
var (
	Version    = "dev"
	CommitHash = "unknown"
	BuildTime  = "unknown"
)

func configureAndStartServer(cfg *config.Config, logger *zap.Logger, port int) (*api.APIServer, int, error) {
	dbService, err := server.NewDBService(cfg.Database)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to initialize database: %w", err)
	}

	// No streamable HTTP here, the MCP tools are served over stdio
	apiServer, err := server.NewApplication(cfg, dbService.GetDB(), logger)
	if err != nil {
		return nil, 0, err
	}

	var portPtr *int
	if port != 0 {
		portPtr = &port
	}
	startedPort, err := apiServer.Start(portPtr)
	if err != nil {
		return nil, 0, err
	}
	return apiServer, startedPort, nil
}

func main() {
	var showVersion = flag.Bool("version", false, "Show version information")
	var showHelp = flag.Bool("help", false, "Show help information")
	flag.Parse()

	if *showVersion {
		fmt.Fprintf(os.Stderr, "Tokenomics Studio MCP Server\nVersion: %s\nCommit: %s\nBuilt: %s\n", Version, CommitHash, BuildTime)
		return
	}

	if *showHelp {
		fmt.Fprintf(os.Stderr, "Tokenomics Studio MCP Server\n\n")
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nServes the tokenomics MCP tools over stdio and the HTTP API on $PORT.\n")
		fmt.Fprintf(os.Stderr, "Configuration is read from the environment or a .env file.\n")
		return
	}

	cfg := config.Load()
	logger, err := logging.InitLogger(logging.LogConfig{
		Level:       cfg.Log.Level,
		Environment: cfg.Server.Env,
		ServiceName: server.ServiceName,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()
	mcp.Version = Version

	apiServer, port, err := configureAndStartServer(cfg, logger, cfg.PortNumber())
	if err != nil {
		logger.Fatal("failed to start API server", zap.Error(err))
	}
	logger.Info("serving MCP over stdio", zap.Int("api_port", port))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		// returns once stdin is closed
		if err := apiServer.GetMCPServer().StartStdioServer(); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("MCP server stopped: %w", err)
		}
		stop()
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down servers")
		return apiServer.Shutdown()
	})

	if err := g.Wait(); err != nil {
		logger.Error("server error", zap.Error(err))
		os.Exit(1)
	}
	logger.Info("servers shut down successfully")
}
