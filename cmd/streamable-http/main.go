package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload" // Automatically load .env file if present
	"github.com/rxtech-lab/tokenomics-studio/internal/api"
	"github.com/rxtech-lab/tokenomics-studio/internal/config"
	"github.com/rxtech-lab/tokenomics-studio/internal/logging"
	"github.com/rxtech-lab/tokenomics-studio/internal/server"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func configureAndStartServer(cfg *config.Config, db *gorm.DB, logger *zap.Logger, port int) (*api.APIServer, int, error) {
	apiServer, err := server.NewApplication(cfg, db, logger)
	if err != nil {
		return nil, 0, err
	}
	apiServer.EnableStreamableHttp()

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
	cfg := config.Load()
	// this deployment always runs on postgres
	cfg.Database.Driver = "postgres"

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

	dbService, err := server.NewDBService(cfg.Database)
	if err != nil {
		logger.Fatal("failed to initialize database service", zap.Error(err))
	}
	defer dbService.Close()

	apiServer, startedPort, err := configureAndStartServer(cfg, dbService.GetDB(), logger, cfg.PortNumber())
	if err != nil {
		logger.Fatal("failed to start API server", zap.Error(err))
	}
	logger.Info("serving MCP over streamable HTTP", zap.Int("port", startedPort), zap.String("endpoint", "/mcp"))

	// Set up graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	logger.Info("shutting down server")
	if err := apiServer.Shutdown(); err != nil {
		logger.Error("error shutting down API server", zap.Error(err))
	}
	logger.Info("server shut down successfully")
}
