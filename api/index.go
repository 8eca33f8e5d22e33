package handler

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/rxtech-lab/tokenomics-studio/internal/api"
	"github.com/rxtech-lab/tokenomics-studio/internal/config"
	"github.com/rxtech-lab/tokenomics-studio/internal/logging"
	"github.com/rxtech-lab/tokenomics-studio/internal/server"
	"go.uber.org/zap"
)

var (
	apiServer *api.APIServer
	initOnce  sync.Once
	initErr   error
)

// Handler is the main Vercel function handler
func Handler(w http.ResponseWriter, r *http.Request) {
	// Initialize the API server only once per instance
	initOnce.Do(func() {
		initErr = initializeAPIServer()
	})
	if initErr != nil {
		logging.GetLogger().Error("failed to initialize API server", zap.Error(initErr))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	adaptor.FiberApp(apiServer.GetFiberApp())(w, r)
}

func initializeAPIServer() error {
	cfg := config.Load()

	logger, err := logging.InitLogger(logging.LogConfig{
		Level:       cfg.Log.Level,
		Environment: cfg.Server.Env,
		ServiceName: server.ServiceName,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if cfg.Database.Driver != "postgres" {
		dbPath, err := getDatabasePath()
		if err != nil {
			return fmt.Errorf("failed to get database path: %w", err)
		}
		cfg.Database.Path = dbPath
	}

	dbService, err := server.NewDBService(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	apiServer, err = server.NewApplication(cfg, dbService.GetDB(), logger)
	if err != nil {
		return err
	}

	// Add a root route for Vercel
	apiServer.GetFiberApp().Get("/", func(c *fiber.Ctx) error {
		return c.JSON(map[string]interface{}{
			"message": "Tokenomics Studio API",
			"status":  "running",
			"version": "1.0.0",
		})
	})

	return nil
}

// getDatabasePath returns the SQLite path for the Vercel environment
func getDatabasePath() (string, error) {
	// In Vercel only /tmp is writable
	if os.Getenv("VERCEL") == "1" {
		return "/tmp/tokenomics.db", nil
	}

	homePath, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homePath, "tokenomics.db"), nil
}
