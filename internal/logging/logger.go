package logging

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogConfig holds logger configuration
type LogConfig struct {
	Level       string
	Environment string
	ServiceName string
}

var (
	mu  sync.RWMutex
	log = zap.NewNop()
)

// InitLogger builds the global logger. Production uses the JSON encoder,
// every other environment the coloured console encoder.
func InitLogger(config LogConfig) (*zap.Logger, error) {
	level := ParseLevel(config.Level)
	fields := zap.Fields(
		zap.String("service", config.ServiceName),
		zap.String("environment", config.Environment),
	)

	var cfg zap.Config
	if config.Environment == "production" {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "timestamp"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	cfg.Level = zap.NewAtomicLevelAt(level)
	// stdout carries the MCP stdio protocol
	cfg.OutputPaths = []string{"stderr"}

	logger, err := cfg.Build(fields)
	if err != nil {
		return nil, err
	}

	SetLogger(logger)
	zap.ReplaceGlobals(logger)
	return logger, nil
}

// ParseLevel maps a level name to a zap level, defaulting to info
func ParseLevel(name string) zapcore.Level {
	switch name {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// GetLogger returns the global logger. It is a no-op logger until
// InitLogger or SetLogger is called.
func GetLogger() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return log
}

func SetLogger(logger *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	log = logger
}
