package logging

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	requestIDLocal = "requestid"
	loggerLocal    = "logger"
)

// Middleware logs every request once it has been handled. It expects the
// requestid middleware to run first.
func Middleware(logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		requestID, _ := c.Locals(requestIDLocal).(string)
		ctxLogger := logger.With(zap.String("request_id", requestID))
		c.Locals(loggerLocal, ctxLogger)

		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		ctxLogger.Info("HTTP Request",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.IP()),
		)
		return err
	}
}

// FromCtx returns the request logger set by Middleware
func FromCtx(c *fiber.Ctx) *zap.Logger {
	if logger, ok := c.Locals(loggerLocal).(*zap.Logger); ok {
		return logger
	}
	return GetLogger()
}
