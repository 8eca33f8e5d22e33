package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rxtech-lab/tokenomics-studio/internal/logging"
	"github.com/rxtech-lab/tokenomics-studio/internal/models"
	"github.com/rxtech-lab/tokenomics-studio/internal/payments"
	"github.com/rxtech-lab/tokenomics-studio/internal/services"
	"go.uber.org/zap"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// statusFromError maps service errors to HTTP status codes. Rendering,
// persistence and gateway failures are 500.
func statusFromError(err error) int {
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		return fe.Code
	case errors.Is(err, models.ErrInvalidRequest),
		errors.Is(err, services.ErrInvalidCheckout),
		errors.Is(err, payments.ErrUnknownPackage),
		errors.Is(err, payments.ErrInvalidSignature):
		return fiber.StatusBadRequest
	case errors.Is(err, services.ErrProjectNotFound),
		errors.Is(err, services.ErrTransactionNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrPaymentsDisabled):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

// errorHandler renders every handler error as {"error": "..."}
func errorHandler(c *fiber.Ctx, err error) error {
	status := statusFromError(err)
	if status >= fiber.StatusInternalServerError {
		logging.FromCtx(c).Error("request failed",
			zap.String("path", c.Path()),
			zap.Error(err),
		)
	}
	return c.Status(status).JSON(ErrorResponse{Error: err.Error()})
}
