package api

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/rxtech-lab/tokenomics-studio/internal/models"
	"github.com/rxtech-lab/tokenomics-studio/internal/services"
)

type PackagesResponse struct {
	Packages []models.PricingPackage `json:"packages"`
}

type WebhookResponse struct {
	Status string `json:"status"`
}

func (s *APIServer) handleListPackages(c *fiber.Ctx) error {
	return c.JSON(PackagesResponse{Packages: models.PricingPackages()})
}

// handleCreateCheckoutSession accepts package_id and origin_url either as
// query parameters or in a JSON body
func (s *APIServer) handleCreateCheckoutSession(c *fiber.Ctx) error {
	var request services.CheckoutRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&request); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		}
	}
	if request.PackageID == "" {
		request.PackageID = c.Query("package_id")
	}
	if request.OriginURL == "" {
		request.OriginURL = c.Query("origin_url")
	}
	if request.ProjectID == nil {
		if projectID := c.Query("project_id"); projectID != "" {
			request.ProjectID = &projectID
		}
	}

	session, err := s.checkoutService.CreateCheckout(c.UserContext(), request)
	if err != nil {
		return err
	}
	return c.JSON(session)
}

func (s *APIServer) handleCheckoutStatus(c *fiber.Ctx) error {
	session, err := s.checkoutService.GetCheckoutStatus(c.UserContext(), c.Params("session_id"))
	if err != nil {
		return err
	}
	return c.JSON(session)
}

func (s *APIServer) handleStripeWebhook(c *fiber.Ctx) error {
	signature := c.Get("Stripe-Signature")
	if signature == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing Stripe-Signature header")
	}

	// the body is copied since fiber reuses the buffer after the handler returns
	payload := append([]byte(nil), c.Body()...)
	if _, err := s.checkoutService.HandleWebhook(payload, signature); err != nil {
		return err
	}
	return c.JSON(WebhookResponse{Status: "success"})
}
