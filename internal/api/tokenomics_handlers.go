package api

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/rxtech-lab/tokenomics-studio/internal/logging"
	"github.com/rxtech-lab/tokenomics-studio/internal/models"
	"github.com/rxtech-lab/tokenomics-studio/internal/services"
	"go.uber.org/zap"
)

type ListTokenomicsResponse struct {
	Projects []models.TokenomicsProject `json:"projects"`
	Total    int                        `json:"total"`
}

// handleGenerateTokenomics generates, stores and returns a design with its chart
func (s *APIServer) handleGenerateTokenomics(c *fiber.Ctx) error {
	var request models.TokenomicsRequest
	if err := c.BodyParser(&request); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
	}

	result, err := s.generationService.GenerateProject(c.UserContext(), request)
	if err != nil {
		return err
	}

	logging.FromCtx(c).Info("tokenomics project created",
		zap.String("project_id", result.Project.ID),
		zap.String("project_type", request.ProjectType),
	)
	return c.JSON(result)
}

func (s *APIServer) handleListTokenomics(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", services.DefaultListLimit)
	if limit < 1 || limit > 100 {
		return fiber.NewError(fiber.StatusBadRequest, "limit must be between 1 and 100")
	}

	projects, err := s.tokenomicsService.ListProjects(limit)
	if err != nil {
		return err
	}
	if projects == nil {
		projects = []models.TokenomicsProject{}
	}
	return c.JSON(ListTokenomicsResponse{Projects: projects, Total: len(projects)})
}

func (s *APIServer) handleGetTokenomics(c *fiber.Ctx) error {
	result, err := s.generationService.GetProjectWithChart(c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(result)
}

// handleDownloadPDF renders the design document as an attachment
func (s *APIServer) handleDownloadPDF(c *fiber.Ctx) error {
	report, err := s.reportService.RenderReport(c.Params("id"))
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, report.Filename))
	return c.Send(report.Content)
}
