package services

import (
	"context"
	"fmt"

	"github.com/rxtech-lab/tokenomics-studio/internal/models"
	"github.com/rxtech-lab/tokenomics-studio/internal/tokenomics"
)

// GenerationResult is a stored design with its chart projection
type GenerationResult struct {
	Project   *models.TokenomicsProject `json:"project"`
	ChartData []models.ChartEntry       `json:"chart_data"`
}

// Generator produces finalized designs
type Generator interface {
	Generate(ctx context.Context, request models.TokenomicsRequest) *models.TokenomicsProject
}

// GenerationService validates requests, generates and stores designs
type GenerationService interface {
	GenerateProject(ctx context.Context, request models.TokenomicsRequest) (*GenerationResult, error)
	GetProjectWithChart(id string) (*GenerationResult, error)
}

type generationService struct {
	generator         Generator
	tokenomicsService TokenomicsService
}

func NewGenerationService(generator Generator, tokenomicsService TokenomicsService) GenerationService {
	return &generationService{generator: generator, tokenomicsService: tokenomicsService}
}

// GenerateProject returns models.ErrInvalidRequest for requests that fail
// validation. Model failures never surface; they produce the fallback design.
func (s *generationService) GenerateProject(ctx context.Context, request models.TokenomicsRequest) (*GenerationResult, error) {
	if err := request.Validate(); err != nil {
		return nil, err
	}

	project := s.generator.Generate(ctx, request)
	if err := s.tokenomicsService.CreateProject(project); err != nil {
		return nil, fmt.Errorf("failed to store tokenomics project: %w", err)
	}

	return &GenerationResult{
		Project:   project,
		ChartData: tokenomics.ProjectChart(project),
	}, nil
}

func (s *generationService) GetProjectWithChart(id string) (*GenerationResult, error) {
	project, err := s.tokenomicsService.GetProjectByID(id)
	if err != nil {
		return nil, err
	}
	return &GenerationResult{
		Project:   project,
		ChartData: tokenomics.ProjectChart(project),
	}, nil
}
