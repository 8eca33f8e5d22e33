package services

import (
	"fmt"
	"strings"

	"github.com/rxtech-lab/tokenomics-studio/internal/models"
	"github.com/rxtech-lab/tokenomics-studio/internal/report"
	"go.uber.org/zap"
)

// ReportObserver is notified of every rendering attempt
type ReportObserver interface {
	ObserveReport(err error)
}

// Report is a rendered design document
type Report struct {
	Filename string
	Content  []byte
}

type ReportService interface {
	// RenderReport renders the stored design and marks it as generated
	RenderReport(id string) (*Report, error)
}

type reportService struct {
	tokenomicsService TokenomicsService
	render            func(*models.TokenomicsProject) ([]byte, error)
	observer          ReportObserver
	logger            *zap.Logger
}

func NewReportService(tokenomicsService TokenomicsService, observer ReportObserver, logger *zap.Logger) ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &reportService{
		tokenomicsService: tokenomicsService,
		render:            report.RenderPDF,
		observer:          observer,
		logger:            logger,
	}
}

func (s *reportService) RenderReport(id string) (*Report, error) {
	project, err := s.tokenomicsService.GetProjectByID(id)
	if err != nil {
		return nil, err
	}

	content, err := s.render(project)
	if s.observer != nil {
		s.observer.ObserveReport(err)
	}
	if err != nil {
		s.logger.Error("failed to render report", zap.String("project_id", id), zap.Error(err))
		return nil, err
	}

	if err := s.tokenomicsService.MarkPDFGenerated(id); err != nil {
		return nil, fmt.Errorf("failed to mark report as generated: %w", err)
	}

	return &Report{
		Filename: ReportFilename(project.ProjectName),
		Content:  content,
	}, nil
}

// ReportFilename is the download name of a project's document
func ReportFilename(projectName string) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', '"', '\r', '\n':
			return '_'
		}
		return r
	}, projectName)
	return name + "_Tokenomics.pdf"
}
