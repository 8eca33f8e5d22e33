package services

import (
	"errors"
	"fmt"

	"github.com/rxtech-lab/tokenomics-studio/internal/models"
	"gorm.io/gorm"
)

var ErrProjectNotFound = errors.New("tokenomics project not found")

const DefaultListLimit = 20

// TokenomicsService persists generated designs
type TokenomicsService interface {
	CreateProject(project *models.TokenomicsProject) error
	GetProjectByID(id string) (*models.TokenomicsProject, error)
	ListProjects(limit int) ([]models.TokenomicsProject, error)
	MarkPDFGenerated(id string) error
	UpdatePaymentStatus(id string, status models.PaymentStatus) error
}

type tokenomicsService struct {
	db *gorm.DB
}

func NewTokenomicsService(db *gorm.DB) TokenomicsService {
	return &tokenomicsService{db: db}
}

func (s *tokenomicsService) CreateProject(project *models.TokenomicsProject) error {
	return s.db.Create(project).Error
}

// GetProjectByID returns ErrProjectNotFound for unknown ids
func (s *tokenomicsService) GetProjectByID(id string) (*models.TokenomicsProject, error) {
	var project models.TokenomicsProject
	err := s.db.Where("id = ?", id).First(&project).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrProjectNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// ListProjects returns the most recent designs first
func (s *tokenomicsService) ListProjects(limit int) ([]models.TokenomicsProject, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	var projects []models.TokenomicsProject
	err := s.db.Order("created_at DESC").Limit(limit).Find(&projects).Error
	return projects, err
}

func (s *tokenomicsService) MarkPDFGenerated(id string) error {
	return s.updateColumn(id, "pdf_generated", true)
}

func (s *tokenomicsService) UpdatePaymentStatus(id string, status models.PaymentStatus) error {
	return s.updateColumn(id, "payment_status", status)
}

func (s *tokenomicsService) updateColumn(id, column string, value any) error {
	result := s.db.Model(&models.TokenomicsProject{}).Where("id = ?", id).Update(column, value)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		// the row may exist with the value already set
		var count int64
		if err := s.db.Model(&models.TokenomicsProject{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return fmt.Errorf("%w: %s", ErrProjectNotFound, id)
		}
	}
	return nil
}
