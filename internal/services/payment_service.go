package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rxtech-lab/tokenomics-studio/internal/models"
	"gorm.io/gorm"
)

var ErrTransactionNotFound = errors.New("payment transaction not found")

// PaymentService stores checkout transactions and fans status changes out to
// the registered hooks
type PaymentService interface {
	CreateTransaction(transaction *models.PaymentTransaction) error
	GetTransactionBySessionID(sessionID string) (*models.PaymentTransaction, error)
	// UpdateTransactionStatus stores the status and runs the hooks when it changed
	UpdateTransactionStatus(sessionID string, status models.PaymentStatus) (*models.PaymentTransaction, error)
}

type paymentService struct {
	db          *gorm.DB
	hookService HookService
}

func NewPaymentService(db *gorm.DB, hookService HookService) PaymentService {
	return &paymentService{db: db, hookService: hookService}
}

func (s *paymentService) CreateTransaction(transaction *models.PaymentTransaction) error {
	if transaction.ID == "" {
		transaction.ID = uuid.NewString()
	}
	if transaction.PaymentStatus == "" {
		transaction.PaymentStatus = models.PaymentStatusPending
	}
	if transaction.Currency == "" {
		transaction.Currency = "usd"
	}
	return s.db.Create(transaction).Error
}

func (s *paymentService) GetTransactionBySessionID(sessionID string) (*models.PaymentTransaction, error) {
	var transaction models.PaymentTransaction
	err := s.db.Where("session_id = ?", sessionID).First(&transaction).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrTransactionNotFound, sessionID)
	}
	if err != nil {
		return nil, err
	}
	return &transaction, nil
}

func (s *paymentService) UpdateTransactionStatus(sessionID string, status models.PaymentStatus) (*models.PaymentTransaction, error) {
	var transaction *models.PaymentTransaction
	changed := false
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var current models.PaymentTransaction
		err := tx.Where("session_id = ?", sessionID).First(&current).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: %s", ErrTransactionNotFound, sessionID)
		}
		if err != nil {
			return err
		}

		if current.PaymentStatus != status {
			if err := tx.Model(&current).Update("payment_status", status).Error; err != nil {
				return err
			}
			current.PaymentStatus = status
			changed = true
		}
		transaction = &current
		return nil
	})
	if err != nil {
		return nil, err
	}

	if changed && s.hookService != nil {
		if err := s.hookService.OnPaymentStatusChanged(*transaction); err != nil {
			return nil, fmt.Errorf("failed to run payment hooks: %w", err)
		}
	}
	return transaction, nil
}
