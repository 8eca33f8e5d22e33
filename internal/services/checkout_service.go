package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rxtech-lab/tokenomics-studio/internal/models"
	"github.com/rxtech-lab/tokenomics-studio/internal/payments"
	"go.uber.org/zap"
)

var (
	ErrPaymentsDisabled = errors.New("payments are not configured")
	ErrInvalidCheckout  = errors.New("invalid checkout request")
)

// CheckoutRequest starts a checkout for one pricing package
type CheckoutRequest struct {
	PackageID string  `json:"package_id" validate:"required"`
	OriginURL string  `json:"origin_url" validate:"required,url"`
	ProjectID *string `json:"project_id,omitempty"`
}

// CheckoutService drives the payment gateway and keeps transaction records in
// sync with it
type CheckoutService interface {
	CreateCheckout(ctx context.Context, request CheckoutRequest) (*payments.CheckoutSession, error)
	GetCheckoutStatus(ctx context.Context, sessionID string) (*payments.CheckoutSession, error)
	HandleWebhook(payload []byte, signature string) (*payments.WebhookEvent, error)
}

type checkoutService struct {
	gateway           payments.Gateway
	paymentService    PaymentService
	tokenomicsService TokenomicsService
	logger            *zap.Logger
}

// NewCheckoutService creates the service. A nil gateway makes every call
// return ErrPaymentsDisabled.
func NewCheckoutService(gateway payments.Gateway, paymentService PaymentService, tokenomicsService TokenomicsService, logger *zap.Logger) CheckoutService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &checkoutService{
		gateway:           gateway,
		paymentService:    paymentService,
		tokenomicsService: tokenomicsService,
		logger:            logger,
	}
}

func (s *checkoutService) CreateCheckout(ctx context.Context, request CheckoutRequest) (*payments.CheckoutSession, error) {
	if err := validator.New().Struct(request); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCheckout, err)
	}
	pkg, err := payments.ResolvePackage(request.PackageID)
	if err != nil {
		return nil, err
	}
	if s.gateway == nil {
		return nil, ErrPaymentsDisabled
	}

	metadata := map[string]string{
		"package_id":   string(pkg.ID),
		"package_name": pkg.Name,
	}
	if request.ProjectID != nil && *request.ProjectID != "" {
		if _, err := s.tokenomicsService.GetProjectByID(*request.ProjectID); err != nil {
			return nil, err
		}
		metadata["project_id"] = *request.ProjectID
	}

	origin := strings.TrimSuffix(request.OriginURL, "/")
	session, err := s.gateway.CreateCheckoutSession(ctx, payments.CheckoutRequest{
		Package:    pkg,
		Currency:   "usd",
		SuccessURL: origin + "/success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:  origin + "/pricing",
		Metadata:   metadata,
	})
	if err != nil {
		return nil, err
	}

	transaction := &models.PaymentTransaction{
		SessionID:     session.ID,
		Amount:        pkg.Amount,
		Currency:      "usd",
		PaymentStatus: models.PaymentStatusPending,
		Metadata:      models.Metadata(metadata),
	}
	if id, ok := metadata["project_id"]; ok {
		transaction.ProjectID = &id
	}
	if err := s.paymentService.CreateTransaction(transaction); err != nil {
		return nil, fmt.Errorf("failed to store payment transaction: %w", err)
	}

	s.logger.Info("checkout session created",
		zap.String("session_id", session.ID),
		zap.String("package_id", string(pkg.ID)),
	)
	return session, nil
}

func (s *checkoutService) GetCheckoutStatus(ctx context.Context, sessionID string) (*payments.CheckoutSession, error) {
	if s.gateway == nil {
		return nil, ErrPaymentsDisabled
	}
	session, err := s.gateway.GetCheckoutStatus(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := s.syncStatus(sessionID, session.PaymentStatus); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *checkoutService) HandleWebhook(payload []byte, signature string) (*payments.WebhookEvent, error) {
	if s.gateway == nil {
		return nil, ErrPaymentsDisabled
	}
	event, err := s.gateway.ParseWebhook(payload, signature)
	if err != nil {
		return nil, err
	}
	if err := s.syncStatus(event.Session.ID, event.Session.PaymentStatus); err != nil {
		return nil, err
	}
	s.logger.Info("webhook processed",
		zap.String("event_id", event.ID),
		zap.String("type", event.Type),
		zap.String("session_id", event.Session.ID),
	)
	return event, nil
}

// syncStatus updates the stored transaction. Sessions created outside this
// service have no record and are ignored.
func (s *checkoutService) syncStatus(sessionID string, status models.PaymentStatus) error {
	_, err := s.paymentService.UpdateTransactionStatus(sessionID, status)
	if errors.Is(err, ErrTransactionNotFound) {
		s.logger.Warn("no transaction for checkout session", zap.String("session_id", sessionID))
		return nil
	}
	return err
}
