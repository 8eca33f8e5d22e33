package hooks

import (
	"github.com/rxtech-lab/tokenomics-studio/internal/models"
	"github.com/rxtech-lab/tokenomics-studio/internal/services"
)

// ProjectPaymentHook copies a checkout's payment status onto the design it
// was bought for. It touches nothing but payment_status.
type ProjectPaymentHook struct {
	tokenomicsService services.TokenomicsService
}

// CanHandle implements Hook.
func (p *ProjectPaymentHook) CanHandle(status models.PaymentStatus) bool {
	return status == models.PaymentStatusPaid ||
		status == models.PaymentStatusExpired ||
		status == models.PaymentStatusPending
}

// OnPaymentStatusChanged implements Hook.
func (p *ProjectPaymentHook) OnPaymentStatusChanged(transaction models.PaymentTransaction) error {
	if transaction.ProjectID == nil || *transaction.ProjectID == "" {
		return nil
	}
	return p.tokenomicsService.UpdatePaymentStatus(*transaction.ProjectID, transaction.PaymentStatus)
}

func NewProjectPaymentHook(tokenomicsService services.TokenomicsService) services.Hook {
	return &ProjectPaymentHook{
		tokenomicsService: tokenomicsService,
	}
}
