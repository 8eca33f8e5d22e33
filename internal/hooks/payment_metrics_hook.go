package hooks

import (
	"github.com/rxtech-lab/tokenomics-studio/internal/models"
	"github.com/rxtech-lab/tokenomics-studio/internal/services"
)

type PaymentStatusObserver interface {
	ObservePaymentStatus(status string)
}

// PaymentMetricsHook counts payment status changes
type PaymentMetricsHook struct {
	observer PaymentStatusObserver
}

// CanHandle implements Hook.
func (p *PaymentMetricsHook) CanHandle(models.PaymentStatus) bool {
	return true
}

// OnPaymentStatusChanged implements Hook.
func (p *PaymentMetricsHook) OnPaymentStatusChanged(transaction models.PaymentTransaction) error {
	p.observer.ObservePaymentStatus(string(transaction.PaymentStatus))
	return nil
}

func NewPaymentMetricsHook(observer PaymentStatusObserver) services.Hook {
	return &PaymentMetricsHook{observer: observer}
}
