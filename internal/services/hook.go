package services

import "github.com/rxtech-lab/tokenomics-studio/internal/models"

// Hook is used to perform actions when the payment status of a checkout changes
type Hook interface {
	// CanHandle is used to check if the hook reacts to the new status
	CanHandle(status models.PaymentStatus) bool
	// OnPaymentStatusChanged is called after the transaction has been updated
	OnPaymentStatusChanged(transaction models.PaymentTransaction) error
}
