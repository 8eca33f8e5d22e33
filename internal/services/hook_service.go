package services

import (
	"github.com/rxtech-lab/tokenomics-studio/internal/models"
)

type HookService interface {
	AddHook(hook Hook) error
	OnPaymentStatusChanged(transaction models.PaymentTransaction) error
}

type hookService struct {
	hooks []Hook
}

func NewHookService() HookService {
	return &hookService{
		hooks: []Hook{},
	}
}

func (h *hookService) AddHook(hook Hook) error {
	h.hooks = append(h.hooks, hook)
	return nil
}

func (h *hookService) OnPaymentStatusChanged(transaction models.PaymentTransaction) error {
	for _, hook := range h.hooks {
		if hook.CanHandle(transaction.PaymentStatus) {
			if err := hook.OnPaymentStatusChanged(transaction); err != nil {
				return err
			}
		}
	}
	return nil
}
