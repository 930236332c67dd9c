package usecase

import (
	"villa-booking/internal/data/repository"
	"villa-booking/pkg/payment"
	"villa-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Booking    BookingService
	Payment    PaymentService
	Settlement SettlementService
}

func NewService(repo *repository.Repository, config *utils.Config, provider payment.Provider, notifier Notifier, log *zap.Logger) *Service {
	return &Service{
		Booking:    NewBookingService(repo, config, log),
		Payment:    NewPaymentService(repo, config, provider, notifier, log),
		Settlement: NewSettlementService(repo, notifier, log),
	}
}
