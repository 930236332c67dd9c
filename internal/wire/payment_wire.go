package wire

import (
	"villa-booking/internal/adaptor"
	"villa-booking/internal/data/repository"
	"villa-booking/pkg/middleware"
	"villa-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wirePayment(
	r chi.Router,
	paymentHandler *adaptor.PaymentHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))

		// POST /api/payments/order - Create gateway order with a draft booking
		r.Post("/api/payments/order", paymentHandler.CreateOrder)

		// POST /api/payments/verify - Verify gateway signature and mark paid
		r.Post("/api/payments/verify", paymentHandler.VerifyPayment)
	})
}
