package adaptor

import (
	"net/http"

	"villa-booking/internal/usecase"
	"villa-booking/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Booking *BookingHandler
	Payment *PaymentHandler
	Admin   *AdminHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Booking: NewBookingHandler(service.Booking, log),
		Payment: NewPaymentHandler(service.Payment, log),
		Admin:   NewAdminHandler(service.Booking, service.Settlement, log),
	}
}

// respondDomainError is the single boundary translating domain error kinds
// to transport responses.
func respondDomainError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	switch usecase.Kind(err) {
	case usecase.KindValidation:
		log.Warn(operation+" rejected: validation", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)
	case usecase.KindNotFound:
		log.Warn(operation+" rejected: not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())
	case usecase.KindUnauthorized:
		log.Warn(operation+" rejected: unauthorized", zap.Error(err))
		utils.ResponseUnauthorized(w, err.Error())
	case usecase.KindConflict, usecase.KindNotCancellable:
		log.Warn(operation+" rejected: conflict", zap.Error(err))
		utils.ResponseConflict(w, err.Error())
	case usecase.KindPaymentIntegrity:
		log.Warn(operation+" rejected: payment integrity", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)
	case usecase.KindProviderUnavailable:
		log.Error(operation+" failed: provider unavailable", zap.Error(err))
		utils.ResponseBadGateway(w, err.Error())
	case usecase.KindReconciliation:
		// Surfaced distinctly: money moved at the provider without the
		// local record confirming it.
		log.Error(operation+" failed: reconciliation required", zap.Error(err))
		utils.ResponseInternalError(w, err.Error())
	default:
		log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
