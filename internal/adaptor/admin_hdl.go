package adaptor

import (
	"encoding/json"
	"net/http"

	"villa-booking/internal/usecase"
	"villa-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type AdminHandler struct {
	bookings   usecase.BookingService
	settlement usecase.SettlementService
	log        *zap.Logger
}

func NewAdminHandler(bookings usecase.BookingService, settlement usecase.SettlementService, log *zap.Logger) *AdminHandler {
	return &AdminHandler{
		bookings:   bookings,
		settlement: settlement,
		log:        log.With(zap.String("handler", "admin")),
	}
}

// GetBookingByID handles GET /api/admin/bookings/{id} (admin only)
func (h *AdminHandler) GetBookingByID(w http.ResponseWriter, r *http.Request) {
	bookingID := chi.URLParam(r, "id")
	if bookingID == "" {
		utils.ResponseBadRequest(w, "Booking ID is required", nil)
		return
	}

	booking, err := h.bookings.GetBookingByID(r.Context(), bookingID)
	if err != nil {
		respondDomainError(w, h.log, err, "get booking by ID")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// ApproveBooking handles PUT /api/admin/bookings/{id}/approve (admin only)
func (h *AdminHandler) ApproveBooking(w http.ResponseWriter, r *http.Request) {
	bookingID := chi.URLParam(r, "id")
	if bookingID == "" {
		utils.ResponseBadRequest(w, "Booking ID is required", nil)
		return
	}

	booking, err := h.settlement.Approve(r.Context(), bookingID)
	if err != nil {
		respondDomainError(w, h.log, err, "approve booking")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// RejectBooking handles PUT /api/admin/bookings/{id}/reject (admin only)
func (h *AdminHandler) RejectBooking(w http.ResponseWriter, r *http.Request) {
	bookingID := chi.URLParam(r, "id")
	if bookingID == "" {
		utils.ResponseBadRequest(w, "Booking ID is required", nil)
		return
	}

	// Reason is optional on reject
	var req struct {
		Reason string `json:"reason"`
	}
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	booking, err := h.settlement.Reject(r.Context(), bookingID, req.Reason)
	if err != nil {
		respondDomainError(w, h.log, err, "reject booking")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}
