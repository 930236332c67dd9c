package wire

import (
	"villa-booking/internal/adaptor"
	"villa-booking/internal/data/repository"
	"villa-booking/pkg/middleware"
	"villa-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAdmin(
	r chi.Router,
	adminHandler *adaptor.AdminHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/bookings", func(r chi.Router) {
		// Require both authentication AND admin role
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.Admin(log))

		// GET /api/admin/bookings/{id} - View any booking (admin)
		r.Get("/{id}", adminHandler.GetBookingByID)

		// PUT /api/admin/bookings/{id}/approve - Settle a paid booking (admin)
		r.Put("/{id}/approve", adminHandler.ApproveBooking)

		// PUT /api/admin/bookings/{id}/reject - Reject a paid booking (admin)
		r.Put("/{id}/reject", adminHandler.RejectBooking)
	})
}
