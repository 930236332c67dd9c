package usecase

import (
	"context"
	"time"

	"villa-booking/internal/data/entity"
	"villa-booking/internal/data/repository"
	"villa-booking/internal/dto/response"
	"villa-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SettlementService is the manual override path: an operator confirms or
// rejects a booking outside the online-payment flow.
type SettlementService interface {
	Approve(ctx context.Context, bookingID string) (*response.BookingResponse, error)
	Reject(ctx context.Context, bookingID, reason string) (*response.BookingResponse, error)
}

type settlementService struct {
	repo     *repository.Repository
	notifier Notifier
	log      *zap.Logger
}

func NewSettlementService(repo *repository.Repository, notifier Notifier, log *zap.Logger) SettlementService {
	return &settlementService{
		repo:     repo,
		notifier: notifier,
		log:      log.With(zap.String("service", "settlement")),
	}
}

func (s *settlementService) loadSettleable(ctx context.Context, bookingID string) (*entity.Booking, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, newError(KindValidation, "invalid booking ID format")
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, wrapError(KindInternal, "load booking", err)
	}
	if booking == nil {
		return nil, newError(KindNotFound, "booking not found")
	}
	if booking.Status.Terminal() {
		return nil, newError(KindConflict, "booking is in a terminal status")
	}

	return booking, nil
}

func (s *settlementService) Approve(ctx context.Context, bookingID string) (*response.BookingResponse, error) {
	booking, err := s.loadSettleable(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	booking.Status = entity.BookingStatusConfirmed
	booking.IsPaid = true
	booking.PaymentStatus = entity.PaymentStatusPaid
	if booking.PaidAt == nil {
		booking.PaidAt = &now
	}

	// Offline settlement has no provider order; backfill a synthetic one.
	if booking.OrderID == nil {
		synthetic := utils.GenerateManualOrderID()
		method := "Manual/Offline"
		booking.OrderID = &synthetic
		booking.PaymentMethod = &method
	}
	booking.UpdatedAt = now

	if err := s.repo.Booking.Update(ctx, booking); err != nil {
		s.log.Error("Failed to approve booking",
			zap.Error(err),
			zap.String("booking_id", bookingID),
		)
		return nil, wrapError(KindInternal, "approve booking", err)
	}

	s.log.Info("Booking approved",
		zap.String("booking_id", bookingID),
		zap.String("order_id", *booking.OrderID),
	)

	s.notifyAsync(booking, NotificationBookingConfirmed)

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *settlementService) Reject(ctx context.Context, bookingID, reason string) (*response.BookingResponse, error) {
	booking, err := s.loadSettleable(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if reason == "" {
		reason = "rejected by operator"
	}

	now := time.Now().UTC()
	booking.Status = entity.BookingStatusCancelled
	booking.CancelReason = &reason
	booking.CancelledAt = &now
	booking.UpdatedAt = now

	if err := s.repo.Booking.Update(ctx, booking); err != nil {
		s.log.Error("Failed to reject booking",
			zap.Error(err),
			zap.String("booking_id", bookingID),
		)
		return nil, wrapError(KindInternal, "reject booking", err)
	}

	s.log.Info("Booking rejected",
		zap.String("booking_id", bookingID),
		zap.String("reason", reason),
	)

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *settlementService) notifyAsync(booking *entity.Booking, kind NotificationKind) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		user, err := s.repo.User.FindByID(ctx, booking.UserID)
		if err != nil || user == nil {
			s.log.Warn("Notification skipped, user lookup failed",
				zap.Error(err),
				zap.String("user_id", booking.UserID.String()),
			)
			return
		}

		if err := s.notifier.Notify(ctx, user.Email, booking, kind); err != nil {
			s.log.Warn("Notification delivery failed",
				zap.Error(err),
				zap.String("booking_id", booking.ID.String()),
			)
		}
	}()
}
