package usecase

import (
	"context"
	"time"

	"villa-booking/internal/data/entity"
	"villa-booking/internal/data/repository"
	"villa-booking/internal/dto/request"
	"villa-booking/internal/dto/response"
	"villa-booking/pkg/payment"
	"villa-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type PaymentService interface {
	CreateOrder(ctx context.Context, userID string, req *request.CreateOrderRequest) (*response.OrderResponse, error)
	VerifyAndBook(ctx context.Context, userID string, req *request.VerifyPaymentRequest) (*response.VerifyPaymentResponse, error)
}

type paymentService struct {
	repo     *repository.Repository
	config   *utils.Config
	provider payment.Provider
	notifier Notifier
	log      *zap.Logger
}

func NewPaymentService(repo *repository.Repository, config *utils.Config, provider payment.Provider, notifier Notifier, log *zap.Logger) PaymentService {
	return &paymentService{
		repo:     repo,
		config:   config,
		provider: provider,
		notifier: notifier,
		log:      log.With(zap.String("service", "payment")),
	}
}

func (s *paymentService) CreateOrder(ctx context.Context, userID string, req *request.CreateOrderRequest) (*response.OrderResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, newError(KindValidation, "validation failed: "+utils.FormatValidationErrors(errs))
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, newError(KindValidation, "invalid user ID format")
	}

	// Idempotent replay: a booking already carrying an order for this
	// (user, key) pair returns the original order untouched.
	existing, err := s.repo.Booking.FindByIdempotencyKey(ctx, userUUID, req.IdempotencyKey)
	if err != nil {
		return nil, wrapError(KindInternal, "look up idempotency key", err)
	}
	if existing != nil {
		return s.replayOrder(existing)
	}

	booking, _, err := prepareBooking(ctx, s.repo, s.config, userUUID, &req.Booking)
	if err != nil {
		return nil, err
	}

	receipt := req.Receipt
	if receipt == "" {
		receipt = utils.GenerateReceiptID()
	}

	order, err := s.provider.CreateOrder(ctx, req.Amount, req.Currency, receipt, req.Notes)
	if err != nil {
		s.log.Error("Provider order creation failed",
			zap.Error(err),
			zap.String("user_id", userID),
			zap.Int64("amount", req.Amount),
		)
		return nil, wrapError(KindProviderUnavailable, "payment provider unavailable", err)
	}

	gateway := s.provider.Name()
	booking.OrderID = &order.ID
	booking.PaymentGateway = &gateway
	booking.PaymentAmount = &req.Amount
	booking.PaymentCurrency = &req.Currency
	booking.IdempotencyKey = &req.IdempotencyKey

	if err := s.repo.Booking.Create(ctx, booking); err != nil {
		switch err {
		case repository.ErrDuplicateIdempotencyKey:
			// Lost the insert race; the winner's order is the answer.
			winner, ferr := s.repo.Booking.FindByIdempotencyKey(ctx, userUUID, req.IdempotencyKey)
			if ferr != nil || winner == nil {
				return nil, wrapError(KindInternal, "resolve idempotency replay", ferr)
			}
			return s.replayOrder(winner)
		case repository.ErrDateConflict:
			return nil, newError(KindConflict, "date range unavailable for this villa")
		}
		return nil, wrapError(KindInternal, "persist booking for order", err)
	}

	if err := s.repo.User.AppendBookingHistory(ctx, userUUID, booking.ID); err != nil {
		s.log.Warn("Failed to append booking history",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
		)
	}

	s.log.Info("Payment order created",
		zap.String("order_id", order.ID),
		zap.String("booking_id", booking.ID.String()),
		zap.String("user_id", userID),
		zap.Int64("amount", req.Amount),
		zap.String("currency", req.Currency),
	)

	return &response.OrderResponse{
		OrderID:   order.ID,
		Amount:    order.Amount,
		Currency:  order.Currency,
		BookingID: booking.ID.String(),
	}, nil
}

func (s *paymentService) replayOrder(booking *entity.Booking) (*response.OrderResponse, error) {
	if booking.OrderID == nil || booking.PaymentAmount == nil || booking.PaymentCurrency == nil {
		return nil, newError(KindInternal, "booking for idempotency key has no provider order")
	}

	s.log.Info("Idempotent order replay",
		zap.String("order_id", *booking.OrderID),
		zap.String("booking_id", booking.ID.String()),
	)

	return &response.OrderResponse{
		OrderID:   *booking.OrderID,
		Amount:    *booking.PaymentAmount,
		Currency:  *booking.PaymentCurrency,
		BookingID: booking.ID.String(),
	}, nil
}

func (s *paymentService) VerifyAndBook(ctx context.Context, userID string, req *request.VerifyPaymentRequest) (*response.VerifyPaymentResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, newError(KindValidation, "validation failed: "+utils.FormatValidationErrors(errs))
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, newError(KindValidation, "invalid user ID format")
	}
	bookingID, err := uuid.Parse(req.BookingID)
	if err != nil {
		return nil, newError(KindValidation, "invalid booking ID format")
	}

	// Ownership + consistency: the (booking, order, user) triple must match.
	booking, err := s.repo.Booking.FindForVerification(ctx, bookingID, req.OrderID, userUUID)
	if err != nil {
		return nil, wrapError(KindInternal, "load booking for verification", err)
	}
	if booking == nil {
		return nil, newError(KindUnauthorized, "booking, order and user do not match")
	}

	// Idempotent replay for clients retrying after a lost response.
	if booking.PaymentStatus == entity.PaymentStatusPaid {
		s.log.Info("Payment already verified, replaying success",
			zap.String("booking_id", req.BookingID),
			zap.String("order_id", req.OrderID),
		)
		return &response.VerifyPaymentResponse{
			BookingID:     req.BookingID,
			PaymentStatus: booking.PaymentStatus,
			BookingStatus: booking.Status,
		}, nil
	}

	// Terminal statuses never transition further: a booking rejected while
	// its order was unpaid must not be resurrected by a late payment. The
	// funds, if any moved, need an operator rather than a state change.
	if booking.Status.Terminal() {
		s.log.Error("Payment attempted against terminal booking, manual reconciliation may be required",
			zap.String("booking_id", req.BookingID),
			zap.String("order_id", req.OrderID),
			zap.String("payment_id", req.PaymentID),
			zap.String("status", string(booking.Status)),
		)
		return nil, newError(KindConflict, "booking is in a terminal status and cannot accept payment")
	}

	if !payment.VerifySignature(req.OrderID, req.PaymentID, req.Signature, s.config.Razorpay.KeySecret) {
		if err := s.repo.Booking.MarkPaymentFailed(ctx, booking.ID, "signature verification failed"); err != nil {
			s.log.Error("Failed to record signature failure",
				zap.Error(err),
				zap.String("booking_id", req.BookingID),
			)
		}
		s.log.Warn("Payment signature mismatch",
			zap.String("booking_id", req.BookingID),
			zap.String("order_id", req.OrderID),
			zap.String("payment_id", req.PaymentID),
		)
		return nil, newError(KindPaymentIntegrity, "signature verification failed")
	}

	if err := s.repo.Booking.MarkPaid(ctx, booking.ID, req.PaymentID, req.Signature, time.Now().UTC()); err != nil {
		// Money moved at the provider but the local record did not follow.
		// Flag for manual reconciliation, never retry silently.
		if ferr := s.repo.Booking.MarkPaymentFailed(ctx, booking.ID, "post-verification persistence failure: "+err.Error()); ferr != nil {
			s.log.Error("Failed to record reconciliation marker",
				zap.Error(ferr),
				zap.String("booking_id", req.BookingID),
			)
		}
		s.log.Error("Verified payment could not be persisted, reconciliation required",
			zap.Error(err),
			zap.String("booking_id", req.BookingID),
			zap.String("order_id", req.OrderID),
			zap.String("payment_id", req.PaymentID),
		)
		return nil, wrapError(KindReconciliation, "payment verified at provider but could not be recorded; manual reconciliation required", err)
	}

	s.log.Info("Payment verified",
		zap.String("booking_id", req.BookingID),
		zap.String("order_id", req.OrderID),
		zap.String("payment_id", req.PaymentID),
	)

	s.notifyAsync(booking.UserID, booking, NotificationPaymentReceived)

	return &response.VerifyPaymentResponse{
		BookingID:     req.BookingID,
		PaymentStatus: entity.PaymentStatusPaid,
		BookingStatus: entity.BookingStatusPaidAwaitingConfirmation,
	}, nil
}

// notifyAsync delivers a notification without blocking or failing the
// calling transition.
func (s *paymentService) notifyAsync(userID uuid.UUID, booking *entity.Booking, kind NotificationKind) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		user, err := s.repo.User.FindByID(ctx, userID)
		if err != nil || user == nil {
			s.log.Warn("Notification skipped, user lookup failed",
				zap.Error(err),
				zap.String("user_id", userID.String()),
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
