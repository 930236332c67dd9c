package usecase

import (
	"context"
	"time"

	"villa-booking/internal/data/entity"
	"villa-booking/internal/data/repository"
	"villa-booking/internal/dto/request"
	"villa-booking/internal/dto/response"
	"villa-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService interface {
	// Public endpoints (auth required unless noted)
	CreateBooking(ctx context.Context, userID string, req *request.CreateBookingRequest) (*response.BookingCreatedResponse, error)
	GetUserBookings(ctx context.Context, userID string, filter string) ([]response.BookingResponse, error)
	CancelBooking(ctx context.Context, userID, bookingID string, req *request.CancelBookingRequest) (*response.BookingResponse, error)
	CheckAvailability(ctx context.Context, villaID string, req *request.AvailabilityRequest) (*response.AvailabilityResponse, error)

	// Admin endpoints
	GetBookingByID(ctx context.Context, bookingID string) (*response.BookingResponse, error)
}

type bookingService struct {
	repo   *repository.Repository
	config *utils.Config
	log    *zap.Logger
}

func NewBookingService(repo *repository.Repository, config *utils.Config, log *zap.Logger) BookingService {
	return &bookingService{
		repo:   repo,
		config: config,
		log:    log.With(zap.String("service", "booking")),
	}
}

const dateLayout = "2006-01-02"

// parseStayDates parses and checks a [checkIn, checkOut) range, returning
// both dates at UTC midnight plus the night count.
func parseStayDates(checkIn, checkOut string) (time.Time, time.Time, int, error) {
	in, err := time.ParseInLocation(dateLayout, checkIn, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, 0, newError(KindValidation, "check_in must be a valid date (YYYY-MM-DD)")
	}
	out, err := time.ParseInLocation(dateLayout, checkOut, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, 0, newError(KindValidation, "check_out must be a valid date (YYYY-MM-DD)")
	}
	if !out.After(in) {
		return time.Time{}, time.Time{}, 0, newError(KindValidation, "check_out must be after check_in")
	}

	nights := int(out.Sub(in).Hours() / 24)
	return in, out, nights, nil
}

// prepareBooking validates a booking draft against the villa gate, the
// availability checker and the pricing calculator, and returns the unsaved
// booking entity plus its pricing breakdown. Pure read/compute, no writes.
func prepareBooking(ctx context.Context, repo *repository.Repository, config *utils.Config, userID uuid.UUID, req *request.CreateBookingRequest) (*entity.Booking, *response.PricingBreakdown, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, nil, newError(KindValidation, "validation failed: "+utils.FormatValidationErrors(errs))
	}

	villaID, err := uuid.Parse(req.VillaID)
	if err != nil {
		return nil, nil, newError(KindValidation, "invalid villa ID format")
	}

	checkIn, checkOut, nights, err := parseStayDates(req.CheckIn, req.CheckOut)
	if err != nil {
		return nil, nil, err
	}

	// Listing moderation gate: only approved villas accept bookings.
	villa, err := repo.Villa.FindByID(ctx, villaID)
	if err != nil {
		return nil, nil, wrapError(KindInternal, "look up villa", err)
	}
	if villa == nil {
		return nil, nil, newError(KindNotFound, "villa not found")
	}
	if villa.Status != entity.VillaStatusApproved {
		return nil, nil, newError(KindValidation, "villa is not open for booking")
	}

	conflict, err := repo.Booking.HasDateConflict(ctx, villaID, checkIn, checkOut)
	if err != nil {
		return nil, nil, wrapError(KindInternal, "check availability", err)
	}
	if conflict {
		return nil, nil, newError(KindConflict, "date range unavailable for this villa")
	}

	currency := config.App.Currency
	pricing, err := ComputePricing(PricingInput{
		NightlyRate:     req.NightlyRate,
		Nights:          nights,
		DiscountPercent: req.DiscountPercent,
		CouponDiscount:  req.CouponDiscount,
		ExtraCharges:    req.ExtraCharges,
	}, currency)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now().UTC()
	booking := &entity.Booking{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		VillaID:         villaID,
		UserID:          userID,
		CheckIn:         checkIn,
		CheckOut:        checkOut,
		Adults:          req.Adults,
		Children:        req.Children,
		Pets:            req.Pets,
		NightlyRate:     req.NightlyRate,
		Nights:          nights,
		DiscountPercent: req.DiscountPercent,
		CouponDiscount:  req.CouponDiscount,
		ExtraCharges:    req.ExtraCharges,
		TotalAmount:     pricing.TotalAmount,
		Currency:        currency,
		Status:          entity.BookingStatusPending,
		PaymentStatus:   entity.PaymentStatusCreated,
	}
	if req.CouponCode != "" {
		booking.CouponCode = &req.CouponCode
	}
	if req.PaymentMethod != "" {
		booking.PaymentMethod = &req.PaymentMethod
	}
	if req.ContactNumber != "" {
		booking.ContactNumber = &req.ContactNumber
	}

	return booking, pricing, nil
}

func (s *bookingService) CreateBooking(ctx context.Context, userID string, req *request.CreateBookingRequest) (*response.BookingCreatedResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, newError(KindValidation, "invalid user ID format")
	}

	booking, pricing, err := prepareBooking(ctx, s.repo, s.config, userUUID, req)
	if err != nil {
		return nil, err
	}

	// The exclusion constraint closes the window between the availability
	// check above and this insert.
	if err := s.repo.Booking.Create(ctx, booking); err != nil {
		if err == repository.ErrDateConflict {
			return nil, newError(KindConflict, "date range unavailable for this villa")
		}
		s.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("user_id", userID),
			zap.String("villa_id", req.VillaID),
		)
		return nil, wrapError(KindInternal, "create booking", err)
	}

	// External collaborator write, best-effort.
	if err := s.repo.User.AppendBookingHistory(ctx, userUUID, booking.ID); err != nil {
		s.log.Warn("Failed to append booking history",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
		)
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("villa_id", booking.VillaID.String()),
		zap.String("user_id", userID),
		zap.Int("nights", booking.Nights),
		zap.Int64("total_amount", booking.TotalAmount),
	)

	return &response.BookingCreatedResponse{
		Booking: response.BookingToResponse(booking),
		Pricing: *pricing,
	}, nil
}

func (s *bookingService) GetUserBookings(ctx context.Context, userID string, filter string) ([]response.BookingResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, newError(KindValidation, "invalid user ID format")
	}

	f := repository.BookingFilter(filter)
	switch f {
	case repository.BookingFilterAll, repository.BookingFilterUpcoming,
		repository.BookingFilterPast, repository.BookingFilterIncomplete:
	default:
		return nil, newError(KindValidation, "filter must be one of: upcoming, past, incomplete")
	}

	bookings, err := s.repo.Booking.FindByUserID(ctx, userUUID, f, time.Now().UTC())
	if err != nil {
		s.log.Error("Failed to get user bookings",
			zap.Error(err),
			zap.String("user_id", userID),
			zap.String("filter", filter),
		)
		return nil, wrapError(KindInternal, "get user bookings", err)
	}

	responses := make([]response.BookingResponse, len(bookings))
	for i, booking := range bookings {
		responses[i] = response.BookingToResponse(booking)
	}

	return responses, nil
}

func (s *bookingService) CancelBooking(ctx context.Context, userID, bookingID string, req *request.CancelBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, newError(KindValidation, "validation failed: "+utils.FormatValidationErrors(errs))
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, newError(KindValidation, "invalid user ID format")
	}
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
	if booking.UserID != userUUID {
		return nil, newError(KindUnauthorized, "booking does not belong to this user")
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	if booking.Status != entity.BookingStatusConfirmed || !booking.CheckIn.After(today) {
		return nil, newError(KindNotCancellable, "booking is not cancellable")
	}

	now := time.Now().UTC()
	if err := s.repo.Booking.MarkCancelled(ctx, id, req.Reason, now); err != nil {
		s.log.Error("Failed to cancel booking",
			zap.Error(err),
			zap.String("booking_id", bookingID),
		)
		return nil, wrapError(KindInternal, "cancel booking", err)
	}

	booking.Status = entity.BookingStatusCancelled
	booking.CancelReason = &req.Reason
	booking.CancelledAt = &now
	booking.UpdatedAt = now

	s.log.Info("Booking cancelled",
		zap.String("booking_id", bookingID),
		zap.String("user_id", userID),
	)

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) CheckAvailability(ctx context.Context, villaID string, req *request.AvailabilityRequest) (*response.AvailabilityResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, newError(KindValidation, "validation failed: "+utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(villaID)
	if err != nil {
		return nil, newError(KindValidation, "invalid villa ID format")
	}

	checkIn, checkOut, _, err := parseStayDates(req.CheckIn, req.CheckOut)
	if err != nil {
		return nil, err
	}

	villa, err := s.repo.Villa.FindByID(ctx, id)
	if err != nil {
		return nil, wrapError(KindInternal, "look up villa", err)
	}
	if villa == nil {
		return nil, newError(KindNotFound, "villa not found")
	}

	conflict, err := s.repo.Booking.HasDateConflict(ctx, id, checkIn, checkOut)
	if err != nil {
		return nil, wrapError(KindInternal, "check availability", err)
	}

	return &response.AvailabilityResponse{
		VillaID:   villaID,
		CheckIn:   req.CheckIn,
		CheckOut:  req.CheckOut,
		Available: !conflict,
	}, nil
}

// ==================== ADMIN METHODS ====================

func (s *bookingService) GetBookingByID(ctx context.Context, bookingID string) (*response.BookingResponse, error) {
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

	resp := response.BookingToResponse(booking)
	return &resp, nil
}
