package usecase

import (
	"context"
	"testing"
	"time"

	"villa-booking/internal/data/entity"
	"villa-booking/internal/data/repository"
	"villa-booking/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func futureDate(days int) string {
	return time.Now().UTC().AddDate(0, 0, days).Format("2006-01-02")
}

func validBookingRequest(villaID uuid.UUID) *request.CreateBookingRequest {
	return &request.CreateBookingRequest{
		VillaID:         villaID.String(),
		CheckIn:         futureDate(30),
		CheckOut:        futureDate(33),
		Adults:          2,
		NightlyRate:     5000,
		DiscountPercent: 10,
		CouponDiscount:  500,
		ExtraCharges:    200,
	}
}

func TestCreateBooking_Success(t *testing.T) {
	f := newFixture()
	villaID := f.approvedVilla()
	userID := uuid.New()

	resp, err := f.bookingService().CreateBooking(context.Background(), userID.String(), validBookingRequest(villaID))
	require.NoError(t, err)

	assert.Equal(t, int64(15000), resp.Pricing.SubTotal)
	assert.Equal(t, int64(1500), resp.Pricing.Discount)
	assert.Equal(t, int64(13000), resp.Pricing.TaxableAmount)
	assert.Equal(t, int64(2340), resp.Pricing.Tax)
	assert.Equal(t, int64(15540), resp.Pricing.TotalAmount)
	assert.Equal(t, "INR", resp.Pricing.Currency)

	created := f.bookings.createdBookings()
	require.Len(t, created, 1)
	assert.Equal(t, entity.BookingStatusPending, created[0].Status)
	assert.Equal(t, entity.PaymentStatusCreated, created[0].PaymentStatus)
	assert.Equal(t, 3, created[0].Nights)
	assert.Equal(t, int64(15540), created[0].TotalAmount)
	assert.Equal(t, userID, created[0].UserID)
}

func TestCreateBooking_VillaNotFound(t *testing.T) {
	f := newFixture()
	_ = f.approvedVilla()

	req := validBookingRequest(uuid.New()) // unknown villa
	_, err := f.bookingService().CreateBooking(context.Background(), uuid.New().String(), req)
	require.Error(t, err)
	assert.Equal(t, KindNotFound, Kind(err))
}

func TestCreateBooking_VillaNotApproved(t *testing.T) {
	f := newFixture()
	villaID := uuid.New()
	f.villas.findByIDFn = func(ctx context.Context, id uuid.UUID) (*entity.Villa, error) {
		return &entity.Villa{Base: entity.Base{ID: villaID}, Status: entity.VillaStatusPending}, nil
	}

	_, err := f.bookingService().CreateBooking(context.Background(), uuid.New().String(), validBookingRequest(villaID))
	require.Error(t, err)
	assert.Equal(t, KindValidation, Kind(err))
	assert.Empty(t, f.bookings.createdBookings())
}

func TestCreateBooking_DateConflict(t *testing.T) {
	f := newFixture()
	villaID := f.approvedVilla()
	f.bookings.hasConflictFn = func(ctx context.Context, id uuid.UUID, in, out time.Time) (bool, error) {
		return true, nil
	}

	_, err := f.bookingService().CreateBooking(context.Background(), uuid.New().String(), validBookingRequest(villaID))
	require.Error(t, err)
	assert.Equal(t, KindConflict, Kind(err))
	assert.Empty(t, f.bookings.createdBookings())
}

func TestCreateBooking_InsertRaceLoses(t *testing.T) {
	// Availability check passes but a concurrent insert takes the range
	// first. The exclusion constraint rejects ours at commit time.
	f := newFixture()
	villaID := f.approvedVilla()
	f.bookings.createFn = func(ctx context.Context, b *entity.Booking) error {
		return repository.ErrDateConflict
	}

	_, err := f.bookingService().CreateBooking(context.Background(), uuid.New().String(), validBookingRequest(villaID))
	require.Error(t, err)
	assert.Equal(t, KindConflict, Kind(err))
}

func TestCreateBooking_CheckOutNotAfterCheckIn(t *testing.T) {
	f := newFixture()
	villaID := f.approvedVilla()

	req := validBookingRequest(villaID)
	req.CheckOut = req.CheckIn
	_, err := f.bookingService().CreateBooking(context.Background(), uuid.New().String(), req)
	require.Error(t, err)
	assert.Equal(t, KindValidation, Kind(err))
}

func TestCreateBooking_HistoryWriteFailureIsNonFatal(t *testing.T) {
	f := newFixture()
	villaID := f.approvedVilla()
	f.users.appendFn = func(ctx context.Context, userID, bookingID uuid.UUID) error {
		return assert.AnError
	}

	_, err := f.bookingService().CreateBooking(context.Background(), uuid.New().String(), validBookingRequest(villaID))
	assert.NoError(t, err)
}

func TestGetUserBookings_InvalidFilter(t *testing.T) {
	f := newFixture()

	_, err := f.bookingService().GetUserBookings(context.Background(), uuid.New().String(), "bogus")
	require.Error(t, err)
	assert.Equal(t, KindValidation, Kind(err))
}

func TestGetUserBookings_PassesFilterThrough(t *testing.T) {
	f := newFixture()
	userID := uuid.New()

	var gotFilter repository.BookingFilter
	f.bookings.findByUserFn = func(ctx context.Context, id uuid.UUID, filter repository.BookingFilter, now time.Time) ([]*entity.Booking, error) {
		gotFilter = filter
		return []*entity.Booking{
			{Base: entity.Base{ID: uuid.New()}, UserID: id, Status: entity.BookingStatusConfirmed},
		}, nil
	}

	resp, err := f.bookingService().GetUserBookings(context.Background(), userID.String(), "upcoming")
	require.NoError(t, err)
	assert.Equal(t, repository.BookingFilterUpcoming, gotFilter)
	assert.Len(t, resp, 1)
}

func TestCancelBooking_Success(t *testing.T) {
	f := newFixture()
	userID := uuid.New()
	bookingID := uuid.New()

	f.bookings.findByIDFn = func(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
		return &entity.Booking{
			Base:    entity.Base{ID: bookingID},
			UserID:  userID,
			CheckIn: time.Now().UTC().AddDate(0, 0, 10),
			Status:  entity.BookingStatusConfirmed,
		}, nil
	}

	var cancelled bool
	f.bookings.markCancelledFn = func(ctx context.Context, id uuid.UUID, reason string, at time.Time) error {
		cancelled = true
		assert.Equal(t, "change of plans", reason)
		return nil
	}

	resp, err := f.bookingService().CancelBooking(context.Background(), userID.String(), bookingID.String(),
		&request.CancelBookingRequest{Reason: "change of plans"})
	require.NoError(t, err)
	assert.True(t, cancelled)
	assert.Equal(t, entity.BookingStatusCancelled, resp.Status)
}

func TestCancelBooking_WrongUser(t *testing.T) {
	f := newFixture()
	bookingID := uuid.New()
	f.bookings.findByIDFn = func(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
		return &entity.Booking{
			Base:    entity.Base{ID: bookingID},
			UserID:  uuid.New(),
			CheckIn: time.Now().UTC().AddDate(0, 0, 10),
			Status:  entity.BookingStatusConfirmed,
		}, nil
	}

	_, err := f.bookingService().CancelBooking(context.Background(), uuid.New().String(), bookingID.String(),
		&request.CancelBookingRequest{Reason: "change of plans"})
	require.Error(t, err)
	assert.Equal(t, KindUnauthorized, Kind(err))
}

func TestCancelBooking_NotCancellable(t *testing.T) {
	userID := uuid.New()
	bookingID := uuid.New()

	cases := []struct {
		name    string
		status  entity.BookingStatus
		checkIn time.Time
	}{
		{"pending booking", entity.BookingStatusPending, time.Now().UTC().AddDate(0, 0, 10)},
		{"awaiting confirmation", entity.BookingStatusPaidAwaitingConfirmation, time.Now().UTC().AddDate(0, 0, 10)},
		{"completed booking", entity.BookingStatusCompleted, time.Now().UTC().AddDate(0, 0, -10)},
		{"stay already started", entity.BookingStatusConfirmed, time.Now().UTC().AddDate(0, 0, -1)},
		{"check-in today", entity.BookingStatusConfirmed, time.Now().UTC().Truncate(24 * time.Hour)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture()
			f.bookings.findByIDFn = func(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
				return &entity.Booking{
					Base:    entity.Base{ID: bookingID},
					UserID:  userID,
					CheckIn: tc.checkIn,
					Status:  tc.status,
				}, nil
			}

			_, err := f.bookingService().CancelBooking(context.Background(), userID.String(), bookingID.String(),
				&request.CancelBookingRequest{Reason: "change of plans"})
			require.Error(t, err)
			assert.Equal(t, KindNotCancellable, Kind(err))
		})
	}
}

func TestCancelBooking_NotFound(t *testing.T) {
	f := newFixture()

	_, err := f.bookingService().CancelBooking(context.Background(), uuid.New().String(), uuid.New().String(),
		&request.CancelBookingRequest{Reason: "change of plans"})
	require.Error(t, err)
	assert.Equal(t, KindNotFound, Kind(err))
}

func TestCheckAvailability(t *testing.T) {
	f := newFixture()
	villaID := f.approvedVilla()

	resp, err := f.bookingService().CheckAvailability(context.Background(), villaID.String(),
		&request.AvailabilityRequest{CheckIn: futureDate(30), CheckOut: futureDate(33)})
	require.NoError(t, err)
	assert.True(t, resp.Available)

	f.bookings.hasConflictFn = func(ctx context.Context, id uuid.UUID, in, out time.Time) (bool, error) {
		return true, nil
	}

	resp, err = f.bookingService().CheckAvailability(context.Background(), villaID.String(),
		&request.AvailabilityRequest{CheckIn: futureDate(30), CheckOut: futureDate(33)})
	require.NoError(t, err)
	assert.False(t, resp.Available)
}

func TestCheckAvailability_HalfOpenRangePassedToRepo(t *testing.T) {
	f := newFixture()
	villaID := f.approvedVilla()

	var gotIn, gotOut time.Time
	f.bookings.hasConflictFn = func(ctx context.Context, id uuid.UUID, in, out time.Time) (bool, error) {
		gotIn, gotOut = in, out
		return false, nil
	}

	_, err := f.bookingService().CheckAvailability(context.Background(), villaID.String(),
		&request.AvailabilityRequest{CheckIn: "2026-10-01", CheckOut: "2026-10-04"})
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC), gotIn)
	assert.Equal(t, time.Date(2026, 10, 4, 0, 0, 0, 0, time.UTC), gotOut)
}

func TestGetBookingByID(t *testing.T) {
	f := newFixture()
	bookingID := uuid.New()
	f.bookings.findByIDFn = func(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
		if id == bookingID {
			return &entity.Booking{Base: entity.Base{ID: bookingID}, Status: entity.BookingStatusConfirmed}, nil
		}
		return nil, nil
	}

	resp, err := f.bookingService().GetBookingByID(context.Background(), bookingID.String())
	require.NoError(t, err)
	assert.Equal(t, bookingID.String(), resp.ID)

	_, err = f.bookingService().GetBookingByID(context.Background(), uuid.New().String())
	require.Error(t, err)
	assert.Equal(t, KindNotFound, Kind(err))
}
