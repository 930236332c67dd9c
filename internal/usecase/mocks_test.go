package usecase

import (
	"context"
	"sync"
	"time"

	"villa-booking/internal/data/entity"
	"villa-booking/internal/data/repository"
	"villa-booking/pkg/payment"
	"villa-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// --- Mock BookingRepository ---

type mockBookingRepo struct {
	createFn        func(ctx context.Context, booking *entity.Booking) error
	findByIDFn      func(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	findByKeyFn     func(ctx context.Context, userID uuid.UUID, key string) (*entity.Booking, error)
	findForVerifyFn func(ctx context.Context, bookingID uuid.UUID, orderID string, userID uuid.UUID) (*entity.Booking, error)
	findByUserFn    func(ctx context.Context, userID uuid.UUID, filter repository.BookingFilter, now time.Time) ([]*entity.Booking, error)
	updateFn        func(ctx context.Context, booking *entity.Booking) error
	hasConflictFn   func(ctx context.Context, villaID uuid.UUID, checkIn, checkOut time.Time) (bool, error)
	markCancelledFn func(ctx context.Context, bookingID uuid.UUID, reason string, at time.Time) error
	markPaidFn      func(ctx context.Context, bookingID uuid.UUID, paymentID, signature string, paidAt time.Time) error
	markFailedFn    func(ctx context.Context, bookingID uuid.UUID, lastError string) error
	promoteFn       func(ctx context.Context, before time.Time) (int64, error)

	mu            sync.Mutex
	created       []*entity.Booking
	failedReasons []string
}

func (m *mockBookingRepo) Create(ctx context.Context, booking *entity.Booking) error {
	if m.createFn != nil {
		return m.createFn(ctx, booking)
	}
	m.mu.Lock()
	m.created = append(m.created, booking)
	m.mu.Unlock()
	return nil
}

func (m *mockBookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockBookingRepo) FindByIdempotencyKey(ctx context.Context, userID uuid.UUID, key string) (*entity.Booking, error) {
	if m.findByKeyFn != nil {
		return m.findByKeyFn(ctx, userID, key)
	}
	return nil, nil
}

func (m *mockBookingRepo) FindForVerification(ctx context.Context, bookingID uuid.UUID, orderID string, userID uuid.UUID) (*entity.Booking, error) {
	if m.findForVerifyFn != nil {
		return m.findForVerifyFn(ctx, bookingID, orderID, userID)
	}
	return nil, nil
}

func (m *mockBookingRepo) FindByUserID(ctx context.Context, userID uuid.UUID, filter repository.BookingFilter, now time.Time) ([]*entity.Booking, error) {
	if m.findByUserFn != nil {
		return m.findByUserFn(ctx, userID, filter, now)
	}
	return nil, nil
}

func (m *mockBookingRepo) Update(ctx context.Context, booking *entity.Booking) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, booking)
	}
	return nil
}

func (m *mockBookingRepo) HasDateConflict(ctx context.Context, villaID uuid.UUID, checkIn, checkOut time.Time) (bool, error) {
	if m.hasConflictFn != nil {
		return m.hasConflictFn(ctx, villaID, checkIn, checkOut)
	}
	return false, nil
}

func (m *mockBookingRepo) MarkCancelled(ctx context.Context, bookingID uuid.UUID, reason string, at time.Time) error {
	if m.markCancelledFn != nil {
		return m.markCancelledFn(ctx, bookingID, reason, at)
	}
	return nil
}

func (m *mockBookingRepo) MarkPaid(ctx context.Context, bookingID uuid.UUID, paymentID, signature string, paidAt time.Time) error {
	if m.markPaidFn != nil {
		return m.markPaidFn(ctx, bookingID, paymentID, signature, paidAt)
	}
	return nil
}

func (m *mockBookingRepo) MarkPaymentFailed(ctx context.Context, bookingID uuid.UUID, lastError string) error {
	m.mu.Lock()
	m.failedReasons = append(m.failedReasons, lastError)
	m.mu.Unlock()
	if m.markFailedFn != nil {
		return m.markFailedFn(ctx, bookingID, lastError)
	}
	return nil
}

func (m *mockBookingRepo) PromoteCompleted(ctx context.Context, before time.Time) (int64, error) {
	if m.promoteFn != nil {
		return m.promoteFn(ctx, before)
	}
	return 0, nil
}

func (m *mockBookingRepo) createdBookings() []*entity.Booking {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*entity.Booking(nil), m.created...)
}

func (m *mockBookingRepo) failures() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.failedReasons...)
}

// --- Mock VillaRepository ---

type mockVillaRepo struct {
	findByIDFn func(ctx context.Context, id uuid.UUID) (*entity.Villa, error)
}

func (m *mockVillaRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Villa, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, nil
}

// --- Mock UserRepository ---

type mockUserRepo struct {
	findByIDFn func(ctx context.Context, id uuid.UUID) (*entity.User, error)
	appendFn   func(ctx context.Context, userID, bookingID uuid.UUID) error
}

func (m *mockUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return &entity.User{
		Base:  entity.Base{ID: id},
		Name:  "Test User",
		Email: "test@example.com",
		Role:  "customer",
	}, nil
}

func (m *mockUserRepo) AppendBookingHistory(ctx context.Context, userID, bookingID uuid.UUID) error {
	if m.appendFn != nil {
		return m.appendFn(ctx, userID, bookingID)
	}
	return nil
}

// --- Mock SessionRepository ---

type mockSessionRepo struct {
	findValidFn func(ctx context.Context, token string) (*entity.Session, error)
}

func (m *mockSessionRepo) FindValidSession(ctx context.Context, token string) (*entity.Session, error) {
	if m.findValidFn != nil {
		return m.findValidFn(ctx, token)
	}
	return nil, nil
}

// --- Mock payment provider ---

type mockProvider struct {
	createOrderFn func(ctx context.Context, amount int64, currency, receipt string, notes map[string]string) (*payment.Order, error)

	mu    sync.Mutex
	calls int
}

func (m *mockProvider) Name() string { return "razorpay" }

func (m *mockProvider) CreateOrder(ctx context.Context, amount int64, currency, receipt string, notes map[string]string) (*payment.Order, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if m.createOrderFn != nil {
		return m.createOrderFn(ctx, amount, currency, receipt, notes)
	}
	return &payment.Order{ID: "order_test123", Amount: amount, Currency: currency}, nil
}

func (m *mockProvider) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// --- Mock Notifier ---

type notifyCall struct {
	email string
	kind  NotificationKind
}

type mockNotifier struct {
	notifyFn func(ctx context.Context, email string, booking *entity.Booking, kind NotificationKind) error

	mu    sync.Mutex
	calls []notifyCall
}

func (m *mockNotifier) Notify(ctx context.Context, email string, booking *entity.Booking, kind NotificationKind) error {
	m.mu.Lock()
	m.calls = append(m.calls, notifyCall{email: email, kind: kind})
	m.mu.Unlock()
	if m.notifyFn != nil {
		return m.notifyFn(ctx, email, booking, kind)
	}
	return nil
}

func (m *mockNotifier) notifications() []notifyCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]notifyCall(nil), m.calls...)
}

// --- Test fixture ---

type fixture struct {
	repo     *repository.Repository
	bookings *mockBookingRepo
	villas   *mockVillaRepo
	users    *mockUserRepo
	provider *mockProvider
	notifier *mockNotifier
	config   *utils.Config
}

func newFixture() *fixture {
	bookings := &mockBookingRepo{}
	villas := &mockVillaRepo{}
	users := &mockUserRepo{}

	return &fixture{
		repo: &repository.Repository{
			User:    users,
			Session: &mockSessionRepo{},
			Villa:   villas,
			Booking: bookings,
		},
		bookings: bookings,
		villas:   villas,
		users:    users,
		provider: &mockProvider{},
		notifier: &mockNotifier{},
		config: &utils.Config{
			App:      utils.AppConfig{Currency: "INR"},
			Razorpay: utils.RazorpayConfig{KeyID: "rzp_test_key", KeySecret: "test_secret"},
		},
	}
}

func (f *fixture) bookingService() BookingService {
	return NewBookingService(f.repo, f.config, zap.NewNop())
}

func (f *fixture) paymentService() PaymentService {
	return NewPaymentService(f.repo, f.config, f.provider, f.notifier, zap.NewNop())
}

func (f *fixture) settlementService() SettlementService {
	return NewSettlementService(f.repo, f.notifier, zap.NewNop())
}

// approvedVilla installs an approved villa and returns its ID.
func (f *fixture) approvedVilla() uuid.UUID {
	id := uuid.New()
	f.villas.findByIDFn = func(ctx context.Context, villaID uuid.UUID) (*entity.Villa, error) {
		if villaID == id {
			return &entity.Villa{
				Base:        entity.Base{ID: id},
				HostID:      uuid.New(),
				Name:        "Sea Breeze",
				City:        "Goa",
				NightlyRate: 5000,
				Status:      entity.VillaStatusApproved,
			}, nil
		}
		return nil, nil
	}
	return id
}
