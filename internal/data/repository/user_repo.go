package repository

import (
	"context"
	"fmt"
	"time"

	"villa-booking/internal/data/entity"
	"villa-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	AppendBookingHistory(ctx context.Context, userID, bookingID uuid.UUID) error
}

type userRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewUserRepository(db database.PgxIface, log *zap.Logger) UserRepository {
	return &userRepository{
		db:  db,
		log: log.With(zap.String("repository", "user")),
	}
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	query := `
		SELECT id, name, email, role, contact_number, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	var user entity.User
	err := r.db.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Role,
		&user.ContactNumber,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find user by ID",
			zap.Error(err),
			zap.String("user_id", id.String()),
		)
		return nil, fmt.Errorf("find user by ID %s: %w", id.String(), err)
	}

	return &user, nil
}

// AppendBookingHistory records a booking in the user's history collection.
// The write is idempotent; callers treat failures as non-fatal.
func (r *userRepository) AppendBookingHistory(ctx context.Context, userID, bookingID uuid.UUID) error {
	query := `
		INSERT INTO user_booking_history (user_id, booking_id, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, booking_id) DO NOTHING
	`

	_, err := r.db.Exec(ctx, query, userID, bookingID, time.Now().UTC())
	if err != nil {
		r.log.Error("Failed to append booking history",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("booking_id", bookingID.String()),
		)
		return fmt.Errorf("append booking %s to user %s history: %w", bookingID.String(), userID.String(), err)
	}

	return nil
}
