package repository

import (
	"context"
	"fmt"

	"villa-booking/internal/data/entity"
	"villa-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type VillaRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Villa, error)
}

type villaRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewVillaRepository(db database.PgxIface, log *zap.Logger) VillaRepository {
	return &villaRepository{
		db:  db,
		log: log.With(zap.String("repository", "villa")),
	}
}

func (r *villaRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Villa, error) {
	query := `
		SELECT id, host_id, name, city, nightly_rate, status, created_at, updated_at
		FROM villas
		WHERE id = $1
	`

	var villa entity.Villa
	err := r.db.QueryRow(ctx, query, id).Scan(
		&villa.ID,
		&villa.HostID,
		&villa.Name,
		&villa.City,
		&villa.NightlyRate,
		&villa.Status,
		&villa.CreatedAt,
		&villa.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find villa by ID",
			zap.Error(err),
			zap.String("villa_id", id.String()),
		)
		return nil, fmt.Errorf("find villa by ID %s: %w", id.String(), err)
	}

	return &villa, nil
}
