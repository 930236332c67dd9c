package worker

import (
	"context"
	"testing"
	"time"

	"villa-booking/internal/data/repository"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRunOnce(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	repo := repository.NewRepository(mock, zap.NewNop())
	sweeper, err := NewCompletionSweeper(repo, time.Hour, zap.NewNop())
	require.NoError(t, err)

	mock.ExpectExec("UPDATE bookings").
		WithArgs(pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 2))

	promoted, err := sweeper.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), promoted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunOnce_NothingToPromote(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	repo := repository.NewRepository(mock, zap.NewNop())
	sweeper, err := NewCompletionSweeper(repo, time.Hour, zap.NewNop())
	require.NoError(t, err)

	mock.ExpectExec("UPDATE bookings").
		WithArgs(pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	promoted, err := sweeper.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), promoted)
}
