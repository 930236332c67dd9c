package worker

import (
	"context"
	"fmt"
	"time"

	"villa-booking/internal/data/repository"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"
)

// CompletionSweeper periodically promotes confirmed bookings whose stay has
// ended to completed. Completion is owned by this sweep alone; reads never
// mutate booking state.
type CompletionSweeper struct {
	repo      *repository.Repository
	scheduler gocron.Scheduler
	interval  time.Duration
	log       *zap.Logger
}

func NewCompletionSweeper(repo *repository.Repository, interval time.Duration, log *zap.Logger) (*CompletionSweeper, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}

	return &CompletionSweeper{
		repo:      repo,
		scheduler: scheduler,
		interval:  interval,
		log:       log.With(zap.String("worker", "completion_sweeper")),
	}, nil
}

// Start registers the sweep job and starts the scheduler.
func (s *CompletionSweeper) Start() error {
	_, err := s.scheduler.NewJob(
		gocron.DurationJob(s.interval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			if _, err := s.RunOnce(ctx); err != nil {
				s.log.Error("Completion sweep failed", zap.Error(err))
			}
		}),
	)
	if err != nil {
		return fmt.Errorf("register sweep job: %w", err)
	}

	s.scheduler.Start()
	s.log.Info("Completion sweeper started", zap.Duration("interval", s.interval))
	return nil
}

// RunOnce executes a single sweep and returns the number of promoted bookings.
func (s *CompletionSweeper) RunOnce(ctx context.Context) (int64, error) {
	now := time.Now().UTC()

	promoted, err := s.repo.Booking.PromoteCompleted(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("promote completed bookings: %w", err)
	}

	if promoted > 0 {
		s.log.Info("Promoted past bookings to completed", zap.Int64("count", promoted))
	}

	return promoted, nil
}

// Stop shuts the scheduler down, waiting for a running sweep to finish.
func (s *CompletionSweeper) Stop() error {
	if err := s.scheduler.Shutdown(); err != nil {
		return fmt.Errorf("shutdown scheduler: %w", err)
	}
	s.log.Info("Completion sweeper stopped")
	return nil
}
