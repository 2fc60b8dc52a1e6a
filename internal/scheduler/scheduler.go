// Package scheduler runs the periodic refresh of the materialized projection.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/ndewijer/Budget-Projection-Backend/internal/apperrors"
	"github.com/ndewijer/Budget-Projection-Backend/internal/logger"
	"github.com/ndewijer/Budget-Projection-Backend/internal/model"
)

// Refresher recalculates and stores the materialized projection.
type Refresher interface {
	Refresh(ctx context.Context) (model.ProjectionRefresh, error)
}

// Scheduler triggers a projection refresh on a cron schedule.
type Scheduler struct {
	cron      *cron.Cron
	refresher Refresher
	logger    zerolog.Logger
	timeout   time.Duration
}

// New creates a scheduler that refreshes on spec, a standard five-field cron expression
// evaluated in UTC. Each run is bounded by timeout.
func New(spec string, refresher Refresher, log zerolog.Logger, timeout time.Duration) (*Scheduler, error) {
	s := &Scheduler{
		cron:      cron.New(cron.WithLocation(time.UTC), cron.WithChain(cron.SkipIfStillRunning(cronLogger{log}))),
		refresher: refresher,
		logger:    logger.WithComponent(log, "scheduler"),
		timeout:   timeout,
	}

	if _, err := s.cron.AddFunc(spec, s.run); err != nil {
		return nil, fmt.Errorf("invalid refresh schedule %q: %w", spec, err)
	}
	return s, nil
}

// Start begins running scheduled refreshes in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
	for _, e := range s.cron.Entries() {
		s.logger.Info().Time("next_run", e.Next).Msg("Projection refresh scheduled")
	}
}

// Stop prevents further runs and waits for a running refresh to finish or ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		s.logger.Warn().Msg("Scheduler stop timed out with a refresh still running")
	}
}

// RunNow performs one refresh immediately, outside the schedule.
func (s *Scheduler) RunNow() {
	s.run()
}

func (s *Scheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	ctx = logger.WithContext(ctx, s.logger)

	started := time.Now()
	info, err := s.refresher.Refresh(ctx)
	switch {
	case errors.Is(err, apperrors.ErrRefreshInProgress):
		s.logger.Info().Msg("Projection refresh skipped, another refresh is running")
	case err != nil:
		s.logger.Error().Err(err).Msg("Scheduled projection refresh failed")
	default:
		s.logger.Info().
			Int64("generation", info.Generation).
			Int("items", info.ItemCount).
			Dur("duration", time.Since(started)).
			Msg("Scheduled projection refresh completed")
	}
}

// cronLogger adapts zerolog to the cron.Logger interface.
type cronLogger struct {
	log zerolog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.log.Debug().Fields(keysAndValues).Msg(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.log.Error().Err(err).Fields(keysAndValues).Msg(msg)
}
