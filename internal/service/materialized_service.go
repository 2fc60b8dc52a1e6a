package service

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/ndewijer/Budget-Projection-Backend/internal/apperrors"
	"github.com/ndewijer/Budget-Projection-Backend/internal/logger"
	"github.com/ndewijer/Budget-Projection-Backend/internal/model"
	"github.com/ndewijer/Budget-Projection-Backend/internal/projection"
	"github.com/ndewijer/Budget-Projection-Backend/internal/repository"
)

// maxRefreshAttempts bounds how often a refresh restarts when data changes under it.
const maxRefreshAttempts = 3

// MaterializedService keeps a stored copy of the default projection window and serves
// reads from it, falling back to on-demand calculation when the stored copy does not
// match the request or has been invalidated by a write.
type MaterializedService struct {
	materializedRepo  *repository.MaterializedRepository
	projectionService *ProjectionService
	engine            *projection.Engine
	generation        atomic.Int64
}

// NewMaterializedService creates a new MaterializedService with the provided dependencies.
func NewMaterializedService(
	materializedRepo *repository.MaterializedRepository,
	projectionService *ProjectionService,
) *MaterializedService {
	return &MaterializedService{
		materializedRepo:  materializedRepo,
		projectionService: projectionService,
		engine:            projection.NewEngine(),
	}
}

// NotifyChanged invalidates the stored projection after a write to projection inputs.
// Any refresh already in flight discards its result instead of storing stale data.
func (s *MaterializedService) NotifyChanged(ctx context.Context, reason string) {
	s.generation.Add(1)

	log := logger.WithComponent(logger.FromContext(ctx), "materialized")
	if err := s.materializedRepo.ClearProjection(ctx); err != nil {
		log.Error().Err(err).Str("reason", reason).Msg("Failed to invalidate materialized projection")
		return
	}
	log.Debug().Str("reason", reason).Msg("Materialized projection invalidated")
}

// Refresh recalculates the default window and stores it.
//
// Refresh Logic:
//  1. Records the current change generation
//  2. Loads the snapshot and runs the latched engine
//  3. Discards the result and starts over if a write happened meanwhile
//  4. Atomically replaces the stored projection
//
// Overlapping refreshes collapse: a refresh started while another is calculating
// returns apperrors.ErrRefreshInProgress without doing any work.
//
// Returns the metadata of the stored projection.
func (s *MaterializedService) Refresh(ctx context.Context) (model.ProjectionRefresh, error) {
	log := logger.WithComponent(logger.FromContext(ctx), "materialized")
	start, end := s.projectionService.Window(time.Time{}, time.Time{})

	for attempt := 1; attempt <= maxRefreshAttempts; attempt++ {
		generation := s.generation.Load()

		in, err := s.projectionService.LoadInput(ctx, start, end)
		if err != nil {
			return model.ProjectionRefresh{}, fmt.Errorf("%w: %w", apperrors.ErrFailedToRefreshProjection, err)
		}

		result, err := s.engine.Project(in)
		if err != nil {
			return model.ProjectionRefresh{}, fmt.Errorf("%w: %w", apperrors.ErrFailedToRefreshProjection, err)
		}
		if result == nil {
			return model.ProjectionRefresh{}, apperrors.ErrRefreshInProgress
		}

		if s.generation.Load() != generation {
			log.Info().Int("attempt", attempt).Msg("Projection inputs changed during refresh, recalculating")
			continue
		}

		info := model.ProjectionRefresh{
			StartDate:          start,
			EndDate:            end,
			EffectiveStartDate: result.StartDate,
			PeriodStarts:       result.PeriodStarts,
			CalculatedAt:       s.projectionService.now().UTC(),
		}
		if err := s.materializedRepo.ReplaceProjection(ctx, &info, result.Items); err != nil {
			return model.ProjectionRefresh{}, fmt.Errorf("%w: %w", apperrors.ErrFailedToRefreshProjection, err)
		}

		log.Info().
			Int64("generation", info.Generation).
			Int("items", info.ItemCount).
			Str("start_date", start.Format("2006-01-02")).
			Str("end_date", end.Format("2006-01-02")).
			Msg("Materialized projection refreshed")
		return info, nil
	}

	return model.ProjectionRefresh{}, fmt.Errorf("%w: inputs kept changing", apperrors.ErrFailedToRefreshProjection)
}

// GetRefreshInfo returns metadata of the stored projection.
// Returns apperrors.ErrProjectionNotMaterialized when nothing is stored.
func (s *MaterializedService) GetRefreshInfo(ctx context.Context) (model.ProjectionRefresh, error) {
	return s.materializedRepo.GetRefreshInfo(ctx)
}

// GetProjectionMaterialized reads the stored projection for exactly the window [startDate, endDate).
//
// Returns apperrors.ErrProjectionNotMaterialized when the stored projection was computed
// for a different window or has been invalidated.
func (s *MaterializedService) GetProjectionMaterialized(ctx context.Context, startDate, endDate time.Time) (*model.Projection, error) {
	info, err := s.materializedRepo.GetRefreshInfo(ctx)
	if err != nil {
		return nil, err
	}
	if !coversWindow(info, startDate, endDate) {
		return nil, apperrors.ErrProjectionNotMaterialized
	}

	result := &model.Projection{
		StartDate:    info.EffectiveStartDate,
		EndDate:      info.EndDate,
		PeriodStarts: info.PeriodStarts,
		Items:        make([]model.ProjectionItem, 0, info.ItemCount),
		CalculatedAt: info.CalculatedAt,
		Materialized: true,
	}

	err = s.materializedRepo.StreamItems(ctx, info.EffectiveStartDate, info.EndDate.AddDate(0, 0, 1),
		func(item model.ProjectionItem) error {
			result.Items = append(result.Items, item)
			return nil
		},
	)
	if err != nil {
		return nil, err
	}

	if err := s.projectionService.AttachLineTokens(result); err != nil {
		return nil, err
	}
	return result, nil
}

// GetProjectionWithFallback tries the stored projection first and falls back to
// on-demand calculation when it does not cover the request.
//
// Parameters:
//   - ctx: Context for cancellation
//   - startDate: Window start; zero means today
//   - endDate: Window end (exclusive); zero means start plus the horizon
//
// Returns the projection using the fastest available method.
func (s *MaterializedService) GetProjectionWithFallback(ctx context.Context, startDate, endDate time.Time) (*model.Projection, error) {
	startDate, endDate = s.projectionService.Window(startDate, endDate)

	materialized, err := s.GetProjectionMaterialized(ctx, startDate, endDate)
	if err == nil {
		return materialized, nil
	}
	if !errors.Is(err, apperrors.ErrProjectionNotMaterialized) {
		log := logger.WithComponent(logger.FromContext(ctx), "materialized")
		log.Warn().Err(err).
			Msg("Reading materialized projection failed, calculating on demand")
	}

	return s.projectionService.Calculate(ctx, startDate, endDate)
}

// coversWindow reports whether the stored projection was computed for [startDate, endDate).
// The effective start depends on the requested start, so only an identical window can be reused.
func coversWindow(info model.ProjectionRefresh, startDate, endDate time.Time) bool {
	return info.StartDate.Equal(startDate) && info.EndDate.Equal(endDate)
}
