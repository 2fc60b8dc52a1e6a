package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ndewijer/Budget-Projection-Backend/internal/api/request"
	"github.com/ndewijer/Budget-Projection-Backend/internal/model"
	"github.com/ndewijer/Budget-Projection-Backend/internal/repository"
	"github.com/ndewijer/Budget-Projection-Backend/internal/validation"
)

// BucketService handles budget bucket business logic operations.
type BucketService struct {
	bucketRepo  *repository.BucketRepository
	accountRepo *repository.AccountRepository
	notifier    ChangeNotifier
}

// NewBucketService creates a new BucketService with the provided repository dependencies.
func NewBucketService(
	bucketRepo *repository.BucketRepository,
	accountRepo *repository.AccountRepository,
	notifier ChangeNotifier,
) *BucketService {
	return &BucketService{
		bucketRepo:  bucketRepo,
		accountRepo: accountRepo,
		notifier:    notifierOrNoop(notifier),
	}
}

// GetBuckets retrieves all budget buckets.
func (s *BucketService) GetBuckets(ctx context.Context) ([]model.BudgetBucket, error) {
	return s.bucketRepo.GetBuckets(ctx)
}

// GetBucket retrieves a single bucket by ID.
// Returns apperrors.ErrBucketNotFound if the bucket doesn't exist.
func (s *BucketService) GetBucket(ctx context.Context, id string) (model.BudgetBucket, error) {
	return s.bucketRepo.GetBucket(ctx, id)
}

// CreateBucket creates a new budget bucket.
func (s *BucketService) CreateBucket(ctx context.Context, req request.CreateBucketRequest) (*model.BudgetBucket, error) {
	bucket := &model.BudgetBucket{
		ID:             uuid.New().String(),
		Name:           req.Name,
		ExpectedAmount: req.ExpectedAmount,
		AccountID:      req.AccountID,
	}

	if err := checkAccountRefs(ctx, s.accountRepo, map[string]string{"accountId": bucket.AccountID}); err != nil {
		return nil, err
	}

	if err := s.bucketRepo.InsertBucket(ctx, bucket); err != nil {
		return nil, fmt.Errorf("failed to create bucket: %w", err)
	}

	s.notifier.NotifyChanged(ctx, "bucket created")
	return bucket, nil
}

// UpdateBucket updates an existing bucket with the provided fields.
// Only provided fields in the request are updated; an empty accountId clears it.
func (s *BucketService) UpdateBucket(ctx context.Context, id string, req request.UpdateBucketRequest) (*model.BudgetBucket, error) {
	bucket, err := s.bucketRepo.GetBucket(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		bucket.Name = *req.Name
	}
	if req.ExpectedAmount != nil {
		bucket.ExpectedAmount = *req.ExpectedAmount
	}
	if req.AccountID != nil {
		bucket.AccountID = *req.AccountID
	}

	if err := checkAccountRefs(ctx, s.accountRepo, map[string]string{"accountId": bucket.AccountID}); err != nil {
		return nil, err
	}

	if err := s.bucketRepo.UpdateBucket(ctx, &bucket); err != nil {
		return nil, fmt.Errorf("failed to update bucket: %w", err)
	}

	s.notifier.NotifyChanged(ctx, "bucket updated")
	return &bucket, nil
}

// DeleteBucket removes a bucket. Its period overrides are removed with it and
// transactions recorded against it lose their association.
//
// Returns apperrors.ErrBucketNotFound if the bucket doesn't exist.
func (s *BucketService) DeleteBucket(ctx context.Context, id string) error {
	if err := s.bucketRepo.DeleteBucket(ctx, id); err != nil {
		return err
	}

	s.notifier.NotifyChanged(ctx, "bucket deleted")
	return nil
}

// GetPeriodBuckets retrieves per-period bucket overrides with a period date in [startDate, endDate].
func (s *BucketService) GetPeriodBuckets(ctx context.Context, startDate, endDate time.Time) ([]model.PeriodBucket, error) {
	return s.bucketRepo.GetPeriodBuckets(ctx, startDate, endDate)
}

// SetPeriodBucket records the amount granted to a bucket for one pay period.
// An existing override for the same period is replaced.
//
// Returns the stored override or apperrors.ErrBucketNotFound if the bucket doesn't exist.
func (s *BucketService) SetPeriodBucket(ctx context.Context, bucketID string, req request.PeriodBucketRequest) (*model.PeriodBucket, error) {
	if _, err := s.bucketRepo.GetBucket(ctx, bucketID); err != nil {
		return nil, err
	}

	periodDate, err := validation.ParseDate(req.PeriodDate)
	if err != nil {
		return nil, err
	}

	periodBucket := &model.PeriodBucket{
		BucketID:     bucketID,
		PeriodDate:   periodDate,
		ActualAmount: req.ActualAmount,
		IsPaid:       req.IsPaid,
	}

	if err := s.bucketRepo.UpsertPeriodBucket(ctx, periodBucket); err != nil {
		return nil, err
	}

	s.notifier.NotifyChanged(ctx, "period bucket set")
	return periodBucket, nil
}
