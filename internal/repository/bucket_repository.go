package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ndewijer/Budget-Projection-Backend/internal/apperrors"
	"github.com/ndewijer/Budget-Projection-Backend/internal/model"
)

// BucketRepository provides data access methods for the budget_bucket and period_bucket tables.
type BucketRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewBucketRepository creates a new BucketRepository with the provided database connection.
func NewBucketRepository(db *sql.DB) *BucketRepository {
	return &BucketRepository{db: db}
}

// WithTx returns a repository that runs its statements inside tx.
func (r *BucketRepository) WithTx(tx *sql.Tx) *BucketRepository {
	return &BucketRepository{
		db: r.db,
		tx: tx,
	}
}

func (r *BucketRepository) getQuerier() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

// GetBuckets retrieves all budget buckets ordered by name.
func (r *BucketRepository) GetBuckets(ctx context.Context) ([]model.BudgetBucket, error) {
	rows, err := r.getQuerier().QueryContext(ctx, `
		SELECT id, name, expected_amount, account_id
		FROM budget_bucket
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query budget_bucket table: %w", err)
	}
	defer rows.Close()

	buckets := []model.BudgetBucket{}
	for rows.Next() {
		b, err := scanBucket(rows)
		if err != nil {
			return nil, err
		}
		buckets = append(buckets, b)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating budget_bucket table: %w", err)
	}

	return buckets, nil
}

// GetBucket retrieves a single bucket by ID.
// Returns apperrors.ErrBucketNotFound if no bucket exists with that ID.
func (r *BucketRepository) GetBucket(ctx context.Context, id string) (model.BudgetBucket, error) {
	row := r.getQuerier().QueryRowContext(ctx, `
		SELECT id, name, expected_amount, account_id
		FROM budget_bucket
		WHERE id = ?
	`, id)

	b, err := scanBucket(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.BudgetBucket{}, apperrors.ErrBucketNotFound
		}
		return model.BudgetBucket{}, err
	}
	return b, nil
}

func scanBucket(row rowScanner) (model.BudgetBucket, error) {
	var b model.BudgetBucket
	var accountID sql.NullString

	if err := row.Scan(&b.ID, &b.Name, &b.ExpectedAmount, &accountID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return b, err
		}
		return b, fmt.Errorf("failed to scan budget_bucket: %w", err)
	}
	b.AccountID = accountID.String
	return b, nil
}

// InsertBucket inserts a bucket. The caller assigns the ID.
func (r *BucketRepository) InsertBucket(ctx context.Context, b *model.BudgetBucket) error {
	_, err := r.getQuerier().ExecContext(ctx, `
		INSERT INTO budget_bucket (id, name, expected_amount, account_id)
		VALUES (?, ?, ?, ?)
	`, b.ID, b.Name, b.ExpectedAmount.String(), nullString(b.AccountID))
	if err != nil {
		return fmt.Errorf("failed to insert budget_bucket: %w", err)
	}
	return nil
}

// UpdateBucket updates a bucket.
// Returns apperrors.ErrBucketNotFound if no bucket exists with that ID.
func (r *BucketRepository) UpdateBucket(ctx context.Context, b *model.BudgetBucket) error {
	result, err := r.getQuerier().ExecContext(ctx, `
		UPDATE budget_bucket
		SET name = ?, expected_amount = ?, account_id = ?
		WHERE id = ?
	`, b.Name, b.ExpectedAmount.String(), nullString(b.AccountID), b.ID)
	if err != nil {
		return fmt.Errorf("failed to update budget_bucket: %w", err)
	}
	return checkAffected(result, apperrors.ErrBucketNotFound)
}

// DeleteBucket deletes a bucket; its period overrides cascade and transactions lose the association.
// Returns apperrors.ErrBucketNotFound if no bucket exists with that ID.
func (r *BucketRepository) DeleteBucket(ctx context.Context, id string) error {
	result, err := r.getQuerier().ExecContext(ctx, `DELETE FROM budget_bucket WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete budget_bucket: %w", err)
	}
	return checkAffected(result, apperrors.ErrBucketNotFound)
}

// GetPeriodBuckets retrieves per-period bucket overrides with a period date in [startDate, endDate].
// Zero dates leave that side of the range open.
func (r *BucketRepository) GetPeriodBuckets(ctx context.Context, startDate, endDate time.Time) ([]model.PeriodBucket, error) {
	query := `SELECT id, bucket_id, period_date, actual_amount, is_paid FROM period_bucket WHERE 1 = 1`
	var args []any
	if !startDate.IsZero() {
		query += ` AND period_date >= ?`
		args = append(args, formatDate(startDate))
	}
	if !endDate.IsZero() {
		query += ` AND period_date <= ?`
		args = append(args, formatDate(endDate))
	}
	query += ` ORDER BY period_date ASC`

	rows, err := r.getQuerier().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query period_bucket table: %w", err)
	}
	defer rows.Close()

	periodBuckets := []model.PeriodBucket{}
	for rows.Next() {
		var pb model.PeriodBucket
		var periodDateStr string
		if err := rows.Scan(&pb.ID, &pb.BucketID, &periodDateStr, &pb.ActualAmount, &pb.IsPaid); err != nil {
			return nil, fmt.Errorf("failed to scan period_bucket: %w", err)
		}
		if pb.PeriodDate, err = ParseTime(periodDateStr); err != nil {
			return nil, fmt.Errorf("failed to parse period_date: %w", err)
		}
		periodBuckets = append(periodBuckets, pb)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating period_bucket table: %w", err)
	}

	return periodBuckets, nil
}

// UpsertPeriodBucket stores the override for one bucket period, keyed by (bucket_id, period_date).
// The stored row's ID is written back into pb.
func (r *BucketRepository) UpsertPeriodBucket(ctx context.Context, pb *model.PeriodBucket) error {
	query := `
		INSERT INTO period_bucket (id, bucket_id, period_date, actual_amount, is_paid)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(bucket_id, period_date) DO UPDATE SET
			actual_amount = excluded.actual_amount,
			is_paid = excluded.is_paid
		RETURNING id
	`

	err := r.getQuerier().QueryRowContext(ctx, query,
		uuid.New().String(),
		pb.BucketID,
		formatDate(pb.PeriodDate),
		pb.ActualAmount.String(),
		pb.IsPaid,
	).Scan(&pb.ID)
	if err != nil {
		return fmt.Errorf("failed to upsert period_bucket: %w", err)
	}
	return nil
}
