package service

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ndewijer/Budget-Projection-Backend/internal/model"
	"github.com/ndewijer/Budget-Projection-Backend/internal/projection"
	"github.com/ndewijer/Budget-Projection-Backend/internal/repository"
)

// SnapshotLoader centralizes the loading of all data required for a projection.
// It reads every entity set the engine consumes and assembles them into one
// read-only projection.Input.
type SnapshotLoader struct {
	accountRepo      *repository.AccountRepository
	paycheckRepo     *repository.PaycheckRepository
	billRepo         *repository.BillRepository
	bucketRepo       *repository.BucketRepository
	transactionRepo  *repository.TransactionRepository
	defaultAccountID string
}

// NewSnapshotLoader creates a new SnapshotLoader with the provided dependencies.
// defaultAccountID names the account that receives paychecks and pays bills without
// an explicit account; empty means the first checking account.
func NewSnapshotLoader(
	accountRepo *repository.AccountRepository,
	paycheckRepo *repository.PaycheckRepository,
	billRepo *repository.BillRepository,
	bucketRepo *repository.BucketRepository,
	transactionRepo *repository.TransactionRepository,
	defaultAccountID string,
) *SnapshotLoader {
	return &SnapshotLoader{
		accountRepo:      accountRepo,
		paycheckRepo:     paycheckRepo,
		billRepo:         billRepo,
		bucketRepo:       bucketRepo,
		transactionRepo:  transactionRepo,
		defaultAccountID: defaultAccountID,
	}
}

// Load reads the snapshot for the window [startDate, endDate).
//
// Data Loading Strategy:
//   - The seven entity sets are read concurrently; the first failure cancels the rest
//   - Only active bills are loaded
//   - Transactions and overrides are loaded without a date bound: an unbalanced
//     paycheck can pull the effective start before startDate, and the override of
//     an occurrence just before endDate may be recorded after it
//
// Parameters:
//   - ctx: Context for cancellation
//   - startDate: Requested window start
//   - endDate: Requested window end (exclusive)
//
// Returns the assembled input, or the first load error.
func (l *SnapshotLoader) Load(ctx context.Context, startDate, endDate time.Time) (projection.Input, error) {
	in := projection.Input{
		StartDate:        startDate,
		EndDate:          endDate,
		DefaultAccountID: l.defaultAccountID,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		accounts, err := l.accountRepo.GetAccounts(gctx)
		if err != nil {
			return fmt.Errorf("failed to load accounts: %w", err)
		}
		in.Accounts = accounts
		return nil
	})

	g.Go(func() error {
		paychecks, err := l.paycheckRepo.GetPaychecks(gctx)
		if err != nil {
			return fmt.Errorf("failed to load paychecks: %w", err)
		}
		in.Paychecks = paychecks
		return nil
	})

	g.Go(func() error {
		bills, err := l.billRepo.GetBills(gctx, false)
		if err != nil {
			return fmt.Errorf("failed to load bills: %w", err)
		}
		in.Bills = bills
		return nil
	})

	g.Go(func() error {
		buckets, err := l.bucketRepo.GetBuckets(gctx)
		if err != nil {
			return fmt.Errorf("failed to load buckets: %w", err)
		}
		in.Buckets = buckets
		return nil
	})

	g.Go(func() error {
		periodBills, err := l.billRepo.GetPeriodBills(gctx, time.Time{}, endDate)
		if err != nil {
			return fmt.Errorf("failed to load period bills: %w", err)
		}
		in.PeriodBills = periodBills
		return nil
	})

	g.Go(func() error {
		periodBuckets, err := l.bucketRepo.GetPeriodBuckets(gctx, time.Time{}, endDate)
		if err != nil {
			return fmt.Errorf("failed to load period buckets: %w", err)
		}
		in.PeriodBuckets = periodBuckets
		return nil
	})

	g.Go(func() error {
		transactions, err := l.transactionRepo.GetTransactions(gctx, model.TransactionFilter{})
		if err != nil {
			return fmt.Errorf("failed to load transactions: %w", err)
		}
		in.Transactions = transactions
		return nil
	})

	if err := g.Wait(); err != nil {
		return projection.Input{}, err
	}

	return in, nil
}
