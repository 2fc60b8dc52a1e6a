package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ndewijer/Budget-Projection-Backend/internal/api/request"
	"github.com/ndewijer/Budget-Projection-Backend/internal/apperrors"
	"github.com/ndewijer/Budget-Projection-Backend/internal/model"
	"github.com/ndewijer/Budget-Projection-Backend/internal/repository"
	"github.com/ndewijer/Budget-Projection-Backend/internal/validation"
)

// TransactionService handles ad-hoc transaction business logic operations.
type TransactionService struct {
	transactionRepo *repository.TransactionRepository
	accountRepo     *repository.AccountRepository
	paycheckRepo    *repository.PaycheckRepository
	bucketRepo      *repository.BucketRepository
	notifier        ChangeNotifier
}

// NewTransactionService creates a new TransactionService with the provided repository dependencies.
func NewTransactionService(
	transactionRepo *repository.TransactionRepository,
	accountRepo *repository.AccountRepository,
	paycheckRepo *repository.PaycheckRepository,
	bucketRepo *repository.BucketRepository,
	notifier ChangeNotifier,
) *TransactionService {
	return &TransactionService{
		transactionRepo: transactionRepo,
		accountRepo:     accountRepo,
		paycheckRepo:    paycheckRepo,
		bucketRepo:      bucketRepo,
		notifier:        notifierOrNoop(notifier),
	}
}

// GetTransactions retrieves transactions dated within the filter's range, sorted by date.
func (s *TransactionService) GetTransactions(ctx context.Context, filter model.TransactionFilter) ([]model.AdHocTransaction, error) {
	return s.transactionRepo.GetTransactions(ctx, filter)
}

// GetTransaction retrieves a single transaction by ID.
// Returns apperrors.ErrTransactionNotFound if the transaction doesn't exist.
func (s *TransactionService) GetTransaction(ctx context.Context, id string) (model.AdHocTransaction, error) {
	return s.transactionRepo.GetTransaction(ctx, id)
}

// CreateTransaction records a real transaction.
// Linking it to a paycheck makes it override that paycheck's projected occurrence;
// linking it to a bucket makes it draw down that bucket's period allowance.
//
// Parameters:
//   - ctx: Context for the operation
//   - req: CreateTransactionRequest, already validated
//
// Returns the created transaction, a *validation.Error if a referenced account, paycheck
// or bucket doesn't exist, or an error if creation fails.
func (s *TransactionService) CreateTransaction(ctx context.Context, req request.CreateTransactionRequest) (*model.AdHocTransaction, error) {
	date, err := validation.ParseDate(req.Date)
	if err != nil {
		return nil, err
	}
	occurrence, err := validation.ParseOptionalDate(req.PaycheckOccurrenceDate)
	if err != nil {
		return nil, err
	}
	periodDate, err := validation.ParseOptionalDate(req.PeriodDate)
	if err != nil {
		return nil, err
	}

	transaction := &model.AdHocTransaction{
		ID:                     uuid.New().String(),
		Description:            req.Description,
		Amount:                 req.Amount,
		Date:                   date,
		AccountID:              req.AccountID,
		ToAccountID:            req.ToAccountID,
		BucketID:               req.BucketID,
		PaycheckID:             req.PaycheckID,
		PaycheckOccurrenceDate: occurrence,
		PeriodDate:             periodDate,
		IsPrincipalOnly:        req.IsPrincipalOnly,
		IsRebalance:            req.IsRebalance,
	}

	if err := s.checkRefs(ctx, transaction); err != nil {
		return nil, err
	}

	if err := s.transactionRepo.InsertTransaction(ctx, transaction); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	s.notifier.NotifyChanged(ctx, "transaction created")
	return transaction, nil
}

// UpdateTransaction updates an existing transaction with the provided fields.
// Only provided fields in the request are updated; empty references and dates clear them.
//
// Returns the updated transaction, apperrors.ErrTransactionNotFound, a *validation.Error,
// or an error if the update fails.
func (s *TransactionService) UpdateTransaction(ctx context.Context, id string, req request.UpdateTransactionRequest) (*model.AdHocTransaction, error) {
	transaction, err := s.transactionRepo.GetTransaction(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Description != nil {
		transaction.Description = *req.Description
	}
	if req.Amount != nil {
		transaction.Amount = *req.Amount
	}
	if req.Date != nil {
		if transaction.Date, err = validation.ParseDate(*req.Date); err != nil {
			return nil, err
		}
	}
	if req.AccountID != nil {
		transaction.AccountID = *req.AccountID
	}
	if req.ToAccountID != nil {
		transaction.ToAccountID = *req.ToAccountID
	}
	if req.BucketID != nil {
		transaction.BucketID = *req.BucketID
	}
	if req.PaycheckID != nil {
		transaction.PaycheckID = *req.PaycheckID
	}
	if err := applyOptionalDate(&transaction.PaycheckOccurrenceDate, req.PaycheckOccurrenceDate); err != nil {
		return nil, err
	}
	if err := applyOptionalDate(&transaction.PeriodDate, req.PeriodDate); err != nil {
		return nil, err
	}
	if req.IsPrincipalOnly != nil {
		transaction.IsPrincipalOnly = *req.IsPrincipalOnly
	}
	if req.IsRebalance != nil {
		transaction.IsRebalance = *req.IsRebalance
	}

	if err := validation.ValidateTransaction(transaction); err != nil {
		return nil, err
	}
	if err := s.checkRefs(ctx, &transaction); err != nil {
		return nil, err
	}

	if err := s.transactionRepo.UpdateTransaction(ctx, &transaction); err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	s.notifier.NotifyChanged(ctx, "transaction updated")
	return &transaction, nil
}

// DeleteTransaction removes a transaction.
//
// Returns apperrors.ErrTransactionNotFound if the transaction doesn't exist.
func (s *TransactionService) DeleteTransaction(ctx context.Context, id string) error {
	if err := s.transactionRepo.DeleteTransaction(ctx, id); err != nil {
		return err
	}

	s.notifier.NotifyChanged(ctx, "transaction deleted")
	return nil
}

func (s *TransactionService) checkRefs(ctx context.Context, t *model.AdHocTransaction) error {
	err := checkAccountRefs(ctx, s.accountRepo, map[string]string{
		"accountId":   t.AccountID,
		"toAccountId": t.ToAccountID,
	})
	fields := make(map[string]string)
	var verr *validation.Error
	if errors.As(err, &verr) {
		fields = verr.Fields
	} else if err != nil {
		return err
	}

	if t.PaycheckID != "" {
		_, err := s.paycheckRepo.GetPaycheck(ctx, t.PaycheckID)
		if errors.Is(err, apperrors.ErrPaycheckNotFound) {
			fields["paycheckId"] = fmt.Sprintf("paycheck %s not found", t.PaycheckID)
		} else if err != nil {
			return err
		}
	}
	if t.BucketID != "" {
		_, err := s.bucketRepo.GetBucket(ctx, t.BucketID)
		if errors.Is(err, apperrors.ErrBucketNotFound) {
			fields["bucketId"] = fmt.Sprintf("bucket %s not found", t.BucketID)
		} else if err != nil {
			return err
		}
	}
	if len(fields) > 0 {
		return &validation.Error{Fields: fields}
	}
	return nil
}
