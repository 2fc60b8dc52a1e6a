package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/ndewijer/Budget-Projection-Backend/internal/api/request"
	"github.com/ndewijer/Budget-Projection-Backend/internal/model"
	"github.com/ndewijer/Budget-Projection-Backend/internal/repository"
	"github.com/ndewijer/Budget-Projection-Backend/internal/validation"
)

// PaycheckService handles recurring income business logic operations.
type PaycheckService struct {
	db              *sql.DB
	paycheckRepo    *repository.PaycheckRepository
	transactionRepo *repository.TransactionRepository
	accountRepo     *repository.AccountRepository
	notifier        ChangeNotifier
}

// NewPaycheckService creates a new PaycheckService with the provided repository dependencies.
func NewPaycheckService(
	db *sql.DB,
	paycheckRepo *repository.PaycheckRepository,
	transactionRepo *repository.TransactionRepository,
	accountRepo *repository.AccountRepository,
	notifier ChangeNotifier,
) *PaycheckService {
	return &PaycheckService{
		db:              db,
		paycheckRepo:    paycheckRepo,
		transactionRepo: transactionRepo,
		accountRepo:     accountRepo,
		notifier:        notifierOrNoop(notifier),
	}
}

// GetPaychecks retrieves all paychecks.
func (s *PaycheckService) GetPaychecks(ctx context.Context) ([]model.Paycheck, error) {
	return s.paycheckRepo.GetPaychecks(ctx)
}

// GetPaycheck retrieves a single paycheck by ID.
// Returns apperrors.ErrPaycheckNotFound if the paycheck doesn't exist.
func (s *PaycheckService) GetPaycheck(ctx context.Context, id string) (model.Paycheck, error) {
	return s.paycheckRepo.GetPaycheck(ctx, id)
}

// CreatePaycheck creates a new recurring income. Frequency defaults to biweekly.
//
// Parameters:
//   - ctx: Context for the operation
//   - req: CreatePaycheckRequest, already validated
//
// Returns the created paycheck, a *validation.Error if the deposit account doesn't exist,
// or an error if creation fails.
func (s *PaycheckService) CreatePaycheck(ctx context.Context, req request.CreatePaycheckRequest) (*model.Paycheck, error) {
	startDate, err := validation.ParseDate(req.StartDate)
	if err != nil {
		return nil, err
	}
	endDate, err := validation.ParseOptionalDate(req.EndDate)
	if err != nil {
		return nil, err
	}

	frequency := model.FrequencyBiWeekly
	if req.Frequency != "" {
		frequency = model.Frequency(req.Frequency)
	}

	paycheck := &model.Paycheck{
		ID:             uuid.New().String(),
		Name:           req.Name,
		ExpectedAmount: req.ExpectedAmount,
		Frequency:      frequency,
		StartDate:      startDate,
		EndDate:        endDate,
		AccountID:      req.AccountID,
		IsBalanced:     req.IsBalanced,
	}

	if err := checkAccountRefs(ctx, s.accountRepo, map[string]string{"accountId": paycheck.AccountID}); err != nil {
		return nil, err
	}

	if err := s.paycheckRepo.InsertPaycheck(ctx, paycheck); err != nil {
		return nil, fmt.Errorf("failed to create paycheck: %w", err)
	}

	s.notifier.NotifyChanged(ctx, "paycheck created")
	return paycheck, nil
}

// UpdatePaycheck updates an existing paycheck with the provided fields.
// Only provided fields in the request are updated; an empty endDate or accountId clears it.
//
// Returns the updated paycheck, apperrors.ErrPaycheckNotFound, a *validation.Error,
// or an error if the update fails.
func (s *PaycheckService) UpdatePaycheck(ctx context.Context, id string, req request.UpdatePaycheckRequest) (*model.Paycheck, error) {
	paycheck, err := s.paycheckRepo.GetPaycheck(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		paycheck.Name = *req.Name
	}
	if req.ExpectedAmount != nil {
		paycheck.ExpectedAmount = *req.ExpectedAmount
	}
	if req.Frequency != nil {
		paycheck.Frequency = model.Frequency(*req.Frequency)
	}
	if req.StartDate != nil {
		if paycheck.StartDate, err = validation.ParseDate(*req.StartDate); err != nil {
			return nil, err
		}
	}
	if err := applyOptionalDate(&paycheck.EndDate, req.EndDate); err != nil {
		return nil, err
	}
	if req.AccountID != nil {
		paycheck.AccountID = *req.AccountID
	}
	if req.IsBalanced != nil {
		paycheck.IsBalanced = *req.IsBalanced
	}

	if err := validation.ValidatePaycheck(paycheck); err != nil {
		return nil, err
	}
	if err := checkAccountRefs(ctx, s.accountRepo, map[string]string{"accountId": paycheck.AccountID}); err != nil {
		return nil, err
	}

	if err := s.paycheckRepo.UpdatePaycheck(ctx, &paycheck); err != nil {
		return nil, fmt.Errorf("failed to update paycheck: %w", err)
	}

	s.notifier.NotifyChanged(ctx, "paycheck updated")
	return &paycheck, nil
}

// DeletePaycheck removes a paycheck. Transactions recorded against it are kept but lose
// their association, so they no longer override projected occurrences.
// Both steps run in a single database transaction.
//
// Returns:
//   - apperrors.ErrPaycheckNotFound if the paycheck doesn't exist
//   - error if deletion fails
func (s *PaycheckService) DeletePaycheck(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := s.paycheckRepo.WithTx(tx).GetPaycheck(ctx, id); err != nil {
		return err
	}

	if _, err := s.transactionRepo.WithTx(tx).DisassociatePaycheck(ctx, id); err != nil {
		return err
	}

	if err := s.paycheckRepo.WithTx(tx).DeletePaycheck(ctx, id); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit paycheck deletion: %w", err)
	}

	s.notifier.NotifyChanged(ctx, "paycheck deleted")
	return nil
}
