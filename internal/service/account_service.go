package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/ndewijer/Budget-Projection-Backend/internal/api/request"
	"github.com/ndewijer/Budget-Projection-Backend/internal/apperrors"
	"github.com/ndewijer/Budget-Projection-Backend/internal/model"
	"github.com/ndewijer/Budget-Projection-Backend/internal/projection"
	"github.com/ndewijer/Budget-Projection-Backend/internal/repository"
	"github.com/ndewijer/Budget-Projection-Backend/internal/validation"
)

// AccountService handles account-related business logic operations.
type AccountService struct {
	db          *sql.DB
	accountRepo *repository.AccountRepository
	notifier    ChangeNotifier
}

// NewAccountService creates a new AccountService with the provided repository dependencies.
// notifier is told about every write; pass nil when projections need no invalidation.
func NewAccountService(
	db *sql.DB,
	accountRepo *repository.AccountRepository,
	notifier ChangeNotifier,
) *AccountService {
	return &AccountService{
		db:          db,
		accountRepo: accountRepo,
		notifier:    notifierOrNoop(notifier),
	}
}

// GetAccounts retrieves all accounts, including mortgage details where present.
func (s *AccountService) GetAccounts(ctx context.Context) ([]model.Account, error) {
	return s.accountRepo.GetAccounts(ctx)
}

// GetAccount retrieves a single account by ID.
// Returns apperrors.ErrAccountNotFound if the account doesn't exist.
func (s *AccountService) GetAccount(ctx context.Context, id string) (model.Account, error) {
	return s.accountRepo.GetAccount(ctx, id)
}

// CreateAccount creates a new account and, for mortgages, its loan terms.
// Both rows are written in a single database transaction.
//
// Parameters:
//   - ctx: Context for the operation
//   - req: CreateAccountRequest, already validated
//
// Returns the created account with its generated ID, or an error if creation fails.
func (s *AccountService) CreateAccount(ctx context.Context, req request.CreateAccountRequest) (*model.Account, error) {
	balanceAsOf, err := validation.ParseDate(req.BalanceAsOf)
	if err != nil {
		return nil, err
	}

	includeInTotal := true
	if req.IncludeInTotal != nil {
		includeInTotal = *req.IncludeInTotal
	}

	account := &model.Account{
		ID:               uuid.New().String(),
		Name:             req.Name,
		BankName:         req.BankName,
		Balance:          req.Balance,
		BalanceAsOf:      balanceAsOf,
		AnnualGrowthRate: req.AnnualGrowthRate,
		IncludeInTotal:   includeInTotal,
		Type:             model.AccountType(req.Type),
	}

	if req.MortgageDetails != nil {
		details, err := mortgageDetailsFromRequest(*req.MortgageDetails)
		if err != nil {
			return nil, err
		}
		account.MortgageDetails = details
	}

	if err := s.inTx(ctx, func(repo *repository.AccountRepository) error {
		return repo.InsertAccount(ctx, account)
	}); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	s.notifier.NotifyChanged(ctx, "account created")
	return account, nil
}

// UpdateAccount updates an existing account with the provided fields.
// Only provided fields in the request are updated; omitted fields remain unchanged.
// Changing the type away from mortgage drops the loan terms.
//
// Parameters:
//   - ctx: Context for the operation
//   - id: The account ID to update
//   - req: UpdateAccountRequest containing the fields to update
//
// Returns the updated account, apperrors.ErrAccountNotFound, a *validation.Error when the
// merged account breaks the mortgage rule, or an error if the update fails.
func (s *AccountService) UpdateAccount(ctx context.Context, id string, req request.UpdateAccountRequest) (*model.Account, error) {
	account, err := s.accountRepo.GetAccount(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.BankName != nil {
		account.BankName = *req.BankName
	}
	if req.Balance != nil {
		account.Balance = *req.Balance
	}
	if req.BalanceAsOf != nil {
		if account.BalanceAsOf, err = validation.ParseDate(*req.BalanceAsOf); err != nil {
			return nil, err
		}
	}
	if req.AnnualGrowthRate != nil {
		account.AnnualGrowthRate = *req.AnnualGrowthRate
	}
	if req.IncludeInTotal != nil {
		account.IncludeInTotal = *req.IncludeInTotal
	}
	if req.Type != nil {
		account.Type = model.AccountType(*req.Type)
		if account.Type != model.AccountTypeMortgage {
			account.MortgageDetails = nil
		}
	}
	if req.MortgageDetails != nil {
		if account.MortgageDetails, err = mortgageDetailsFromRequest(*req.MortgageDetails); err != nil {
			return nil, err
		}
	}

	if err := validation.ValidateAccount(account); err != nil {
		return nil, err
	}

	if err := s.inTx(ctx, func(repo *repository.AccountRepository) error {
		return repo.UpdateAccount(ctx, &account)
	}); err != nil {
		return nil, fmt.Errorf("failed to update account: %w", err)
	}

	s.notifier.NotifyChanged(ctx, "account updated")
	return &account, nil
}

// DeleteAccount removes an account.
// An account referenced by any paycheck, bill, bucket or transaction cannot be deleted.
//
// Returns:
//   - apperrors.ErrAccountNotFound if the account doesn't exist
//   - apperrors.ErrAccountInUse if the account is still referenced
//   - error if deletion fails
func (s *AccountService) DeleteAccount(ctx context.Context, id string) error {
	if _, err := s.accountRepo.GetAccount(ctx, id); err != nil {
		return err
	}

	inUse, err := s.accountRepo.IsAccountInUse(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check account usage: %w", err)
	}
	if inUse {
		return apperrors.ErrAccountInUse
	}

	if err := s.accountRepo.DeleteAccount(ctx, id); err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}

	s.notifier.NotifyChanged(ctx, "account deleted")
	return nil
}

// GetAmortizationSchedule computes the monthly amortization of a mortgage account
// from its current balance and loan terms.
//
// Returns:
//   - apperrors.ErrAccountNotFound if the account doesn't exist
//   - apperrors.ErrNotMortgage if the account has no mortgage details
func (s *AccountService) GetAmortizationSchedule(ctx context.Context, id string) ([]model.AmortizationRow, error) {
	account, err := s.accountRepo.GetAccount(ctx, id)
	if err != nil {
		return nil, err
	}
	if account.Type != model.AccountTypeMortgage || account.MortgageDetails == nil {
		return nil, apperrors.ErrNotMortgage
	}

	return projection.Amortize(account.Balance, *account.MortgageDetails, projection.MaxAmortizationMonths), nil
}

func (s *AccountService) inTx(ctx context.Context, fn func(repo *repository.AccountRepository) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(s.accountRepo.WithTx(tx)); err != nil {
		return err
	}
	return tx.Commit()
}

func mortgageDetailsFromRequest(req request.MortgageDetailsRequest) (*model.MortgageDetails, error) {
	paymentDate, err := validation.ParseDate(req.PaymentDate)
	if err != nil {
		return nil, err
	}
	return &model.MortgageDetails{
		InterestRate:      req.InterestRate,
		Escrow:            req.Escrow,
		MortgageInsurance: req.MortgageInsurance,
		LoanPayment:       req.LoanPayment,
		PaymentDate:       paymentDate,
	}, nil
}
