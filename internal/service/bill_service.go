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

// BillService handles recurring expense business logic operations.
type BillService struct {
	billRepo    *repository.BillRepository
	accountRepo *repository.AccountRepository
	notifier    ChangeNotifier
}

// NewBillService creates a new BillService with the provided repository dependencies.
func NewBillService(
	billRepo *repository.BillRepository,
	accountRepo *repository.AccountRepository,
	notifier ChangeNotifier,
) *BillService {
	return &BillService{
		billRepo:    billRepo,
		accountRepo: accountRepo,
		notifier:    notifierOrNoop(notifier),
	}
}

// GetBills retrieves bills ordered by name. Inactive bills are only included on request.
func (s *BillService) GetBills(ctx context.Context, includeInactive bool) ([]model.Bill, error) {
	return s.billRepo.GetBills(ctx, includeInactive)
}

// GetBill retrieves a single bill by ID.
// Returns apperrors.ErrBillNotFound if the bill doesn't exist.
func (s *BillService) GetBill(ctx context.Context, id string) (model.Bill, error) {
	return s.billRepo.GetBill(ctx, id)
}

// CreateBill creates a new recurring expense. New bills are active unless stated otherwise.
//
// Parameters:
//   - ctx: Context for the operation
//   - req: CreateBillRequest, already validated
//
// Returns the created bill, a *validation.Error if a referenced account doesn't exist,
// or an error if creation fails.
func (s *BillService) CreateBill(ctx context.Context, req request.CreateBillRequest) (*model.Bill, error) {
	nextDueDate, err := validation.ParseOptionalDate(req.NextDueDate)
	if err != nil {
		return nil, err
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	bill := &model.Bill{
		ID:             uuid.New().String(),
		Name:           req.Name,
		ExpectedAmount: req.ExpectedAmount,
		Frequency:      model.Frequency(req.Frequency),
		DueDay:         req.DueDay,
		NextDueDate:    nextDueDate,
		AccountID:      req.AccountID,
		ToAccountID:    req.ToAccountID,
		Category:       req.Category,
		IsActive:       isActive,
	}

	if err := s.checkRefs(ctx, bill); err != nil {
		return nil, err
	}

	if err := s.billRepo.InsertBill(ctx, bill); err != nil {
		return nil, fmt.Errorf("failed to create bill: %w", err)
	}

	s.notifier.NotifyChanged(ctx, "bill created")
	return bill, nil
}

// UpdateBill updates an existing bill with the provided fields.
// Only provided fields in the request are updated; empty dates and account references clear them.
//
// Returns the updated bill, apperrors.ErrBillNotFound, a *validation.Error,
// or an error if the update fails.
func (s *BillService) UpdateBill(ctx context.Context, id string, req request.UpdateBillRequest) (*model.Bill, error) {
	bill, err := s.billRepo.GetBill(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		bill.Name = *req.Name
	}
	if req.ExpectedAmount != nil {
		bill.ExpectedAmount = *req.ExpectedAmount
	}
	if req.Frequency != nil {
		bill.Frequency = model.Frequency(*req.Frequency)
	}
	if req.DueDay != nil {
		bill.DueDay = *req.DueDay
	}
	if err := applyOptionalDate(&bill.NextDueDate, req.NextDueDate); err != nil {
		return nil, err
	}
	if req.AccountID != nil {
		bill.AccountID = *req.AccountID
	}
	if req.ToAccountID != nil {
		bill.ToAccountID = *req.ToAccountID
	}
	if req.Category != nil {
		bill.Category = *req.Category
	}
	if req.IsActive != nil {
		bill.IsActive = *req.IsActive
	}

	if err := validation.ValidateBill(bill); err != nil {
		return nil, err
	}
	if err := s.checkRefs(ctx, &bill); err != nil {
		return nil, err
	}

	if err := s.billRepo.UpdateBill(ctx, &bill); err != nil {
		return nil, fmt.Errorf("failed to update bill: %w", err)
	}

	s.notifier.NotifyChanged(ctx, "bill updated")
	return &bill, nil
}

// DeleteBill removes a bill together with its per-occurrence overrides.
//
// Returns apperrors.ErrBillNotFound if the bill doesn't exist.
func (s *BillService) DeleteBill(ctx context.Context, id string) error {
	if err := s.billRepo.DeleteBill(ctx, id); err != nil {
		return err
	}

	s.notifier.NotifyChanged(ctx, "bill deleted")
	return nil
}

// GetPeriodBills retrieves per-occurrence bill overrides with a period date in [startDate, endDate].
func (s *BillService) GetPeriodBills(ctx context.Context, startDate, endDate time.Time) ([]model.PeriodBill, error) {
	return s.billRepo.GetPeriodBills(ctx, startDate, endDate)
}

// SetPeriodBill records the actual amount of one bill occurrence.
// An existing override for the same due date is replaced.
//
// Parameters:
//   - ctx: Context for the operation
//   - billID: The bill the occurrence belongs to
//   - req: PeriodBillRequest, already validated
//
// Returns the stored override or apperrors.ErrBillNotFound if the bill doesn't exist.
func (s *BillService) SetPeriodBill(ctx context.Context, billID string, req request.PeriodBillRequest) (*model.PeriodBill, error) {
	if _, err := s.billRepo.GetBill(ctx, billID); err != nil {
		return nil, err
	}

	periodDate, err := validation.ParseDate(req.PeriodDate)
	if err != nil {
		return nil, err
	}
	dueDate, err := validation.ParseDate(req.DueDate)
	if err != nil {
		return nil, err
	}

	periodBill := &model.PeriodBill{
		BillID:       billID,
		PeriodDate:   periodDate,
		DueDate:      dueDate,
		ActualAmount: req.ActualAmount,
		IsPaid:       req.IsPaid,
	}

	if err := s.billRepo.UpsertPeriodBill(ctx, periodBill); err != nil {
		return nil, err
	}

	s.notifier.NotifyChanged(ctx, "period bill set")
	return periodBill, nil
}

func (s *BillService) checkRefs(ctx context.Context, bill *model.Bill) error {
	return checkAccountRefs(ctx, s.accountRepo, map[string]string{
		"accountId":   bill.AccountID,
		"toAccountId": bill.ToAccountID,
	})
}
