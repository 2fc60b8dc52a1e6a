package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Budget-Projection-Backend/internal/apperrors"
	"github.com/ndewijer/Budget-Projection-Backend/internal/logger"
	"github.com/ndewijer/Budget-Projection-Backend/internal/model"
	"github.com/ndewijer/Budget-Projection-Backend/internal/projection"
	"github.com/ndewijer/Budget-Projection-Backend/internal/repository"
)

// ProjectionService calculates projections on demand and applies edits to projected lines.
type ProjectionService struct {
	loader        *SnapshotLoader
	tokens        *LineTokenCodec
	editor        *projection.LineEditor
	notifier      ChangeNotifier
	horizonMonths int
	now           func() time.Time
}

// NewProjectionService creates a new ProjectionService.
//
// Parameters:
//   - loader: Reads the projection snapshot
//   - transactionRepo: Stores paycheck overrides created by line edits
//   - tokens: Issues and verifies line tokens
//   - horizonMonths: Length of the default window
func NewProjectionService(
	loader *SnapshotLoader,
	transactionRepo *repository.TransactionRepository,
	tokens *LineTokenCodec,
	horizonMonths int,
) *ProjectionService {
	return &ProjectionService{
		loader:        loader,
		tokens:        tokens,
		editor:        projection.NewLineEditor(transactionRepo, transactionRepo),
		notifier:      noopNotifier{},
		horizonMonths: horizonMonths,
		now:           time.Now,
	}
}

// SetNotifier registers the receiver of change notifications raised by line edits.
func (s *ProjectionService) SetNotifier(n ChangeNotifier) {
	s.notifier = notifierOrNoop(n)
}

// WithClock replaces the clock used for default windows and edit eligibility.
func (s *ProjectionService) WithClock(now func() time.Time) *ProjectionService {
	s.now = now
	s.editor = s.editor.WithClock(now)
	return s
}

// Window resolves a requested window: a zero start means today and a zero end means
// start plus the configured horizon.
func (s *ProjectionService) Window(startDate, endDate time.Time) (time.Time, time.Time) {
	if startDate.IsZero() {
		startDate = today(s.now())
	}
	if endDate.IsZero() {
		endDate = startDate.AddDate(0, s.horizonMonths, 0)
	}
	return startDate, endDate
}

// LoadInput reads the snapshot for the window [startDate, endDate).
func (s *ProjectionService) LoadInput(ctx context.Context, startDate, endDate time.Time) (projection.Input, error) {
	return s.loader.Load(ctx, startDate, endDate)
}

// Calculate computes the projection for [startDate, endDate) from current data.
// Editable paycheck lines carry a line token.
//
// Parameters:
//   - ctx: Context for cancellation
//   - startDate: Window start; zero means today
//   - endDate: Window end (exclusive); zero means start plus the horizon
//
// Returns:
//   - The projection, with zero items when endDate is not after startDate
//   - projection.ErrUnknownAccount (wrapped) when data references a missing account
//   - An error when loading fails
func (s *ProjectionService) Calculate(ctx context.Context, startDate, endDate time.Time) (*model.Projection, error) {
	startDate, endDate = s.Window(startDate, endDate)

	in, err := s.loader.Load(ctx, startDate, endDate)
	if err != nil {
		return nil, err
	}

	result, err := projection.Calculate(in)
	if err != nil {
		return nil, err
	}
	result.CalculatedAt = s.now().UTC()

	if err := s.AttachLineTokens(result); err != nil {
		return nil, err
	}
	return result, nil
}

// AttachLineTokens sets a line token on every paycheck line dated today or earlier.
func (s *ProjectionService) AttachLineTokens(p *model.Projection) error {
	cutoff := today(s.now())
	for i := range p.Items {
		item := &p.Items[i]
		if item.PaycheckID == "" || item.Date.After(cutoff) {
			continue
		}
		token, err := s.tokens.Encode(*item)
		if err != nil {
			return err
		}
		item.LineToken = token
	}
	return nil
}

// EditLine records amount as the actual value of the projected paycheck line identified by token.
// An existing override for the same paycheck occurrence is updated; otherwise a new
// transaction is recorded against the paycheck.
//
// Parameters:
//   - ctx: Context for the operation
//   - token: Line token from a previous projection response
//   - amount: Actual amount received
//
// Returns:
//   - apperrors.ErrInvalidLineToken if the token is tampered with or expired
//   - apperrors.ErrPaycheckNotFound if the paycheck no longer exists
//   - apperrors.ErrLineNotEditable if the line is dated in the future
func (s *ProjectionService) EditLine(ctx context.Context, token string, amount decimal.Decimal) error {
	line, err := s.tokens.Decode(token)
	if err != nil {
		return err
	}

	in, err := s.loader.Load(ctx, line.Date, line.Date.AddDate(0, 0, 1))
	if err != nil {
		return err
	}

	found := false
	for _, p := range in.Paychecks {
		if p.ID == line.PaycheckID {
			found = true
			break
		}
	}
	if !found {
		return apperrors.ErrPaycheckNotFound
	}

	edited, err := s.editor.EditPaycheckLine(ctx, in, line, amount)
	if err != nil {
		return err
	}
	if !edited {
		return apperrors.ErrLineNotEditable
	}

	log := logger.FromContext(ctx)
	log.Info().
		Str("paycheck_id", line.PaycheckID).
		Str("date", line.Date.Format("2006-01-02")).
		Str("amount", amount.String()).
		Msg("Projection line edited")

	s.notifier.NotifyChanged(ctx, "projection line edited")
	return nil
}
