package service_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/ndewijer/Budget-Projection-Backend/internal/apperrors"
	"github.com/ndewijer/Budget-Projection-Backend/internal/model"
	"github.com/ndewijer/Budget-Projection-Backend/internal/repository"
	"github.com/ndewijer/Budget-Projection-Backend/internal/service"
	"github.com/ndewijer/Budget-Projection-Backend/internal/testutil"
)

// projectionFixture is a checking account of 1000 and an unbalanced biweekly
// paycheck of 2000 paid on 2024-01-05 and 2024-01-19, viewed on 2024-01-20.
type projectionFixture struct {
	db       *sql.DB
	now      time.Time
	account  model.Account
	paycheck model.Paycheck
}

func setupProjectionFixture(t *testing.T) (projectionFixture, *service.ProjectionService, context.Context) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	now := time.Date(2024, 1, 20, 9, 30, 0, 0, time.UTC)

	account := testutil.NewAccount().WithName("Checking").WithBalance("1000").Build(t, db)
	paycheck := testutil.NewPaycheck().
		WithName("Salary").
		WithAmount("2000").
		WithStartDate(testutil.Date(2024, 1, 5)).
		WithAccount(account.ID).
		Unbalanced().
		Build(t, db)

	fx := projectionFixture{db: db, now: now, account: account, paycheck: paycheck}
	return fx, testutil.NewTestProjectionService(t, db, now), context.Background()
}

func findLine(items []model.ProjectionItem, date time.Time, description string) *model.ProjectionItem {
	for i := range items {
		if items[i].Date.Equal(date) && items[i].Description == description {
			return &items[i]
		}
	}
	return nil
}

// TestProjectionService_Window tests default window resolution.
func TestProjectionService_Window(t *testing.T) {
	t.Run("defaults to today plus the horizon", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestProjectionService(t, db, time.Date(2024, 1, 20, 23, 59, 0, 0, time.UTC))

		// Execute
		start, end := svc.Window(time.Time{}, time.Time{})

		// Assert
		if !start.Equal(testutil.Date(2024, 1, 20)) {
			t.Errorf("Expected start 2024-01-20, got %v", start)
		}
		if !end.Equal(testutil.Date(2024, 4, 20)) {
			t.Errorf("Expected end 2024-04-20, got %v", end)
		}
	})

	t.Run("keeps explicit dates", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestProjectionService(t, db, time.Now())

		start, end := svc.Window(testutil.Date(2024, 2, 1), testutil.Date(2024, 3, 1))

		if !start.Equal(testutil.Date(2024, 2, 1)) || !end.Equal(testutil.Date(2024, 3, 1)) {
			t.Errorf("Expected explicit window, got %v - %v", start, end)
		}
	})
}

// TestProjectionService_Calculate tests on-demand projection from stored data.
//
// WHY: This is the path every projection request falls back to. It must load the
// snapshot, pull the window back to unbalanced paychecks and mark only past
// paycheck lines as editable.
func TestProjectionService_Calculate(t *testing.T) {
	t.Run("projects paychecks from the effective start", func(t *testing.T) {
		// Setup
		fx, svc, ctx := setupProjectionFixture(t)

		// Execute
		result, err := svc.Calculate(ctx, time.Time{}, time.Time{})

		// Assert
		if err != nil {
			t.Fatalf("Calculate() returned unexpected error: %v", err)
		}
		if !result.StartDate.Equal(testutil.Date(2024, 1, 5)) {
			t.Errorf("Expected effective start 2024-01-05, got %v", result.StartDate)
		}
		if result.Materialized {
			t.Error("Expected on-demand projection")
		}
		if !result.CalculatedAt.Equal(fx.now) {
			t.Errorf("Expected calculatedAt %v, got %v", fx.now, result.CalculatedAt)
		}

		first := findLine(result.Items, testutil.Date(2024, 1, 5), "Expected Pay: Salary")
		if first == nil {
			t.Fatal("Expected a paycheck line on 2024-01-05")
		}
		if !first.Balance.Equal(testutil.Dec("3000")) {
			t.Errorf("Expected balance 3000, got %s", first.Balance)
		}

		last := result.Items[len(result.Items)-1]
		if last.Description != "End of Projection" {
			t.Errorf("Expected terminal line, got %q", last.Description)
		}
		if !last.Date.Equal(testutil.Date(2024, 4, 20)) {
			t.Errorf("Expected terminal line on 2024-04-20, got %v", last.Date)
		}
	})

	t.Run("issues line tokens only for past paycheck lines", func(t *testing.T) {
		// Setup
		_, svc, ctx := setupProjectionFixture(t)

		// Execute
		result, err := svc.Calculate(ctx, time.Time{}, time.Time{})
		if err != nil {
			t.Fatalf("Calculate() returned unexpected error: %v", err)
		}

		// Assert
		cutoff := testutil.Date(2024, 1, 20)
		for _, item := range result.Items {
			hasToken := item.LineToken != ""
			wantToken := item.PaycheckID != "" && !item.Date.After(cutoff)
			if hasToken != wantToken {
				t.Errorf("Line %q on %v: expected token=%v, got token=%v",
					item.Description, item.Date.Format("2006-01-02"), wantToken, hasToken)
			}
		}
	})

	t.Run("honours an override recorded after the window end", func(t *testing.T) {
		// Setup
		fx, svc, ctx := setupProjectionFixture(t)
		occurrence := testutil.Date(2024, 4, 12)
		testutil.NewTransaction().
			WithDescription("Actual Salary").
			WithAmount("2000").
			WithDate(testutil.Date(2024, 4, 22)).
			WithToAccount(fx.account.ID).
			WithPaycheck(fx.paycheck.ID, occurrence).
			Build(t, fx.db)

		// Execute
		result, err := svc.Calculate(ctx, time.Time{}, time.Time{})

		// Assert
		if err != nil {
			t.Fatalf("Calculate() returned unexpected error: %v", err)
		}
		if findLine(result.Items, occurrence, "Expected Pay: Salary") != nil {
			t.Error("Expected the 2024-04-12 paycheck to be replaced by its override")
		}
		if findLine(result.Items, testutil.Date(2024, 3, 29), "Expected Pay: Salary") == nil {
			t.Error("Expected the 2024-03-29 paycheck to remain")
		}
	})

	t.Run("returns no lines for an empty window", func(t *testing.T) {
		_, svc, ctx := setupProjectionFixture(t)

		result, err := svc.Calculate(ctx, testutil.Date(2024, 3, 1), testutil.Date(2024, 3, 1))

		if err != nil {
			t.Fatalf("Calculate() returned unexpected error: %v", err)
		}
		if len(result.Items) != 0 {
			t.Errorf("Expected 0 items, got %d", len(result.Items))
		}
	})
}

// TestProjectionService_EditLine tests recording actual amounts on projected paycheck lines.
//
// WHY: Editing a past paycheck line is how users reconcile what they were actually
// paid. The edit must replace the expected amount, and editing again must update
// the same override instead of stacking a second deposit.
func TestProjectionService_EditLine(t *testing.T) {
	t.Run("records and then updates a paycheck override", func(t *testing.T) {
		// Setup
		_, svc, ctx := setupProjectionFixture(t)
		before, err := svc.Calculate(ctx, time.Time{}, time.Time{})
		if err != nil {
			t.Fatalf("Calculate() returned unexpected error: %v", err)
		}
		line := findLine(before.Items, testutil.Date(2024, 1, 19), "Expected Pay: Salary")
		if line == nil || line.LineToken == "" {
			t.Fatal("Expected an editable paycheck line on 2024-01-19")
		}

		// Execute
		if err := svc.EditLine(ctx, line.LineToken, testutil.Dec("2100")); err != nil {
			t.Fatalf("EditLine() returned unexpected error: %v", err)
		}
		if err := svc.EditLine(ctx, line.LineToken, testutil.Dec("2150")); err != nil {
			t.Fatalf("EditLine() returned unexpected error: %v", err)
		}
		after, err := svc.Calculate(ctx, time.Time{}, time.Time{})
		if err != nil {
			t.Fatalf("Calculate() returned unexpected error: %v", err)
		}

		// Assert
		var matches []model.ProjectionItem
		for _, item := range after.Items {
			if item.Date.Equal(testutil.Date(2024, 1, 19)) && item.Description == "Expected Pay: Salary" {
				matches = append(matches, item)
			}
		}
		if len(matches) != 1 {
			t.Fatalf("Expected exactly 1 line on 2024-01-19, got %d", len(matches))
		}
		if !matches[0].Amount.Equal(testutil.Dec("2150")) {
			t.Errorf("Expected amount 2150, got %s", matches[0].Amount)
		}
		if !matches[0].Balance.Equal(testutil.Dec("5150")) {
			t.Errorf("Expected balance 5150, got %s", matches[0].Balance)
		}
	})

	t.Run("stores the override against the paycheck occurrence", func(t *testing.T) {
		// Setup
		fx, svc, ctx := setupProjectionFixture(t)
		before, err := svc.Calculate(ctx, time.Time{}, time.Time{})
		if err != nil {
			t.Fatalf("Calculate() returned unexpected error: %v", err)
		}
		line := findLine(before.Items, testutil.Date(2024, 1, 5), "Expected Pay: Salary")
		if line == nil {
			t.Fatal("Expected a paycheck line on 2024-01-05")
		}

		// Execute
		err = svc.EditLine(ctx, line.LineToken, testutil.Dec("1900"))

		// Assert
		if err != nil {
			t.Fatalf("EditLine() returned unexpected error: %v", err)
		}
		override, err := repository.NewTransactionRepository(fx.db).FindOverride(ctx, fx.paycheck.ID, testutil.Date(2024, 1, 5))
		if err != nil {
			t.Fatalf("FindOverride() returned unexpected error: %v", err)
		}
		if override == nil {
			t.Fatal("Expected an override transaction")
		}
		if override.ToAccountID != fx.account.ID {
			t.Errorf("Expected deposit into %s, got %s", fx.account.ID, override.ToAccountID)
		}
		if override.PaycheckOccurrenceDate == nil || !override.PaycheckOccurrenceDate.Equal(testutil.Date(2024, 1, 5)) {
			t.Errorf("Expected occurrence 2024-01-05, got %v", override.PaycheckOccurrenceDate)
		}
	})

	t.Run("rejects an invalid token", func(t *testing.T) {
		_, svc, ctx := setupProjectionFixture(t)

		err := svc.EditLine(ctx, "garbage", testutil.Dec("100"))

		if !errors.Is(err, apperrors.ErrInvalidLineToken) {
			t.Errorf("Expected ErrInvalidLineToken, got %v", err)
		}
	})

	t.Run("rejects a future paycheck line", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		now := time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)
		paycheck := testutil.NewPaycheck().WithStartDate(testutil.Date(2024, 1, 5)).Build(t, db)
		codec := testutil.NewTestLineTokenCodec(t)
		svc := service.NewProjectionService(
			testutil.NewTestSnapshotLoader(t, db),
			repository.NewTransactionRepository(db),
			codec,
			testutil.TestHorizonMonths,
		).WithClock(func() time.Time { return now })

		token, err := codec.Encode(model.ProjectionItem{
			PaycheckID:  paycheck.ID,
			Date:        testutil.Date(2024, 2, 2),
			Description: "Expected Pay: " + paycheck.Name,
		})
		if err != nil {
			t.Fatalf("Encode() returned unexpected error: %v", err)
		}

		// Execute
		err = svc.EditLine(context.Background(), token, testutil.Dec("100"))

		// Assert
		if !errors.Is(err, apperrors.ErrLineNotEditable) {
			t.Errorf("Expected ErrLineNotEditable, got %v", err)
		}
	})

	t.Run("returns not found when the paycheck was deleted", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		now := time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)
		codec := testutil.NewTestLineTokenCodec(t)
		svc := service.NewProjectionService(
			testutil.NewTestSnapshotLoader(t, db),
			repository.NewTransactionRepository(db),
			codec,
			testutil.TestHorizonMonths,
		).WithClock(func() time.Time { return now })

		token, err := codec.Encode(model.ProjectionItem{
			PaycheckID:  testutil.MakeID(),
			Date:        testutil.Date(2024, 1, 5),
			Description: "Expected Pay: Gone",
		})
		if err != nil {
			t.Fatalf("Encode() returned unexpected error: %v", err)
		}

		// Execute
		err = svc.EditLine(context.Background(), token, testutil.Dec("100"))

		// Assert
		if !errors.Is(err, apperrors.ErrPaycheckNotFound) {
			t.Errorf("Expected ErrPaycheckNotFound, got %v", err)
		}
	})
}
