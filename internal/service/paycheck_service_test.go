package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ndewijer/Budget-Projection-Backend/internal/api/request"
	"github.com/ndewijer/Budget-Projection-Backend/internal/apperrors"
	"github.com/ndewijer/Budget-Projection-Backend/internal/model"
	"github.com/ndewijer/Budget-Projection-Backend/internal/repository"
	"github.com/ndewijer/Budget-Projection-Backend/internal/testutil"
	"github.com/ndewijer/Budget-Projection-Backend/internal/validation"
)

// TestPaycheckService_CreatePaycheck tests paycheck creation.
func TestPaycheckService_CreatePaycheck(t *testing.T) {
	t.Run("defaults to a biweekly frequency", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPaycheckService(t, db)

		// Execute
		p, err := svc.CreatePaycheck(context.Background(), request.CreatePaycheckRequest{
			Name:           "Salary",
			ExpectedAmount: testutil.Dec("2000"),
			StartDate:      "2024-01-05",
		})

		// Assert
		if err != nil {
			t.Fatalf("CreatePaycheck() returned unexpected error: %v", err)
		}
		if p.Frequency != model.FrequencyBiWeekly {
			t.Errorf("Expected biweekly, got %s", p.Frequency)
		}
	})

	t.Run("reports a missing deposit account as a field error", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPaycheckService(t, db)

		// Execute
		_, err := svc.CreatePaycheck(context.Background(), request.CreatePaycheckRequest{
			Name:           "Salary",
			ExpectedAmount: testutil.Dec("2000"),
			StartDate:      "2024-01-05",
			AccountID:      testutil.MakeID(),
		})

		// Assert
		var verr *validation.Error
		if !errors.As(err, &verr) {
			t.Fatalf("Expected validation error, got %v", err)
		}
		if _, ok := verr.Fields["accountId"]; !ok {
			t.Errorf("Expected accountId field error, got %v", verr.Fields)
		}
	})
}

// TestPaycheckService_UpdatePaycheck tests partial paycheck updates.
func TestPaycheckService_UpdatePaycheck(t *testing.T) {
	t.Run("clears the end date with an empty string", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPaycheckService(t, db)
		p := testutil.NewPaycheck().WithEndDate(testutil.Date(2024, 12, 31)).Build(t, db)

		// Execute
		updated, err := svc.UpdatePaycheck(context.Background(), p.ID, request.UpdatePaycheckRequest{
			EndDate: strPtr(""),
		})

		// Assert
		if err != nil {
			t.Fatalf("UpdatePaycheck() returned unexpected error: %v", err)
		}
		if updated.EndDate != nil {
			t.Errorf("Expected end date to be cleared, got %v", updated.EndDate)
		}
	})

	t.Run("rejects an end date before the start date", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPaycheckService(t, db)
		p := testutil.NewPaycheck().Build(t, db)

		_, err := svc.UpdatePaycheck(context.Background(), p.ID, request.UpdatePaycheckRequest{
			EndDate: strPtr("2023-12-31"),
		})

		var verr *validation.Error
		if !errors.As(err, &verr) {
			t.Fatalf("Expected validation error, got %v", err)
		}
	})
}

// TestPaycheckService_DeletePaycheck tests paycheck deletion.
//
// WHY: Recorded deposits are real money; deleting the paycheck definition must keep
// them and only drop their link so they stop overriding projected occurrences.
func TestPaycheckService_DeletePaycheck(t *testing.T) {
	t.Run("keeps linked transactions and removes the link", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPaycheckService(t, db)
		account := testutil.NewAccount().Build(t, db)
		p := testutil.NewPaycheck().WithAccount(account.ID).Build(t, db)
		tx := testutil.NewTransaction().
			WithAmount("2100").
			WithToAccount(account.ID).
			WithDate(testutil.Date(2024, 1, 5)).
			WithPaycheck(p.ID, testutil.Date(2024, 1, 5)).
			Build(t, db)

		// Execute
		err := svc.DeletePaycheck(context.Background(), p.ID)

		// Assert
		if err != nil {
			t.Fatalf("DeletePaycheck() returned unexpected error: %v", err)
		}

		stored, err := repository.NewTransactionRepository(db).GetTransaction(context.Background(), tx.ID)
		if err != nil {
			t.Fatalf("Expected transaction to survive, got %v", err)
		}
		if stored.PaycheckID != "" {
			t.Errorf("Expected paycheck link to be cleared, got %s", stored.PaycheckID)
		}
		if stored.PaycheckOccurrenceDate != nil {
			t.Errorf("Expected occurrence date to be cleared, got %v", stored.PaycheckOccurrenceDate)
		}
	})

	t.Run("returns not found for unknown paycheck", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPaycheckService(t, db)

		err := svc.DeletePaycheck(context.Background(), testutil.MakeID())

		if !errors.Is(err, apperrors.ErrPaycheckNotFound) {
			t.Errorf("Expected ErrPaycheckNotFound, got %v", err)
		}
	})
}
