package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ndewijer/Budget-Projection-Backend/internal/model"
	"github.com/ndewijer/Budget-Projection-Backend/internal/testutil"
)

func setupBillHandler(t *testing.T) (*BillHandler, *sql.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return NewBillHandler(testutil.NewTestBillService(t, db)), db
}

func TestBillHandler_Bills(t *testing.T) {
	t.Run("returns active bills by default", func(t *testing.T) {
		handler, db := setupBillHandler(t)
		testutil.NewBill().Build(t, db)
		testutil.NewBill().Inactive().Build(t, db)

		req := httptest.NewRequest(http.MethodGet, "/api/bill", nil)
		w := httptest.NewRecorder()

		handler.Bills(w, req)

		var response []model.Bill
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if len(response) != 1 {
			t.Errorf("Expected 1 bill, got %d", len(response))
		}
	})

	t.Run("includes inactive bills on request", func(t *testing.T) {
		handler, db := setupBillHandler(t)
		testutil.NewBill().Build(t, db)
		testutil.NewBill().Inactive().Build(t, db)

		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/bill", map[string]string{"include_inactive": "true"})
		w := httptest.NewRecorder()

		handler.Bills(w, req)

		var response []model.Bill
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if len(response) != 2 {
			t.Errorf("Expected 2 bills, got %d", len(response))
		}
	})

	t.Run("returns 400 for a malformed flag", func(t *testing.T) {
		handler, _ := setupBillHandler(t)

		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/bill", map[string]string{"include_inactive": "maybe"})
		w := httptest.NewRecorder()

		handler.Bills(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestBillHandler_CreateBill(t *testing.T) {
	t.Run("creates a transfer between accounts", func(t *testing.T) {
		handler, db := setupBillHandler(t)
		checking := testutil.NewAccount().Build(t, db)
		savings := testutil.NewAccount().WithType(model.AccountTypeSavings).Build(t, db)

		req := testutil.NewJSONRequest(http.MethodPost, "/api/bill", map[string]any{
			"name":           "Monthly Savings",
			"expectedAmount": "250",
			"frequency":      "monthly",
			"dueDay":         15,
			"accountId":      checking.ID,
			"toAccountId":    savings.ID,
		}, nil)
		w := httptest.NewRecorder()

		handler.CreateBill(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
		}

		var response model.Bill
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if !response.IsActive {
			t.Error("Expected new bill to be active")
		}
		if response.ToAccountID != savings.ID {
			t.Errorf("Expected toAccountId %s, got %s", savings.ID, response.ToAccountID)
		}
	})

	t.Run("returns 400 without a due day or next due date", func(t *testing.T) {
		handler, _ := setupBillHandler(t)

		req := testutil.NewJSONRequest(http.MethodPost, "/api/bill", map[string]any{
			"name":           "Rent",
			"expectedAmount": "1200",
			"frequency":      "monthly",
		}, nil)
		w := httptest.NewRecorder()

		handler.CreateBill(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("returns 400 for an invalid frequency", func(t *testing.T) {
		handler, _ := setupBillHandler(t)

		req := testutil.NewJSONRequest(http.MethodPost, "/api/bill", map[string]any{
			"name":           "Rent",
			"expectedAmount": "1200",
			"frequency":      "fortnightly",
			"dueDay":         1,
		}, nil)
		w := httptest.NewRecorder()

		handler.CreateBill(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestBillHandler_SetPeriodBill(t *testing.T) {
	t.Run("stores an override for one occurrence", func(t *testing.T) {
		handler, db := setupBillHandler(t)
		bill := testutil.NewBill().Build(t, db)

		req := testutil.NewJSONRequest(http.MethodPut, "/api/bill/"+bill.ID+"/period", map[string]any{
			"periodDate":   "2024-01-05",
			"dueDate":      "2024-01-05",
			"actualAmount": "515.40",
			"isPaid":       true,
		}, map[string]string{"uuid": bill.ID})
		w := httptest.NewRecorder()

		handler.SetPeriodBill(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response model.PeriodBill
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if response.BillID != bill.ID {
			t.Errorf("Expected billId %s, got %s", bill.ID, response.BillID)
		}
		if !response.ActualAmount.Equal(testutil.Dec("515.40")) {
			t.Errorf("Expected 515.40, got %s", response.ActualAmount)
		}
	})

	t.Run("returns 404 for unknown bill", func(t *testing.T) {
		handler, _ := setupBillHandler(t)
		id := testutil.MakeID()

		req := testutil.NewJSONRequest(http.MethodPut, "/api/bill/"+id+"/period", map[string]any{
			"periodDate": "2024-01-05",
			"dueDate":    "2024-01-05",
		}, map[string]string{"uuid": id})
		w := httptest.NewRecorder()

		handler.SetPeriodBill(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestBillHandler_DeleteBill(t *testing.T) {
	t.Run("returns 404 for unknown bill", func(t *testing.T) {
		handler, _ := setupBillHandler(t)
		id := testutil.MakeID()

		req := testutil.NewRequestWithURLParams(http.MethodDelete, "/api/bill/"+id, map[string]string{"uuid": id})
		w := httptest.NewRecorder()

		handler.DeleteBill(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d: %s", w.Code, w.Body.String())
		}
	})
}
