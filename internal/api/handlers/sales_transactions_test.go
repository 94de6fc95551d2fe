package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mkuiper/Dealership-CRM-Backend/internal/api/request"
	"github.com/mkuiper/Dealership-CRM-Backend/internal/model"
	"github.com/mkuiper/Dealership-CRM-Backend/internal/testutil"
)

func TestSalesTransactionHandler_ListTransactions(t *testing.T) {
	setupHandler := func(t *testing.T) (*SalesTransactionHandler, *sql.DB) {
		t.Helper()
		db := testutil.SetupTestDB(t)
		ts := testutil.NewTestSalesTransactionService(t, db)
		return NewSalesTransactionHandler(ts), db
	}

	t.Run("returns empty array when no transactions exist", func(t *testing.T) {
		handler, _ := setupHandler(t)

		req := httptest.NewRequest(http.MethodGet, "/api/sales-transactions", nil)
		w := httptest.NewRecorder()

		handler.ListTransactions(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response []model.SalesTransaction
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if response == nil {
			t.Error("Expected non-nil array, got nil")
		}
		if len(response) != 0 {
			t.Errorf("Expected empty array, got %d transactions", len(response))
		}
	})

	t.Run("filters by status", func(t *testing.T) {
		handler, db := setupHandler(t)

		vehicle := testutil.NewVehicle().Build(t, db)
		pending := testutil.NewSalesTransaction(vehicle.ID).Build(t, db)
		testutil.NewSalesTransaction(vehicle.ID).Completed().Build(t, db)

		req := testutil.NewRequestWithQueryParams(
			http.MethodGet,
			"/api/sales-transactions",
			map[string]string{"status": model.StatusPending},
		)
		w := httptest.NewRecorder()

		handler.ListTransactions(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response []model.SalesTransaction
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if len(response) != 1 {
			t.Fatalf("Expected 1 transaction, got %d", len(response))
		}
		if response[0].ID != pending.ID {
			t.Errorf("Expected pending transaction %s, got %s", pending.ID, response[0].ID)
		}
	})

	t.Run("returns 500 on database error", func(t *testing.T) {
		handler, db := setupHandler(t)
		db.Close()

		req := httptest.NewRequest(http.MethodGet, "/api/sales-transactions", nil)
		w := httptest.NewRecorder()

		handler.ListTransactions(w, req)

		if w.Code != http.StatusInternalServerError {
			t.Errorf("Expected 500, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestSalesTransactionHandler_CreateTransaction(t *testing.T) {
	setupHandler := func(t *testing.T) (*SalesTransactionHandler, *sql.DB) {
		t.Helper()
		db := testutil.SetupTestDB(t)
		ts := testutil.NewTestSalesTransactionService(t, db)
		return NewSalesTransactionHandler(ts), db
	}

	t.Run("creates transaction successfully", func(t *testing.T) {
		handler, db := setupHandler(t)
		vehicle := testutil.NewVehicle().Build(t, db)

		req := testutil.NewRequestWithBody(t, http.MethodPost, "/api/sales-transactions",
			request.CreateSalesTransactionRequest{
				VehicleID:    vehicle.ID,
				CustomerName: "Dana Whitfield",
				GrossPrice:   1000,
				Discount:     100,
				TaxRate:      0.13,
			})
		w := httptest.NewRecorder()

		handler.CreateTransaction(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
		}

		var response model.SalesTransaction
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if response.TotalPrice != 1017 {
			t.Errorf("Expected totalPrice 1017, got %v", response.TotalPrice)
		}
		if response.Status != model.StatusPending {
			t.Errorf("Expected status pending, got %s", response.Status)
		}
	})

	t.Run("returns 400 for invalid body", func(t *testing.T) {
		handler, _ := setupHandler(t)

		req := testutil.NewRequestWithBody(t, http.MethodPost, "/api/sales-transactions", "{not json")
		w := httptest.NewRecorder()

		handler.CreateTransaction(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("returns 400 when validation fails", func(t *testing.T) {
		handler, db := setupHandler(t)
		vehicle := testutil.NewVehicle().Build(t, db)

		req := testutil.NewRequestWithBody(t, http.MethodPost, "/api/sales-transactions",
			request.CreateSalesTransactionRequest{
				VehicleID:    vehicle.ID,
				CustomerName: "",
				GrossPrice:   1000,
			})
		w := httptest.NewRecorder()

		handler.CreateTransaction(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("returns 404 for unknown vehicle", func(t *testing.T) {
		handler, _ := setupHandler(t)

		req := testutil.NewRequestWithBody(t, http.MethodPost, "/api/sales-transactions",
			request.CreateSalesTransactionRequest{
				VehicleID:    testutil.MakeID(),
				CustomerName: "Dana Whitfield",
				GrossPrice:   1000,
			})
		w := httptest.NewRecorder()

		handler.CreateTransaction(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestSalesTransactionHandler_GetTransaction(t *testing.T) {
	setupHandler := func(t *testing.T) (*SalesTransactionHandler, *sql.DB) {
		t.Helper()
		db := testutil.SetupTestDB(t)
		ts := testutil.NewTestSalesTransactionService(t, db)
		return NewSalesTransactionHandler(ts), db
	}

	t.Run("returns transaction successfully", func(t *testing.T) {
		handler, db := setupHandler(t)
		vehicle := testutil.NewVehicle().Build(t, db)
		tx := testutil.NewSalesTransaction(vehicle.ID).Build(t, db)

		req := testutil.NewRequestWithURLParams(
			http.MethodGet,
			"/api/sales-transactions/"+tx.ID,
			map[string]string{"uuid": tx.ID},
		)
		w := httptest.NewRecorder()

		handler.GetTransaction(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response model.SalesTransaction
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if response.ID != tx.ID {
			t.Errorf("Expected transaction %s, got %s", tx.ID, response.ID)
		}
	})

	t.Run("returns 404 for unknown transaction", func(t *testing.T) {
		handler, _ := setupHandler(t)

		id := testutil.MakeID()
		req := testutil.NewRequestWithURLParams(
			http.MethodGet,
			"/api/sales-transactions/"+id,
			map[string]string{"uuid": id},
		)
		w := httptest.NewRecorder()

		handler.GetTransaction(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestSalesTransactionHandler_UpdateTransaction(t *testing.T) {
	setupHandler := func(t *testing.T) (*SalesTransactionHandler, *sql.DB) {
		t.Helper()
		db := testutil.SetupTestDB(t)
		ts := testutil.NewTestSalesTransactionService(t, db)
		return NewSalesTransactionHandler(ts), db
	}

	t.Run("updates pending transaction", func(t *testing.T) {
		handler, db := setupHandler(t)
		vehicle := testutil.NewVehicle().Build(t, db)
		tx := testutil.NewSalesTransaction(vehicle.ID).Build(t, db)

		newDiscount := 250.0
		req := testutil.NewRequestWithURLParamsAndBody(
			t,
			http.MethodPatch,
			"/api/sales-transactions/"+tx.ID,
			map[string]string{"uuid": tx.ID},
			request.UpdateSalesTransactionRequest{Discount: &newDiscount},
		)
		w := httptest.NewRecorder()

		handler.UpdateTransaction(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response model.SalesTransaction
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if response.SalePrice != 750 {
			t.Errorf("Expected salePrice 750, got %v", response.SalePrice)
		}
	})

	t.Run("returns 409 for completed transaction", func(t *testing.T) {
		handler, db := setupHandler(t)
		vehicle := testutil.NewVehicle().Build(t, db)
		tx := testutil.NewSalesTransaction(vehicle.ID).Completed().Build(t, db)

		name := "New Name"
		req := testutil.NewRequestWithURLParamsAndBody(
			t,
			http.MethodPatch,
			"/api/sales-transactions/"+tx.ID,
			map[string]string{"uuid": tx.ID},
			request.UpdateSalesTransactionRequest{CustomerName: &name},
		)
		w := httptest.NewRecorder()

		handler.UpdateTransaction(w, req)

		if w.Code != http.StatusConflict {
			t.Errorf("Expected 409, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestSalesTransactionHandler_CompleteAndCancel(t *testing.T) {
	setupHandler := func(t *testing.T) (*SalesTransactionHandler, *sql.DB) {
		t.Helper()
		db := testutil.SetupTestDB(t)
		ts := testutil.NewTestSalesTransactionService(t, db)
		return NewSalesTransactionHandler(ts), db
	}

	t.Run("completes pending transaction", func(t *testing.T) {
		handler, db := setupHandler(t)
		vehicle := testutil.NewVehicle().Build(t, db)
		tx := testutil.NewSalesTransaction(vehicle.ID).Build(t, db)

		req := testutil.NewRequestWithURLParams(
			http.MethodPost,
			"/api/sales-transactions/"+tx.ID+"/complete",
			map[string]string{"uuid": tx.ID},
		)
		w := httptest.NewRecorder()

		handler.CompleteTransaction(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response model.SalesTransaction
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if response.Status != model.StatusCompleted {
			t.Errorf("Expected status completed, got %s", response.Status)
		}
		if response.ClosedAt == nil {
			t.Error("Expected closedAt to be set")
		}
	})

	t.Run("returns 409 when completing twice", func(t *testing.T) {
		handler, db := setupHandler(t)
		vehicle := testutil.NewVehicle().Build(t, db)
		tx := testutil.NewSalesTransaction(vehicle.ID).Build(t, db)

		for i, want := range []int{http.StatusOK, http.StatusConflict} {
			req := testutil.NewRequestWithURLParams(
				http.MethodPost,
				"/api/sales-transactions/"+tx.ID+"/complete",
				map[string]string{"uuid": tx.ID},
			)
			w := httptest.NewRecorder()

			handler.CompleteTransaction(w, req)

			if w.Code != want {
				t.Errorf("Attempt %d: expected %d, got %d: %s", i+1, want, w.Code, w.Body.String())
			}
		}
	})

	t.Run("cancels pending transaction", func(t *testing.T) {
		handler, db := setupHandler(t)
		vehicle := testutil.NewVehicle().Reserved().Build(t, db)
		tx := testutil.NewSalesTransaction(vehicle.ID).Build(t, db)

		req := testutil.NewRequestWithURLParams(
			http.MethodPost,
			"/api/sales-transactions/"+tx.ID+"/cancel",
			map[string]string{"uuid": tx.ID},
		)
		w := httptest.NewRecorder()

		handler.CancelTransaction(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response model.SalesTransaction
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if response.Status != model.StatusCancelled {
			t.Errorf("Expected status cancelled, got %s", response.Status)
		}
	})
}

func TestSalesTransactionHandler_DeleteTransaction(t *testing.T) {
	setupHandler := func(t *testing.T) (*SalesTransactionHandler, *sql.DB) {
		t.Helper()
		db := testutil.SetupTestDB(t)
		ts := testutil.NewTestSalesTransactionService(t, db)
		return NewSalesTransactionHandler(ts), db
	}

	t.Run("deletes transaction successfully", func(t *testing.T) {
		handler, db := setupHandler(t)
		vehicle := testutil.NewVehicle().Build(t, db)
		tx := testutil.NewSalesTransaction(vehicle.ID).Build(t, db)

		req := testutil.NewRequestWithURLParams(
			http.MethodDelete,
			"/api/sales-transactions/"+tx.ID,
			map[string]string{"uuid": tx.ID},
		)
		w := httptest.NewRecorder()

		handler.DeleteTransaction(w, req)

		if w.Code != http.StatusNoContent {
			t.Errorf("Expected 204, got %d: %s", w.Code, w.Body.String())
		}
		testutil.AssertRowCount(t, db, "sales_transaction", 0)
	})

	t.Run("returns 404 for unknown transaction", func(t *testing.T) {
		handler, _ := setupHandler(t)

		id := testutil.MakeID()
		req := testutil.NewRequestWithURLParams(
			http.MethodDelete,
			"/api/sales-transactions/"+id,
			map[string]string{"uuid": id},
		)
		w := httptest.NewRecorder()

		handler.DeleteTransaction(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d: %s", w.Code, w.Body.String())
		}
	})
}
