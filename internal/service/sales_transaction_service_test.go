package service_test

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"

	"github.com/mkuiper/Dealership-CRM-Backend/internal/api/request"
	"github.com/mkuiper/Dealership-CRM-Backend/internal/apperrors"
	"github.com/mkuiper/Dealership-CRM-Backend/internal/model"
	"github.com/mkuiper/Dealership-CRM-Backend/internal/testutil"
)

// failingCoordinator simulates the vehicle store being unreachable after the
// transaction's own write has committed.
type failingCoordinator struct{}

func (failingCoordinator) OnPending(context.Context, string) error {
	return errors.New("vehicle store unavailable")
}

func (failingCoordinator) OnCompleted(context.Context, string) error {
	return errors.New("vehicle store unavailable")
}

func (failingCoordinator) OnCancelled(context.Context, string) error {
	return errors.New("vehicle store unavailable")
}

func vehicleAvailability(t *testing.T, db *sql.DB, vehicleID string) string {
	t.Helper()

	var availability string
	err := db.QueryRow(`SELECT availability FROM vehicle WHERE id = ?`, vehicleID).Scan(&availability)
	if err != nil {
		t.Fatalf("Failed to read vehicle availability: %v", err)
	}
	return availability
}

func TestSalesTransactionService_CreateTransaction(t *testing.T) {
	ctx := context.Background()

	t.Run("creates pending transaction with derived financials", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestSalesTransactionService(t, db)
		vehicle := testutil.NewVehicle().Build(t, db)

		tx, err := svc.CreateTransaction(ctx, request.CreateSalesTransactionRequest{
			VehicleID:    vehicle.ID,
			CustomerName: "Dana Whitfield",
			GrossPrice:   1000,
			Discount:     100,
			TaxRate:      0.13,
		})
		if err != nil {
			t.Fatalf("CreateTransaction failed: %v", err)
		}

		if tx.Status != model.StatusPending {
			t.Errorf("Expected status pending, got %s", tx.Status)
		}
		if tx.ClosedAt != nil {
			t.Error("Expected closedAt to be nil for pending transaction")
		}
		if tx.SalePrice != 900 {
			t.Errorf("Expected salePrice 900, got %v", tx.SalePrice)
		}
		if tx.TaxAmount != 117 {
			t.Errorf("Expected taxAmount 117, got %v", tx.TaxAmount)
		}
		if tx.TotalPrice != 1017 {
			t.Errorf("Expected totalPrice 1017, got %v", tx.TotalPrice)
		}
		if tx.Currency != model.DefaultCurrency {
			t.Errorf("Expected default currency, got %s", tx.Currency)
		}

		// The record must be durable and re-readable.
		stored, err := svc.GetTransaction(ctx, tx.ID)
		if err != nil {
			t.Fatalf("GetTransaction failed: %v", err)
		}
		if stored.TotalPrice != 1017 {
			t.Errorf("Expected stored totalPrice 1017, got %v", stored.TotalPrice)
		}
	})

	t.Run("places reserved hold on the vehicle", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestSalesTransactionService(t, db)
		vehicle := testutil.NewVehicle().Build(t, db)

		_, err := svc.CreateTransaction(ctx, request.CreateSalesTransactionRequest{
			VehicleID:    vehicle.ID,
			CustomerName: "Dana Whitfield",
			GrossPrice:   500,
		})
		if err != nil {
			t.Fatalf("CreateTransaction failed: %v", err)
		}

		if got := vehicleAvailability(t, db, vehicle.ID); got != model.AvailabilityReserved {
			t.Errorf("Expected vehicle reserved, got %s", got)
		}
	})

	t.Run("computes margin when cost of goods is provided", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestSalesTransactionService(t, db)
		vehicle := testutil.NewVehicle().Build(t, db)

		cost := 600.0
		tx, err := svc.CreateTransaction(ctx, request.CreateSalesTransactionRequest{
			VehicleID:    vehicle.ID,
			CustomerName: "Dana Whitfield",
			GrossPrice:   1000,
			Discount:     100,
			CostOfGoods:  &cost,
		})
		if err != nil {
			t.Fatalf("CreateTransaction failed: %v", err)
		}

		if tx.Margin == nil || *tx.Margin != 300 {
			t.Fatalf("Expected margin 300, got %v", tx.Margin)
		}
		if tx.MarginPercent == nil || *tx.MarginPercent != 300.0/900.0 {
			t.Fatalf("Expected marginPercent 300/900, got %v", tx.MarginPercent)
		}
	})

	t.Run("rejects unknown vehicle", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestSalesTransactionService(t, db)

		_, err := svc.CreateTransaction(ctx, request.CreateSalesTransactionRequest{
			VehicleID:    testutil.MakeID(),
			CustomerName: "Dana Whitfield",
			GrossPrice:   1000,
		})
		if !errors.Is(err, apperrors.ErrVehicleNotFound) {
			t.Errorf("Expected ErrVehicleNotFound, got %v", err)
		}
	})

	t.Run("rejects discount exceeding gross price", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestSalesTransactionService(t, db)
		vehicle := testutil.NewVehicle().Build(t, db)

		_, err := svc.CreateTransaction(ctx, request.CreateSalesTransactionRequest{
			VehicleID:    vehicle.ID,
			CustomerName: "Dana Whitfield",
			GrossPrice:   100,
			Discount:     200,
		})
		if !errors.Is(err, apperrors.ErrInvalidFinancialInput) {
			t.Errorf("Expected ErrInvalidFinancialInput, got %v", err)
		}
		testutil.AssertRowCount(t, db, "sales_transaction", 0)
	})
}

func TestSalesTransactionService_UpdateTransaction(t *testing.T) {
	ctx := context.Background()

	t.Run("recomputes derived fields from merged values", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestSalesTransactionService(t, db)
		vehicle := testutil.NewVehicle().Build(t, db)
		tx := testutil.NewSalesTransaction(vehicle.ID).Build(t, db)

		newDiscount := 250.0
		updated, err := svc.UpdateTransaction(ctx, tx.ID, request.UpdateSalesTransactionRequest{
			Discount: &newDiscount,
		})
		if err != nil {
			t.Fatalf("UpdateTransaction failed: %v", err)
		}

		if updated.SalePrice != 750 {
			t.Errorf("Expected salePrice 750, got %v", updated.SalePrice)
		}
		if updated.TaxAmount != 97.5 {
			t.Errorf("Expected taxAmount 97.50, got %v", updated.TaxAmount)
		}
		if updated.TotalPrice != 847.5 {
			t.Errorf("Expected totalPrice 847.50, got %v", updated.TotalPrice)
		}
	})

	t.Run("rejects patch that violates a financial constraint", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestSalesTransactionService(t, db)
		vehicle := testutil.NewVehicle().Build(t, db)
		tx := testutil.NewSalesTransaction(vehicle.ID).Build(t, db)

		badDiscount := 5000.0
		_, err := svc.UpdateTransaction(ctx, tx.ID, request.UpdateSalesTransactionRequest{
			Discount: &badDiscount,
		})
		if !errors.Is(err, apperrors.ErrInvalidFinancialInput) {
			t.Fatalf("Expected ErrInvalidFinancialInput, got %v", err)
		}

		// The stored record must be untouched.
		stored, err := svc.GetTransaction(ctx, tx.ID)
		if err != nil {
			t.Fatalf("GetTransaction failed: %v", err)
		}
		if stored.Discount != 100 {
			t.Errorf("Expected stored discount 100, got %v", stored.Discount)
		}
	})

	t.Run("rejects update on completed transaction", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestSalesTransactionService(t, db)
		vehicle := testutil.NewVehicle().Build(t, db)
		tx := testutil.NewSalesTransaction(vehicle.ID).Completed().Build(t, db)

		name := "New Name"
		_, err := svc.UpdateTransaction(ctx, tx.ID, request.UpdateSalesTransactionRequest{
			CustomerName: &name,
		})
		if !errors.Is(err, apperrors.ErrInvalidStateTransition) {
			t.Errorf("Expected ErrInvalidStateTransition, got %v", err)
		}
	})

	t.Run("returns not found for unknown transaction", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestSalesTransactionService(t, db)

		name := "New Name"
		_, err := svc.UpdateTransaction(ctx, testutil.MakeID(), request.UpdateSalesTransactionRequest{
			CustomerName: &name,
		})
		if !errors.Is(err, apperrors.ErrSalesTransactionNotFound) {
			t.Errorf("Expected ErrSalesTransactionNotFound, got %v", err)
		}
	})
}

func TestSalesTransactionService_CompleteTransaction(t *testing.T) {
	ctx := context.Background()

	t.Run("completes pending transaction and marks vehicle sold", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestSalesTransactionService(t, db)
		vehicle := testutil.NewVehicle().Reserved().Build(t, db)
		tx := testutil.NewSalesTransaction(vehicle.ID).Build(t, db)

		completed, err := svc.CompleteTransaction(ctx, tx.ID)
		if err != nil {
			t.Fatalf("CompleteTransaction failed: %v", err)
		}

		if completed.Status != model.StatusCompleted {
			t.Errorf("Expected status completed, got %s", completed.Status)
		}
		if completed.ClosedAt == nil {
			t.Error("Expected closedAt to be set")
		}
		if completed.VehicleSyncPending {
			t.Error("Expected sync flag cleared after successful vehicle update")
		}
		if got := vehicleAvailability(t, db, vehicle.ID); got != model.AvailabilitySold {
			t.Errorf("Expected vehicle sold, got %s", got)
		}
	})

	t.Run("rejects completing an already completed transaction", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestSalesTransactionService(t, db)
		vehicle := testutil.NewVehicle().Build(t, db)
		tx := testutil.NewSalesTransaction(vehicle.ID).Build(t, db)

		if _, err := svc.CompleteTransaction(ctx, tx.ID); err != nil {
			t.Fatalf("First CompleteTransaction failed: %v", err)
		}

		_, err := svc.CompleteTransaction(ctx, tx.ID)
		if !errors.Is(err, apperrors.ErrInvalidStateTransition) {
			t.Errorf("Expected ErrInvalidStateTransition, got %v", err)
		}
	})

	t.Run("exactly one of two concurrent completes wins", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestSalesTransactionService(t, db)
		vehicle := testutil.NewVehicle().Build(t, db)
		tx := testutil.NewSalesTransaction(vehicle.ID).Build(t, db)

		// Both callers read the record as pending; the conditional status
		// write decides the winner.
		errs := make(chan error, 2)
		var wg sync.WaitGroup
		for i := 0; i < 2; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := svc.CompleteTransaction(ctx, tx.ID)
				errs <- err
			}()
		}
		wg.Wait()
		close(errs)

		var successes, conflicts int
		for err := range errs {
			switch {
			case err == nil:
				successes++
			case errors.Is(err, apperrors.ErrInvalidStateTransition):
				conflicts++
			default:
				t.Fatalf("Unexpected error: %v", err)
			}
		}
		if successes != 1 || conflicts != 1 {
			t.Errorf("Expected one success and one conflict, got %d successes and %d conflicts", successes, conflicts)
		}

		var status string
		if err := db.QueryRow(
			`SELECT status FROM sales_transaction WHERE id = ?`, tx.ID,
		).Scan(&status); err != nil {
			t.Fatalf("Failed to read stored transaction: %v", err)
		}
		if status != model.StatusCompleted {
			t.Errorf("Expected stored status completed, got %s", status)
		}
		if got := vehicleAvailability(t, db, vehicle.ID); got != model.AvailabilitySold {
			t.Errorf("Expected vehicle sold, got %s", got)
		}
	})

	t.Run("keeps terminal state when vehicle update fails", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestSalesTransactionServiceWithCoordinator(t, db, failingCoordinator{})
		vehicle := testutil.NewVehicle().Build(t, db)
		tx := testutil.NewSalesTransaction(vehicle.ID).Build(t, db)

		completed, err := svc.CompleteTransaction(ctx, tx.ID)
		if !errors.Is(err, apperrors.ErrDownstreamEffectFailed) {
			t.Fatalf("Expected ErrDownstreamEffectFailed, got %v", err)
		}
		if completed == nil || completed.Status != model.StatusCompleted {
			t.Fatal("Expected transaction returned in completed state despite vehicle failure")
		}

		// The transition is durable and the record stays flagged for the reconciler.
		var status string
		var syncPending bool
		err = db.QueryRow(
			`SELECT status, vehicle_sync_pending FROM sales_transaction WHERE id = ?`, tx.ID,
		).Scan(&status, &syncPending)
		if err != nil {
			t.Fatalf("Failed to read stored transaction: %v", err)
		}
		if status != model.StatusCompleted {
			t.Errorf("Expected stored status completed, got %s", status)
		}
		if !syncPending {
			t.Error("Expected sync flag to remain set")
		}
	})
}

func TestSalesTransactionService_CancelTransaction(t *testing.T) {
	ctx := context.Background()

	t.Run("cancels pending transaction and releases the hold", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestSalesTransactionService(t, db)
		vehicle := testutil.NewVehicle().Reserved().Build(t, db)
		tx := testutil.NewSalesTransaction(vehicle.ID).Build(t, db)

		cancelled, err := svc.CancelTransaction(ctx, tx.ID)
		if err != nil {
			t.Fatalf("CancelTransaction failed: %v", err)
		}

		if cancelled.Status != model.StatusCancelled {
			t.Errorf("Expected status cancelled, got %s", cancelled.Status)
		}
		if cancelled.ClosedAt == nil {
			t.Error("Expected closedAt to be set")
		}
		if got := vehicleAvailability(t, db, vehicle.ID); got != model.AvailabilityAvailable {
			t.Errorf("Expected vehicle available, got %s", got)
		}
	})

	t.Run("does not revive a sold vehicle", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestSalesTransactionService(t, db)
		vehicle := testutil.NewVehicle().Sold().Build(t, db)
		tx := testutil.NewSalesTransaction(vehicle.ID).Build(t, db)

		if _, err := svc.CancelTransaction(ctx, tx.ID); err != nil {
			t.Fatalf("CancelTransaction failed: %v", err)
		}

		// Release is conditional on a reserved hold; a sold vehicle stays sold.
		if got := vehicleAvailability(t, db, vehicle.ID); got != model.AvailabilitySold {
			t.Errorf("Expected vehicle to remain sold, got %s", got)
		}
	})

	t.Run("rejects cancelling a cancelled transaction", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestSalesTransactionService(t, db)
		vehicle := testutil.NewVehicle().Build(t, db)
		tx := testutil.NewSalesTransaction(vehicle.ID).Cancelled().Build(t, db)

		_, err := svc.CancelTransaction(ctx, tx.ID)
		if !errors.Is(err, apperrors.ErrInvalidStateTransition) {
			t.Errorf("Expected ErrInvalidStateTransition, got %v", err)
		}
	})
}

func TestSalesTransactionService_DeleteTransaction(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes transaction without touching the vehicle", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestSalesTransactionService(t, db)
		vehicle := testutil.NewVehicle().Sold().Build(t, db)
		tx := testutil.NewSalesTransaction(vehicle.ID).Completed().Build(t, db)

		if err := svc.DeleteTransaction(ctx, tx.ID); err != nil {
			t.Fatalf("DeleteTransaction failed: %v", err)
		}

		testutil.AssertRowCount(t, db, "sales_transaction", 0)
		if got := vehicleAvailability(t, db, vehicle.ID); got != model.AvailabilitySold {
			t.Errorf("Expected vehicle to remain sold, got %s", got)
		}
	})

	t.Run("returns not found for unknown transaction", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestSalesTransactionService(t, db)

		err := svc.DeleteTransaction(ctx, testutil.MakeID())
		if !errors.Is(err, apperrors.ErrSalesTransactionNotFound) {
			t.Errorf("Expected ErrSalesTransactionNotFound, got %v", err)
		}
	})
}

func TestSalesTransactionService_GetSummary(t *testing.T) {
	ctx := context.Background()

	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestSalesTransactionService(t, db)
	vehicle := testutil.NewVehicle().Build(t, db)

	testutil.NewSalesTransaction(vehicle.ID).Build(t, db)
	testutil.NewSalesTransaction(vehicle.ID).Build(t, db)
	testutil.NewSalesTransaction(vehicle.ID).Completed().Build(t, db)
	testutil.NewSalesTransaction(vehicle.ID).Cancelled().Build(t, db)

	summary, err := svc.GetSummary(ctx)
	if err != nil {
		t.Fatalf("GetSummary failed: %v", err)
	}

	if summary.Pending.Count != 2 {
		t.Errorf("Expected 2 pending, got %d", summary.Pending.Count)
	}
	if summary.Completed.Count != 1 {
		t.Errorf("Expected 1 completed, got %d", summary.Completed.Count)
	}
	if summary.Cancelled.Count != 1 {
		t.Errorf("Expected 1 cancelled, got %d", summary.Cancelled.Count)
	}
	if summary.Pending.SalePrice != 1800 {
		t.Errorf("Expected pending salePrice total 1800, got %v", summary.Pending.SalePrice)
	}
}
