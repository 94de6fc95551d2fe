package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/mkuiper/Dealership-CRM-Backend/internal/api/request"
	"github.com/mkuiper/Dealership-CRM-Backend/internal/apperrors"
	"github.com/mkuiper/Dealership-CRM-Backend/internal/finance"
	"github.com/mkuiper/Dealership-CRM-Backend/internal/model"
	"github.com/mkuiper/Dealership-CRM-Backend/internal/repository"
)

// SalesTransactionService orchestrates the sales transaction lifecycle: it normalizes
// requests, recomputes derived financials, persists state, and propagates terminal
// transitions onto the linked vehicle through the availability coordinator.
//
// Ordering is strict within one operation: the transaction-state write always precedes
// the vehicle-side write. When the vehicle write fails after the transaction committed,
// the caller receives ErrDownstreamEffectFailed and the record stays flagged for the
// reconciler; the transition itself is never rolled back.
type SalesTransactionService struct {
	transactionRepo *repository.SalesTransactionRepository
	vehicleRepo     *repository.VehicleRepository
	availability    AvailabilityCoordinator
}

// NewSalesTransactionService creates a new SalesTransactionService with the provided dependencies.
func NewSalesTransactionService(
	transactionRepo *repository.SalesTransactionRepository,
	vehicleRepo *repository.VehicleRepository,
	availability AvailabilityCoordinator,
) *SalesTransactionService {
	return &SalesTransactionService{
		transactionRepo: transactionRepo,
		vehicleRepo:     vehicleRepo,
		availability:    availability,
	}
}

// CreateTransaction validates the referenced vehicle, derives the financial fields,
// and persists a new pending transaction. A reserved hold is placed on the vehicle
// afterwards, best effort: a failed hold write does not fail the create.
func (s *SalesTransactionService) CreateTransaction(ctx context.Context, req request.CreateSalesTransactionRequest) (*model.SalesTransaction, error) {
	exists, err := s.vehicleRepo.Exists(ctx, req.VehicleID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up vehicle: %w", err)
	}
	if !exists {
		return nil, apperrors.ErrVehicleNotFound
	}

	derived, err := finance.Recompute(finance.Inputs{
		GrossPrice:  req.GrossPrice,
		Discount:    req.Discount,
		TaxRate:     req.TaxRate,
		CostOfGoods: req.CostOfGoods,
	})
	if err != nil {
		return nil, err
	}

	currency := req.Currency
	if currency == "" {
		currency = model.DefaultCurrency
	}

	now := time.Now().UTC()
	transaction := &model.SalesTransaction{
		ID:             uuid.New().String(),
		VehicleID:      req.VehicleID,
		CustomerName:   req.CustomerName,
		CustomerEmail:  req.CustomerEmail,
		GrossPrice:     req.GrossPrice,
		Discount:       req.Discount,
		SalePrice:      derived.SalePrice,
		TaxRate:        req.TaxRate,
		TaxAmount:      derived.TaxAmount,
		TotalPrice:     derived.TotalPrice,
		CostOfGoods:    req.CostOfGoods,
		Margin:         derived.Margin,
		MarginPercent:  derived.MarginPercent,
		Currency:       currency,
		PaymentMethod:  req.PaymentMethod,
		Status:         model.StatusPending,
		SalespersonID:  req.SalespersonID,
		ExternalDealID: req.ExternalDealID,
		Notes:          req.Notes,
		Meta:           req.Meta,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.transactionRepo.Insert(ctx, transaction); err != nil {
		return nil, fmt.Errorf("failed to create sales transaction: %w", err)
	}

	if err := s.availability.OnPending(ctx, transaction.VehicleID); err != nil {
		log.Printf("failed to place hold on vehicle %s: %v", transaction.VehicleID, err)
	}

	return transaction, nil
}

// GetTransaction retrieves a single sales transaction by its ID.
func (s *SalesTransactionService) GetTransaction(ctx context.Context, id string) (model.SalesTransaction, error) {
	return s.transactionRepo.Get(ctx, id)
}

// ListTransactions retrieves transactions matching the filter, newest first.
func (s *SalesTransactionService) ListTransactions(ctx context.Context, filter repository.SalesTransactionFilter) ([]model.SalesTransaction, error) {
	return s.transactionRepo.List(ctx, filter)
}

// GetSummary aggregates transaction count and totals per status.
func (s *SalesTransactionService) GetSummary(ctx context.Context) (model.SalesSummary, error) {
	return s.transactionRepo.Summary(ctx)
}

// UpdateTransaction applies a patch to a pending transaction and recomputes the
// derived financials. A patch that violates a calculator constraint is rejected with
// ErrInvalidFinancialInput before anything is written; a non-pending record is
// rejected with ErrInvalidStateTransition.
func (s *SalesTransactionService) UpdateTransaction(ctx context.Context, id string, req request.UpdateSalesTransactionRequest) (*model.SalesTransaction, error) {
	transaction, err := s.transactionRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := ensureMutable(&transaction); err != nil {
		return nil, err
	}

	applyPatch(&transaction, req)

	derived, err := finance.Recompute(finance.Inputs{
		GrossPrice:  transaction.GrossPrice,
		Discount:    transaction.Discount,
		TaxRate:     transaction.TaxRate,
		CostOfGoods: transaction.CostOfGoods,
	})
	if err != nil {
		return nil, err
	}
	applyDerived(&transaction, derived)
	transaction.UpdatedAt = time.Now().UTC()

	// Conditional write: a racer that closed the record between our read and this
	// write leaves zero rows affected.
	updated, err := s.transactionRepo.UpdatePending(ctx, &transaction)
	if err != nil {
		return nil, fmt.Errorf("failed to update sales transaction: %w", err)
	}
	if !updated {
		return nil, fmt.Errorf("%w: transaction %s is no longer pending",
			apperrors.ErrInvalidStateTransition, id)
	}

	return &transaction, nil
}

// CompleteTransaction moves a pending transaction to completed, marks the vehicle
// sold, and stamps closedAt. Exactly one of two concurrent completions succeeds; the
// other observes ErrInvalidStateTransition.
func (s *SalesTransactionService) CompleteTransaction(ctx context.Context, id string) (*model.SalesTransaction, error) {
	return s.closeTransaction(ctx, id, model.StatusCompleted)
}

// CancelTransaction moves a pending transaction to cancelled and releases the hold
// on the vehicle.
func (s *SalesTransactionService) CancelTransaction(ctx context.Context, id string) (*model.SalesTransaction, error) {
	return s.closeTransaction(ctx, id, model.StatusCancelled)
}

func (s *SalesTransactionService) closeTransaction(ctx context.Context, id, target string) (*model.SalesTransaction, error) {
	transaction, err := s.transactionRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := ensureTransition(&transaction, target); err != nil {
		return nil, err
	}

	// Re-run the calculator on the current fields so the persisted derived values
	// are fresh at the moment the record closes.
	derived, err := finance.Recompute(finance.Inputs{
		GrossPrice:  transaction.GrossPrice,
		Discount:    transaction.Discount,
		TaxRate:     transaction.TaxRate,
		CostOfGoods: transaction.CostOfGoods,
	})
	if err != nil {
		return nil, err
	}
	applyDerived(&transaction, derived)

	now := time.Now().UTC()
	transaction.Status = target
	transaction.ClosedAt = &now
	transaction.UpdatedAt = now
	transaction.VehicleSyncPending = true

	transitioned, err := s.transactionRepo.TransitionStatus(ctx, &transaction)
	if err != nil {
		return nil, fmt.Errorf("failed to persist status transition: %w", err)
	}
	if !transitioned {
		// Lost the conditional write: another caller closed this record first.
		return nil, fmt.Errorf("%w: transaction %s is no longer pending",
			apperrors.ErrInvalidStateTransition, id)
	}

	// The transaction state is durable from here on. A failing vehicle write is
	// surfaced distinctly and left for the reconciler; it never rolls back the
	// transition.
	var syncErr error
	switch target {
	case model.StatusCompleted:
		syncErr = s.availability.OnCompleted(ctx, transaction.VehicleID)
	case model.StatusCancelled:
		syncErr = s.availability.OnCancelled(ctx, transaction.VehicleID)
	}
	if syncErr != nil {
		log.Printf("vehicle availability update failed for transaction %s (vehicle %s): %v",
			transaction.ID, transaction.VehicleID, syncErr)
		return &transaction, fmt.Errorf("%w: %v", apperrors.ErrDownstreamEffectFailed, syncErr)
	}

	transaction.VehicleSyncPending = false
	if err := s.transactionRepo.ClearSyncPending(ctx, transaction.ID); err != nil {
		// The reconciler will redo the idempotent vehicle write and clear the flag.
		log.Printf("failed to clear sync flag for transaction %s: %v", transaction.ID, err)
	}

	return &transaction, nil
}

// DeleteTransaction performs the administrative hard delete. The linked vehicle's
// availability is deliberately not reverted.
func (s *SalesTransactionService) DeleteTransaction(ctx context.Context, id string) error {
	deleted, err := s.transactionRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete sales transaction: %w", err)
	}
	if !deleted {
		return apperrors.ErrSalesTransactionNotFound
	}
	return nil
}

func applyPatch(t *model.SalesTransaction, req request.UpdateSalesTransactionRequest) {
	if req.CustomerName != nil {
		t.CustomerName = *req.CustomerName
	}
	if req.CustomerEmail != nil {
		if *req.CustomerEmail == "" {
			t.CustomerEmail = nil
		} else {
			t.CustomerEmail = req.CustomerEmail
		}
	}
	if req.GrossPrice != nil {
		t.GrossPrice = *req.GrossPrice
	}
	if req.Discount != nil {
		t.Discount = *req.Discount
	}
	if req.TaxRate != nil {
		t.TaxRate = *req.TaxRate
	}
	if req.CostOfGoods != nil {
		t.CostOfGoods = req.CostOfGoods
	}
	if req.Currency != nil {
		t.Currency = *req.Currency
	}
	if req.PaymentMethod != nil {
		t.PaymentMethod = req.PaymentMethod
	}
	if req.SalespersonID != nil {
		t.SalespersonID = req.SalespersonID
	}
	if req.ExternalDealID != nil {
		t.ExternalDealID = *req.ExternalDealID
	}
	if req.Notes != nil {
		t.Notes = *req.Notes
	}
	if len(req.Meta) > 0 {
		t.Meta = req.Meta
	}
}

func applyDerived(t *model.SalesTransaction, d finance.Derived) {
	t.SalePrice = d.SalePrice
	t.TaxAmount = d.TaxAmount
	t.TotalPrice = d.TotalPrice
	t.Margin = d.Margin
	t.MarginPercent = d.MarginPercent
}
