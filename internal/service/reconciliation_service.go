package service

import (
	"context"
	"fmt"
	"log"

	"golang.org/x/sync/errgroup"

	"github.com/mkuiper/Dealership-CRM-Backend/internal/model"
	"github.com/mkuiper/Dealership-CRM-Backend/internal/repository"
)

const reconcileConcurrency = 4

// ReconciliationService re-drives vehicle availability writes that failed after a
// transaction reached a terminal status. It scans for closed transactions still
// flagged as sync-pending, replays the idempotent coordinator effect, and clears
// the flag on success. Failures are logged and retried on the next run.
type ReconciliationService struct {
	transactionRepo *repository.SalesTransactionRepository
	availability    AvailabilityCoordinator
}

// NewReconciliationService creates a new ReconciliationService.
func NewReconciliationService(
	transactionRepo *repository.SalesTransactionRepository,
	availability AvailabilityCoordinator,
) *ReconciliationService {
	return &ReconciliationService{
		transactionRepo: transactionRepo,
		availability:    availability,
	}
}

// ReconcileVehicleAvailability processes all sync-pending transactions. It returns
// the number of records successfully reconciled; individual failures do not abort
// the run.
func (s *ReconciliationService) ReconcileVehicleAvailability(ctx context.Context) (int, error) {
	pending, err := s.transactionRepo.ListSyncPending(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list sync-pending transactions: %w", err)
	}
	if len(pending) == 0 {
		return 0, nil
	}

	log.Printf("reconciling vehicle availability for %d transaction(s)", len(pending))

	results := make([]bool, len(pending))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(reconcileConcurrency)

	for i, transaction := range pending {
		i, transaction := i, transaction
		g.Go(func() error {
			if err := s.reconcileOne(gctx, &transaction); err != nil {
				log.Printf("reconciliation failed for transaction %s: %v", transaction.ID, err)
				return nil
			}
			results[i] = true
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return 0, err
	}

	reconciled := 0
	for _, ok := range results {
		if ok {
			reconciled++
		}
	}
	return reconciled, nil
}

func (s *ReconciliationService) reconcileOne(ctx context.Context, t *model.SalesTransaction) error {
	var err error
	switch t.Status {
	case model.StatusCompleted:
		err = s.availability.OnCompleted(ctx, t.VehicleID)
	case model.StatusCancelled:
		err = s.availability.OnCancelled(ctx, t.VehicleID)
	default:
		// Only terminal records carry the flag. A pending record here means the flag
		// was set outside the lifecycle; clear it rather than loop forever.
		log.Printf("clearing stray sync flag on %s transaction %s", t.Status, t.ID)
	}
	if err != nil {
		return err
	}

	return s.transactionRepo.ClearSyncPending(ctx, t.ID)
}
