package service

import (
	"fmt"

	"github.com/mkuiper/Dealership-CRM-Backend/internal/apperrors"
	"github.com/mkuiper/Dealership-CRM-Backend/internal/model"
)

// allowedTransitions maps a status to the statuses it may move to.
// Completed and cancelled are terminal; there is no reopen. Reversing a closed sale
// means creating a new transaction, which is a business decision left to the caller.
var allowedTransitions = map[string]map[string]bool{
	model.StatusPending:   {model.StatusCompleted: true, model.StatusCancelled: true},
	model.StatusCompleted: {},
	model.StatusCancelled: {},
}

// CanTransition reports whether a transaction may move from one status to another.
func CanTransition(from, to string) bool {
	return allowedTransitions[from][to]
}

// ensureTransition validates a requested status transition against the lifecycle.
func ensureTransition(t *model.SalesTransaction, to string) error {
	if !CanTransition(t.Status, to) {
		return fmt.Errorf("%w: cannot move %s transaction %s to %s",
			apperrors.ErrInvalidStateTransition, t.Status, t.ID, to)
	}
	return nil
}

// ensureMutable validates that a transaction still accepts field updates.
// Completed and cancelled records are immutable except for administrative deletion.
func ensureMutable(t *model.SalesTransaction) error {
	if t.Status != model.StatusPending {
		return fmt.Errorf("%w: %s transaction %s cannot be updated",
			apperrors.ErrInvalidStateTransition, t.Status, t.ID)
	}
	return nil
}
