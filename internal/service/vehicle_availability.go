package service

import (
	"context"

	"github.com/mkuiper/Dealership-CRM-Backend/internal/repository"
)

// AvailabilityCoordinator propagates a sales transaction's lifecycle effect onto the
// linked vehicle's availability. The vehicle write and the transaction write are two
// separate persistence operations with no cross-entity atomicity, so every method must
// be safe to re-invoke: implementations are idempotent no-ops when the vehicle is
// already in the target state.
type AvailabilityCoordinator interface {
	// OnPending places a reserved hold on the vehicle when a sale opens.
	OnPending(ctx context.Context, vehicleID string) error
	// OnCompleted marks the vehicle sold.
	OnCompleted(ctx context.Context, vehicleID string) error
	// OnCancelled releases any reserved hold. No-op when no hold exists.
	OnCancelled(ctx context.Context, vehicleID string) error
}

// VehicleAvailabilityCoordinator is the database-backed AvailabilityCoordinator.
// Callers invoke it only after the transaction's own state write has succeeded;
// the financial record is the source of truth and vehicle availability is a
// best-effort downstream projection.
type VehicleAvailabilityCoordinator struct {
	vehicleRepo *repository.VehicleRepository
}

// NewVehicleAvailabilityCoordinator creates a coordinator over the given vehicle repository.
func NewVehicleAvailabilityCoordinator(vehicleRepo *repository.VehicleRepository) *VehicleAvailabilityCoordinator {
	return &VehicleAvailabilityCoordinator{vehicleRepo: vehicleRepo}
}

// OnPending moves an available vehicle to reserved.
func (c *VehicleAvailabilityCoordinator) OnPending(ctx context.Context, vehicleID string) error {
	return c.vehicleRepo.PlaceHold(ctx, vehicleID)
}

// OnCompleted marks the vehicle sold. Re-invoking on an already-sold vehicle is a no-op.
func (c *VehicleAvailabilityCoordinator) OnCompleted(ctx context.Context, vehicleID string) error {
	return c.vehicleRepo.MarkSold(ctx, vehicleID)
}

// OnCancelled releases a reserved hold, returning the vehicle to available.
func (c *VehicleAvailabilityCoordinator) OnCancelled(ctx context.Context, vehicleID string) error {
	return c.vehicleRepo.ReleaseHold(ctx, vehicleID)
}
