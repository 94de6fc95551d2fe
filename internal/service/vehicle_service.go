package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mkuiper/Dealership-CRM-Backend/internal/api/request"
	"github.com/mkuiper/Dealership-CRM-Backend/internal/apperrors"
	"github.com/mkuiper/Dealership-CRM-Backend/internal/model"
	"github.com/mkuiper/Dealership-CRM-Backend/internal/repository"
)

// VehicleService handles inventory operations on vehicles.
type VehicleService struct {
	vehicleRepo *repository.VehicleRepository
}

// NewVehicleService creates a new VehicleService with the provided dependencies.
func NewVehicleService(vehicleRepo *repository.VehicleRepository) *VehicleService {
	return &VehicleService{vehicleRepo: vehicleRepo}
}

// ListVehicles retrieves vehicles matching the filter, with make and model names resolved.
func (s *VehicleService) ListVehicles(ctx context.Context, filter repository.VehicleFilter) ([]model.VehicleResponse, error) {
	return s.vehicleRepo.List(ctx, filter)
}

// GetVehicle retrieves a single vehicle by ID.
func (s *VehicleService) GetVehicle(ctx context.Context, id string) (model.VehicleResponse, error) {
	return s.vehicleRepo.Get(ctx, id)
}

// CreateVehicle persists a new vehicle. New inventory always starts available.
func (s *VehicleService) CreateVehicle(ctx context.Context, req request.CreateVehicleRequest) (*model.Vehicle, error) {
	vehicle := &model.Vehicle{
		ID:            uuid.New().String(),
		MakeID:        req.MakeID,
		ModelID:       req.ModelID,
		Year:          req.Year,
		VIN:           req.VIN,
		Price:         req.Price,
		Mileage:       req.Mileage,
		FuelTypeID:    req.FuelTypeID,
		DriveTypeID:   req.DriveTypeID,
		VehicleTypeID: req.VehicleTypeID,
		Availability:  model.AvailabilityAvailable,
		Description:   req.Description,
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.vehicleRepo.Insert(ctx, vehicle); err != nil {
		return nil, fmt.Errorf("failed to create vehicle: %w", err)
	}

	return vehicle, nil
}

// UpdateVehicle applies a patch to a vehicle's descriptive fields. Availability is
// owned by the sales lifecycle and cannot be set through this path.
func (s *VehicleService) UpdateVehicle(ctx context.Context, id string, req request.UpdateVehicleRequest) (*model.VehicleResponse, error) {
	current, err := s.vehicleRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	vehicle := current.Vehicle
	if req.MakeID != nil {
		vehicle.MakeID = *req.MakeID
	}
	if req.ModelID != nil {
		vehicle.ModelID = *req.ModelID
	}
	if req.Year != nil {
		vehicle.Year = *req.Year
	}
	if req.VIN != nil {
		vehicle.VIN = *req.VIN
	}
	if req.Price != nil {
		vehicle.Price = *req.Price
	}
	if req.Mileage != nil {
		vehicle.Mileage = *req.Mileage
	}
	if req.FuelTypeID != nil {
		vehicle.FuelTypeID = req.FuelTypeID
	}
	if req.DriveTypeID != nil {
		vehicle.DriveTypeID = req.DriveTypeID
	}
	if req.VehicleTypeID != nil {
		vehicle.VehicleTypeID = req.VehicleTypeID
	}
	if req.Description != nil {
		vehicle.Description = *req.Description
	}

	updated, err := s.vehicleRepo.Update(ctx, &vehicle)
	if err != nil {
		return nil, fmt.Errorf("failed to update vehicle: %w", err)
	}
	if !updated {
		return nil, apperrors.ErrVehicleNotFound
	}

	// Re-read so the response carries the resolved make/model names.
	result, err := s.vehicleRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// DeleteVehicle removes a vehicle from inventory.
func (s *VehicleService) DeleteVehicle(ctx context.Context, id string) error {
	deleted, err := s.vehicleRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete vehicle: %w", err)
	}
	if !deleted {
		return apperrors.ErrVehicleNotFound
	}
	return nil
}
