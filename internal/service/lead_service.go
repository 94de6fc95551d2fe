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

// LeadService handles inbound lead intake and review.
type LeadService struct {
	leadRepo    *repository.LeadRepository
	vehicleRepo *repository.VehicleRepository
}

// NewLeadService creates a new LeadService with the provided dependencies.
func NewLeadService(leadRepo *repository.LeadRepository, vehicleRepo *repository.VehicleRepository) *LeadService {
	return &LeadService{leadRepo: leadRepo, vehicleRepo: vehicleRepo}
}

// CreateLead persists an inbound lead. When the lead references a vehicle, the
// vehicle must exist.
func (s *LeadService) CreateLead(ctx context.Context, req request.CreateLeadRequest) (*model.Lead, error) {
	if req.VehicleID != nil {
		exists, err := s.vehicleRepo.Exists(ctx, *req.VehicleID)
		if err != nil {
			return nil, fmt.Errorf("failed to look up vehicle: %w", err)
		}
		if !exists {
			return nil, apperrors.ErrVehicleNotFound
		}
	}

	lead := &model.Lead{
		ID:        uuid.New().String(),
		Kind:      req.Kind,
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Message:   req.Message,
		VehicleID: req.VehicleID,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.leadRepo.Insert(ctx, lead); err != nil {
		return nil, fmt.Errorf("failed to create lead: %w", err)
	}
	return lead, nil
}

// ListLeads retrieves leads, newest first, optionally filtered by kind.
func (s *LeadService) ListLeads(ctx context.Context, kind string) ([]model.Lead, error) {
	return s.leadRepo.List(ctx, kind)
}

// GetLead retrieves a single lead by ID.
func (s *LeadService) GetLead(ctx context.Context, id string) (model.Lead, error) {
	return s.leadRepo.Get(ctx, id)
}

// DeleteLead removes a lead after review.
func (s *LeadService) DeleteLead(ctx context.Context, id string) error {
	deleted, err := s.leadRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete lead: %w", err)
	}
	if !deleted {
		return apperrors.ErrLeadNotFound
	}
	return nil
}
