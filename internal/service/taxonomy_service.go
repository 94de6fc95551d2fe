package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/mkuiper/Dealership-CRM-Backend/internal/apperrors"
	"github.com/mkuiper/Dealership-CRM-Backend/internal/model"
	"github.com/mkuiper/Dealership-CRM-Backend/internal/repository"
)

// TaxonomyService manages the reference data used to describe vehicles: makes,
// models, and the name-only lookup tables.
type TaxonomyService struct {
	makeModelRepo *repository.MakeModelRepository
	lookupRepo    *repository.LookupRepository
}

// NewTaxonomyService creates a new TaxonomyService with the provided dependencies.
func NewTaxonomyService(
	makeModelRepo *repository.MakeModelRepository,
	lookupRepo *repository.LookupRepository,
) *TaxonomyService {
	return &TaxonomyService{
		makeModelRepo: makeModelRepo,
		lookupRepo:    lookupRepo,
	}
}

// ListMakes retrieves all makes.
func (s *TaxonomyService) ListMakes(ctx context.Context) ([]model.Make, error) {
	return s.makeModelRepo.ListMakes(ctx)
}

// CreateMake persists a new make.
func (s *TaxonomyService) CreateMake(ctx context.Context, name string) (*model.Make, error) {
	m := &model.Make{ID: uuid.New().String(), Name: name}
	if err := s.makeModelRepo.InsertMake(ctx, m); err != nil {
		return nil, fmt.Errorf("failed to create make: %w", err)
	}
	return m, nil
}

// DeleteMake removes a make that no models reference.
func (s *TaxonomyService) DeleteMake(ctx context.Context, id string) error {
	deleted, err := s.makeModelRepo.DeleteMake(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperrors.ErrMakeNotFound
	}
	return nil
}

// ListModels retrieves models, optionally filtered by make.
func (s *TaxonomyService) ListModels(ctx context.Context, makeID string) ([]model.Model, error) {
	return s.makeModelRepo.ListModels(ctx, makeID)
}

// CreateModel persists a new model under an existing make.
func (s *TaxonomyService) CreateModel(ctx context.Context, makeID, name string) (*model.Model, error) {
	m := &model.Model{ID: uuid.New().String(), MakeID: makeID, Name: name}
	if err := s.makeModelRepo.InsertModel(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// DeleteModel removes a model.
func (s *TaxonomyService) DeleteModel(ctx context.Context, id string) error {
	deleted, err := s.makeModelRepo.DeleteModel(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperrors.ErrModelNotFound
	}
	return nil
}

// ListLookups retrieves all entries of one lookup kind.
func (s *TaxonomyService) ListLookups(ctx context.Context, kind string) ([]model.Lookup, error) {
	return s.lookupRepo.List(ctx, kind)
}

// CreateLookup persists a new lookup entry of the given kind.
func (s *TaxonomyService) CreateLookup(ctx context.Context, kind, name string) (*model.Lookup, error) {
	l := &model.Lookup{ID: uuid.New().String(), Name: name}
	if err := s.lookupRepo.Insert(ctx, kind, l); err != nil {
		return nil, err
	}
	return l, nil
}

// DeleteLookup removes a lookup entry of the given kind.
func (s *TaxonomyService) DeleteLookup(ctx context.Context, kind, id string) error {
	deleted, err := s.lookupRepo.Delete(ctx, kind, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperrors.ErrLookupNotFound
	}
	return nil
}
