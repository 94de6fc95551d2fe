package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mkuiper/Dealership-CRM-Backend/internal/api/request"
	"github.com/mkuiper/Dealership-CRM-Backend/internal/api/response"
	"github.com/mkuiper/Dealership-CRM-Backend/internal/apperrors"
	"github.com/mkuiper/Dealership-CRM-Backend/internal/service"
	"github.com/mkuiper/Dealership-CRM-Backend/internal/validation"
)

// TaxonomyHandler handles HTTP requests for makes, models, and the lookup tables.
type TaxonomyHandler struct {
	taxonomyService *service.TaxonomyService
}

// NewTaxonomyHandler creates a new TaxonomyHandler with the provided service dependency.
func NewTaxonomyHandler(taxonomyService *service.TaxonomyService) *TaxonomyHandler {
	return &TaxonomyHandler{
		taxonomyService: taxonomyService,
	}
}

// ListMakes handles GET requests to retrieve all makes.
//
// Endpoint: GET /api/makes
// Response: 200 OK with array of Make
func (h *TaxonomyHandler) ListMakes(w http.ResponseWriter, r *http.Request) {
	makes, err := h.taxonomyService.ListMakes(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveMakes.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, makes)
}

// CreateMake handles POST requests to add a make.
//
// Endpoint: POST /api/makes
// Response: 201 Created with Make
// Error: 400 Bad Request if the name is empty
func (h *TaxonomyHandler) CreateMake(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateMakeRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateName(req.Name); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	make, err := h.taxonomyService.CreateMake(r.Context(), req.Name)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to create make", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, make)
}

// DeleteMake handles DELETE requests to remove a make.
//
// Endpoint: DELETE /api/makes/{uuid}
// Response: 204 No Content on successful deletion
// Error: 404 Not Found if the make does not exist
// Error: 409 Conflict if models still reference the make
func (h *TaxonomyHandler) DeleteMake(w http.ResponseWriter, r *http.Request) {
	makeID := chi.URLParam(r, "uuid")

	err := h.taxonomyService.DeleteMake(r.Context(), makeID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrMakeNotFound):
			response.RespondError(w, http.StatusNotFound, apperrors.ErrMakeNotFound.Error(), err.Error())
		case errors.Is(err, apperrors.ErrMakeInUse):
			response.RespondError(w, http.StatusConflict, apperrors.ErrMakeInUse.Error(), err.Error())
		default:
			response.RespondError(w, http.StatusInternalServerError, "failed to delete make", err.Error())
		}
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

// ListModels handles GET requests to retrieve models, optionally filtered by make.
//
// Endpoint: GET /api/models?makeId=
// Response: 200 OK with array of Model
func (h *TaxonomyHandler) ListModels(w http.ResponseWriter, r *http.Request) {
	models, err := h.taxonomyService.ListModels(r.Context(), r.URL.Query().Get("makeId"))
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveModels.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, models)
}

// CreateModel handles POST requests to add a model under an existing make.
//
// Endpoint: POST /api/models
// Response: 201 Created with Model
// Error: 400 Bad Request if validation fails
// Error: 404 Not Found if the make does not exist
func (h *TaxonomyHandler) CreateModel(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateModelRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUUID(req.MakeID); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}
	if err := validation.ValidateName(req.Name); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	model, err := h.taxonomyService.CreateModel(r.Context(), req.MakeID, req.Name)
	if err != nil {
		if errors.Is(err, apperrors.ErrMakeNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrMakeNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to create model", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, model)
}

// DeleteModel handles DELETE requests to remove a model.
//
// Endpoint: DELETE /api/models/{uuid}
// Response: 204 No Content on successful deletion
// Error: 404 Not Found if the model does not exist
func (h *TaxonomyHandler) DeleteModel(w http.ResponseWriter, r *http.Request) {
	modelID := chi.URLParam(r, "uuid")

	err := h.taxonomyService.DeleteModel(r.Context(), modelID)
	if err != nil {
		if errors.Is(err, apperrors.ErrModelNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrModelNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to delete model", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

// ListLookups handles GET requests for one lookup kind. The kind is bound in the
// router, never taken from the URL.
func (h *TaxonomyHandler) ListLookups(kind string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := h.taxonomyService.ListLookups(r.Context(), kind)
		if err != nil {
			response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveLookups.Error(), err.Error())
			return
		}

		response.RespondJSON(w, http.StatusOK, entries)
	}
}

// CreateLookup handles POST requests to add an entry to one lookup kind.
func (h *TaxonomyHandler) CreateLookup(kind string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := parseJSON[request.CreateLookupRequest](r)
		if err != nil {
			response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
			return
		}

		if err := validation.ValidateName(req.Name); err != nil {
			response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
			return
		}

		entry, err := h.taxonomyService.CreateLookup(r.Context(), kind, req.Name)
		if err != nil {
			response.RespondError(w, http.StatusInternalServerError, "failed to create lookup entry", err.Error())
			return
		}

		response.RespondJSON(w, http.StatusCreated, entry)
	}
}

// DeleteLookup handles DELETE requests to remove an entry from one lookup kind.
func (h *TaxonomyHandler) DeleteLookup(kind string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entryID := chi.URLParam(r, "uuid")

		err := h.taxonomyService.DeleteLookup(r.Context(), kind, entryID)
		if err != nil {
			if errors.Is(err, apperrors.ErrLookupNotFound) {
				response.RespondError(w, http.StatusNotFound, apperrors.ErrLookupNotFound.Error(), err.Error())
				return
			}
			response.RespondError(w, http.StatusInternalServerError, "failed to delete lookup entry", err.Error())
			return
		}

		response.RespondJSON(w, http.StatusNoContent, nil)
	}
}
