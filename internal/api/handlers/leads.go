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

// LeadHandler handles HTTP requests for lead intake and review endpoints.
type LeadHandler struct {
	leadService *service.LeadService
}

// NewLeadHandler creates a new LeadHandler with the provided service dependency.
func NewLeadHandler(leadService *service.LeadService) *LeadHandler {
	return &LeadHandler{
		leadService: leadService,
	}
}

// CreateLead handles POST requests for inbound lead intake. This endpoint is public:
// it backs the website contact and sell-us-your-car forms.
//
// Endpoint: POST /api/leads
// Request Body: CreateLeadRequest
// Response: 201 Created with Lead
// Error: 400 Bad Request if validation fails
// Error: 404 Not Found if a referenced vehicle does not exist
func (h *LeadHandler) CreateLead(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateLeadRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateLead(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	lead, err := h.leadService.CreateLead(r.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrVehicleNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrVehicleNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to create lead", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, lead)
}

// ListLeads handles GET requests to review leads, newest first.
//
// Endpoint: GET /api/leads?kind=
// Response: 200 OK with array of Lead
func (h *LeadHandler) ListLeads(w http.ResponseWriter, r *http.Request) {
	leads, err := h.leadService.ListLeads(r.Context(), r.URL.Query().Get("kind"))
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveLeads.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, leads)
}

// GetLead handles GET requests to retrieve a single lead.
//
// Endpoint: GET /api/leads/{uuid}
// Response: 200 OK with Lead
// Error: 404 Not Found if lead not found
func (h *LeadHandler) GetLead(w http.ResponseWriter, r *http.Request) {
	leadID := chi.URLParam(r, "uuid")

	lead, err := h.leadService.GetLead(r.Context(), leadID)
	if err != nil {
		if errors.Is(err, apperrors.ErrLeadNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrLeadNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveLead.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, lead)
}

// DeleteLead handles DELETE requests to remove a reviewed lead.
//
// Endpoint: DELETE /api/leads/{uuid}
// Response: 204 No Content on successful deletion
// Error: 404 Not Found if lead not found
func (h *LeadHandler) DeleteLead(w http.ResponseWriter, r *http.Request) {
	leadID := chi.URLParam(r, "uuid")

	err := h.leadService.DeleteLead(r.Context(), leadID)
	if err != nil {
		if errors.Is(err, apperrors.ErrLeadNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrLeadNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to delete lead", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
