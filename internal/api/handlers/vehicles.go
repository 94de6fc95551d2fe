package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mkuiper/Dealership-CRM-Backend/internal/api/request"
	"github.com/mkuiper/Dealership-CRM-Backend/internal/api/response"
	"github.com/mkuiper/Dealership-CRM-Backend/internal/apperrors"
	"github.com/mkuiper/Dealership-CRM-Backend/internal/repository"
	"github.com/mkuiper/Dealership-CRM-Backend/internal/service"
	"github.com/mkuiper/Dealership-CRM-Backend/internal/validation"
)

// VehicleHandler handles HTTP requests for vehicle inventory endpoints.
type VehicleHandler struct {
	vehicleService *service.VehicleService
}

// NewVehicleHandler creates a new VehicleHandler with the provided service dependency.
func NewVehicleHandler(vehicleService *service.VehicleService) *VehicleHandler {
	return &VehicleHandler{
		vehicleService: vehicleService,
	}
}

// ListVehicles handles GET requests to retrieve vehicles.
// Supports filtering by make and availability via query parameters.
//
// Endpoint: GET /api/vehicles?makeId=&availability=
// Response: 200 OK with array of VehicleResponse
// Error: 500 Internal Server Error if retrieval fails
func (h *VehicleHandler) ListVehicles(w http.ResponseWriter, r *http.Request) {
	filter := repository.VehicleFilter{
		MakeID:       r.URL.Query().Get("makeId"),
		Availability: r.URL.Query().Get("availability"),
	}

	vehicles, err := h.vehicleService.ListVehicles(r.Context(), filter)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveVehicles.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, vehicles)
}

// GetVehicle handles GET requests to retrieve a single vehicle by ID.
//
// Endpoint: GET /api/vehicles/{uuid}
// Response: 200 OK with VehicleResponse
// Error: 400 Bad Request if vehicle ID is invalid (validated by middleware)
// Error: 404 Not Found if vehicle not found
// Error: 500 Internal Server Error if retrieval fails
func (h *VehicleHandler) GetVehicle(w http.ResponseWriter, r *http.Request) {
	vehicleID := chi.URLParam(r, "uuid")

	vehicle, err := h.vehicleService.GetVehicle(r.Context(), vehicleID)
	if err != nil {
		if errors.Is(err, apperrors.ErrVehicleNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrVehicleNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveVehicle.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, vehicle)
}

// CreateVehicle handles POST requests to add a vehicle to inventory.
//
// Endpoint: POST /api/vehicles
// Request Body: CreateVehicleRequest
// Response: 201 Created with Vehicle
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 500 Internal Server Error if creation fails
func (h *VehicleHandler) CreateVehicle(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateVehicleRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateVehicle(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	vehicle, err := h.vehicleService.CreateVehicle(r.Context(), req)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to create vehicle", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, vehicle)
}

// UpdateVehicle handles PUT requests to update a vehicle's descriptive fields.
// Availability is owned by the sales lifecycle and is not writable here.
//
// Endpoint: PUT /api/vehicles/{uuid}
// Request Body: UpdateVehicleRequest (all fields optional)
// Response: 200 OK with updated VehicleResponse
// Error: 400 Bad Request if vehicle ID is invalid (validated by middleware) or validation fails
// Error: 404 Not Found if vehicle not found
// Error: 500 Internal Server Error if update fails
func (h *VehicleHandler) UpdateVehicle(w http.ResponseWriter, r *http.Request) {
	vehicleID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.UpdateVehicleRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateVehicle(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	vehicle, err := h.vehicleService.UpdateVehicle(r.Context(), vehicleID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrVehicleNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrVehicleNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to update vehicle", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, vehicle)
}

// DeleteVehicle handles DELETE requests to remove a vehicle from inventory.
//
// Endpoint: DELETE /api/vehicles/{uuid}
// Response: 204 No Content on successful deletion
// Error: 400 Bad Request if vehicle ID is invalid (validated by middleware)
// Error: 404 Not Found if vehicle not found
// Error: 500 Internal Server Error if deletion fails
func (h *VehicleHandler) DeleteVehicle(w http.ResponseWriter, r *http.Request) {
	vehicleID := chi.URLParam(r, "uuid")

	err := h.vehicleService.DeleteVehicle(r.Context(), vehicleID)
	if err != nil {
		if errors.Is(err, apperrors.ErrVehicleNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrVehicleNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to delete vehicle", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
