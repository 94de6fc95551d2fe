package handlers

import (
	"errors"
	"net/http"

	"github.com/mkuiper/Dealership-CRM-Backend/internal/api/request"
	"github.com/mkuiper/Dealership-CRM-Backend/internal/api/response"
	"github.com/mkuiper/Dealership-CRM-Backend/internal/apperrors"
	"github.com/mkuiper/Dealership-CRM-Backend/internal/service"
	"github.com/mkuiper/Dealership-CRM-Backend/internal/validation"
)

// SystemHandler handles system-related HTTP requests
type SystemHandler struct {
	systemService      *service.SystemService
	integrationService *service.IntegrationService
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(systemService *service.SystemService, integrationService *service.IntegrationService) *SystemHandler {
	return &SystemHandler{
		systemService:      systemService,
		integrationService: integrationService,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Error    string `json:"error,omitempty"`
}

// Health checks the health of the system and database connectivity
func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	// Check database health
	if err := h.systemService.CheckHealth(); err != nil {
		response := HealthResponse{
			Status:   "unhealthy",
			Database: "disconnected",
			Error:    err.Error(),
		}
		respondJSON(w, http.StatusServiceUnavailable, response)
		return
	}

	// System is healthy
	response := HealthResponse{
		Status:   "healthy",
		Database: "connected",
	}
	respondJSON(w, http.StatusOK, response)
}

// VersionResponse represents the version check response.
type VersionResponse struct {
	AppVersion string `json:"app_version"`
}

// Version handles GET requests to retrieve the application version.
//
// Endpoint: GET /api/system/version
// Response: 200 OK with VersionResponse
func (h *SystemHandler) Version(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, VersionResponse{
		AppVersion: h.systemService.CheckVersion(),
	})
}

// GetIntegration handles GET requests for the deal-feed integration status.
// The stored credential itself is never returned.
//
// Endpoint: GET /api/system/integration
// Response: 200 OK with IntegrationStatus
// Error: 500 Internal Server Error if the status check fails
func (h *SystemHandler) GetIntegration(w http.ResponseWriter, r *http.Request) {
	status, err := h.integrationService.Status(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveIntegration.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, status)
}

// UpdateIntegration handles PUT requests to store the deal-feed credential.
// The token is encrypted before it reaches the database.
//
// Endpoint: PUT /api/system/integration
// Request Body: UpdateIntegrationRequest
// Response: 200 OK with IntegrationStatus
// Error: 400 Bad Request if the token is empty
// Error: 500 Internal Server Error if the update fails
func (h *SystemHandler) UpdateIntegration(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.UpdateIntegrationRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if req.DealFeedToken == "" {
		response.RespondError(w, http.StatusBadRequest, "validation failed",
			(&validation.Error{Fields: map[string]string{"dealFeedToken": "dealFeedToken is required"}}).Error())
		return
	}

	if err := h.integrationService.SetDealFeedToken(r.Context(), req.DealFeedToken); err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToUpdateIntegration.Error(), err.Error())
		return
	}

	status, err := h.integrationService.Status(r.Context())
	if err != nil && !errors.Is(err, apperrors.ErrSettingNotFound) {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveIntegration.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, status)
}
