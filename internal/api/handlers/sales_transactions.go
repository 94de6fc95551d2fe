package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/mkuiper/Dealership-CRM-Backend/internal/api/request"
	"github.com/mkuiper/Dealership-CRM-Backend/internal/api/response"
	"github.com/mkuiper/Dealership-CRM-Backend/internal/apperrors"
	"github.com/mkuiper/Dealership-CRM-Backend/internal/model"
	"github.com/mkuiper/Dealership-CRM-Backend/internal/repository"
	"github.com/mkuiper/Dealership-CRM-Backend/internal/service"
	"github.com/mkuiper/Dealership-CRM-Backend/internal/validation"
)

// SalesTransactionHandler handles HTTP requests for sales transaction endpoints.
// It serves as the HTTP layer adapter, parsing requests and delegating
// business logic to the salesTransactionService.
type SalesTransactionHandler struct {
	salesTransactionService *service.SalesTransactionService
}

// NewSalesTransactionHandler creates a new SalesTransactionHandler with the provided service dependency.
func NewSalesTransactionHandler(salesTransactionService *service.SalesTransactionService) *SalesTransactionHandler {
	return &SalesTransactionHandler{
		salesTransactionService: salesTransactionService,
	}
}

// ListTransactions handles GET requests to retrieve sales transactions.
// Supports filtering by status and vehicle plus limit/offset paging via query parameters.
//
// Endpoint: GET /api/sales-transactions?status=&vehicleId=&limit=&offset=
// Response: 200 OK with array of SalesTransaction
// Error: 500 Internal Server Error if retrieval fails
func (h *SalesTransactionHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	filter := repository.SalesTransactionFilter{
		Status:    r.URL.Query().Get("status"),
		VehicleID: r.URL.Query().Get("vehicleId"),
	}
	if limit := r.URL.Query().Get("limit"); limit != "" {
		if n, err := strconv.Atoi(limit); err == nil && n > 0 {
			filter.Limit = n
		}
	}
	if offset := r.URL.Query().Get("offset"); offset != "" {
		if n, err := strconv.Atoi(offset); err == nil && n > 0 {
			filter.Offset = n
		}
	}

	transactions, err := h.salesTransactionService.ListTransactions(r.Context(), filter)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveSalesTransactions.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, transactions)
}

// GetSummary handles GET requests for the per-status sales aggregate.
//
// Endpoint: GET /api/sales-transactions/summary
// Response: 200 OK with SalesSummary
// Error: 500 Internal Server Error if retrieval fails
func (h *SalesTransactionHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.salesTransactionService.GetSummary(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveSummary.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, summary)
}

// GetTransaction handles GET requests to retrieve a single sales transaction by ID.
//
// Endpoint: GET /api/sales-transactions/{uuid}
// Response: 200 OK with SalesTransaction
// Error: 400 Bad Request if transaction ID is invalid (validated by middleware)
// Error: 404 Not Found if transaction not found
// Error: 500 Internal Server Error if retrieval fails
func (h *SalesTransactionHandler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	transactionID := chi.URLParam(r, "uuid")

	transaction, err := h.salesTransactionService.GetTransaction(r.Context(), transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrSalesTransactionNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrSalesTransactionNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveSalesTransaction.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, transaction)
}

// CreateTransaction handles POST requests to open a new pending sales transaction.
// The derived financial fields are computed server-side; client-supplied values for
// them are ignored.
//
// Endpoint: POST /api/sales-transactions
// Request Body: CreateSalesTransactionRequest
// Response: 201 Created with SalesTransaction
// Error: 400 Bad Request if validation or a financial constraint fails
// Error: 404 Not Found if the referenced vehicle does not exist
// Error: 500 Internal Server Error if creation fails
func (h *SalesTransactionHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateSalesTransactionRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateSalesTransaction(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	transaction, err := h.salesTransactionService.CreateTransaction(r.Context(), req)
	if err != nil {
		h.respondTransactionError(w, err, "failed to create sales transaction")
		return
	}

	response.RespondJSON(w, http.StatusCreated, transaction)
}

// UpdateTransaction handles PATCH requests to modify a pending sales transaction.
// Derived financials are recomputed from the merged fields.
//
// Endpoint: PATCH /api/sales-transactions/{uuid}
// Request Body: UpdateSalesTransactionRequest (all fields optional)
// Response: 200 OK with updated SalesTransaction
// Error: 400 Bad Request if validation or a financial constraint fails
// Error: 404 Not Found if transaction not found
// Error: 409 Conflict if the transaction is no longer pending
// Error: 500 Internal Server Error if update fails
func (h *SalesTransactionHandler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	transactionID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.UpdateSalesTransactionRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateSalesTransaction(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	transaction, err := h.salesTransactionService.UpdateTransaction(r.Context(), transactionID, req)
	if err != nil {
		h.respondTransactionError(w, err, "failed to update sales transaction")
		return
	}

	response.RespondJSON(w, http.StatusOK, transaction)
}

// CompleteTransaction handles POST requests to close a pending transaction as completed.
// The vehicle is marked sold after the transaction state commits.
//
// Endpoint: POST /api/sales-transactions/{uuid}/complete
// Response: 200 OK with the completed SalesTransaction
// Error: 404 Not Found if transaction not found
// Error: 409 Conflict if the transaction is not pending
// Error: 502 Bad Gateway if the vehicle update failed after the transition committed
func (h *SalesTransactionHandler) CompleteTransaction(w http.ResponseWriter, r *http.Request) {
	h.closeTransaction(w, r, h.salesTransactionService.CompleteTransaction)
}

// CancelTransaction handles POST requests to close a pending transaction as cancelled.
// Any reserved hold on the vehicle is released after the transaction state commits.
//
// Endpoint: POST /api/sales-transactions/{uuid}/cancel
// Response: 200 OK with the cancelled SalesTransaction
// Error: 404 Not Found if transaction not found
// Error: 409 Conflict if the transaction is not pending
// Error: 502 Bad Gateway if the vehicle update failed after the transition committed
func (h *SalesTransactionHandler) CancelTransaction(w http.ResponseWriter, r *http.Request) {
	h.closeTransaction(w, r, h.salesTransactionService.CancelTransaction)
}

// DeleteTransaction handles DELETE requests to remove a sales transaction.
// This is an administrative hard delete; the vehicle's availability is not touched.
//
// Endpoint: DELETE /api/sales-transactions/{uuid}
// Response: 204 No Content on successful deletion
// Error: 400 Bad Request if transaction ID is invalid (validated by middleware)
// Error: 404 Not Found if transaction not found
// Error: 500 Internal Server Error if deletion fails
func (h *SalesTransactionHandler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	transactionID := chi.URLParam(r, "uuid")

	err := h.salesTransactionService.DeleteTransaction(r.Context(), transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrSalesTransactionNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrSalesTransactionNotFound.Error(), err.Error())
			return
		}

		response.RespondError(w, http.StatusInternalServerError, "failed to delete sales transaction", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

func (h *SalesTransactionHandler) closeTransaction(
	w http.ResponseWriter, r *http.Request,
	close func(ctx context.Context, id string) (*model.SalesTransaction, error),
) {
	transactionID := chi.URLParam(r, "uuid")

	transaction, err := close(r.Context(), transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrDownstreamEffectFailed) {
			// The terminal transition committed; only the vehicle projection is stale.
			// Surface the inconsistency, the reconciler retries it out of band.
			response.RespondError(w, http.StatusBadGateway, apperrors.ErrDownstreamEffectFailed.Error(), err.Error())
			return
		}
		h.respondTransactionError(w, err, "failed to close sales transaction")
		return
	}

	response.RespondJSON(w, http.StatusOK, transaction)
}

// respondTransactionError maps service errors onto HTTP status codes shared by the
// create, update, and close paths.
func (h *SalesTransactionHandler) respondTransactionError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, apperrors.ErrSalesTransactionNotFound):
		response.RespondError(w, http.StatusNotFound, apperrors.ErrSalesTransactionNotFound.Error(), err.Error())
	case errors.Is(err, apperrors.ErrVehicleNotFound):
		response.RespondError(w, http.StatusNotFound, apperrors.ErrVehicleNotFound.Error(), err.Error())
	case errors.Is(err, apperrors.ErrInvalidFinancialInput):
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
	case errors.Is(err, apperrors.ErrInvalidStateTransition):
		response.RespondError(w, http.StatusConflict, apperrors.ErrInvalidStateTransition.Error(), err.Error())
	default:
		response.RespondError(w, http.StatusInternalServerError, fallback, err.Error())
	}
}
