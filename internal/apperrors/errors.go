package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrSalesTransactionNotFound indicates that a sales transaction with the given ID does not exist.
	ErrSalesTransactionNotFound = errors.New("sales transaction not found")

	// ErrVehicleNotFound indicates that a vehicle with the given ID does not exist.
	ErrVehicleNotFound = errors.New("vehicle not found")

	// ErrMakeNotFound indicates that a make with the given ID does not exist.
	ErrMakeNotFound = errors.New("make not found")

	// ErrModelNotFound indicates that a model with the given ID does not exist.
	ErrModelNotFound = errors.New("model not found")

	// ErrLookupNotFound indicates that a taxonomy lookup entry does not exist.
	ErrLookupNotFound = errors.New("lookup entry not found")

	// ErrLeadNotFound indicates that a lead with the given ID does not exist.
	ErrLeadNotFound = errors.New("lead not found")

	// ErrSettingNotFound indicates that a system setting key has not been configured.
	ErrSettingNotFound = errors.New("setting not found")
)

// Business logic errors represent validation failures or constraint violations.
// These errors indicate that an operation cannot be completed due to business rules.
var (
	// ErrInvalidFinancialInput indicates that a financial input violates a calculator
	// constraint (negative amount, discount exceeding gross, tax rate out of range).
	// Inputs are never silently corrected: clamping would hide a data-entry error.
	ErrInvalidFinancialInput = errors.New("invalid financial input")

	// ErrInvalidStateTransition indicates an attempted update, complete, or cancel on a
	// sales transaction that is not in the pending state, or a transition outside the
	// allowed set. The record is left unchanged.
	ErrInvalidStateTransition = errors.New("invalid state transition")

	// ErrInvalidUUID indicates that a provided ID is not a valid UUID format.
	ErrInvalidUUID = errors.New("invalid UUID format")

	// ErrEmptyID indicates that a required ID parameter is empty or missing.
	ErrEmptyID = errors.New("ID cannot be empty")

	// ErrDuplicateEntry indicates that an entity with the same unique constraint already exists.
	ErrDuplicateEntry = errors.New("duplicate entry")

	// ErrMakeInUse indicates that a make cannot be deleted because models reference it.
	ErrMakeInUse = errors.New("make is in use")
)

// Downstream effect errors represent failures of the vehicle-side projection after the
// transaction state itself was durably persisted. The transaction remains completed or
// cancelled; the reconciler retries the vehicle write out of band.
var (
	// ErrDownstreamEffectFailed indicates the vehicle availability update failed after
	// the transaction's terminal transition committed. Reconciliation is needed.
	ErrDownstreamEffectFailed = errors.New("vehicle availability update failed")
)

// Operation failure errors represent system-level failures when retrieving or processing data.
var (
	ErrFailedToRetrieveSalesTransactions = errors.New("failed to retrieve sales transactions")
	ErrFailedToRetrieveSalesTransaction  = errors.New("failed to retrieve sales transaction")
	ErrFailedToRetrieveSummary           = errors.New("failed to retrieve sales summary")

	ErrFailedToRetrieveVehicles = errors.New("failed to retrieve vehicles")
	ErrFailedToRetrieveVehicle  = errors.New("failed to retrieve vehicle")

	ErrFailedToRetrieveMakes   = errors.New("failed to retrieve makes")
	ErrFailedToRetrieveModels  = errors.New("failed to retrieve models")
	ErrFailedToRetrieveLookups = errors.New("failed to retrieve lookup entries")

	ErrFailedToRetrieveLeads = errors.New("failed to retrieve leads")
	ErrFailedToRetrieveLead  = errors.New("failed to retrieve lead")

	ErrFailedToRetrieveIntegration = errors.New("failed to retrieve integration settings")
	ErrFailedToUpdateIntegration   = errors.New("failed to update integration settings")
)
