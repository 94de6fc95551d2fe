package testutil

import (
	"database/sql"
	"math/rand"
	"testing"

	"github.com/google/uuid"
	"github.com/mkuiper/Dealership-CRM-Backend/internal/repository"
	"github.com/mkuiper/Dealership-CRM-Backend/internal/service"
)

func NewTestVehicleService(t *testing.T, db *sql.DB) *service.VehicleService {
	t.Helper()

	return service.NewVehicleService(repository.NewVehicleRepository(db))
}

func NewTestSalesTransactionService(t *testing.T, db *sql.DB) *service.SalesTransactionService {
	t.Helper()

	transactionRepo := repository.NewSalesTransactionRepository(db)
	vehicleRepo := repository.NewVehicleRepository(db)
	availability := service.NewVehicleAvailabilityCoordinator(vehicleRepo)

	return service.NewSalesTransactionService(
		transactionRepo,
		vehicleRepo,
		availability,
	)
}

// NewTestSalesTransactionServiceWithCoordinator creates a SalesTransactionService
// with a custom availability coordinator. Useful for testing the downstream-failure
// path without touching the vehicle table.
func NewTestSalesTransactionServiceWithCoordinator(t *testing.T, db *sql.DB, availability service.AvailabilityCoordinator) *service.SalesTransactionService {
	t.Helper()

	transactionRepo := repository.NewSalesTransactionRepository(db)
	vehicleRepo := repository.NewVehicleRepository(db)

	return service.NewSalesTransactionService(
		transactionRepo,
		vehicleRepo,
		availability,
	)
}

func NewTestReconciliationService(t *testing.T, db *sql.DB) *service.ReconciliationService {
	t.Helper()

	transactionRepo := repository.NewSalesTransactionRepository(db)
	availability := service.NewVehicleAvailabilityCoordinator(repository.NewVehicleRepository(db))

	return service.NewReconciliationService(transactionRepo, availability)
}

func NewTestTaxonomyService(t *testing.T, db *sql.DB) *service.TaxonomyService {
	t.Helper()

	return service.NewTaxonomyService(
		repository.NewMakeModelRepository(db),
		repository.NewLookupRepository(db),
	)
}

func NewTestLeadService(t *testing.T, db *sql.DB) *service.LeadService {
	t.Helper()

	return service.NewLeadService(
		repository.NewLeadRepository(db),
		repository.NewVehicleRepository(db),
	)
}

func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()

	return service.NewSystemService(db)
}

func NewTestIntegrationService(t *testing.T, db *sql.DB, encryptionKey string) *service.IntegrationService {
	t.Helper()

	svc, err := service.NewIntegrationService(repository.NewSettingsRepository(db), encryptionKey)
	if err != nil {
		t.Fatalf("Failed to create integration service: %v", err)
	}
	return svc
}

// MakeID generates a UUID string for use in tests.
//
// Example usage:
//
//	id := testutil.MakeID()
//	// Returns: "550e8400-e29b-41d4-a716-446655440000"
func MakeID() string {
	return uuid.New().String()
}

// MakeVIN generates a unique 17-character VIN for testing.
//
// Example usage:
//
//	vin := testutil.MakeVIN()
//	// Returns: "1ABCDEFG2HJKLMNPR"
func MakeVIN() string {
	return "1" + randomAlphanumeric(16)
}

// MakeName generates a unique name for testing.
//
// Example usage:
//
//	name := testutil.MakeName("Toyota")
//	// Returns: "Toyota ABC123"
func MakeName(base string) string {
	if base == "" {
		base = "Name"
	}
	return base + " " + randomAlphanumeric(6)
}

// randomAlphanumeric generates a random alphanumeric string of specified length.
func randomAlphanumeric(length int) string {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	result := make([]byte, length)
	for i := range result {
		//nolint:gosec // G404: Using math/rand for test data generation is acceptable
		result[i] = charset[rand.Intn(len(charset))]
	}
	return string(result)
}
