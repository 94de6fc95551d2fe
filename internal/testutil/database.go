package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite" // Test Package
)

// SetupTestDB creates an in-memory SQLite database for testing.
// The database is automatically cleaned up when the test completes.
//
// Example usage:
//
//	func TestSomething(t *testing.T) {
//	    db := testutil.SetupTestDB(t)
//	    // db is ready to use with schema created
//	}
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	// In-memory database (destroyed when connection closes)
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		t.Fatalf("Failed to ping test database: %v", err)
	}

	// Configure SQLite for testing
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA timezone = 'UTC'",
		"PRAGMA journal_mode = MEMORY", // Faster for tests
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			t.Fatalf("Failed to set pragma: %v", err)
		}
	}

	// Create schema
	if err := createTestSchema(db); err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}

	// Cleanup when test ends
	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// createTestSchema creates all database tables for testing.
// Schema is synchronized with the production migrations.
func createTestSchema(db *sql.DB) error {
	schema := `
		-- Make table
		CREATE TABLE IF NOT EXISTS make (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			name VARCHAR(100) NOT NULL UNIQUE
		);

		-- Model table
		CREATE TABLE IF NOT EXISTS model (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			make_id VARCHAR(36) NOT NULL,
			name VARCHAR(100) NOT NULL,
			FOREIGN KEY(make_id) REFERENCES make(id),
			CONSTRAINT unique_make_model UNIQUE (make_id, name)
		);

		-- Taxonomy lookup tables
		CREATE TABLE IF NOT EXISTS fuel_type (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			name VARCHAR(50) NOT NULL UNIQUE
		);

		CREATE TABLE IF NOT EXISTS drive_type (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			name VARCHAR(50) NOT NULL UNIQUE
		);

		CREATE TABLE IF NOT EXISTS vehicle_type (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			name VARCHAR(50) NOT NULL UNIQUE
		);

		CREATE TABLE IF NOT EXISTS vehicle_status (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			name VARCHAR(50) NOT NULL UNIQUE
		);

		-- Vehicle table
		CREATE TABLE IF NOT EXISTS vehicle (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			make_id VARCHAR(36) NOT NULL,
			model_id VARCHAR(36) NOT NULL,
			year INTEGER NOT NULL,
			vin VARCHAR(17) NOT NULL UNIQUE,
			price FLOAT NOT NULL,
			mileage INTEGER NOT NULL,
			fuel_type_id VARCHAR(36),
			drive_type_id VARCHAR(36),
			vehicle_type_id VARCHAR(36),
			availability VARCHAR(10) NOT NULL DEFAULT 'available',
			description TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY(make_id) REFERENCES make(id),
			FOREIGN KEY(model_id) REFERENCES model(id),
			FOREIGN KEY(fuel_type_id) REFERENCES fuel_type(id),
			FOREIGN KEY(drive_type_id) REFERENCES drive_type(id),
			FOREIGN KEY(vehicle_type_id) REFERENCES vehicle_type(id)
		);

		-- Sales transaction table
		CREATE TABLE IF NOT EXISTS sales_transaction (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			vehicle_id VARCHAR(36) NOT NULL,
			customer_name VARCHAR(120) NOT NULL,
			customer_email VARCHAR(255),
			gross_price FLOAT NOT NULL,
			discount FLOAT NOT NULL DEFAULT 0,
			sale_price FLOAT NOT NULL,
			tax_rate FLOAT NOT NULL DEFAULT 0,
			tax_amount FLOAT NOT NULL,
			total_price FLOAT NOT NULL,
			cost_of_goods FLOAT,
			margin FLOAT,
			margin_percent FLOAT,
			currency VARCHAR(3) NOT NULL DEFAULT 'CAD',
			payment_method VARCHAR(10),
			status VARCHAR(10) NOT NULL DEFAULT 'pending',
			closed_at DATETIME,
			salesperson_id VARCHAR(36),
			external_deal_id VARCHAR(100),
			notes TEXT,
			meta TEXT,
			vehicle_sync_pending BOOLEAN NOT NULL DEFAULT FALSE,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY(vehicle_id) REFERENCES vehicle(id)
		);

		-- Lead table
		CREATE TABLE IF NOT EXISTS lead (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			kind VARCHAR(20) NOT NULL,
			name VARCHAR(120) NOT NULL,
			email VARCHAR(255) NOT NULL,
			phone VARCHAR(30),
			message TEXT,
			vehicle_id VARCHAR(36),
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY(vehicle_id) REFERENCES vehicle(id)
		);

		-- System setting table
		CREATE TABLE IF NOT EXISTS system_setting (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			"key" VARCHAR(50) NOT NULL UNIQUE,
			value VARCHAR(1000) NOT NULL,
			updated_at DATETIME
		);

		-- Indexes for lookups and summaries
		CREATE INDEX IF NOT EXISTS ix_sales_transaction_vehicle_id ON sales_transaction(vehicle_id);
		CREATE INDEX IF NOT EXISTS ix_sales_transaction_status_created_at ON sales_transaction(status, created_at);
		CREATE INDEX IF NOT EXISTS ix_sales_transaction_sync_pending ON sales_transaction(vehicle_sync_pending);
		CREATE INDEX IF NOT EXISTS ix_vehicle_make_id ON vehicle(make_id);
		CREATE INDEX IF NOT EXISTS ix_vehicle_model_id ON vehicle(model_id);
		CREATE INDEX IF NOT EXISTS ix_vehicle_availability ON vehicle(availability);
		CREATE INDEX IF NOT EXISTS ix_model_make_id ON model(make_id);
		CREATE INDEX IF NOT EXISTS ix_lead_kind ON lead(kind);
	`

	_, err := db.Exec(schema)
	return err
}

// CleanDatabase truncates all tables in dependency order.
// Useful for reusing the same database across multiple tests.
func CleanDatabase(t *testing.T, db *sql.DB) {
	t.Helper()

	// Order matters: delete children before parents due to foreign keys
	tables := []string{
		"sales_transaction",
		"lead",
		"vehicle",
		"model",
		"make",
		"fuel_type",
		"drive_type",
		"vehicle_type",
		"vehicle_status",
		"system_setting",
	}

	for _, table := range tables {
		//nolint:gosec // G202: Table names are from hardcoded slice, no SQL injection risk
		query := "DELETE FROM " + table
		if _, err := db.Exec(query); err != nil {
			t.Fatalf("Failed to clean table %s: %v", table, err)
		}
	}
}

// CountRows returns the number of rows in a table.
// Useful for assertions in tests.
func CountRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()

	var count int
	query := "SELECT COUNT(*) FROM " + table
	err := db.QueryRow(query).Scan(&count)
	if err != nil {
		t.Fatalf("Failed to count rows in %s: %v", table, err)
	}

	return count
}

// AssertRowCount asserts that a table has the expected number of rows.
//
// Example usage:
//
//	testutil.AssertRowCount(t, db, "vehicle", 2)
func AssertRowCount(t *testing.T, db *sql.DB, table string, expected int) {
	t.Helper()

	actual := CountRows(t, db, table)
	if actual != expected {
		t.Errorf("Expected %d rows in %s, got %d", expected, table, actual)
	}
}
