package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/mkuiper/Dealership-CRM-Backend/internal/model"
)

// MakeBuilder provides a fluent interface for creating test makes.
//
// Example usage:
//
//	make := testutil.NewMake().WithName("Toyota").Build(t, db)
type MakeBuilder struct {
	ID   string
	Name string
}

// NewMake creates a MakeBuilder with sensible defaults.
func NewMake() *MakeBuilder {
	return &MakeBuilder{
		ID:   MakeID(),
		Name: MakeName("Test Make"),
	}
}

// WithID sets a custom ID.
func (b *MakeBuilder) WithID(id string) *MakeBuilder {
	b.ID = id
	return b
}

// WithName sets a custom name.
func (b *MakeBuilder) WithName(name string) *MakeBuilder {
	b.Name = name
	return b
}

// Build creates the make in the database and returns it.
func (b *MakeBuilder) Build(t *testing.T, db *sql.DB) model.Make {
	t.Helper()

	_, err := db.Exec(`INSERT INTO make (id, name) VALUES (?, ?)`, b.ID, b.Name)
	if err != nil {
		t.Fatalf("Failed to create test make: %v", err)
	}

	return model.Make{ID: b.ID, Name: b.Name}
}

// ModelBuilder provides a fluent interface for creating test models.
type ModelBuilder struct {
	ID     string
	MakeID string
	Name   string
}

// NewModel creates a ModelBuilder under the given make with sensible defaults.
func NewModel(makeID string) *ModelBuilder {
	return &ModelBuilder{
		ID:     MakeID(),
		MakeID: makeID,
		Name:   MakeName("Test Model"),
	}
}

// WithName sets a custom name.
func (b *ModelBuilder) WithName(name string) *ModelBuilder {
	b.Name = name
	return b
}

// Build creates the model in the database and returns it.
func (b *ModelBuilder) Build(t *testing.T, db *sql.DB) model.Model {
	t.Helper()

	_, err := db.Exec(`INSERT INTO model (id, make_id, name) VALUES (?, ?, ?)`,
		b.ID, b.MakeID, b.Name)
	if err != nil {
		t.Fatalf("Failed to create test model: %v", err)
	}

	return model.Model{ID: b.ID, MakeID: b.MakeID, Name: b.Name}
}

// VehicleBuilder provides a fluent interface for creating test vehicles.
//
// Example usage:
//
//	// Simple creation with defaults (creates its own make and model)
//	vehicle := testutil.NewVehicle().Build(t, db)
//
//	// Customized vehicle
//	vehicle := testutil.NewVehicle().
//	    WithPrice(45000).
//	    Reserved().
//	    Build(t, db)
type VehicleBuilder struct {
	ID           string
	MakeID       string
	ModelID      string
	Year         int
	VIN          string
	Price        float64
	Mileage      int
	Availability string
	Description  string
	CreatedAt    time.Time
}

// NewVehicle creates a VehicleBuilder with sensible defaults.
func NewVehicle() *VehicleBuilder {
	return &VehicleBuilder{
		ID:           MakeID(),
		Year:         2022,
		VIN:          MakeVIN(),
		Price:        30000,
		Mileage:      25000,
		Availability: model.AvailabilityAvailable,
		Description:  "Test vehicle",
		CreatedAt:    time.Now().UTC(),
	}
}

// WithID sets a custom ID.
func (b *VehicleBuilder) WithID(id string) *VehicleBuilder {
	b.ID = id
	return b
}

// WithMakeAndModel attaches the vehicle to an existing make and model.
func (b *VehicleBuilder) WithMakeAndModel(makeID, modelID string) *VehicleBuilder {
	b.MakeID = makeID
	b.ModelID = modelID
	return b
}

// WithYear sets a custom model year.
func (b *VehicleBuilder) WithYear(year int) *VehicleBuilder {
	b.Year = year
	return b
}

// WithVIN sets a custom VIN.
func (b *VehicleBuilder) WithVIN(vin string) *VehicleBuilder {
	b.VIN = vin
	return b
}

// WithPrice sets a custom asking price.
func (b *VehicleBuilder) WithPrice(price float64) *VehicleBuilder {
	b.Price = price
	return b
}

// WithMileage sets a custom mileage.
func (b *VehicleBuilder) WithMileage(mileage int) *VehicleBuilder {
	b.Mileage = mileage
	return b
}

// WithAvailability sets a custom availability state.
func (b *VehicleBuilder) WithAvailability(availability string) *VehicleBuilder {
	b.Availability = availability
	return b
}

// Reserved marks the vehicle as reserved.
func (b *VehicleBuilder) Reserved() *VehicleBuilder {
	b.Availability = model.AvailabilityReserved
	return b
}

// Sold marks the vehicle as sold.
func (b *VehicleBuilder) Sold() *VehicleBuilder {
	b.Availability = model.AvailabilitySold
	return b
}

// Build creates the vehicle in the database and returns it.
// When no make/model is attached, a fresh pair is created first.
func (b *VehicleBuilder) Build(t *testing.T, db *sql.DB) model.Vehicle {
	t.Helper()

	if b.MakeID == "" {
		mk := NewMake().Build(t, db)
		md := NewModel(mk.ID).Build(t, db)
		b.MakeID = mk.ID
		b.ModelID = md.ID
	}

	query := `
		INSERT INTO vehicle (id, make_id, model_id, year, vin, price, mileage,
			availability, description, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query,
		b.ID, b.MakeID, b.ModelID, b.Year, b.VIN, b.Price, b.Mileage,
		b.Availability, b.Description, b.CreatedAt.Format(time.RFC3339))
	if err != nil {
		t.Fatalf("Failed to create test vehicle: %v", err)
	}

	return model.Vehicle{
		ID:           b.ID,
		MakeID:       b.MakeID,
		ModelID:      b.ModelID,
		Year:         b.Year,
		VIN:          b.VIN,
		Price:        b.Price,
		Mileage:      b.Mileage,
		Availability: b.Availability,
		Description:  b.Description,
		CreatedAt:    b.CreatedAt,
	}
}

// SalesTransactionBuilder provides a fluent interface for creating test sales
// transactions. Derived financial fields are stored exactly as set, so tests can
// construct both consistent and deliberately inconsistent records.
//
// Example usage:
//
//	tx := testutil.NewSalesTransaction(vehicle.ID).Build(t, db)
//
//	closed := testutil.NewSalesTransaction(vehicle.ID).
//	    Completed().
//	    SyncPending().
//	    Build(t, db)
type SalesTransactionBuilder struct {
	ID                 string
	VehicleID          string
	CustomerName       string
	GrossPrice         float64
	Discount           float64
	SalePrice          float64
	TaxRate            float64
	TaxAmount          float64
	TotalPrice         float64
	Currency           string
	Status             string
	ClosedAt           *time.Time
	VehicleSyncPending bool
	CreatedAt          time.Time
}

// NewSalesTransaction creates a SalesTransactionBuilder for the given vehicle with
// consistent default financials: 1000 gross, 100 discount, 13% tax.
func NewSalesTransaction(vehicleID string) *SalesTransactionBuilder {
	return &SalesTransactionBuilder{
		ID:           MakeID(),
		VehicleID:    vehicleID,
		CustomerName: "Test Customer",
		GrossPrice:   1000,
		Discount:     100,
		SalePrice:    900,
		TaxRate:      0.13,
		TaxAmount:    117,
		TotalPrice:   1017,
		Currency:     model.DefaultCurrency,
		Status:       model.StatusPending,
		CreatedAt:    time.Now().UTC(),
	}
}

// WithID sets a custom ID.
func (b *SalesTransactionBuilder) WithID(id string) *SalesTransactionBuilder {
	b.ID = id
	return b
}

// WithCustomerName sets a custom customer name.
func (b *SalesTransactionBuilder) WithCustomerName(name string) *SalesTransactionBuilder {
	b.CustomerName = name
	return b
}

// WithFinancials sets the raw financial inputs and their derived values.
func (b *SalesTransactionBuilder) WithFinancials(gross, discount, taxRate, salePrice, taxAmount, totalPrice float64) *SalesTransactionBuilder {
	b.GrossPrice = gross
	b.Discount = discount
	b.TaxRate = taxRate
	b.SalePrice = salePrice
	b.TaxAmount = taxAmount
	b.TotalPrice = totalPrice
	return b
}

// WithStatus sets a custom status without touching closed_at.
func (b *SalesTransactionBuilder) WithStatus(status string) *SalesTransactionBuilder {
	b.Status = status
	return b
}

// Completed marks the transaction completed with a closed_at timestamp.
func (b *SalesTransactionBuilder) Completed() *SalesTransactionBuilder {
	now := time.Now().UTC()
	b.Status = model.StatusCompleted
	b.ClosedAt = &now
	return b
}

// Cancelled marks the transaction cancelled with a closed_at timestamp.
func (b *SalesTransactionBuilder) Cancelled() *SalesTransactionBuilder {
	now := time.Now().UTC()
	b.Status = model.StatusCancelled
	b.ClosedAt = &now
	return b
}

// SyncPending flags the record as needing a vehicle-side retry.
func (b *SalesTransactionBuilder) SyncPending() *SalesTransactionBuilder {
	b.VehicleSyncPending = true
	return b
}

// Build creates the sales transaction in the database and returns it.
func (b *SalesTransactionBuilder) Build(t *testing.T, db *sql.DB) model.SalesTransaction {
	t.Helper()

	query := `
		INSERT INTO sales_transaction (id, vehicle_id, customer_name,
			gross_price, discount, sale_price, tax_rate, tax_amount, total_price,
			currency, status, closed_at, vehicle_sync_pending, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	var closedAt any
	if b.ClosedAt != nil {
		closedAt = b.ClosedAt.Format(time.RFC3339)
	}

	createdAt := b.CreatedAt.Format(time.RFC3339)
	_, err := db.Exec(query,
		b.ID, b.VehicleID, b.CustomerName,
		b.GrossPrice, b.Discount, b.SalePrice, b.TaxRate, b.TaxAmount, b.TotalPrice,
		b.Currency, b.Status, closedAt, b.VehicleSyncPending, createdAt, createdAt)
	if err != nil {
		t.Fatalf("Failed to create test sales transaction: %v", err)
	}

	return model.SalesTransaction{
		ID:                 b.ID,
		VehicleID:          b.VehicleID,
		CustomerName:       b.CustomerName,
		GrossPrice:         b.GrossPrice,
		Discount:           b.Discount,
		SalePrice:          b.SalePrice,
		TaxRate:            b.TaxRate,
		TaxAmount:          b.TaxAmount,
		TotalPrice:         b.TotalPrice,
		Currency:           b.Currency,
		Status:             b.Status,
		ClosedAt:           b.ClosedAt,
		VehicleSyncPending: b.VehicleSyncPending,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.CreatedAt,
	}
}

// LeadBuilder provides a fluent interface for creating test leads.
type LeadBuilder struct {
	ID        string
	Kind      string
	Name      string
	Email     string
	VehicleID *string
	CreatedAt time.Time
}

// NewLead creates a LeadBuilder with sensible defaults.
func NewLead() *LeadBuilder {
	return &LeadBuilder{
		ID:        MakeID(),
		Kind:      model.LeadKindContact,
		Name:      "Test Lead",
		Email:     "lead@example.com",
		CreatedAt: time.Now().UTC(),
	}
}

// WithKind sets a custom kind.
func (b *LeadBuilder) WithKind(kind string) *LeadBuilder {
	b.Kind = kind
	return b
}

// WithVehicle attaches the lead to a vehicle.
func (b *LeadBuilder) WithVehicle(vehicleID string) *LeadBuilder {
	b.VehicleID = &vehicleID
	return b
}

// Build creates the lead in the database and returns it.
func (b *LeadBuilder) Build(t *testing.T, db *sql.DB) model.Lead {
	t.Helper()

	query := `
		INSERT INTO lead (id, kind, name, email, vehicle_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query,
		b.ID, b.Kind, b.Name, b.Email, b.VehicleID, b.CreatedAt.Format(time.RFC3339))
	if err != nil {
		t.Fatalf("Failed to create test lead: %v", err)
	}

	return model.Lead{
		ID:        b.ID,
		Kind:      b.Kind,
		Name:      b.Name,
		Email:     b.Email,
		VehicleID: b.VehicleID,
		CreatedAt: b.CreatedAt,
	}
}
