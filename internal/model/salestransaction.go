package model

import (
	"encoding/json"
	"time"
)

// Sales transaction statuses. Pending is the only non-terminal state: a transaction
// moves pending -> completed or pending -> cancelled and never leaves a terminal state.
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Supported currencies and payment methods.
var (
	ValidCurrencies     = map[string]bool{"CAD": true, "USD": true}
	ValidPaymentMethods = map[string]bool{"cash": true, "finance": true, "lease": true}
)

// DefaultCurrency is applied when a create request omits the currency.
const DefaultCurrency = "CAD"

// SalesTransaction represents one sale attempt against a vehicle.
//
// SalePrice, TaxAmount, TotalPrice, Margin, and MarginPercent are derived fields: they
// are always recomputed from GrossPrice/Discount/TaxRate/CostOfGoods and never written
// independently of a recompute.
type SalesTransaction struct {
	ID            string  `json:"id"`
	VehicleID     string  `json:"vehicleId"`
	CustomerName  string  `json:"customerName"`
	CustomerEmail *string `json:"customerEmail,omitempty"`

	GrossPrice    float64  `json:"grossPrice"`
	Discount      float64  `json:"discount"`
	SalePrice     float64  `json:"salePrice"`
	TaxRate       float64  `json:"taxRate"`
	TaxAmount     float64  `json:"taxAmount"`
	TotalPrice    float64  `json:"totalPrice"`
	CostOfGoods   *float64 `json:"costOfGoods,omitempty"`
	Margin        *float64 `json:"margin,omitempty"`
	MarginPercent *float64 `json:"marginPercent,omitempty"`

	Currency      string  `json:"currency"`
	PaymentMethod *string `json:"paymentMethod,omitempty"`

	Status   string     `json:"status"`
	ClosedAt *time.Time `json:"closedAt,omitempty"`

	SalespersonID  *string         `json:"salespersonId,omitempty"`
	ExternalDealID string          `json:"externalDealId,omitempty"`
	Notes          string          `json:"notes,omitempty"`
	Meta           json.RawMessage `json:"meta,omitempty"`

	// VehicleSyncPending marks a terminal transition whose vehicle-side availability
	// write has not succeeded yet. The reconciler retries those.
	VehicleSyncPending bool `json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// IsTerminal reports whether the transaction has reached completed or cancelled.
func (t *SalesTransaction) IsTerminal() bool {
	return t.Status == StatusCompleted || t.Status == StatusCancelled
}

// SalesSummaryRow aggregates transactions of one status.
type SalesSummaryRow struct {
	Status     string  `json:"status"`
	Count      int     `json:"count"`
	SalePrice  float64 `json:"salePrice"`
	TotalPrice float64 `json:"totalPrice"`
}

// SalesSummary is the aggregate-by-status view returned by the summary endpoint.
type SalesSummary struct {
	Pending   SalesSummaryRow `json:"pending"`
	Completed SalesSummaryRow `json:"completed"`
	Cancelled SalesSummaryRow `json:"cancelled"`
}
