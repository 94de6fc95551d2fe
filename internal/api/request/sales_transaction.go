package request

import "encoding/json"

// CreateSalesTransactionRequest is the body of POST /api/sales-transactions.
// GrossPrice is required; Discount, TaxRate, and CostOfGoods default to their zero
// values and the derived fields are always computed server-side.
type CreateSalesTransactionRequest struct {
	VehicleID      string          `json:"vehicleId"`
	CustomerName   string          `json:"customerName"`
	CustomerEmail  *string         `json:"customerEmail,omitempty"`
	GrossPrice     float64         `json:"grossPrice"`
	Discount       float64         `json:"discount"`
	TaxRate        float64         `json:"taxRate"`
	CostOfGoods    *float64        `json:"costOfGoods,omitempty"`
	Currency       string          `json:"currency,omitempty"`
	PaymentMethod  *string         `json:"paymentMethod,omitempty"`
	SalespersonID  *string         `json:"salespersonId,omitempty"`
	ExternalDealID string          `json:"externalDealId,omitempty"`
	Notes          string          `json:"notes,omitempty"`
	Meta           json.RawMessage `json:"meta,omitempty"`
}

// UpdateSalesTransactionRequest is the body of PATCH /api/sales-transactions/{uuid}.
// All fields are optional; present fields replace the stored value and trigger a
// recompute of the derived financials. Only pending transactions accept updates.
type UpdateSalesTransactionRequest struct {
	CustomerName   *string         `json:"customerName,omitempty"`
	CustomerEmail  *string         `json:"customerEmail,omitempty"`
	GrossPrice     *float64        `json:"grossPrice,omitempty"`
	Discount       *float64        `json:"discount,omitempty"`
	TaxRate        *float64        `json:"taxRate,omitempty"`
	CostOfGoods    *float64        `json:"costOfGoods,omitempty"`
	Currency       *string         `json:"currency,omitempty"`
	PaymentMethod  *string         `json:"paymentMethod,omitempty"`
	SalespersonID  *string         `json:"salespersonId,omitempty"`
	ExternalDealID *string         `json:"externalDealId,omitempty"`
	Notes          *string         `json:"notes,omitempty"`
	Meta           json.RawMessage `json:"meta,omitempty"`
}
