package validation

import (
	"fmt"
	"strings"

	"github.com/mkuiper/Dealership-CRM-Backend/internal/api/request"
	"github.com/mkuiper/Dealership-CRM-Backend/internal/model"
)

// MaxCustomerNameLength bounds the customerName field.
const MaxCustomerNameLength = 120

// ValidateCreateSalesTransaction validates a sales transaction creation request.
// Checks required fields and their constraints; the financial calculator enforces
// the monetary constraints again on the normalized values.
//
// Required fields:
//   - vehicleId: Must be a valid UUID
//   - customerName: Non-empty, at most 120 characters
//
// Constrained fields:
//   - customerEmail: Valid email format if provided
//   - grossPrice/discount: Non-negative, discount not exceeding grossPrice
//   - taxRate: Between 0 and 1
//   - costOfGoods: Non-negative if provided
//   - currency: CAD or USD if provided
//   - paymentMethod: cash, finance, or lease if provided
//   - salespersonId: Valid UUID if provided
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateCreateSalesTransaction(req request.CreateSalesTransactionRequest) error {
	if err := ValidateUUID(req.VehicleID); err != nil {
		return err
	}

	errors := make(map[string]string)

	validateCustomerName(req.CustomerName, errors)

	if req.CustomerEmail != nil {
		if err := ValidateEmail(*req.CustomerEmail); err != nil {
			errors["customerEmail"] = err.Error()
		}
	}

	validateFinancialFields(req.GrossPrice, req.Discount, req.TaxRate, req.CostOfGoods, errors)

	if req.Currency != "" && !model.ValidCurrencies[req.Currency] {
		errors["currency"] = fmt.Sprintf("invalid currency: %s", req.Currency)
	}

	if req.PaymentMethod != nil && !model.ValidPaymentMethods[*req.PaymentMethod] {
		errors["paymentMethod"] = fmt.Sprintf("invalid payment method: %s", *req.PaymentMethod)
	}

	if req.SalespersonID != nil {
		if err := ValidateUUID(*req.SalespersonID); err != nil {
			errors["salespersonId"] = err.Error()
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateUpdateSalesTransaction validates a sales transaction patch request.
// All fields are optional, but if provided, they must meet the same constraints as
// create. The cross-field discount/gross check runs against the merged record inside
// the service, where both effective values are known.
func ValidateUpdateSalesTransaction(req request.UpdateSalesTransactionRequest) error {
	errors := make(map[string]string)

	if req.CustomerName != nil {
		validateCustomerName(*req.CustomerName, errors)
	}

	if req.CustomerEmail != nil && *req.CustomerEmail != "" {
		if err := ValidateEmail(*req.CustomerEmail); err != nil {
			errors["customerEmail"] = err.Error()
		}
	}

	if req.GrossPrice != nil && *req.GrossPrice < 0 {
		errors["grossPrice"] = "grossPrice cannot be negative"
	}
	if req.Discount != nil && *req.Discount < 0 {
		errors["discount"] = "discount cannot be negative"
	}
	if req.TaxRate != nil && (*req.TaxRate < 0 || *req.TaxRate > 1) {
		errors["taxRate"] = "taxRate must be between 0 and 1"
	}
	if req.CostOfGoods != nil && *req.CostOfGoods < 0 {
		errors["costOfGoods"] = "costOfGoods cannot be negative"
	}

	if req.Currency != nil && !model.ValidCurrencies[*req.Currency] {
		errors["currency"] = fmt.Sprintf("invalid currency: %s", *req.Currency)
	}

	if req.PaymentMethod != nil && !model.ValidPaymentMethods[*req.PaymentMethod] {
		errors["paymentMethod"] = fmt.Sprintf("invalid payment method: %s", *req.PaymentMethod)
	}

	if req.SalespersonID != nil {
		if err := ValidateUUID(*req.SalespersonID); err != nil {
			errors["salespersonId"] = err.Error()
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

func validateCustomerName(name string, errors map[string]string) {
	if strings.TrimSpace(name) == "" {
		errors["customerName"] = "customerName is required"
	} else if len(name) > MaxCustomerNameLength {
		errors["customerName"] = fmt.Sprintf("customerName exceeds %d characters", MaxCustomerNameLength)
	}
}

func validateFinancialFields(grossPrice, discount, taxRate float64, costOfGoods *float64, errors map[string]string) {
	if grossPrice < 0 {
		errors["grossPrice"] = "grossPrice cannot be negative"
	}
	if discount < 0 {
		errors["discount"] = "discount cannot be negative"
	} else if discount > grossPrice {
		errors["discount"] = "discount cannot exceed grossPrice"
	}
	if taxRate < 0 || taxRate > 1 {
		errors["taxRate"] = "taxRate must be between 0 and 1"
	}
	if costOfGoods != nil && *costOfGoods < 0 {
		errors["costOfGoods"] = "costOfGoods cannot be negative"
	}
}
