package validation_test

import (
	"errors"
	"testing"

	"github.com/mkuiper/Dealership-CRM-Backend/internal/api/request"
	"github.com/mkuiper/Dealership-CRM-Backend/internal/validation"
)

func strPtr(s string) *string   { return &s }
func f64Ptr(v float64) *float64 { return &v }

func validCreateRequest() request.CreateSalesTransactionRequest {
	return request.CreateSalesTransactionRequest{
		VehicleID:    "550e8400-e29b-41d4-a716-446655440000",
		CustomerName: "Dana Whitfield",
		GrossPrice:   1000,
		Discount:     100,
		TaxRate:      0.13,
	}
}

func TestValidateCreateSalesTransaction(t *testing.T) {
	t.Run("accepts a valid request", func(t *testing.T) {
		if err := validation.ValidateCreateSalesTransaction(validCreateRequest()); err != nil {
			t.Errorf("Expected no error, got %v", err)
		}
	})

	t.Run("rejects invalid vehicle id", func(t *testing.T) {
		req := validCreateRequest()
		req.VehicleID = "not-a-uuid"

		err := validation.ValidateCreateSalesTransaction(req)
		if !errors.Is(err, validation.ErrInvalidUUID) {
			t.Errorf("Expected ErrInvalidUUID, got %v", err)
		}
	})

	tests := []struct {
		name   string
		mutate func(*request.CreateSalesTransactionRequest)
		field  string
	}{
		{
			name:   "empty customer name",
			mutate: func(r *request.CreateSalesTransactionRequest) { r.CustomerName = "   " },
			field:  "customerName",
		},
		{
			name:   "malformed customer email",
			mutate: func(r *request.CreateSalesTransactionRequest) { r.CustomerEmail = strPtr("not-an-email") },
			field:  "customerEmail",
		},
		{
			name:   "negative gross price",
			mutate: func(r *request.CreateSalesTransactionRequest) { r.GrossPrice = -1 },
			field:  "grossPrice",
		},
		{
			name:   "negative discount",
			mutate: func(r *request.CreateSalesTransactionRequest) { r.Discount = -1 },
			field:  "discount",
		},
		{
			name: "discount exceeding gross price",
			mutate: func(r *request.CreateSalesTransactionRequest) {
				r.GrossPrice = 100
				r.Discount = 200
			},
			field: "discount",
		},
		{
			name:   "tax rate above one",
			mutate: func(r *request.CreateSalesTransactionRequest) { r.TaxRate = 1.5 },
			field:  "taxRate",
		},
		{
			name:   "negative cost of goods",
			mutate: func(r *request.CreateSalesTransactionRequest) { r.CostOfGoods = f64Ptr(-50) },
			field:  "costOfGoods",
		},
		{
			name:   "unknown currency",
			mutate: func(r *request.CreateSalesTransactionRequest) { r.Currency = "EUR" },
			field:  "currency",
		},
		{
			name:   "unknown payment method",
			mutate: func(r *request.CreateSalesTransactionRequest) { r.PaymentMethod = strPtr("barter") },
			field:  "paymentMethod",
		},
		{
			name:   "invalid salesperson id",
			mutate: func(r *request.CreateSalesTransactionRequest) { r.SalespersonID = strPtr("nope") },
			field:  "salespersonId",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreateRequest()
			tt.mutate(&req)

			err := validation.ValidateCreateSalesTransaction(req)
			var vErr *validation.Error
			if !errors.As(err, &vErr) {
				t.Fatalf("Expected validation error, got %v", err)
			}
			if _, ok := vErr.Fields[tt.field]; !ok {
				t.Errorf("Expected error on field %q, got %v", tt.field, vErr.Fields)
			}
		})
	}
}

func TestValidateUpdateSalesTransaction(t *testing.T) {
	t.Run("accepts an empty patch", func(t *testing.T) {
		if err := validation.ValidateUpdateSalesTransaction(request.UpdateSalesTransactionRequest{}); err != nil {
			t.Errorf("Expected no error, got %v", err)
		}
	})

	t.Run("accepts empty email as a clear", func(t *testing.T) {
		req := request.UpdateSalesTransactionRequest{CustomerEmail: strPtr("")}
		if err := validation.ValidateUpdateSalesTransaction(req); err != nil {
			t.Errorf("Expected no error, got %v", err)
		}
	})

	tests := []struct {
		name  string
		req   request.UpdateSalesTransactionRequest
		field string
	}{
		{
			name:  "blank customer name",
			req:   request.UpdateSalesTransactionRequest{CustomerName: strPtr("  ")},
			field: "customerName",
		},
		{
			name:  "negative gross price",
			req:   request.UpdateSalesTransactionRequest{GrossPrice: f64Ptr(-10)},
			field: "grossPrice",
		},
		{
			name:  "tax rate below zero",
			req:   request.UpdateSalesTransactionRequest{TaxRate: f64Ptr(-0.1)},
			field: "taxRate",
		},
		{
			name:  "unknown currency",
			req:   request.UpdateSalesTransactionRequest{Currency: strPtr("GBP")},
			field: "currency",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validation.ValidateUpdateSalesTransaction(tt.req)
			var vErr *validation.Error
			if !errors.As(err, &vErr) {
				t.Fatalf("Expected validation error, got %v", err)
			}
			if _, ok := vErr.Fields[tt.field]; !ok {
				t.Errorf("Expected error on field %q, got %v", tt.field, vErr.Fields)
			}
		})
	}
}
