package validation

import (
	"fmt"
	"strings"

	"github.com/mkuiper/Dealership-CRM-Backend/internal/api/request"
	"github.com/mkuiper/Dealership-CRM-Backend/internal/model"
)

// ValidLeadKind contains the allowed lead kind values.
var ValidLeadKind = map[string]bool{
	model.LeadKindContact: true, model.LeadKindCarSubmission: true,
}

// ValidateCreateLead validates a lead intake request.
func ValidateCreateLead(req request.CreateLeadRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Kind) == "" {
		errors["kind"] = "kind is required"
	} else if !ValidLeadKind[req.Kind] {
		errors["kind"] = fmt.Sprintf("invalid kind: %s", req.Kind)
	}

	if strings.TrimSpace(req.Name) == "" {
		errors["name"] = "name is required"
	}

	if strings.TrimSpace(req.Email) == "" {
		errors["email"] = "email is required"
	} else if err := ValidateEmail(req.Email); err != nil {
		errors["email"] = err.Error()
	}

	if req.VehicleID != nil {
		if err := ValidateUUID(*req.VehicleID); err != nil {
			errors["vehicleId"] = err.Error()
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateName checks a required taxonomy name field (makes, models, lookup entries).
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return &Error{Fields: map[string]string{"name": "name is required"}}
	}
	return nil
}
