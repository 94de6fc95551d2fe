package model

import "time"

// Lead kinds: a plain contact request or a sell-us-your-car submission.
const (
	LeadKindContact       = "contact"
	LeadKindCarSubmission = "car_submission"
)

// Lead represents an inbound contact or car-submission intake record.
type Lead struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Message   string    `json:"message,omitempty"`
	VehicleID *string   `json:"vehicleId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
