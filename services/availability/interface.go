package availability

import (
	"context"

	"preen/models"
)

// AvailabilityRequest is one availability query.
type AvailabilityRequest struct {
	ProfessionalID string
	ServiceID      string
	Mode           models.LocationMode
	Limit          int
	Alternates     int
}

// AvailabilityService computes bookable slots for professionals.
type AvailabilityService interface {
	GetAvailableSlots(ctx context.Context, req AvailabilityRequest) (*models.AvailabilityResult, error)
}
