package professionalRepo

import (
	"context"

	"preen/models"
)

// ProfessionalRepository reads the availability-relevant slice of a
// professional document. Profile mutation belongs to the external CRUD
// surface; this core only consumes it.
type ProfessionalRepository interface {
	GetByID(ctx context.Context, professionalID string) (*models.Professional, error)
	// FindByService returns up to limit professionals offering the given
	// service, excluding excludeID, for the competing-slots section of an
	// availability response.
	FindByService(ctx context.Context, serviceID, excludeID string, limit int) ([]models.Professional, error)
}
