package holdRepo

import (
	"context"
	"time"

	"preen/models"
)

// HoldStore keeps ephemeral slot reservations. Holds expire on their own;
// listing returns only holds still blocking at the given instant.
type HoldStore interface {
	CreateHold(ctx context.Context, hold *models.Hold) error
	ListActiveHolds(ctx context.Context, professionalID string, now time.Time) ([]models.Hold, error)
	ReleaseHold(ctx context.Context, professionalID, holdID string) error
}
