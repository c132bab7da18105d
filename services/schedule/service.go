package schedule

import (
	"context"
	"time"

	aftercareRepo "preen/database/repository/aftercare"
	professionalRepo "preen/database/repository/professional"
	schedulerRepo "preen/database/repository/scheduler"
	"preen/models"
	"preen/services/notification"
	"preen/services/tasks"
)

// Default reminder offsets, overridable per submission.
const (
	DefaultRebookLeadDays      = 3
	DefaultProductFollowupDays = 14
)

// MaxRecommendedProducts bounds the product list on one aftercare submission.
const MaxRecommendedProducts = 10

// DefaultScheduleService is the production schedule mutation service.
type DefaultScheduleService struct {
	Scheduler     schedulerRepo.SchedulerRepository
	Aftercare     aftercareRepo.AftercareRepository
	Professionals professionalRepo.ProfessionalRepository
	Notifier      notification.NotificationService
	Queue         tasks.Enqueuer

	// Clock is overridable in tests; nil means time.Now.
	Clock func() time.Time
}

func (s *DefaultScheduleService) now() time.Time {
	if s.Clock != nil {
		return s.Clock().UTC()
	}
	return time.Now().UTC()
}

// loadOwnedBooking fetches the booking and enforces that the actor owns it.
func (s *DefaultScheduleService) loadOwnedBooking(ctx context.Context, bookingID string, actor Actor) (*models.Booking, error) {
	booking, err := s.Scheduler.GetBooking(ctx, bookingID)
	if err != nil {
		if err == schedulerRepo.ErrBookingNotFound {
			return nil, newError(CodeNotFound, "booking %s not found", bookingID)
		}
		return nil, err
	}
	switch actor.Role {
	case RoleProfessional:
		if booking.ProfessionalID != actor.ID {
			return nil, newError(CodeForbidden, "booking %s does not belong to professional %s", bookingID, actor.ID)
		}
	case RoleClient:
		if booking.ClientID != actor.ID {
			return nil, newError(CodeForbidden, "booking %s does not belong to client %s", bookingID, actor.ID)
		}
	default:
		return nil, newError(CodeForbidden, "unknown actor role %q", actor.Role)
	}
	return booking, nil
}
