package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	holdRepo "preen/database/repository/hold"
	professionalRepo "preen/database/repository/professional"
	schedulerRepo "preen/database/repository/scheduler"
	"preen/models"
	"preen/utils"

	"go.uber.org/zap"
)

// DefaultDurationMinutes is the evaluated duration when no service is named.
const DefaultDurationMinutes = 60

// MaxAlternates caps how many competing professionals an availability
// response may include.
const MaxAlternates = 5

// ErrServiceNotOffered is returned when the named service is not in the
// professional's offerings.
var ErrServiceNotOffered = errors.New("service not offered")

// DefaultAvailabilityService is the production availability engine: stateless,
// request-scoped, re-reading busy intervals on every call.
type DefaultAvailabilityService struct {
	Professionals professionalRepo.ProfessionalRepository
	Scheduler     schedulerRepo.SchedulerRepository
	Holds         holdRepo.HoldStore

	// Clock is overridable in tests; nil means time.Now.
	Clock func() time.Time
}

func (s *DefaultAvailabilityService) now() time.Time {
	if s.Clock != nil {
		return s.Clock().UTC()
	}
	return time.Now().UTC()
}

// GetAvailableSlots computes the primary professional's slots and, when a
// service id was given, slot lists for competing professionals offering the
// same service.
func (s *DefaultAvailabilityService) GetAvailableSlots(ctx context.Context, req AvailabilityRequest) (*models.AvailabilityResult, error) {
	logger := utils.GetLogger()
	now := s.now()

	prof, err := s.Professionals.GetByID(ctx, req.ProfessionalID)
	if err != nil {
		return nil, fmt.Errorf("availability: %w", err)
	}

	limit := ClampLimit(req.Limit)
	primary, err := s.slotsFor(ctx, prof, req.ServiceID, req.Mode, limit, now)
	if err != nil {
		return nil, err
	}
	result := &models.AvailabilityResult{Primary: *primary}

	if req.ServiceID == "" || req.Alternates <= 0 {
		return result, nil
	}

	alternates := req.Alternates
	if alternates > MaxAlternates {
		alternates = MaxAlternates
	}
	competitors, err := s.Professionals.FindByService(ctx, req.ServiceID, prof.ID, alternates)
	if err != nil {
		// Alternates are best-effort enrichment; the primary answer stands.
		logger.Error("failed to fetch competing professionals",
			zap.String("serviceID", req.ServiceID), zap.Error(err))
		return result, nil
	}
	for i := range competitors {
		alt, err := s.slotsFor(ctx, &competitors[i], req.ServiceID, req.Mode, limit, now)
		if err != nil {
			logger.Error("failed to compute alternate slots",
				zap.String("professionalID", competitors[i].ID), zap.Error(err))
			continue
		}
		if len(alt.Slots) > 0 {
			result.Alternates = append(result.Alternates, *alt)
		}
	}
	return result, nil
}

// slotsFor computes one professional's slot list for the evaluated service.
func (s *DefaultAvailabilityService) slotsFor(ctx context.Context, prof *models.Professional,
	serviceID string, mode models.LocationMode, limit int, now time.Time) (*models.ProfessionalSlots, error) {

	durationMinutes := DefaultDurationMinutes
	var price float64
	resolvedMode := models.ModeSalon

	if serviceID != "" {
		offering, ok := prof.Offering(serviceID)
		if !ok {
			return nil, fmt.Errorf("professional %s, service %s: %w", prof.ID, serviceID, ErrServiceNotOffered)
		}
		if offering.DurationMinutes > 0 {
			durationMinutes = offering.DurationMinutes
		}
		resolvedMode, price = resolveMode(offering, mode)
	}

	loc := LoadZone(prof.Timezone)
	sched := models.ParseWeeklyHours(prof.WorkingHours)

	horizon := now.Add(HorizonDays * 24 * time.Hour)
	busy, err := s.busyIntervals(ctx, prof.ID, durationMinutes, now, horizon)
	if err != nil {
		return nil, err
	}

	slots := GenerateSlots(now, loc, sched, busy, durationMinutes, limit)
	return &models.ProfessionalSlots{
		ProfessionalID:  prof.ID,
		DisplayName:     prof.DisplayName,
		Timezone:        loc.String(),
		Mode:            resolvedMode,
		Price:           price,
		DurationMinutes: durationMinutes,
		Slots:           slots,
	}, nil
}

// resolveMode picks the location mode actually served: mobile only when the
// offering supports it, salon otherwise.
func resolveMode(offering models.ServiceOffering, requested models.LocationMode) (models.LocationMode, float64) {
	if requested == models.ModeMobile && offering.MobileAvailable {
		return models.ModeMobile, offering.MobilePrice
	}
	return models.ModeSalon, offering.SalonPrice
}
