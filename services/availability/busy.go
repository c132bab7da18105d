package availability

import (
	"context"
	"fmt"
	"time"

	"preen/models"
)

// busyIntervals merges a professional's active bookings and unexpired holds
// into one list of blocking [start,end) UTC intervals over the horizon.
// Overlapping intervals are not coalesced; downstream overlap testing is
// correct against the unmerged list.
func (s *DefaultAvailabilityService) busyIntervals(ctx context.Context, professionalID string,
	durationMinutes int, now, horizon time.Time) ([]models.BusyInterval, error) {

	bookings, err := s.Scheduler.ListActiveBookings(ctx, professionalID, now, horizon)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings for professional %s: %w", professionalID, err)
	}

	var busy []models.BusyInterval
	for i := range bookings {
		b := &bookings[i]
		if !b.IsActive() {
			continue
		}
		busy = append(busy, models.BusyInterval{
			Start:  b.ScheduledFor,
			End:    b.BlockingEnd(durationMinutes),
			Source: models.BusySourceBooking,
		})
	}

	holds, err := s.Holds.ListActiveHolds(ctx, professionalID, now)
	if err != nil {
		return nil, fmt.Errorf("failed to list holds for professional %s: %w", professionalID, err)
	}
	for i := range holds {
		h := &holds[i]
		// A hold only records a start instant; it blocks for the duration
		// of the service being evaluated.
		busy = append(busy, models.BusyInterval{
			Start:  h.Start,
			End:    h.Start.Add(time.Duration(durationMinutes) * time.Minute),
			Source: models.BusySourceHold,
		})
	}
	return busy, nil
}
