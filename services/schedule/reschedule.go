package schedule

import (
	"context"
	"time"

	schedulerRepo "preen/database/repository/scheduler"
	"preen/models"
	"preen/services/availability"
	"preen/utils"

	"go.uber.org/zap"
)

// Reschedule validates a proposed schedule change and commits it atomically.
// A rejection always carries the specific constraint that failed, so the
// caller can offer a corrected time instead of a generic failure.
func (s *DefaultScheduleService) Reschedule(ctx context.Context, req RescheduleRequest) (*models.Booking, error) {
	logger := utils.GetLogger()

	booking, err := s.loadOwnedBooking(ctx, req.BookingID, req.Actor)
	if err != nil {
		return nil, err
	}

	switch booking.Status {
	case models.BookingStatusCancelled:
		return nil, newError(CodeInvalidState, "booking %s is cancelled and can no longer be edited", booking.ID)
	case models.BookingStatusCompleted:
		return nil, newError(CodeInvalidState, "booking %s is completed; schedule a follow-up via the rebook flow", booking.ID)
	}

	if req.OverrideWorkingHours && req.Actor.Role != RoleProfessional {
		return nil, newError(CodeForbidden, "only the professional may override working hours")
	}

	start := booking.ScheduledFor
	if req.NewStart != nil {
		start = req.NewStart.UTC()
	}
	durationMinutes := booking.DurationMinutes
	bufferMinutes := booking.BufferMinutes
	if req.NewBufferMinutes != nil {
		bufferMinutes = *req.NewBufferMinutes
	}

	// Explicit item changes drive the duration and total unless the caller
	// pinned a duration too.
	items := booking.Items
	if req.Items != nil {
		items = req.Items
		durationMinutes = 0
		for _, it := range items {
			durationMinutes += it.DurationMinutes
		}
	}
	if req.NewDurationMinutes != nil {
		durationMinutes = *req.NewDurationMinutes
	}

	if durationMinutes <= 0 {
		return nil, newError(CodeValidation, "duration must be positive, got %d", durationMinutes)
	}
	if bufferMinutes < 0 {
		return nil, newError(CodeValidation, "buffer must not be negative, got %d", bufferMinutes)
	}

	totalPrice := 0.0
	for _, it := range items {
		totalPrice += it.Price
	}

	if !req.OverrideWorkingHours {
		if err := s.checkWorkingHours(ctx, booking.ProfessionalID, start, durationMinutes+bufferMinutes); err != nil {
			return nil, err
		}
	}

	// Fast-fail conflict pre-check. The transaction below re-checks inside
	// the same write, so a race between two validations cannot double-book.
	if err := s.precheckConflict(ctx, booking, start, durationMinutes, bufferMinutes); err != nil {
		return nil, err
	}

	committed, err := s.Scheduler.CommitReschedule(ctx, booking.ID, start, durationMinutes, bufferMinutes, items, totalPrice)
	if err != nil {
		switch err {
		case schedulerRepo.ErrSchedulingConflict:
			return nil, newError(CodeSchedulingConflict, "the proposed time overlaps another booking")
		case schedulerRepo.ErrBookingNotFound:
			return nil, newError(CodeNotFound, "booking %s not found", booking.ID)
		case schedulerRepo.ErrBookingNotEditable:
			return nil, newError(CodeInvalidState, "booking %s is no longer editable", booking.ID)
		}
		return nil, err
	}

	if req.NotifyClient && s.Notifier != nil {
		if err := s.Notifier.SendClientPush(ctx, committed.ClientID,
			"Your appointment was rescheduled",
			"Your appointment now starts at "+committed.ScheduledFor.Format(time.RFC3339),
			map[string]string{"type": "reschedule", "bookingId": committed.ID},
		); err != nil {
			logger.Warn("failed to notify client of reschedule",
				zap.String("bookingID", committed.ID), zap.Error(err))
		}
	}
	return committed, nil
}

// checkWorkingHours verifies the proposed [start, start+spanMinutes) window
// sits entirely inside the professional's open hours for that local day.
func (s *DefaultScheduleService) checkWorkingHours(ctx context.Context, professionalID string, start time.Time, spanMinutes int) error {
	prof, err := s.Professionals.GetByID(ctx, professionalID)
	if err != nil {
		return err
	}
	loc := availability.LoadZone(prof.Timezone)
	sched := models.ParseWeeklyHours(prof.WorkingHours)

	local := start.In(loc)
	window, open := sched.Window(local.Weekday())
	if !open {
		return newError(CodeOutsideWorkingHours, "the professional is closed on %s", local.Weekday())
	}
	startMin := local.Hour()*60 + local.Minute()
	if startMin < window.OpenMin || startMin+spanMinutes > window.CloseMin {
		return newError(CodeOutsideWorkingHours,
			"the proposed time falls outside working hours on %s", local.Weekday())
	}
	return nil
}

// precheckConflict scans sibling bookings in a widened window, excluding the
// booking being edited.
func (s *DefaultScheduleService) precheckConflict(ctx context.Context, booking *models.Booking,
	start time.Time, durationMinutes, bufferMinutes int) error {

	span := time.Duration(durationMinutes+bufferMinutes) * time.Minute
	end := start.Add(span)
	siblings, err := s.Scheduler.ListActiveBookings(ctx, booking.ProfessionalID,
		start.Add(-2*span), end.Add(2*span))
	if err != nil {
		return err
	}
	for i := range siblings {
		sib := &siblings[i]
		if sib.ID == booking.ID || !sib.IsActive() {
			continue
		}
		if models.Overlaps(start, end, sib.ScheduledFor, sib.BlockingEnd(durationMinutes)) {
			return newError(CodeSchedulingConflict, "the proposed time overlaps booking %s", sib.ID)
		}
	}
	return nil
}
