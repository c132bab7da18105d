package schedule

import (
	"context"
	"time"

	aftercareRepo "preen/database/repository/aftercare"
	schedulerRepo "preen/database/repository/scheduler"
	"preen/models"

	"github.com/google/uuid"
)

// checkAftercareEligible gates all aftercare/rebook writes: cancelled and
// pending bookings, and sessions not yet at the aftercare step, reject.
func checkAftercareEligible(booking *models.Booking) error {
	switch booking.Status {
	case models.BookingStatusCancelled:
		return newError(CodeInvalidState, "booking %s is cancelled", booking.ID)
	case models.BookingStatusPending:
		return newError(CodeInvalidState, "booking %s has not been accepted yet", booking.ID)
	}
	if booking.Status != models.BookingStatusCompleted && !booking.SessionStep.AtLeast(models.StepAftercare) {
		return newError(CodeInvalidState, "booking %s has not reached the aftercare step", booking.ID)
	}
	return nil
}

// ApplyRebook runs a standalone rebook transition and re-derives the rebook
// reminder from the stored record's settings.
func (s *DefaultScheduleService) ApplyRebook(ctx context.Context, req RebookRequest) (*RebookResult, error) {
	if req.Actor.Role != RoleProfessional {
		return nil, newError(CodeForbidden, "only the professional records rebook decisions")
	}
	booking, err := s.loadOwnedBooking(ctx, req.BookingID, req.Actor)
	if err != nil {
		return nil, err
	}
	if err := checkAftercareEligible(booking); err != nil {
		return nil, err
	}

	record, err := s.loadOrInitRecord(ctx, booking)
	if err != nil {
		return nil, err
	}

	followUpID, err := s.applyRebookTransition(ctx, record, booking, req.Decision)
	if err != nil {
		return nil, err
	}
	if _, err := s.Aftercare.UpsertRecord(ctx, record); err != nil {
		return nil, err
	}

	// The rebook reminder tracks the transition; the product follow-up is
	// owned by the full aftercare submission.
	if record.RebookMode == models.RebookNone {
		if _, err := s.Aftercare.DeleteOpenReminder(ctx,
			models.ReminderDedupeKey(booking.ID, models.ReminderRebook)); err != nil {
			return nil, err
		}
	} else {
		if _, err := s.upsertRebookReminder(ctx, record, booking, DefaultRebookLeadDays); err != nil {
			return nil, err
		}
	}

	return &RebookResult{Record: *record, FollowUpBookingID: followUpID}, nil
}

func (s *DefaultScheduleService) loadOrInitRecord(ctx context.Context, booking *models.Booking) (*models.AftercareRecord, error) {
	record, err := s.Aftercare.GetByBookingID(ctx, booking.ID)
	if err == aftercareRepo.ErrRecordNotFound {
		return &models.AftercareRecord{
			BookingID:  booking.ID,
			RebookMode: models.RebookNone,
		}, nil
	}
	if err != nil {
		return nil, err
	}
	return record, nil
}

// applyRebookTransition mutates the record into the requested mode. Exactly
// the fields belonging to the new mode end up populated; every other mode's
// fields are nulled, so partial state cannot persist. Returns the follow-up
// booking id for BOOK transitions.
func (s *DefaultScheduleService) applyRebookTransition(ctx context.Context,
	record *models.AftercareRecord, booking *models.Booking, decision RebookDecision) (string, error) {

	switch decision.Mode {
	case RebookModeClear:
		record.RebookMode = models.RebookNone
		record.RebookedFor = nil
		record.RebookWindowStart = nil
		record.RebookWindowEnd = nil
		record.FollowUpBookingID = ""
		return "", nil

	case RebookModeRecommendWindow:
		if decision.WindowStart == nil || decision.WindowEnd == nil {
			return "", newError(CodeValidation, "a recommended window requires both start and end")
		}
		if !decision.WindowEnd.After(*decision.WindowStart) {
			return "", newError(CodeValidation, "window end must be after window start")
		}
		ws := decision.WindowStart.UTC()
		we := decision.WindowEnd.UTC()
		record.RebookMode = models.RebookRecommendedWindow
		record.RebookWindowStart = &ws
		record.RebookWindowEnd = &we
		record.RebookedFor = nil
		record.FollowUpBookingID = ""
		return "", nil

	case RebookModeBook:
		target, followUpID, err := s.resolveRebookTarget(ctx, booking, decision)
		if err != nil {
			return "", err
		}
		record.RebookMode = models.RebookBookedNext
		record.RebookedFor = &target
		record.FollowUpBookingID = followUpID
		record.RebookWindowStart = nil
		record.RebookWindowEnd = nil
		return followUpID, nil
	}
	return "", newError(CodeValidation, "unknown rebook mode %q", decision.Mode)
}

// resolveRebookTarget finds the concrete follow-up date for a BOOK
// transition: a verified linked booking, or an explicit date that creates a
// new follow-up booking through the conflict-checked path.
func (s *DefaultScheduleService) resolveRebookTarget(ctx context.Context,
	booking *models.Booking, decision RebookDecision) (time.Time, string, error) {

	if decision.LinkedBookingID != "" {
		linked, err := s.Scheduler.GetBooking(ctx, decision.LinkedBookingID)
		if err != nil {
			if err == schedulerRepo.ErrBookingNotFound {
				return time.Time{}, "", newError(CodeValidation, "linked booking %s not found", decision.LinkedBookingID)
			}
			return time.Time{}, "", err
		}
		if linked.ClientID != booking.ClientID || linked.ProfessionalID != booking.ProfessionalID {
			return time.Time{}, "", newError(CodeValidation,
				"linked booking %s belongs to a different client or professional", linked.ID)
		}
		if linked.Status == models.BookingStatusCancelled {
			return time.Time{}, "", newError(CodeInvalidState, "linked booking %s is cancelled", linked.ID)
		}
		return linked.ScheduledFor, linked.ID, nil
	}

	if decision.Date == nil {
		return time.Time{}, "", newError(CodeValidation, "BOOK mode requires a linked booking or an explicit date")
	}

	now := s.now()
	target := decision.Date.UTC()
	if !target.After(now) {
		return time.Time{}, "", newError(CodeValidation, "follow-up date must be in the future")
	}

	followUp := &models.Booking{
		ID:              uuid.New().String(),
		ProfessionalID:  booking.ProfessionalID,
		ClientID:        booking.ClientID,
		ScheduledFor:    target,
		DurationMinutes: booking.DurationMinutes,
		BufferMinutes:   booking.BufferMinutes,
		Status:          models.BookingStatusPending,
		SessionStep:     models.StepIntake,
		Items:           booking.Items,
		TotalPrice:      booking.TotalPrice,
		Mode:            booking.Mode,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.Scheduler.CreateBookingChecked(ctx, followUp); err != nil {
		if err == schedulerRepo.ErrSchedulingConflict {
			return time.Time{}, "", newError(CodeSchedulingConflict, "the follow-up time overlaps another booking")
		}
		return time.Time{}, "", err
	}
	return target, followUp.ID, nil
}

// rebookAnchor returns the instant the rebook reminder counts back from.
func rebookAnchor(record *models.AftercareRecord) (time.Time, bool) {
	if record.RebookWindowStart != nil {
		return *record.RebookWindowStart, true
	}
	if record.RebookedFor != nil {
		return *record.RebookedFor, true
	}
	return time.Time{}, false
}

func (s *DefaultScheduleService) upsertRebookReminder(ctx context.Context,
	record *models.AftercareRecord, booking *models.Booking, leadDays int) (bool, error) {

	anchor, ok := rebookAnchor(record)
	if !ok {
		return false, nil
	}
	if leadDays <= 0 {
		leadDays = DefaultRebookLeadDays
	}
	reminder := models.Reminder{
		DedupeKey: models.ReminderDedupeKey(booking.ID, models.ReminderRebook),
		BookingID: booking.ID,
		ClientID:  booking.ClientID,
		Type:      models.ReminderRebook,
		DueAt:     anchor.Add(-time.Duration(leadDays) * 24 * time.Hour),
	}
	return s.Aftercare.UpsertReminder(ctx, reminder)
}
