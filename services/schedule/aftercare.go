package schedule

import (
	"context"
	"time"

	"preen/models"
	"preen/services/tasks"
	"preen/utils"

	"go.uber.org/zap"
)

// SubmitAftercare records a full aftercare submission: notes, rebook
// decision, reminder derivation and the optional client notification.
// Notification is opt-in per submission, never automatic.
func (s *DefaultScheduleService) SubmitAftercare(ctx context.Context, req AftercareRequest) (*AftercareResult, error) {
	logger := utils.GetLogger()

	if req.Actor.Role != RoleProfessional {
		return nil, newError(CodeForbidden, "only the professional submits aftercare")
	}
	booking, err := s.loadOwnedBooking(ctx, req.BookingID, req.Actor)
	if err != nil {
		return nil, err
	}
	if err := checkAftercareEligible(booking); err != nil {
		return nil, err
	}
	if len(req.Products) > MaxRecommendedProducts {
		return nil, newError(CodeValidation, "at most %d recommended products, got %d",
			MaxRecommendedProducts, len(req.Products))
	}

	record, err := s.loadOrInitRecord(ctx, booking)
	if err != nil {
		return nil, err
	}

	var followUpID string
	// An empty mode leaves the stored rebook decision untouched, so a
	// notes-only resubmission never has to restate it.
	if req.Rebook.Mode != "" {
		followUpID, err = s.applyRebookTransition(ctx, record, booking, req.Rebook)
		if err != nil {
			return nil, err
		}
	}
	record.Notes = req.Notes
	record.Products = req.Products
	record.SentToClient = req.SendToClient

	recordID, err := s.Aftercare.UpsertRecord(ctx, record)
	if err != nil {
		return nil, err
	}

	result := &AftercareResult{RecordID: recordID, FollowUpBookingID: followUpID}
	if err := s.deriveReminders(ctx, record, booking, req.Reminders, result); err != nil {
		return nil, err
	}

	if req.SendToClient {
		if err := s.notifyClient(ctx, record, booking); err != nil {
			// Delivery is best-effort; the submission itself stands.
			logger.Warn("failed to send aftercare notification",
				zap.String("bookingID", booking.ID), zap.Error(err))
		} else {
			result.ClientNotified = true
		}
	}
	return result, nil
}

// deriveReminders upserts or removes the two derived reminders according to
// the submission's toggles. Upserting an unchanged key updates in place;
// disabling deletes only the open instance.
func (s *DefaultScheduleService) deriveReminders(ctx context.Context,
	record *models.AftercareRecord, booking *models.Booking,
	settings ReminderSettings, result *AftercareResult) error {

	// REBOOK: only meaningful while a rebook decision is active.
	if settings.RebookEnabled && record.RebookMode != models.RebookNone {
		created, err := s.upsertRebookReminder(ctx, record, booking, settings.RebookLeadDays)
		if err != nil {
			return err
		}
		if created {
			result.RemindersCreated++
		}
	} else {
		removed, err := s.Aftercare.DeleteOpenReminder(ctx,
			models.ReminderDedupeKey(booking.ID, models.ReminderRebook))
		if err != nil {
			return err
		}
		if removed {
			result.RemindersRemoved++
		}
	}

	if settings.ProductFollowupEnabled {
		days := settings.ProductFollowupDays
		if days <= 0 {
			days = DefaultProductFollowupDays
		}
		anchor := booking.ScheduledFor
		if booking.FinishedAt != nil {
			anchor = *booking.FinishedAt
		}
		reminder := models.Reminder{
			DedupeKey: models.ReminderDedupeKey(booking.ID, models.ReminderProductFollowup),
			BookingID: booking.ID,
			ClientID:  booking.ClientID,
			Type:      models.ReminderProductFollowup,
			DueAt:     anchor.Add(time.Duration(days) * 24 * time.Hour),
		}
		created, err := s.Aftercare.UpsertReminder(ctx, reminder)
		if err != nil {
			return err
		}
		if created {
			result.RemindersCreated++
		}
	} else {
		removed, err := s.Aftercare.DeleteOpenReminder(ctx,
			models.ReminderDedupeKey(booking.ID, models.ReminderProductFollowup))
		if err != nil {
			return err
		}
		if removed {
			result.RemindersRemoved++
		}
	}
	return nil
}

// notifyClient pushes the aftercare summary and schedules the due reminder
// tasks on the queue.
func (s *DefaultScheduleService) notifyClient(ctx context.Context,
	record *models.AftercareRecord, booking *models.Booking) error {

	logger := utils.GetLogger()

	if s.Queue != nil {
		for _, typ := range []string{models.ReminderRebook, models.ReminderProductFollowup} {
			reminder, err := s.Aftercare.GetReminder(ctx, models.ReminderDedupeKey(booking.ID, typ))
			if err != nil {
				return err
			}
			if reminder == nil || reminder.CompletedAt != nil {
				continue
			}
			task, opts, err := tasks.NewReminderTask(models.ReminderPayload{
				ReminderID: reminder.ID,
				Target:     "client",
				ID:         booking.ClientID,
				Title:      reminderTitle(typ),
				FireDate:   reminder.DueAt.Format(time.RFC3339),
			}, reminder.DueAt)
			if err != nil {
				return err
			}
			if _, err := s.Queue.Enqueue(task, opts...); err != nil {
				logger.Warn("failed to enqueue reminder task",
					zap.String("dedupeKey", reminder.DedupeKey), zap.Error(err))
			}
		}
	}

	if s.Notifier == nil {
		return nil
	}
	return s.Notifier.SendClientPush(ctx, booking.ClientID,
		"Your aftercare notes are ready",
		"Your stylist shared aftercare notes and product recommendations.",
		map[string]string{"type": "aftercare", "bookingId": booking.ID, "recordId": record.ID},
	)
}

func reminderTitle(reminderType string) string {
	switch reminderType {
	case models.ReminderRebook:
		return "Time to book your next appointment"
	case models.ReminderProductFollowup:
		return "How are your recommended products working out?"
	}
	return "Reminder"
}
