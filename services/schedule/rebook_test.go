package schedule

import (
	"context"
	"testing"
	"time"

	"preen/models"
)

// completedBooking is a finished session eligible for rebook and aftercare.
func completedBooking() *models.Booking {
	b := testBooking()
	b.ScheduledFor = time.Date(2026, 8, 17, 14, 0, 0, 0, time.UTC)
	b.Status = models.BookingStatusCompleted
	b.SessionStep = models.StepAftercare
	finished := time.Date(2026, 8, 17, 15, 10, 0, 0, time.UTC)
	b.FinishedAt = &finished
	return b
}

func TestRebookRequiresProfessional(t *testing.T) {
	svc := newTestService(newFakeScheduler(completedBooking()), newFakeAftercare())
	_, err := svc.ApplyRebook(context.Background(), RebookRequest{
		BookingID: "bk-1",
		Actor:     clientActor(),
		Decision:  RebookDecision{Mode: RebookModeClear},
	})
	assertCode(t, err, CodeForbidden)
}

func TestRebookPendingBookingRejected(t *testing.T) {
	b := completedBooking()
	b.Status = models.BookingStatusPending
	svc := newTestService(newFakeScheduler(b), newFakeAftercare())
	_, err := svc.ApplyRebook(context.Background(), RebookRequest{
		BookingID: "bk-1",
		Actor:     professionalActor(),
		Decision:  RebookDecision{Mode: RebookModeClear},
	})
	assertCode(t, err, CodeInvalidState)
}

func TestRebookSessionNotAtAftercareRejected(t *testing.T) {
	b := completedBooking()
	b.Status = models.BookingStatusAccepted
	b.SessionStep = models.StepInService
	svc := newTestService(newFakeScheduler(b), newFakeAftercare())
	_, err := svc.ApplyRebook(context.Background(), RebookRequest{
		BookingID: "bk-1",
		Actor:     professionalActor(),
		Decision:  RebookDecision{Mode: RebookModeClear},
	})
	assertCode(t, err, CodeInvalidState)
}

func TestRebookRecommendWindow(t *testing.T) {
	care := newFakeAftercare()
	svc := newTestService(newFakeScheduler(completedBooking()), care)

	ws := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)
	we := time.Date(2026, 9, 21, 0, 0, 0, 0, time.UTC)
	result, err := svc.ApplyRebook(context.Background(), RebookRequest{
		BookingID: "bk-1",
		Actor:     professionalActor(),
		Decision:  RebookDecision{Mode: RebookModeRecommendWindow, WindowStart: &ws, WindowEnd: &we},
	})
	if err != nil {
		t.Fatalf("ApplyRebook: %v", err)
	}
	rec := result.Record
	if rec.RebookMode != models.RebookRecommendedWindow {
		t.Errorf("mode = %s, want %s", rec.RebookMode, models.RebookRecommendedWindow)
	}
	if rec.RebookWindowStart == nil || !rec.RebookWindowStart.Equal(ws) {
		t.Errorf("window start = %v, want %v", rec.RebookWindowStart, ws)
	}
	if rec.RebookedFor != nil || rec.FollowUpBookingID != "" {
		t.Error("window mode must clear the booked-next fields")
	}

	// The rebook reminder counts back from the window start.
	rem := care.reminders[models.ReminderDedupeKey("bk-1", models.ReminderRebook)]
	if rem == nil {
		t.Fatal("expected a rebook reminder")
	}
	wantDue := ws.Add(-DefaultRebookLeadDays * 24 * time.Hour)
	if !rem.DueAt.Equal(wantDue) {
		t.Errorf("reminder due = %v, want %v", rem.DueAt, wantDue)
	}
}

func TestRebookRecommendWindowRejectsEmptyWindow(t *testing.T) {
	care := newFakeAftercare()
	svc := newTestService(newFakeScheduler(completedBooking()), care)

	ws := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)
	_, err := svc.ApplyRebook(context.Background(), RebookRequest{
		BookingID: "bk-1",
		Actor:     professionalActor(),
		Decision:  RebookDecision{Mode: RebookModeRecommendWindow, WindowStart: &ws, WindowEnd: &ws},
	})
	assertCode(t, err, CodeValidation)

	_, err = svc.ApplyRebook(context.Background(), RebookRequest{
		BookingID: "bk-1",
		Actor:     professionalActor(),
		Decision:  RebookDecision{Mode: RebookModeRecommendWindow, WindowStart: &ws},
	})
	assertCode(t, err, CodeValidation)

	if len(care.records) != 0 {
		t.Error("a rejected transition must not persist a record")
	}
}

func TestRebookBookWithExplicitDateCreatesFollowUp(t *testing.T) {
	sched := newFakeScheduler(completedBooking())
	care := newFakeAftercare()
	svc := newTestService(sched, care)

	date := time.Date(2026, 9, 14, 14, 0, 0, 0, time.UTC)
	result, err := svc.ApplyRebook(context.Background(), RebookRequest{
		BookingID: "bk-1",
		Actor:     professionalActor(),
		Decision:  RebookDecision{Mode: RebookModeBook, Date: &date},
	})
	if err != nil {
		t.Fatalf("ApplyRebook: %v", err)
	}
	if result.FollowUpBookingID == "" {
		t.Fatal("expected a follow-up booking id")
	}
	if len(sched.created) != 1 {
		t.Fatalf("created %d bookings, want 1", len(sched.created))
	}
	followUp := sched.created[0]
	if !followUp.ScheduledFor.Equal(date) {
		t.Errorf("follow-up scheduled for %v, want %v", followUp.ScheduledFor, date)
	}
	if followUp.Status != models.BookingStatusPending {
		t.Errorf("follow-up status = %s, want pending", followUp.Status)
	}
	if followUp.ClientID != "cli-1" || followUp.ProfessionalID != "pro-1" {
		t.Error("follow-up must keep the same client and professional")
	}

	rec := result.Record
	if rec.RebookMode != models.RebookBookedNext {
		t.Errorf("mode = %s, want %s", rec.RebookMode, models.RebookBookedNext)
	}
	if rec.RebookWindowStart != nil || rec.RebookWindowEnd != nil {
		t.Error("booked mode must clear the window fields")
	}
}

func TestRebookBookRequiresFutureDate(t *testing.T) {
	svc := newTestService(newFakeScheduler(completedBooking()), newFakeAftercare())

	past := fixedNow.Add(-time.Hour)
	_, err := svc.ApplyRebook(context.Background(), RebookRequest{
		BookingID: "bk-1",
		Actor:     professionalActor(),
		Decision:  RebookDecision{Mode: RebookModeBook, Date: &past},
	})
	assertCode(t, err, CodeValidation)
}

func TestRebookBookWithLinkedBooking(t *testing.T) {
	linked := testBooking()
	linked.ID = "bk-next"
	linked.ScheduledFor = time.Date(2026, 9, 21, 14, 0, 0, 0, time.UTC)
	sched := newFakeScheduler(completedBooking(), linked)
	svc := newTestService(sched, newFakeAftercare())

	result, err := svc.ApplyRebook(context.Background(), RebookRequest{
		BookingID: "bk-1",
		Actor:     professionalActor(),
		Decision:  RebookDecision{Mode: RebookModeBook, LinkedBookingID: "bk-next"},
	})
	if err != nil {
		t.Fatalf("ApplyRebook: %v", err)
	}
	if result.FollowUpBookingID != "bk-next" {
		t.Errorf("FollowUpBookingID = %s, want bk-next", result.FollowUpBookingID)
	}
	if result.Record.RebookedFor == nil || !result.Record.RebookedFor.Equal(linked.ScheduledFor) {
		t.Errorf("RebookedFor = %v, want %v", result.Record.RebookedFor, linked.ScheduledFor)
	}
	if len(sched.created) != 0 {
		t.Error("linking must not create a new booking")
	}
}

func TestRebookBookRejectsForeignLinkedBooking(t *testing.T) {
	linked := testBooking()
	linked.ID = "bk-next"
	linked.ClientID = "cli-other"
	svc := newTestService(newFakeScheduler(completedBooking(), linked), newFakeAftercare())

	_, err := svc.ApplyRebook(context.Background(), RebookRequest{
		BookingID: "bk-1",
		Actor:     professionalActor(),
		Decision:  RebookDecision{Mode: RebookModeBook, LinkedBookingID: "bk-next"},
	})
	assertCode(t, err, CodeValidation)
}

func TestRebookBookRejectsCancelledLinkedBooking(t *testing.T) {
	linked := testBooking()
	linked.ID = "bk-next"
	linked.Status = models.BookingStatusCancelled
	svc := newTestService(newFakeScheduler(completedBooking(), linked), newFakeAftercare())

	_, err := svc.ApplyRebook(context.Background(), RebookRequest{
		BookingID: "bk-1",
		Actor:     professionalActor(),
		Decision:  RebookDecision{Mode: RebookModeBook, LinkedBookingID: "bk-next"},
	})
	assertCode(t, err, CodeInvalidState)
}

func TestRebookClearNullsEverythingAndDropsReminder(t *testing.T) {
	care := newFakeAftercare()
	svc := newTestService(newFakeScheduler(completedBooking()), care)

	ws := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)
	we := time.Date(2026, 9, 21, 0, 0, 0, 0, time.UTC)
	if _, err := svc.ApplyRebook(context.Background(), RebookRequest{
		BookingID: "bk-1",
		Actor:     professionalActor(),
		Decision:  RebookDecision{Mode: RebookModeRecommendWindow, WindowStart: &ws, WindowEnd: &we},
	}); err != nil {
		t.Fatalf("setup window: %v", err)
	}

	result, err := svc.ApplyRebook(context.Background(), RebookRequest{
		BookingID: "bk-1",
		Actor:     professionalActor(),
		Decision:  RebookDecision{Mode: RebookModeClear},
	})
	if err != nil {
		t.Fatalf("clear: %v", err)
	}
	rec := result.Record
	if rec.RebookMode != models.RebookNone {
		t.Errorf("mode = %s, want %s", rec.RebookMode, models.RebookNone)
	}
	if rec.RebookedFor != nil || rec.RebookWindowStart != nil || rec.RebookWindowEnd != nil || rec.FollowUpBookingID != "" {
		t.Error("clear must null every mode-specific field")
	}
	if _, ok := care.reminders[models.ReminderDedupeKey("bk-1", models.ReminderRebook)]; ok {
		t.Error("clear must remove the open rebook reminder")
	}

	// Clearing again is a no-op, not an error.
	if _, err := svc.ApplyRebook(context.Background(), RebookRequest{
		BookingID: "bk-1",
		Actor:     professionalActor(),
		Decision:  RebookDecision{Mode: RebookModeClear},
	}); err != nil {
		t.Fatalf("second clear: %v", err)
	}
}

func TestRebookClearKeepsCompletedReminder(t *testing.T) {
	care := newFakeAftercare()
	key := models.ReminderDedupeKey("bk-1", models.ReminderRebook)
	done := fixedNow.Add(-time.Hour)
	care.reminders[key] = &models.Reminder{ID: "rem-1", DedupeKey: key, CompletedAt: &done}
	svc := newTestService(newFakeScheduler(completedBooking()), care)

	if _, err := svc.ApplyRebook(context.Background(), RebookRequest{
		BookingID: "bk-1",
		Actor:     professionalActor(),
		Decision:  RebookDecision{Mode: RebookModeClear},
	}); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, ok := care.reminders[key]; !ok {
		t.Error("a completed reminder must never be deleted")
	}
}

func TestRebookUnknownModeRejected(t *testing.T) {
	svc := newTestService(newFakeScheduler(completedBooking()), newFakeAftercare())
	_, err := svc.ApplyRebook(context.Background(), RebookRequest{
		BookingID: "bk-1",
		Actor:     professionalActor(),
		Decision:  RebookDecision{Mode: "MAYBE"},
	})
	assertCode(t, err, CodeValidation)
}
