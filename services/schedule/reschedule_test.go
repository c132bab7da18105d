package schedule

import (
	"context"
	"testing"
	"time"

	"preen/models"
)

func assertCode(t *testing.T, err error, want ErrorCode) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %s, got nil", want)
	}
	code, ok := CodeOf(err)
	if !ok {
		t.Fatalf("expected coded error, got %v", err)
	}
	if code != want {
		t.Fatalf("error code = %s, want %s (err: %v)", code, want, err)
	}
}

func professionalActor() Actor { return Actor{ID: "pro-1", Role: RoleProfessional} }
func clientActor() Actor       { return Actor{ID: "cli-1", Role: RoleClient} }

func TestRescheduleMovesBooking(t *testing.T) {
	sched := newFakeScheduler(testBooking())
	svc := newTestService(sched, newFakeAftercare())

	newStart := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	booking, err := svc.Reschedule(context.Background(), RescheduleRequest{
		BookingID: "bk-1",
		Actor:     clientActor(),
		NewStart:  &newStart,
	})
	if err != nil {
		t.Fatalf("Reschedule: %v", err)
	}
	if !booking.ScheduledFor.Equal(newStart) {
		t.Errorf("ScheduledFor = %v, want %v", booking.ScheduledFor, newStart)
	}
	if booking.DurationMinutes != 60 || booking.BufferMinutes != 15 {
		t.Errorf("duration/buffer = %d/%d, want 60/15", booking.DurationMinutes, booking.BufferMinutes)
	}
	if sched.commits != 1 {
		t.Errorf("commits = %d, want 1", sched.commits)
	}
}

func TestRescheduleItemsDriveDurationAndTotal(t *testing.T) {
	sched := newFakeScheduler(testBooking())
	svc := newTestService(sched, newFakeAftercare())

	newStart := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	booking, err := svc.Reschedule(context.Background(), RescheduleRequest{
		BookingID: "bk-1",
		Actor:     professionalActor(),
		NewStart:  &newStart,
		Items: []models.BookingItem{
			{ServiceID: "svc-cut", Name: "Cut", DurationMinutes: 60, Price: 45},
			{ServiceID: "svc-color", Name: "Color", DurationMinutes: 90, Price: 120},
		},
	})
	if err != nil {
		t.Fatalf("Reschedule: %v", err)
	}
	if booking.DurationMinutes != 150 {
		t.Errorf("DurationMinutes = %d, want 150", booking.DurationMinutes)
	}
	if booking.TotalPrice != 165 {
		t.Errorf("TotalPrice = %v, want 165", booking.TotalPrice)
	}
}

func TestReschedulePinnedDurationWinsOverItems(t *testing.T) {
	sched := newFakeScheduler(testBooking())
	svc := newTestService(sched, newFakeAftercare())

	newStart := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	pinned := 45
	booking, err := svc.Reschedule(context.Background(), RescheduleRequest{
		BookingID:          "bk-1",
		Actor:              professionalActor(),
		NewStart:           &newStart,
		NewDurationMinutes: &pinned,
		Items: []models.BookingItem{
			{ServiceID: "svc-cut", DurationMinutes: 60, Price: 45},
		},
	})
	if err != nil {
		t.Fatalf("Reschedule: %v", err)
	}
	if booking.DurationMinutes != 45 {
		t.Errorf("DurationMinutes = %d, want pinned 45", booking.DurationMinutes)
	}
}

func TestRescheduleCancelledBookingRejected(t *testing.T) {
	b := testBooking()
	b.Status = models.BookingStatusCancelled
	sched := newFakeScheduler(b)
	svc := newTestService(sched, newFakeAftercare())

	newStart := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	_, err := svc.Reschedule(context.Background(), RescheduleRequest{
		BookingID: "bk-1", Actor: clientActor(), NewStart: &newStart,
	})
	assertCode(t, err, CodeInvalidState)
	if sched.commits != 0 {
		t.Error("cancelled booking must not be committed")
	}
}

func TestRescheduleCompletedBookingRejected(t *testing.T) {
	b := testBooking()
	b.Status = models.BookingStatusCompleted
	svc := newTestService(newFakeScheduler(b), newFakeAftercare())

	newStart := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	_, err := svc.Reschedule(context.Background(), RescheduleRequest{
		BookingID: "bk-1", Actor: clientActor(), NewStart: &newStart,
	})
	assertCode(t, err, CodeInvalidState)
}

func TestRescheduleCancelledDuringCommitRejected(t *testing.T) {
	sched := newFakeScheduler(testBooking())
	svc := newTestService(sched, newFakeAftercare())

	// Another writer cancels the booking after validation passes but before
	// the commit transaction re-reads it.
	sched.beforeCommit = func() {
		sched.bookings["bk-1"].Status = models.BookingStatusCancelled
	}

	newStart := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	_, err := svc.Reschedule(context.Background(), RescheduleRequest{
		BookingID: "bk-1", Actor: clientActor(), NewStart: &newStart,
	})
	assertCode(t, err, CodeInvalidState)
	if sched.commits != 0 {
		t.Error("cancelled booking must not be committed")
	}
	stored := sched.bookings["bk-1"]
	if !stored.ScheduledFor.Equal(testBooking().ScheduledFor) {
		t.Errorf("stored ScheduledFor = %v, want unchanged %v",
			stored.ScheduledFor, testBooking().ScheduledFor)
	}
}

func TestRescheduleUnknownBooking(t *testing.T) {
	svc := newTestService(newFakeScheduler(), newFakeAftercare())
	_, err := svc.Reschedule(context.Background(), RescheduleRequest{
		BookingID: "nope", Actor: clientActor(),
	})
	assertCode(t, err, CodeNotFound)
}

func TestRescheduleForeignBookingForbidden(t *testing.T) {
	svc := newTestService(newFakeScheduler(testBooking()), newFakeAftercare())
	_, err := svc.Reschedule(context.Background(), RescheduleRequest{
		BookingID: "bk-1", Actor: Actor{ID: "cli-other", Role: RoleClient},
	})
	assertCode(t, err, CodeForbidden)
}

func TestRescheduleClientCannotOverrideWorkingHours(t *testing.T) {
	svc := newTestService(newFakeScheduler(testBooking()), newFakeAftercare())

	newStart := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC) // Sunday, closed
	_, err := svc.Reschedule(context.Background(), RescheduleRequest{
		BookingID:            "bk-1",
		Actor:                clientActor(),
		NewStart:             &newStart,
		OverrideWorkingHours: true,
	})
	assertCode(t, err, CodeForbidden)
}

func TestRescheduleOutsideWorkingHours(t *testing.T) {
	svc := newTestService(newFakeScheduler(testBooking()), newFakeAftercare())

	// Sunday is fully closed.
	sunday := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	_, err := svc.Reschedule(context.Background(), RescheduleRequest{
		BookingID: "bk-1", Actor: clientActor(), NewStart: &sunday,
	})
	assertCode(t, err, CodeOutsideWorkingHours)

	// Monday, but the session plus buffer would run past closing.
	lateMonday := time.Date(2026, 8, 31, 16, 30, 0, 0, time.UTC)
	_, err = svc.Reschedule(context.Background(), RescheduleRequest{
		BookingID: "bk-1", Actor: clientActor(), NewStart: &lateMonday,
	})
	assertCode(t, err, CodeOutsideWorkingHours)
}

func TestRescheduleProfessionalOverridesWorkingHours(t *testing.T) {
	sched := newFakeScheduler(testBooking())
	svc := newTestService(sched, newFakeAftercare())

	sunday := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	_, err := svc.Reschedule(context.Background(), RescheduleRequest{
		BookingID:            "bk-1",
		Actor:                professionalActor(),
		NewStart:             &sunday,
		OverrideWorkingHours: true,
	})
	if err != nil {
		t.Fatalf("override reschedule: %v", err)
	}
	if sched.commits != 1 {
		t.Errorf("commits = %d, want 1", sched.commits)
	}
}

func TestRescheduleConflictWithSibling(t *testing.T) {
	sibling := testBooking()
	sibling.ID = "bk-2"
	sibling.ClientID = "cli-2"
	sibling.ScheduledFor = time.Date(2026, 8, 31, 10, 30, 0, 0, time.UTC)
	sched := newFakeScheduler(testBooking(), sibling)
	svc := newTestService(sched, newFakeAftercare())

	// 10:00 + 60m + 15m buffer overlaps the 10:30 sibling.
	newStart := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	_, err := svc.Reschedule(context.Background(), RescheduleRequest{
		BookingID: "bk-1", Actor: clientActor(), NewStart: &newStart,
	})
	assertCode(t, err, CodeSchedulingConflict)
	if sched.commits != 0 {
		t.Error("conflicting reschedule must not be committed")
	}
}

func TestRescheduleIgnoresCancelledSibling(t *testing.T) {
	sibling := testBooking()
	sibling.ID = "bk-2"
	sibling.ClientID = "cli-2"
	sibling.Status = models.BookingStatusCancelled
	sibling.ScheduledFor = time.Date(2026, 8, 31, 10, 30, 0, 0, time.UTC)
	sched := newFakeScheduler(testBooking(), sibling)
	svc := newTestService(sched, newFakeAftercare())

	newStart := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	if _, err := svc.Reschedule(context.Background(), RescheduleRequest{
		BookingID: "bk-1", Actor: clientActor(), NewStart: &newStart,
	}); err != nil {
		t.Fatalf("cancelled sibling must not block: %v", err)
	}
}

func TestRescheduleValidation(t *testing.T) {
	svc := newTestService(newFakeScheduler(testBooking()), newFakeAftercare())

	zero := 0
	_, err := svc.Reschedule(context.Background(), RescheduleRequest{
		BookingID: "bk-1", Actor: clientActor(), NewDurationMinutes: &zero,
	})
	assertCode(t, err, CodeValidation)

	negBuffer := -5
	_, err = svc.Reschedule(context.Background(), RescheduleRequest{
		BookingID: "bk-1", Actor: clientActor(), NewBufferMinutes: &negBuffer,
	})
	assertCode(t, err, CodeValidation)
}

func TestRescheduleNotifiesClientWhenAsked(t *testing.T) {
	sched := newFakeScheduler(testBooking())
	svc := newTestService(sched, newFakeAftercare())
	notifier := &fakeNotifier{}
	svc.Notifier = notifier

	newStart := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	if _, err := svc.Reschedule(context.Background(), RescheduleRequest{
		BookingID:    "bk-1",
		Actor:        professionalActor(),
		NewStart:     &newStart,
		NotifyClient: true,
	}); err != nil {
		t.Fatalf("Reschedule: %v", err)
	}
	if notifier.clientPushes != 1 {
		t.Errorf("clientPushes = %d, want 1", notifier.clientPushes)
	}
}

func TestReschedulePushFailureDoesNotFailMutation(t *testing.T) {
	sched := newFakeScheduler(testBooking())
	svc := newTestService(sched, newFakeAftercare())
	svc.Notifier = &fakeNotifier{err: context.DeadlineExceeded}

	newStart := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	if _, err := svc.Reschedule(context.Background(), RescheduleRequest{
		BookingID:    "bk-1",
		Actor:        professionalActor(),
		NewStart:     &newStart,
		NotifyClient: true,
	}); err != nil {
		t.Fatalf("push failure must not fail the reschedule: %v", err)
	}
	if sched.commits != 1 {
		t.Errorf("commits = %d, want 1", sched.commits)
	}
}
