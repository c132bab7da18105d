package schedule

import (
	"context"
	"time"

	"preen/models"
)

// Actor identifies the authenticated caller of a schedule mutation.
type Actor struct {
	ID   string
	Role string // "client" or "professional"
}

const (
	RoleClient       = "client"
	RoleProfessional = "professional"
)

// RescheduleRequest proposes a new schedule for an existing booking. Nil
// fields keep the booking's current values.
type RescheduleRequest struct {
	BookingID          string
	Actor              Actor
	NewStart           *time.Time
	NewDurationMinutes *int
	NewBufferMinutes   *int
	Items              []models.BookingItem
	// OverrideWorkingHours skips the working-hours containment check.
	// Professional-only; clients never get this escape hatch.
	OverrideWorkingHours bool
	NotifyClient         bool
}

// RebookDecision carries the rebook mode and its mode-specific fields.
type RebookDecision struct {
	Mode            string // BOOK, RECOMMEND_WINDOW or CLEAR
	Date            *time.Time
	LinkedBookingID string
	WindowStart     *time.Time
	WindowEnd       *time.Time
}

// Rebook modes accepted by the mutation surface.
const (
	RebookModeBook            = "BOOK"
	RebookModeRecommendWindow = "RECOMMEND_WINDOW"
	RebookModeClear           = "CLEAR"
)

// RebookResult is the outcome of a rebook mutation.
type RebookResult struct {
	Record            models.AftercareRecord
	FollowUpBookingID string
}

// ReminderSettings are the per-submission reminder toggles and day offsets.
type ReminderSettings struct {
	RebookEnabled          bool
	RebookLeadDays         int // days before the rebook anchor; default applied when zero
	ProductFollowupEnabled bool
	ProductFollowupDays    int // days after the session; default applied when zero
}

// AftercareRequest is a full aftercare submission for a completed session.
type AftercareRequest struct {
	BookingID    string
	Actor        Actor
	Notes        string
	Rebook       RebookDecision
	Reminders    ReminderSettings
	Products     []models.RecommendedProduct
	SendToClient bool
}

// AftercareResult reports what the submission changed.
type AftercareResult struct {
	RecordID          string
	FollowUpBookingID string
	RemindersCreated  int
	RemindersRemoved  int
	ClientNotified    bool
}

// ScheduleService owns the booking mutation paths: reschedule validation,
// the rebook state machine and aftercare submission.
type ScheduleService interface {
	Reschedule(ctx context.Context, req RescheduleRequest) (*models.Booking, error)
	ApplyRebook(ctx context.Context, req RebookRequest) (*RebookResult, error)
	SubmitAftercare(ctx context.Context, req AftercareRequest) (*AftercareResult, error)
}

// RebookRequest is a standalone rebook mutation outside a full aftercare
// submission.
type RebookRequest struct {
	BookingID string
	Actor     Actor
	Decision  RebookDecision
}
