package aftercareRepo

import (
	"context"
	"errors"

	"preen/models"
)

// ErrRecordNotFound is returned when no aftercare record exists for a booking.
var ErrRecordNotFound = errors.New("aftercare record not found")

// AftercareRepository persists aftercare records and their derived reminders.
// Reminder upserts are content-addressed by dedupe key and must be a single
// conditional write that never resurrects a completed reminder.
type AftercareRepository interface {
	GetByBookingID(ctx context.Context, bookingID string) (*models.AftercareRecord, error)
	// UpsertRecord inserts or replaces the aftercare record keyed by booking
	// id and returns the record id.
	UpsertRecord(ctx context.Context, record *models.AftercareRecord) (string, error)
	// UpsertReminder inserts or updates the reminder identified by its dedupe
	// key, leaving any completion marker untouched. Returns whether a new
	// reminder document was created.
	UpsertReminder(ctx context.Context, reminder models.Reminder) (bool, error)
	// DeleteOpenReminder removes the reminder with the given dedupe key only
	// if it has not been completed. Returns whether a document was removed.
	DeleteOpenReminder(ctx context.Context, dedupeKey string) (bool, error)
	GetReminder(ctx context.Context, dedupeKey string) (*models.Reminder, error)
}
