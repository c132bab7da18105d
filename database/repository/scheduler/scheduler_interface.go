package schedulerRepo

import (
	"context"
	"errors"
	"time"

	"preen/models"
)

// ErrBookingNotFound is returned when no booking matches the given id.
var ErrBookingNotFound = errors.New("booking not found")

// ErrSchedulingConflict is returned when a write-time conflict re-check finds
// an overlapping active booking for the same professional.
var ErrSchedulingConflict = errors.New("scheduling conflict")

// ErrBookingNotEditable is returned when the booking read inside the commit
// transaction turns out to be cancelled or completed.
var ErrBookingNotEditable = errors.New("booking is no longer editable")

// SchedulerRepository owns booking persistence for the scheduling core.
// Both mutating operations re-run the overlap check inside the transaction
// that performs the write, so two concurrent validations cannot both commit.
type SchedulerRepository interface {
	GetBooking(ctx context.Context, bookingID string) (*models.Booking, error)
	// ListActiveBookings returns non-cancelled bookings for the professional
	// whose scheduled start falls inside [from, to).
	ListActiveBookings(ctx context.Context, professionalID string, from, to time.Time) ([]models.Booking, error)
	// CreateBookingChecked inserts the booking after verifying, in the same
	// transaction, that no active sibling booking overlaps its window.
	CreateBookingChecked(ctx context.Context, booking *models.Booking) error
	// CommitReschedule atomically re-checks conflicts and updates the
	// booking's schedule fields together with its recomputed items and total.
	CommitReschedule(ctx context.Context, bookingID string, start time.Time,
		durationMinutes, bufferMinutes int, items []models.BookingItem, totalPrice float64) (*models.Booking, error)
}
