package models

import "time"

// Booking lifecycle statuses. Cancelled is terminal and never counts as busy.
const (
	BookingStatusPending   = "pending"
	BookingStatusAccepted  = "accepted"
	BookingStatusCompleted = "completed"
	BookingStatusCancelled = "cancelled"
)

// SessionStep tracks how far a booking's in-salon session has progressed.
type SessionStep string

const (
	StepIntake    SessionStep = "intake"
	StepInService SessionStep = "in_service"
	StepAftercare SessionStep = "aftercare"
)

var sessionStepOrder = map[SessionStep]int{
	StepIntake:    0,
	StepInService: 1,
	StepAftercare: 2,
}

// AtLeast reports whether the step has reached other in session order.
func (s SessionStep) AtLeast(other SessionStep) bool {
	return sessionStepOrder[s] >= sessionStepOrder[other]
}

// BookingItem is one service line on a booking.
type BookingItem struct {
	ServiceID       string       `bson:"service_id" json:"serviceId"`
	Name            string       `bson:"name" json:"name"`
	DurationMinutes int          `bson:"duration_minutes" json:"durationMinutes"`
	Mode            LocationMode `bson:"mode" json:"mode"`
	Price           float64      `bson:"price" json:"price"`
}

// Booking represents a confirmed appointment record.
type Booking struct {
	ID              string        `bson:"id" json:"id"`
	ProfessionalID  string        `bson:"professional_id" json:"professionalId"`
	ClientID        string        `bson:"client_id" json:"clientId"`
	ScheduledFor    time.Time     `bson:"scheduled_for" json:"scheduledFor"` // UTC start instant
	DurationMinutes int           `bson:"duration_minutes" json:"durationMinutes"`
	BufferMinutes   int           `bson:"buffer_minutes" json:"bufferMinutes"` // dead time after the appointment, also blocking
	Status          string        `bson:"status" json:"status"`
	SessionStep     SessionStep   `bson:"session_step" json:"sessionStep"`
	Items           []BookingItem `bson:"items" json:"items"`
	TotalPrice      float64       `bson:"total_price" json:"totalPrice"`
	Mode            LocationMode  `bson:"mode" json:"mode"`
	FinishedAt      *time.Time    `bson:"finished_at,omitempty" json:"finishedAt,omitempty"`
	CreatedAt       time.Time     `bson:"created_at" json:"createdAt"`
	UpdatedAt       time.Time     `bson:"updated_at" json:"updatedAt"`
}

// BlockingEnd returns the exclusive end of the interval this booking blocks:
// scheduled start + duration + buffer. fallbackMinutes substitutes for a
// missing duration snapshot.
func (b *Booking) BlockingEnd(fallbackMinutes int) time.Time {
	d := b.DurationMinutes
	if d <= 0 {
		d = fallbackMinutes
	}
	return b.ScheduledFor.Add(time.Duration(d+b.BufferMinutes) * time.Minute)
}

// IsActive reports whether the booking still occupies its interval.
func (b *Booking) IsActive() bool {
	return b.Status != BookingStatusCancelled
}
