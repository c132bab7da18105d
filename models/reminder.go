package models

import "time"

// Reminder types derived from an aftercare submission.
const (
	ReminderRebook          = "REBOOK"
	ReminderProductFollowup = "PRODUCT_FOLLOWUP"
)

// Reminder is a derived follow-up record for a client, deduplicated by
// (bookingId, type). Upserts must never resurrect a completed reminder.
type Reminder struct {
	ID          string     `bson:"id" json:"id"`
	DedupeKey   string     `bson:"dedupe_key" json:"dedupeKey"`
	BookingID   string     `bson:"booking_id" json:"bookingId"`
	ClientID    string     `bson:"client_id" json:"clientId"`
	Type        string     `bson:"type" json:"type"`
	DueAt       time.Time  `bson:"due_at" json:"dueAt"`
	CompletedAt *time.Time `bson:"completed_at,omitempty" json:"completedAt,omitempty"`
	CreatedAt   time.Time  `bson:"created_at" json:"createdAt"`
}

// ReminderDedupeKey builds the deterministic key identifying a derived
// reminder, so repeated derivation updates rather than duplicates it.
func ReminderDedupeKey(bookingID, reminderType string) string {
	return bookingID + ":" + reminderType
}
