package models

import "time"

// RebookMode is the aftercare-stage decision about the next appointment.
// Exactly one mode's date fields may be populated at a time.
type RebookMode string

const (
	RebookNone              RebookMode = "NONE"
	RebookBookedNext        RebookMode = "BOOKED_NEXT_APPOINTMENT"
	RebookRecommendedWindow RebookMode = "RECOMMENDED_WINDOW"
)

// RecommendedProduct is one product suggestion attached to an aftercare record.
type RecommendedProduct struct {
	Name string `bson:"name" json:"name"`
	Note string `bson:"note,omitempty" json:"note,omitempty"`
	URL  string `bson:"url,omitempty" json:"url,omitempty"`
}

// AftercareRecord is the per-booking aftercare submission: notes, the rebook
// decision and any recommended products.
type AftercareRecord struct {
	ID                string               `bson:"id" json:"id"`
	BookingID         string               `bson:"booking_id" json:"bookingId"`
	Notes             string               `bson:"notes,omitempty" json:"notes,omitempty"`
	RebookMode        RebookMode           `bson:"rebook_mode" json:"rebookMode"`
	RebookedFor       *time.Time           `bson:"rebooked_for,omitempty" json:"rebookedFor,omitempty"`
	RebookWindowStart *time.Time           `bson:"rebook_window_start,omitempty" json:"rebookWindowStart,omitempty"`
	RebookWindowEnd   *time.Time           `bson:"rebook_window_end,omitempty" json:"rebookWindowEnd,omitempty"`
	FollowUpBookingID string               `bson:"follow_up_booking_id,omitempty" json:"followUpBookingId,omitempty"`
	Products          []RecommendedProduct `bson:"products,omitempty" json:"products,omitempty"`
	SentToClient      bool                 `bson:"sent_to_client" json:"sentToClient"`
	CreatedAt         time.Time            `bson:"created_at" json:"createdAt"`
	UpdatedAt         time.Time            `bson:"updated_at" json:"updatedAt"`
}
