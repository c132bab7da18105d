package models

import "time"

// ProfessionalSlots is one professional's computed availability: the slot
// starts (UTC) plus the context used to generate them. Slots carry no
// identity beyond their timestamp and are recomputed on every query.
type ProfessionalSlots struct {
	ProfessionalID  string       `json:"professionalId"`
	DisplayName     string       `json:"displayName"`
	Timezone        string       `json:"timezone"`
	Mode            LocationMode `json:"mode"`
	Price           float64      `json:"price"`
	DurationMinutes int          `json:"durationMinutes"`
	Slots           []time.Time  `json:"slots"`
}

// AvailabilityResult is the full availability-query response: the primary
// professional's slots plus competing professionals offering the same service.
type AvailabilityResult struct {
	Primary    ProfessionalSlots   `json:"primary"`
	Alternates []ProfessionalSlots `json:"alternates,omitempty"`
}
