package models

import "time"

// Hold is a short-lived reservation of a start instant, taken while a client
// finishes checkout. Only the start is recorded; the blocking length is the
// duration of the service being evaluated at lookup time.
type Hold struct {
	ID             string    `json:"id"`
	ProfessionalID string    `json:"professionalId"`
	ClientID       string    `json:"clientId"`
	ServiceID      string    `json:"serviceId"`
	Start          time.Time `json:"start"` // UTC
	ExpiresAt      time.Time `json:"expiresAt"`
}

// Expired reports whether the hold no longer blocks at the given instant.
func (h *Hold) Expired(now time.Time) bool {
	return !h.ExpiresAt.After(now)
}
