package models

// ReminderPayload is the asynq task payload for a scheduled reminder push.
type ReminderPayload struct {
	ReminderID string `json:"reminderId"`
	Target     string `json:"target"` // "client" or "professional"
	ID         string `json:"id"`     // recipient id
	Title      string `json:"title"`
	Body       string `json:"body"`
	FireDate   string `json:"fireDate"`
}
