package notification

import (
	"testing"

	"preen/models"
)

func TestWithRoleDefaultsNilMap(t *testing.T) {
	data := withRole(nil, "client")
	if data == nil {
		t.Fatal("expected a non-nil map")
	}
	if data["role"] != "client" {
		t.Errorf("role = %q, want client", data["role"])
	}
}

func TestWithRoleKeepsCallerRole(t *testing.T) {
	data := withRole(map[string]string{"role": "admin", "type": "reschedule"}, "professional")
	if data["role"] != "admin" {
		t.Errorf("role = %q, want caller's admin", data["role"])
	}
	if data["type"] != "reschedule" {
		t.Errorf("type = %q, want reschedule", data["type"])
	}
}

func TestReminderBodyFallsBack(t *testing.T) {
	if got := ReminderBody(models.ReminderPayload{Body: "Time to rebook"}); got != "Time to rebook" {
		t.Errorf("body = %q, want the payload body", got)
	}
	if got := ReminderBody(models.ReminderPayload{}); got == "" {
		t.Error("empty payload must still render a body")
	}
}
