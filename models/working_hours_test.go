package models

import (
	"testing"
	"time"
)

func TestParseWeeklyHoursOpenDays(t *testing.T) {
	sched := ParseWeeklyHours(WeeklyHours{
		"mon": {Enabled: true, Start: "09:00", End: "17:00"},
		"sat": {Enabled: true, Start: "10:30", End: "14:00"},
	})

	w, open := sched.Window(time.Monday)
	if !open {
		t.Fatal("expected Monday to be open")
	}
	if w.OpenMin != 9*60 || w.CloseMin != 17*60 {
		t.Errorf("Monday window = %+v, want 540-1020", w)
	}

	w, open = sched.Window(time.Saturday)
	if !open {
		t.Fatal("expected Saturday to be open")
	}
	if w.OpenMin != 10*60+30 || w.CloseMin != 14*60 {
		t.Errorf("Saturday window = %+v, want 630-840", w)
	}

	if _, open := sched.Window(time.Sunday); open {
		t.Error("expected Sunday to be closed")
	}
}

func TestParseWeeklyHoursClosedCases(t *testing.T) {
	cases := map[string]WeeklyHours{
		"nil map":       nil,
		"absent day":    {},
		"disabled":      {"tue": {Enabled: false, Start: "09:00", End: "17:00"}},
		"bad start":     {"tue": {Enabled: true, Start: "9:00", End: "17:00"}},
		"bad end":       {"tue": {Enabled: true, Start: "09:00", End: "25:00"}},
		"end == start":  {"tue": {Enabled: true, Start: "09:00", End: "09:00"}},
		"end < start":   {"tue": {Enabled: true, Start: "17:00", End: "09:00"}},
		"garbage times": {"tue": {Enabled: true, Start: "open", End: "close"}},
	}
	for name, raw := range cases {
		sched := ParseWeeklyHours(raw)
		if _, open := sched.Window(time.Tuesday); open {
			t.Errorf("%s: expected Tuesday to be closed", name)
		}
	}
}

func TestParseHHMMBoundaries(t *testing.T) {
	sched := ParseWeeklyHours(WeeklyHours{
		"wed": {Enabled: true, Start: "00:00", End: "23:59"},
	})
	w, open := sched.Window(time.Wednesday)
	if !open {
		t.Fatal("expected Wednesday to be open")
	}
	if w.OpenMin != 0 || w.CloseMin != 23*60+59 {
		t.Errorf("window = %+v, want 0-1439", w)
	}
}
