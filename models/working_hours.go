package models

import (
	"regexp"
	"time"
)

// DayRule is the raw per-weekday working-hours entry as stored on the
// professional document: {enabled, start "HH:MM", end "HH:MM"}.
type DayRule struct {
	Enabled bool   `bson:"enabled" json:"enabled"`
	Start   string `bson:"start" json:"start"`
	End     string `bson:"end" json:"end"`
}

// WeeklyHours is the loosely-typed weekly map keyed by abbreviated weekday
// ("sun".."sat"). Absence of a day means fully closed.
type WeeklyHours map[string]DayRule

// DayWindow is a validated open window for one weekday, in minutes from
// local midnight. CloseMin is exclusive.
type DayWindow struct {
	OpenMin  int
	CloseMin int
}

// WeeklySchedule is the parsed weekly working-hours table, indexed by
// time.Weekday. Parse once at the boundary; lookups never re-trust the blob.
type WeeklySchedule struct {
	windows [7]*DayWindow
}

var dayKeys = [7]string{"sun", "mon", "tue", "wed", "thu", "fri", "sat"}

var hhmmRe = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// parseHHMM converts a zero-padded 24-hour "HH:MM" string to minutes from
// midnight. Malformed values are rejected, not defaulted.
func parseHHMM(s string) (int, bool) {
	if !hhmmRe.MatchString(s) {
		return 0, false
	}
	h := int(s[0]-'0')*10 + int(s[1]-'0')
	m := int(s[3]-'0')*10 + int(s[4]-'0')
	return h*60 + m, true
}

// ParseWeeklyHours validates the raw weekly map into a WeeklySchedule.
// A day is closed when it is absent, disabled, carries a malformed time, or
// has end <= start (misconfiguration, not an overnight range).
func ParseWeeklyHours(raw WeeklyHours) WeeklySchedule {
	var sched WeeklySchedule
	if raw == nil {
		return sched
	}
	for wd := 0; wd < 7; wd++ {
		rule, ok := raw[dayKeys[wd]]
		if !ok || !rule.Enabled {
			continue
		}
		open, ok := parseHHMM(rule.Start)
		if !ok {
			continue
		}
		clos, ok := parseHHMM(rule.End)
		if !ok || clos <= open {
			continue
		}
		sched.windows[wd] = &DayWindow{OpenMin: open, CloseMin: clos}
	}
	return sched
}

// Window returns the open window for the given weekday, or ok=false when the
// day is fully closed.
func (s WeeklySchedule) Window(wd time.Weekday) (DayWindow, bool) {
	w := s.windows[int(wd)]
	if w == nil {
		return DayWindow{}, false
	}
	return *w, true
}
