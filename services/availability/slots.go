package availability

import (
	"time"

	"preen/models"
)

const (
	// HorizonDays bounds how far ahead slots are enumerated.
	HorizonDays = 10
	// StepMinutes is the enumeration granularity within a day's open window.
	StepMinutes = 30
	// MinLeadTime excludes slots starting sooner than a client could
	// realistically arrive.
	MinLeadTime = 10 * time.Minute

	// DefaultSlotLimit and MaxSlotLimit bound the result count.
	DefaultSlotLimit = 6
	MaxSlotLimit     = 12
)

// ClampLimit normalizes a requested result limit into [1, MaxSlotLimit],
// applying the default when unset.
func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultSlotLimit
	}
	if limit > MaxSlotLimit {
		return MaxSlotLimit
	}
	return limit
}

// GenerateSlots enumerates candidate slot starts (UTC) for a professional:
// at most limit entries, each fitting entirely inside one day's open window
// and clear of every busy interval. now is threaded explicitly so generation
// is deterministic under test.
//
// Weekday resolution and window arithmetic happen in the professional's
// zone; emitted instants are UTC. Enumeration stops as soon as limit slots
// are collected, and never proceeds past the horizon even for slots that
// would otherwise fit.
func GenerateSlots(now time.Time, loc *time.Location, sched models.WeeklySchedule,
	busy []models.BusyInterval, durationMinutes, limit int) []time.Time {

	limit = ClampLimit(limit)
	if durationMinutes <= 0 {
		return nil
	}

	horizon := now.Add(HorizonDays * 24 * time.Hour)
	earliest := now.Add(MinLeadTime)
	duration := time.Duration(durationMinutes) * time.Minute
	local := now.In(loc)

	var slots []time.Time
	for dayOffset := 0; dayOffset < HorizonDays && len(slots) < limit; dayOffset++ {
		day := local.AddDate(0, 0, dayOffset)
		window, open := sched.Window(day.Weekday())
		if !open {
			continue
		}

		// Slots step from the day's opening minute; a slot is emitted only
		// when start+duration still fits before closing.
		for startMin := window.OpenMin; startMin+durationMinutes <= window.CloseMin; startMin += StepMinutes {
			local := time.Date(day.Year(), day.Month(), day.Day(),
				startMin/60, startMin%60, 0, 0, loc)
			// A wall-clock time inside a DST spring-forward gap gets
			// normalized to a neighboring hour, duplicating another step.
			// Only starts that round-trip to their own minutes are real.
			if lt := local.In(loc); lt.Day() != day.Day() || lt.Hour()*60+lt.Minute() != startMin {
				continue
			}
			slotStart := local.UTC()
			if slotStart.Before(earliest) {
				continue
			}
			if !slotStart.Before(horizon) {
				break
			}
			slotEnd := slotStart.Add(duration)

			blocked := false
			for _, b := range busy {
				if b.Blocks(slotStart, slotEnd) {
					blocked = true
					break
				}
			}
			if blocked {
				continue
			}

			slots = append(slots, slotStart)
			if len(slots) >= limit {
				break
			}
		}
	}
	return slots
}
