package models

import "time"

// BusySource tags where a blocking interval came from.
type BusySource string

const (
	BusySourceBooking BusySource = "booking"
	BusySourceHold    BusySource = "hold"
)

// BusyInterval is a half-open [Start, End) UTC interval of unavailable time.
// The aggregator and conflict checks work on this shape so they never need to
// know booking or hold schema details.
type BusyInterval struct {
	Start  time.Time
	End    time.Time
	Source BusySource
}

// Overlaps reports whether the half-open intervals [aStart,aEnd) and
// [bStart,bEnd) intersect. Touching endpoints do not conflict.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// Blocks reports whether the interval overlaps [start, end).
func (i BusyInterval) Blocks(start, end time.Time) bool {
	return Overlaps(start, end, i.Start, i.End)
}
