package availability

import (
	"time"

	"preen/config"
	"preen/utils"

	"go.uber.org/zap"
)

// LoadZone resolves an IANA zone identifier, substituting the configured
// default zone when the identifier is missing or unknown. Availability must
// degrade gracefully, so a bad zone never fails the request.
func LoadZone(name string) *time.Location {
	if name != "" {
		loc, err := time.LoadLocation(name)
		if err == nil {
			return loc
		}
		utils.GetLogger().Warn("invalid timezone, falling back to default",
			zap.String("timezone", name), zap.Error(err))
	}
	fallback := config.AppConfig.DefaultTimezone
	if fallback != "" {
		if loc, err := time.LoadLocation(fallback); err == nil {
			return loc
		}
	}
	return time.UTC
}

// ZoneOffsetMinutes returns the zone's offset from UTC, in minutes, at the
// given instant. The offset changes across DST transitions, which is why it
// is computed per instant rather than per zone.
func ZoneOffsetMinutes(t time.Time, loc *time.Location) int {
	_, offsetSeconds := t.In(loc).Zone()
	return offsetSeconds / 60
}

// WallClockToUTC converts wall-clock parts in the given zone to a UTC
// instant. Skipped and ambiguous local times around DST transitions resolve
// according to the zone database, so round-tripping a valid wall-clock time
// through UTC yields the original parts.
func WallClockToUTC(year int, month time.Month, day, hour, minute int, loc *time.Location) time.Time {
	return time.Date(year, month, day, hour, minute, 0, 0, loc).UTC()
}
