package weather

import (
	"strings"
	"time"
)

// fullDateWindow is how close to "now" an observation timestamp must be to be
// shown with its date; sunrise/sunset normally fall outside it and render
// time-only.
const fullDateWindow = 2 * time.Hour

const notAvailable = "N/A"

// formatLocalTime renders a UTC epoch timestamp in the zone implied by
// offsetSeconds. Either value missing yields "N/A" for this field alone.
func formatLocalTime(timestampUTC, offsetSeconds *int64, now time.Time) string {
	if timestampUTC == nil || offsetSeconds == nil {
		return notAvailable
	}

	local := time.Unix(*timestampUTC, 0).In(time.FixedZone("", int(*offsetSeconds)))

	delta := now.Sub(time.Unix(*timestampUTC, 0))
	if delta < 0 {
		delta = -delta
	}

	if delta < fullDateWindow {
		return compactClock(local.Format("3:04PM, Jan 02"))
	}
	return compactClock(local.Format("3:04PM"))
}

// compactClock lowercases the meridiem and drops a ":00" minute, so 5:00PM
// becomes "5pm" and 5:07PM becomes "5:07pm".
func compactClock(s string) string {
	return strings.Replace(strings.ToLower(s), ":00", "", 1)
}
