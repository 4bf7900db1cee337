package appointment

import "time"

// RoundToHalfHour snaps a timestamp onto the enclosing half-hour boundary:
// minutes below 30 collapse to :00, the rest to :30. Seconds and smaller
// units are always zeroed; the date and hour never change.
func RoundToHalfHour(t time.Time) time.Time {
	minute := 0
	if t.Minute() >= 30 {
		minute = 30
	}
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), minute, 0, 0, t.Location())
}
