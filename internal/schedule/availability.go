package schedule

import (
	"time"

	"github.com/carebook/backend/internal/models"
)

// Window is a doctor's working interval on a given weekday.
type Window struct {
	Start TimeOfDay
	End   TimeOfDay
}

// Contains reports whether t falls inside the window. Both bounds are
// inclusive, matching the booking rule "reject when t < start or t > end".
func (w Window) Contains(t TimeOfDay) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// Resolve looks up the availability window for the weekday of date in the
// doctor's weekly template. The second return is false when the doctor has
// no available entry for that weekday. Template rows are unique per weekday
// at the schema level, so the scan finds at most one candidate.
func Resolve(timings []models.DoctorTiming, date time.Time) (Window, bool) {
	day := models.WeekdayOf(date)
	for _, t := range timings {
		if t.Day != day || !t.IsAvailable {
			continue
		}
		start, err := ParseTimeOfDay(t.StartTime)
		if err != nil {
			continue
		}
		end, err := ParseTimeOfDay(t.EndTime)
		if err != nil {
			continue
		}
		return Window{Start: start, End: end}, true
	}
	return Window{}, false
}

// Midnight truncates a timestamp to its calendar date in UTC. Appointment
// dates are always stored this way; the time-of-day lives in a separate
// TimeOfDay field.
func Midnight(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
