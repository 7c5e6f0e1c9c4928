package schedule

import (
	"errors"
	"fmt"
)

// TimeOfDay is a zero-padded 24-hour "HH:MM" value. Comparisons are
// lexicographic, which is correct exactly because the format is fixed-width;
// duration or overlap arithmetic is deliberately not modeled here.
type TimeOfDay string

var ErrInvalidTimeOfDay = errors.New("time must be in HH:MM 24-hour format")

// ParseTimeOfDay validates s as a zero-padded 24-hour clock value.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	if len(s) != 5 || s[2] != ':' {
		return "", ErrInvalidTimeOfDay
	}
	h := digits(s[0], s[1])
	m := digits(s[3], s[4])
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, s)
	}
	return TimeOfDay(s), nil
}

func digits(a, b byte) int {
	if a < '0' || a > '9' || b < '0' || b > '9' {
		return -1
	}
	return int(a-'0')*10 + int(b-'0')
}

func (t TimeOfDay) Before(other TimeOfDay) bool { return t < other }
func (t TimeOfDay) After(other TimeOfDay) bool  { return t > other }

func (t TimeOfDay) String() string { return string(t) }
