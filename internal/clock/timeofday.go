package clock

import (
	"fmt"
	"time"
)

const secondsPerDay = 24 * 60 * 60

// TimeOfDay is a wall-clock time in the business zone, stored as seconds
// since local midnight. It is a pure time-of-day with no date attached.
type TimeOfDay int

// TimeOfDayAt projects an absolute instant onto the local wall clock.
func TimeOfDayAt(instant time.Time) TimeOfDay {
	t := instant.In(Zone)
	return TimeOfDay(t.Hour()*3600 + t.Minute()*60 + t.Second())
}

// MustTimeOfDay builds a TimeOfDay from clock components, panicking on
// out-of-range input. Intended for fixtures and tests.
func MustTimeOfDay(hour, minute, second int) TimeOfDay {
	t, err := NewTimeOfDay(hour, minute, second)
	if err != nil {
		panic(err)
	}
	return t
}

// NewTimeOfDay builds a TimeOfDay from clock components.
func NewTimeOfDay(hour, minute, second int) (TimeOfDay, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 || second < 0 || second > 59 {
		return 0, fmt.Errorf("invalid time of day %02d:%02d:%02d", hour, minute, second)
	}
	return TimeOfDay(hour*3600 + minute*60 + second), nil
}

// ParseTimeOfDay parses an HH:MM:SS (or HH:MM) string.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	var hour, minute, second int
	if _, err := fmt.Sscanf(s, "%d:%d:%d", &hour, &minute, &second); err != nil {
		if _, err := fmt.Sscanf(s, "%d:%d", &hour, &minute); err != nil {
			return 0, fmt.Errorf("parsing time of day %q", s)
		}
		second = 0
	}
	return NewTimeOfDay(hour, minute, second)
}

// Valid reports whether t is within a single day.
func (t TimeOfDay) Valid() bool {
	return t >= 0 && t < secondsPerDay
}

// String returns the time in HH:MM:SS form.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", int(t)/3600, int(t)/60%60, int(t)%60)
}

// MarshalText implements encoding.TextMarshaler.
func (t TimeOfDay) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *TimeOfDay) UnmarshalText(b []byte) error {
	parsed, err := ParseTimeOfDay(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
