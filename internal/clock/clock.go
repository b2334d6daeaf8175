// Package clock converts between absolute storage instants and the fixed
// UTC+9 business calendar used for day and month boundaries.
//
// Storage convention: every instant persisted or compared against the
// database is a true UTC instant. Values that carry local wall-clock
// meaning (report dates, declared attendance times) cross this package on
// their way in and out; nothing else in the codebase does zone math.
package clock

import (
	"fmt"
	"time"
)

// Zone is the fixed business time zone. Reports, day boundaries and policy
// windows are all evaluated against this offset; there is no DST.
var Zone = time.FixedZone("KST", 9*60*60)

// localDateTimeLayout is the display format for local timestamps.
const localDateTimeLayout = "2006-01-02T15:04:05"

// localDateLayout is the wire format for local calendar dates.
const localDateLayout = "2006-01-02"

// LocalDate is a calendar date in the business zone. It is not an instant:
// converting it to one requires picking a wall-clock time via DayRange.
type LocalDate struct {
	Year  int
	Month time.Month
	Day   int
}

// String returns the date in YYYY-MM-DD form.
func (d LocalDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// AddDays returns the date shifted by n calendar days.
func (d LocalDate) AddDays(n int) LocalDate {
	t := time.Date(d.Year, d.Month, d.Day+n, 0, 0, 0, 0, Zone)
	return LocalDate{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// Before reports whether d is earlier than other.
func (d LocalDate) Before(other LocalDate) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

// ParseLocalDate parses a YYYY-MM-DD string into a LocalDate.
func ParseLocalDate(s string) (LocalDate, error) {
	t, err := time.ParseInLocation(localDateLayout, s, Zone)
	if err != nil {
		return LocalDate{}, fmt.Errorf("parsing local date %q: %w", s, err)
	}
	return LocalDate{Year: t.Year(), Month: t.Month(), Day: t.Day()}, nil
}

// Today returns the current date in the business zone.
func Today(now time.Time) LocalDate {
	return DateOf(now)
}

// DateOf projects an absolute instant onto the business calendar.
// This is the single bucketing rule for all reports: the bucket of an event
// is derived from its stored instant, never from a pre-formatted string.
func DateOf(instant time.Time) LocalDate {
	t := instant.In(Zone)
	return LocalDate{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// DayRange returns the half-open [start, end) instant interval covering the
// local midnight-to-midnight span of date. Both instants are UTC.
func DayRange(date LocalDate) (time.Time, time.Time) {
	start := time.Date(date.Year, date.Month, date.Day, 0, 0, 0, 0, Zone)
	end := time.Date(date.Year, date.Month, date.Day+1, 0, 0, 0, 0, Zone)
	return start.UTC(), end.UTC()
}

// Range returns the half-open instant interval spanning
// [startDate 00:00 local, endDate+1day 00:00 local).
func Range(startDate, endDate LocalDate) (time.Time, time.Time) {
	start := time.Date(startDate.Year, startDate.Month, startDate.Day, 0, 0, 0, 0, Zone)
	end := time.Date(endDate.Year, endDate.Month, endDate.Day+1, 0, 0, 0, 0, Zone)
	return start.UTC(), end.UTC()
}

// MonthRange returns the half-open instant interval covering the full local
// month, including the December to January year rollover.
func MonthRange(year int, month time.Month) (time.Time, time.Time) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, Zone)
	end := time.Date(year, month+1, 1, 0, 0, 0, 0, Zone)
	return start.UTC(), end.UTC()
}

// DaysInMonth returns the number of calendar days in the given local month.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, Zone).Day()
}

// FormatLocal renders an instant as a local-zone date/time string for
// display, e.g. "2025-03-01T12:30:00".
func FormatLocal(instant time.Time) string {
	return instant.In(Zone).Format(localDateTimeLayout)
}

// ParseLocalDateTime parses a timestamp that carries local wall-clock
// meaning and returns the corresponding UTC instant. A trailing zone
// offset, if present, is honoured; a bare timestamp is read as local time.
func ParseLocalDateTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.ParseInLocation(localDateTimeLayout, s, Zone)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing local datetime %q: %w", s, err)
	}
	return t.UTC(), nil
}
