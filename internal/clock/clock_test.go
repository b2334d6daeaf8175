package clock

import (
	"testing"
	"time"
)

func TestDayRange(t *testing.T) {
	start, end := DayRange(LocalDate{Year: 2025, Month: time.March, Day: 1})

	// Local midnight 2025-03-01 KST is 2025-02-28 15:00 UTC.
	wantStart := time.Date(2025, time.February, 28, 15, 0, 0, 0, time.UTC)
	wantEnd := time.Date(2025, time.March, 1, 15, 0, 0, 0, time.UTC)

	if !start.Equal(wantStart) {
		t.Errorf("start = %v, want %v", start, wantStart)
	}
	if !end.Equal(wantEnd) {
		t.Errorf("end = %v, want %v", end, wantEnd)
	}
	if end.Sub(start) != 24*time.Hour {
		t.Errorf("range spans %v, want 24h", end.Sub(start))
	}
}

func TestRangeCoversEndDateFully(t *testing.T) {
	start, end := Range(
		LocalDate{Year: 2025, Month: time.January, Day: 10},
		LocalDate{Year: 2025, Month: time.January, Day: 12},
	)

	// 23:59:59 local on the end date is inside the half-open interval.
	lastSecond := time.Date(2025, time.January, 12, 23, 59, 59, 0, Zone)
	if lastSecond.Before(start) || !lastSecond.Before(end) {
		t.Errorf("end-date last second %v not in [%v, %v)", lastSecond, start, end)
	}

	// Midnight of the following day is excluded.
	nextMidnight := time.Date(2025, time.January, 13, 0, 0, 0, 0, Zone)
	if nextMidnight.UTC().Before(end) {
		t.Errorf("next midnight %v unexpectedly inside range ending %v", nextMidnight, end)
	}
}

func TestMonthRange(t *testing.T) {
	tests := []struct {
		name     string
		year     int
		month    time.Month
		wantDays int
	}{
		{"january", 2025, time.January, 31},
		{"february non-leap", 2025, time.February, 28},
		{"february leap", 2024, time.February, 29},
		{"december rollover", 2024, time.December, 31},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			start, end := MonthRange(tc.year, tc.month)
			if got := int(end.Sub(start).Hours() / 24); got != tc.wantDays {
				t.Errorf("month spans %d days, want %d", got, tc.wantDays)
			}
			if got := DaysInMonth(tc.year, tc.month); got != tc.wantDays {
				t.Errorf("DaysInMonth = %d, want %d", got, tc.wantDays)
			}
		})
	}

	// December range must end at January 1 of the next year, local time.
	_, end := MonthRange(2024, time.December)
	wantEnd := time.Date(2025, time.January, 1, 0, 0, 0, 0, Zone).UTC()
	if !end.Equal(wantEnd) {
		t.Errorf("december end = %v, want %v", end, wantEnd)
	}
}

func TestDateOfCrossesUTCMidnight(t *testing.T) {
	// 2025-03-01 20:00 UTC is already 2025-03-02 05:00 local.
	instant := time.Date(2025, time.March, 1, 20, 0, 0, 0, time.UTC)

	got := DateOf(instant)
	want := LocalDate{Year: 2025, Month: time.March, Day: 2}
	if got != want {
		t.Errorf("DateOf = %v, want %v", got, want)
	}
}

func TestFormatLocal(t *testing.T) {
	instant := time.Date(2025, time.June, 15, 3, 30, 45, 0, time.UTC)
	if got, want := FormatLocal(instant), "2025-06-15T12:30:45"; got != want {
		t.Errorf("FormatLocal = %q, want %q", got, want)
	}
}

func TestParseLocalDateTime(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{
			name:  "bare local timestamp read as KST",
			input: "2025-06-15T12:30:45",
			want:  time.Date(2025, time.June, 15, 3, 30, 45, 0, time.UTC),
		},
		{
			name:  "explicit offset honoured",
			input: "2025-06-15T12:30:45Z",
			want:  time.Date(2025, time.June, 15, 12, 30, 45, 0, time.UTC),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseLocalDateTime(tc.input)
			if err != nil {
				t.Fatalf("ParseLocalDateTime(%q): %v", tc.input, err)
			}
			if !got.Equal(tc.want) {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}

	if _, err := ParseLocalDateTime("not a time"); err == nil {
		t.Error("expected error for malformed input")
	}
}

func TestTimeOfDay(t *testing.T) {
	tod, err := NewTimeOfDay(23, 30, 0)
	if err != nil {
		t.Fatalf("NewTimeOfDay: %v", err)
	}
	if got, want := tod.String(), "23:30:00"; got != want {
		t.Errorf("String = %q, want %q", got, want)
	}

	if _, err := NewTimeOfDay(24, 0, 0); err == nil {
		t.Error("expected error for hour 24")
	}

	parsed, err := ParseTimeOfDay("06:00:00")
	if err != nil {
		t.Fatalf("ParseTimeOfDay: %v", err)
	}
	if parsed != MustTimeOfDay(6, 0, 0) {
		t.Errorf("parsed = %v, want 06:00:00", parsed)
	}

	// Projection crosses local midnight relative to UTC.
	instant := time.Date(2025, time.March, 1, 22, 30, 0, 0, time.UTC)
	if got, want := TimeOfDayAt(instant), MustTimeOfDay(7, 30, 0); got != want {
		t.Errorf("TimeOfDayAt = %v, want %v", got, want)
	}
}

func TestLocalDateHelpers(t *testing.T) {
	d := LocalDate{Year: 2025, Month: time.January, Day: 31}

	if got, want := d.AddDays(1), (LocalDate{Year: 2025, Month: time.February, Day: 1}); got != want {
		t.Errorf("AddDays(1) = %v, want %v", got, want)
	}
	if got, want := d.String(), "2025-01-31"; got != want {
		t.Errorf("String = %q, want %q", got, want)
	}

	parsed, err := ParseLocalDate("2025-01-31")
	if err != nil {
		t.Fatalf("ParseLocalDate: %v", err)
	}
	if parsed != d {
		t.Errorf("parsed = %v, want %v", parsed, d)
	}

	if !d.Before(d.AddDays(1)) || d.Before(d) {
		t.Error("Before ordering incorrect")
	}
}
