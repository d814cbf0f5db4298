package review

import (
	"testing"
	"time"
)

func TestDayStart(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatal(err)
	}

	// 03:30 UTC on March 11 is still March 10 in New York.
	at := time.Date(2026, 3, 11, 3, 30, 0, 0, time.UTC)
	got := DayStart(at, ny)
	want := time.Date(2026, 3, 10, 0, 0, 0, 0, ny)
	if !got.Equal(want) {
		t.Errorf("DayStart = %v, want %v", got, want)
	}
}

func TestNextDayStartAcrossDST(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatal(err)
	}

	// Spring-forward day in the US: March 8, 2026 has 23 hours.
	at := time.Date(2026, 3, 8, 12, 0, 0, 0, ny)
	got := NextDayStart(at, ny)
	want := time.Date(2026, 3, 9, 0, 0, 0, 0, ny)
	if !got.Equal(want) {
		t.Errorf("NextDayStart = %v, want %v", got, want)
	}
}

func TestDateStartKeepsCalendarDate(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatal(err)
	}

	// A date parsed from "2026-03-10" is midnight UTC. Its calendar day must
	// stay March 10 in New York even though the instant is March 9 locally.
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	got := DateStart(date, ny)
	want := time.Date(2026, 3, 10, 0, 0, 0, 0, ny)
	if !got.Equal(want) {
		t.Errorf("DateStart = %v, want %v", got, want)
	}

	gotNext := NextDateStart(date, ny)
	wantNext := time.Date(2026, 3, 11, 0, 0, 0, 0, ny)
	if !gotNext.Equal(wantNext) {
		t.Errorf("NextDateStart = %v, want %v", gotNext, wantNext)
	}

	// DayStart on the same value demonstrates the instant reading: it lands
	// on March 9 local, which is why date inputs never go through it.
	if DayStart(date, ny).Equal(got) {
		t.Error("DayStart and DateStart should disagree for a midnight-UTC date in a negative-offset zone")
	}
}

func TestDateKey(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		at   time.Time
		loc  *time.Location
		want string
	}{
		{"utc noon", time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC), time.UTC, "2026-03-10"},
		{"late evening local stays on its date", time.Date(2026, 3, 10, 23, 30, 0, 0, ny), ny, "2026-03-10"},
		{"utc instant shifts to local date", time.Date(2026, 3, 11, 3, 30, 0, 0, time.UTC), ny, "2026-03-10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DateKey(tt.at, tt.loc); got != tt.want {
				t.Errorf("DateKey = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseTimezoneFallsBackToUTC(t *testing.T) {
	if got := ParseTimezone("Not/AZone"); got != time.UTC {
		t.Errorf("ParseTimezone(invalid) = %v, want UTC", got)
	}
	if got := ParseTimezone("America/New_York"); got.String() != "America/New_York" {
		t.Errorf("ParseTimezone = %v, want America/New_York", got)
	}
}
