package utils

import (
	"testing"
	"time"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"09:30", 570, false},
		{"23:59", 1439, false},
		{"9:30", 0, true},
		{"24:00", 0, true},
		{"noon", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseClock(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseClock(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseClock(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseClock(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestFormatClockRoundTrip(t *testing.T) {
	for _, minutes := range []int{0, 5, 570, 735, 1439} {
		s := FormatClock(minutes)
		back, err := ParseClock(s)
		if err != nil {
			t.Fatalf("FormatClock(%d) produced unparseable %q", minutes, s)
		}
		if back != minutes {
			t.Errorf("round trip %d -> %q -> %d", minutes, s, back)
		}
	}
}

func TestDayOfWeek(t *testing.T) {
	// 2030-01-07 is a Monday.
	monday := time.Date(2030, 1, 7, 0, 0, 0, 0, time.UTC)
	for offset, want := range []int{0, 1, 2, 3, 4, 5, 6} {
		d := monday.AddDate(0, 0, offset)
		if got := DayOfWeek(d); got != want {
			t.Errorf("DayOfWeek(%s) = %d, want %d", d.Weekday(), got, want)
		}
	}
}

func TestCombineDateClock(t *testing.T) {
	got, err := CombineDateClock("2030-01-07", 870, time.UTC)
	if err != nil {
		t.Fatalf("CombineDateClock failed: %v", err)
	}
	want := time.Date(2030, 1, 7, 14, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("expected %v, got %v", want, got)
	}

	if _, err := CombineDateClock("07/01/2030", 870, time.UTC); err == nil {
		t.Error("expected error for malformed date")
	}
}

func TestMinutesOfDay(t *testing.T) {
	at := time.Date(2030, 1, 7, 12, 45, 59, 0, time.UTC)
	if got := MinutesOfDay(at); got != 765 {
		t.Errorf("MinutesOfDay = %d, want 765", got)
	}
}
