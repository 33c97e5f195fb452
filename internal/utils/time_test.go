package utils

import (
	"testing"
	"time"
)

func TestStartOfWeekMondayUTC(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"monday maps to itself", "2025-12-29", "2025-12-29"},
		{"wednesday maps back to monday", "2025-12-31", "2025-12-29"},
		{"sunday maps back six days", "2026-01-04", "2025-12-29"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in, err := ParseYMDAsUTC(tc.in)
			if err != nil {
				t.Fatalf("ParseYMDAsUTC failed: %v", err)
			}
			got := ToYMD(StartOfWeekMondayUTC(in))
			if got != tc.want {
				t.Errorf("StartOfWeekMondayUTC(%s) = %s, want %s", tc.in, got, tc.want)
			}
		})
	}
}

func TestStartOfWeekMondayUTC_IgnoresWallClockZone(t *testing.T) {
	// 23:30 Sunday in UTC-5 is already Monday 04:30 UTC
	loc := time.FixedZone("UTC-5", -5*60*60)
	in := time.Date(2026, 1, 4, 23, 30, 0, 0, loc)
	got := ToYMD(StartOfWeekMondayUTC(in))
	if got != "2026-01-05" {
		t.Errorf("expected Monday of the UTC date, got %s", got)
	}
}

func TestParseYMDRoundTrip(t *testing.T) {
	for _, dateStr := range []string{"2025-01-01", "2025-12-31", "2024-02-29"} {
		parsed, err := ParseYMDAsUTC(dateStr)
		if err != nil {
			t.Fatalf("ParseYMDAsUTC(%s) failed: %v", dateStr, err)
		}
		if got := ToYMD(parsed); got != dateStr {
			t.Errorf("round trip of %s yielded %s", dateStr, got)
		}
	}

	if _, err := ParseYMDAsUTC("31-12-2025"); err == nil {
		t.Error("expected error for malformed date")
	}
}

func TestParseTimeToMinutes(t *testing.T) {
	cases := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"09:00", 540, false},
		{"17:30", 1050, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"09:60", 0, true},
		{"nonsense", 0, true},
	}

	for _, tc := range cases {
		got, err := ParseTimeToMinutes(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseTimeToMinutes(%q) expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseTimeToMinutes(%q) failed: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseTimeToMinutes(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestAlignUpToStep(t *testing.T) {
	cases := []struct {
		value, step, want int
	}{
		{540, 15, 540}, // already aligned
		{541, 15, 555},
		{554, 15, 555},
		{0, 30, 0},
		{1, 30, 30},
		{100, 0, 100}, // degenerate step is a no-op
	}

	for _, tc := range cases {
		if got := AlignUpToStep(tc.value, tc.step); got != tc.want {
			t.Errorf("AlignUpToStep(%d, %d) = %d, want %d", tc.value, tc.step, got, tc.want)
		}
	}
}

func TestDayIndexUTC(t *testing.T) {
	start, _ := ParseYMDAsUTC("2026-01-05")

	sameDay := time.Date(2026, 1, 5, 23, 0, 0, 0, time.UTC)
	if got := DayIndexUTC(sameDay, start); got != 0 {
		t.Errorf("same day index = %d, want 0", got)
	}

	thirdDay := time.Date(2026, 1, 7, 0, 30, 0, 0, time.UTC)
	if got := DayIndexUTC(thirdDay, start); got != 2 {
		t.Errorf("third day index = %d, want 2", got)
	}

	before := time.Date(2026, 1, 4, 12, 0, 0, 0, time.UTC)
	if got := DayIndexUTC(before, start); got != -1 {
		t.Errorf("prior day index = %d, want -1", got)
	}
}
