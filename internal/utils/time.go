package utils

import (
	"fmt"
	"time"

	"github.com/julianstephens/weekwise/internal/constants"
)

// All calendar math here runs in UTC. Working-day membership and workday
// hours are calendar-date concepts independent of the host timezone.

// AddDays returns the given instant shifted by a number of calendar days.
func AddDays(t time.Time, days int) time.Time {
	return t.AddDate(0, 0, days)
}

// StartOfDayUTC truncates an instant to UTC midnight of its calendar date.
func StartOfDayUTC(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// StartOfWeekMondayUTC returns UTC midnight of the Monday on or before the
// given instant (ISO-week anchoring).
func StartOfWeekMondayUTC(t time.Time) time.Time {
	day := StartOfDayUTC(t)
	offset := (int(day.Weekday()) + 6) % 7 // Monday=0 .. Sunday=6
	return day.AddDate(0, 0, -offset)
}

// ParseYMDAsUTC parses a YYYY-MM-DD date string as UTC midnight.
func ParseYMDAsUTC(dateStr string) (time.Time, error) {
	t, err := time.ParseInLocation(constants.DateFormat, dateStr, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format: %w", err)
	}
	return t, nil
}

// ToYMD formats an instant's UTC calendar date as YYYY-MM-DD.
// ParseYMDAsUTC and ToYMD round-trip exactly for valid dates.
func ToYMD(t time.Time) string {
	return t.UTC().Format(constants.DateFormat)
}

// ParseTimeToMinutes parses a time-of-day string (HH:MM) and returns the
// number of minutes from midnight.
func ParseTimeToMinutes(timeStr string) (int, error) {
	t, err := time.Parse(constants.TimeFormat, timeStr)
	if err != nil {
		return 0, fmt.Errorf("invalid time format: %w", err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatMinutes renders minutes from midnight as HH:MM.
func FormatMinutes(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// MinuteOfDayUTC returns the minute of the UTC day for an instant.
func MinuteOfDayUTC(t time.Time) int {
	t = t.UTC()
	return t.Hour()*60 + t.Minute()
}

// DayIndexUTC returns the whole-day offset of an instant's UTC calendar date
// from the window start date. Negative when the instant precedes the window.
func DayIndexUTC(t, windowStart time.Time) int {
	return int(StartOfDayUTC(t).Sub(StartOfDayUTC(windowStart)).Hours() / 24)
}

// AlignUpToStep rounds a minute value up to the next multiple of step.
// Values already aligned are returned unchanged.
func AlignUpToStep(value, step int) int {
	if step <= 0 {
		return value
	}
	rem := value % step
	if rem == 0 {
		return value
	}
	return value + step - rem
}
