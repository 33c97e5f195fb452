package models

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/julianstephens/weekwise/internal/constants"
)

// ApplyDefaultSettings applies default values to missing calendar settings
// and normalizes the working-day set.
func ApplyDefaultSettings(settings *CalendarSettings) {
	if settings.WorkdayStart == "" {
		settings.WorkdayStart = constants.DefaultWorkdayStart
	}
	if settings.WorkdayEnd == "" {
		settings.WorkdayEnd = constants.DefaultWorkdayEnd
	}
	settings.WorkingDays = NormalizeWorkingDays(settings.WorkingDays)
}

// NormalizeWorkingDays deduplicates and sorts a working-day set, discarding
// values outside 0-6. An empty result falls back to Monday-Friday.
func NormalizeWorkingDays(days []int) []int {
	seen := make(map[int]bool)
	var out []int
	for _, d := range days {
		if d < 0 || d > 6 || seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	if len(out) == 0 {
		out = append(out, constants.DefaultWorkingDays...)
	}
	sort.Ints(out)
	return out
}

// WorkingDaysToString serializes a working-day set for storage, e.g. "1,2,3,4,5".
func WorkingDaysToString(days []int) string {
	parts := make([]string, len(days))
	for i, d := range days {
		parts[i] = strconv.Itoa(d)
	}
	return strings.Join(parts, ",")
}

// WorkingDaysFromString parses a stored working-day set.
func WorkingDaysFromString(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var days []int
	for _, part := range strings.Split(s, ",") {
		d, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("parsing working days %q: %w", s, err)
		}
		days = append(days, d)
	}
	return days, nil
}
