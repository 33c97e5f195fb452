package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/weekwise/internal/models"
	"github.com/julianstephens/weekwise/internal/scheduler"
	"github.com/julianstephens/weekwise/internal/storage"
	"github.com/julianstephens/weekwise/internal/utils"
)

type Context struct {
	Store     storage.Provider
	Scheduler *scheduler.Scheduler
	UserID    string
}

// ParseWorkingDays parses a comma-separated list of weekdays into the 0-6
// (Sunday-Saturday) representation used by calendar settings.
func ParseWorkingDays(s string) ([]int, error) {
	dayMap := map[string]int{
		"sun": 0, "sunday": 0,
		"mon": 1, "monday": 1,
		"tue": 2, "tuesday": 2,
		"wed": 3, "wednesday": 3,
		"thu": 4, "thursday": 4,
		"fri": 5, "friday": 5,
		"sat": 6, "saturday": 6,
	}

	var days []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(strings.ToLower(part))
		if part == "" {
			continue
		}
		if d, ok := dayMap[part]; ok {
			days = append(days, d)
			continue
		}
		// Try parsing as number (0=Sunday, 6=Saturday)
		num, err := strconv.Atoi(part)
		if err != nil || num < 0 || num > 6 {
			return nil, fmt.Errorf("invalid weekday: %s", part)
		}
		days = append(days, num)
	}

	return models.NormalizeWorkingDays(days), nil
}

// FormatWorkingDays renders a working-day set as short weekday names.
func FormatWorkingDays(days []int) string {
	var names []string
	for _, d := range days {
		names = append(names, time.Weekday(d).String()[:3])
	}
	return strings.Join(names, ",")
}

// ParseInstant accepts either an RFC 3339 timestamp or "YYYY-MM-DD HH:MM"
// (interpreted as UTC).
func ParseInstant(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse("2006-01-02 15:04", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q, use RFC 3339 or 'YYYY-MM-DD HH:MM': %w", s, err)
	}
	return t.UTC(), nil
}

// PrintPlan renders a week plan grouped by day.
func PrintPlan(plan models.WeekPlan) {
	fmt.Printf("Plan %s .. %s  (revision %s, %d min scheduled)\n",
		plan.StartDate, plan.EndDate, plan.Revision, plan.TotalMinutes)

	currentDay := ""
	for _, item := range plan.Items {
		day := utils.ToYMD(item.Start)
		if day != currentDay {
			fmt.Printf("\n%s (%s)\n", day, item.Start.UTC().Weekday())
			currentDay = day
		}
		fmt.Printf("  %s-%s  %-30s  [%s] %s\n",
			item.Start.UTC().Format("15:04"), item.End.UTC().Format("15:04"),
			item.Title, item.Category, item.Reason)
	}

	if len(plan.Unscheduled) > 0 {
		fmt.Println("\nUnscheduled:")
		for _, u := range plan.Unscheduled {
			fmt.Printf("  %-30s  %s: %s\n", u.Title, u.ReasonCode, u.Reason)
		}
	}
}
