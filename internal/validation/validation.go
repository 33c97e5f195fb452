package validation

import (
	"fmt"

	"github.com/julianstephens/weekwise/internal/constants"
	"github.com/julianstephens/weekwise/internal/models"
	"github.com/julianstephens/weekwise/internal/utils"
)

// ValidatePlanOptions enforces the planning option bounds at the boundary,
// before anything reaches the scheduler.
func ValidatePlanOptions(days, granularityMin, bufferMin int) error {
	if days < constants.MinPlanDays || days > constants.MaxPlanDays {
		return fmt.Errorf("days must be between %d and %d, got %d", constants.MinPlanDays, constants.MaxPlanDays, days)
	}
	if granularityMin < constants.MinGranularityMin || granularityMin > constants.MaxGranularityMin {
		return fmt.Errorf("granularity must be between %d and %d minutes, got %d", constants.MinGranularityMin, constants.MaxGranularityMin, granularityMin)
	}
	if bufferMin < constants.MinBufferMin || bufferMin > constants.MaxBufferMin {
		return fmt.Errorf("buffer must be between %d and %d minutes, got %d", constants.MinBufferMin, constants.MaxBufferMin, bufferMin)
	}
	return nil
}

// ValidateStartDate accepts an empty start date (now-aware planning) or a
// well-formed YYYY-MM-DD date.
func ValidateStartDate(dateStr string) error {
	if dateStr == "" {
		return nil
	}
	_, err := utils.ParseYMDAsUTC(dateStr)
	return err
}

// ValidateSettings checks a user's working-hours configuration. Settings are
// expected to have had defaults applied before validation.
func ValidateSettings(settings models.CalendarSettings) error {
	start, err := utils.ParseTimeToMinutes(settings.WorkdayStart)
	if err != nil {
		return fmt.Errorf("invalid workday start %q: %w", settings.WorkdayStart, err)
	}
	end, err := utils.ParseTimeToMinutes(settings.WorkdayEnd)
	if err != nil {
		return fmt.Errorf("invalid workday end %q: %w", settings.WorkdayEnd, err)
	}
	if end <= start {
		return fmt.Errorf("workday end %s must be after workday start %s", settings.WorkdayEnd, settings.WorkdayStart)
	}
	for _, d := range settings.WorkingDays {
		if d < 0 || d > 6 {
			return fmt.Errorf("working day %d out of range 0-6", d)
		}
	}
	return nil
}

// ValidateEntry checks a stored entry before it is accepted into storage.
func ValidateEntry(entry models.Entry) error {
	if entry.Path == "" {
		return fmt.Errorf("entry path is required")
	}
	if entry.Title == "" {
		return fmt.Errorf("entry title is required")
	}
	if entry.Category != models.CategoryTask && entry.Category != models.CategoryProject {
		return fmt.Errorf("invalid category %q", entry.Category)
	}
	if entry.DurationMin < constants.MinDurationMin {
		return fmt.Errorf("duration must be at least %d minutes, got %d", constants.MinDurationMin, entry.DurationMin)
	}
	if entry.Category == models.CategoryTask && (entry.Priority < 0 || entry.Priority > 5) {
		return fmt.Errorf("task priority must be between 1 and 5, got %d", entry.Priority)
	}
	if entry.DueDate != "" {
		if _, err := utils.ParseYMDAsUTC(entry.DueDate); err != nil {
			return fmt.Errorf("invalid due date: %w", err)
		}
	}
	return nil
}

// ValidateBusyBlock checks an imported busy interval.
func ValidateBusyBlock(block models.BusyBlock) error {
	if block.EndAt.Before(block.StartAt) || block.EndAt.Equal(block.StartAt) {
		return fmt.Errorf("busy block end must be after start")
	}
	return nil
}
