package sqlite

import (
	"github.com/julianstephens/weekwise/internal/models"
)

const (
	settingWorkdayStart = "workday_start"
	settingWorkdayEnd   = "workday_end"
	settingWorkingDays  = "working_days"
)

// GetCalendarSettings returns the stored settings for a user. Missing rows
// yield zero values; the scheduler applies defaults.
func (s *Store) GetCalendarSettings(userID string) (models.CalendarSettings, error) {
	rows, err := s.db.Query("SELECT key, value FROM settings WHERE user_id = ?", userID)
	if err != nil {
		return models.CalendarSettings{}, err
	}
	defer rows.Close()

	settings := models.CalendarSettings{}
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return models.CalendarSettings{}, err
		}
		switch key {
		case settingWorkdayStart:
			settings.WorkdayStart = value
		case settingWorkdayEnd:
			settings.WorkdayEnd = value
		case settingWorkingDays:
			days, err := models.WorkingDaysFromString(value)
			if err != nil {
				return models.CalendarSettings{}, err
			}
			settings.WorkingDays = days
		}
	}
	return settings, rows.Err()
}

func (s *Store) SaveCalendarSettings(userID string, settings models.CalendarSettings) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	pairs := map[string]string{
		settingWorkdayStart: settings.WorkdayStart,
		settingWorkdayEnd:   settings.WorkdayEnd,
		settingWorkingDays:  models.WorkingDaysToString(settings.WorkingDays),
	}
	for key, value := range pairs {
		if _, err := tx.Exec(
			"INSERT OR REPLACE INTO settings (user_id, key, value) VALUES (?, ?, ?)",
			userID, key, value,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}
