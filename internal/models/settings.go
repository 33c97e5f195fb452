package models

// CalendarSettings represents a user's working-hours configuration.
type CalendarSettings struct {
	WorkdayStart string `json:"workday_start"` // the time the workday starts, e.g. "09:00"
	WorkdayEnd   string `json:"workday_end"`   // the time the workday ends, e.g. "17:00"
	WorkingDays  []int  `json:"working_days"`  // weekdays eligible for scheduling, 0=Sunday .. 6=Saturday
}
