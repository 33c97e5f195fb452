package models

import "time"

// ReasonCode is the closed set of programmatic placement-failure reasons.
// The free-text Reason on the same record is for display only.
type ReasonCode string

const (
	ReasonOutsideWindow       ReasonCode = "outside_window"
	ReasonOutsideWorkingHours ReasonCode = "outside_working_hours"
	ReasonFixedConflict       ReasonCode = "fixed_conflict"
	ReasonNoFreeSlot          ReasonCode = "no_free_slot"
)

// WeekPlanItem is a placed candidate with resolved start and end instants.
type WeekPlanItem struct {
	EntryPath   string    `json:"entry_path"`
	Category    Category  `json:"category"`
	Title       string    `json:"title"`
	SourceName  string    `json:"source_name,omitempty"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	DurationMin int       `json:"duration_min"`
	Reason      string    `json:"reason"`
}

// WeekPlanUnscheduledItem is a candidate that could not be placed.
type WeekPlanUnscheduledItem struct {
	EntryPath  string     `json:"entry_path"`
	Category   Category   `json:"category"`
	Title      string     `json:"title"`
	ReasonCode ReasonCode `json:"reason_code"`
	Reason     string     `json:"reason"`
}

// WeekPlan is the scheduler output. Every input candidate appears in exactly
// one of Items or Unscheduled. Items are sorted by start time ascending.
type WeekPlan struct {
	StartDate      string                    `json:"start_date"` // YYYY-MM-DD, inclusive
	EndDate        string                    `json:"end_date"`   // YYYY-MM-DD, inclusive
	GranularityMin int                       `json:"granularity_min"`
	BufferMin      int                       `json:"buffer_min"`
	Items          []WeekPlanItem            `json:"items"`
	Unscheduled    []WeekPlanUnscheduledItem `json:"unscheduled"`
	TotalMinutes   int                       `json:"total_minutes"`
	Warnings       []string                  `json:"warnings,omitempty"`
	GeneratedAt    time.Time                 `json:"generated_at"`
	Revision       string                    `json:"revision"` // content hash, excludes GeneratedAt
}
