package models

import "time"

type Category string

const (
	CategoryTask    Category = "task"
	CategoryProject Category = "project"
)

type EntryStatus string

const (
	StatusPending EntryStatus = "pending"
	StatusActive  EntryStatus = "active"
	StatusWaiting EntryStatus = "waiting"
	StatusBlocked EntryStatus = "blocked"
	StatusDone    EntryStatus = "done"
)

// Valid reports whether s is a known entry status.
func (s EntryStatus) Valid() bool {
	switch s {
	case StatusPending, StatusActive, StatusWaiting, StatusBlocked, StatusDone:
		return true
	}
	return false
}

// Entry is a stored task or project that can compete for calendar time.
type Entry struct {
	Path        string      `json:"path"` // opaque external identifier
	Category    Category    `json:"category"`
	Title       string      `json:"title"`
	Status      EntryStatus `json:"status"`
	DurationMin int         `json:"duration_min"`
	DueAt       *time.Time  `json:"due_at,omitempty"`
	DueDate     string      `json:"due_date,omitempty"` // YYYY-MM-DD, end-of-window deadline
	FixedAt     *time.Time  `json:"fixed_at,omitempty"`
	Priority    int         `json:"priority,omitempty"` // 1-5, tasks only
	SourceName  string      `json:"source_name,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
}

// Candidate is an entry snapshot competing for a slot in one planning run.
// It is rebuilt from storage on every call and never persisted.
type Candidate struct {
	EntryPath    string     `json:"entry_path"`
	Category     Category   `json:"category"`
	Title        string     `json:"title"`
	SourceName   string     `json:"source_name,omitempty"`
	DurationMin  int        `json:"duration_min"`
	DueAt        *time.Time `json:"due_at,omitempty"`
	DueDate      string     `json:"due_date,omitempty"`
	FixedAt      *time.Time `json:"fixed_at,omitempty"`
	TaskPriority int        `json:"task_priority,omitempty"` // 1-5, tasks only

	// Score is the derived urgency score, recomputed per planning run.
	Score int `json:"-"`
}

// BusyBlock is an imported external calendar interval.
type BusyBlock struct {
	StartAt    time.Time `json:"start_at"`
	EndAt      time.Time `json:"end_at"`
	AllDay     bool      `json:"all_day"`
	SourceName string    `json:"source_name,omitempty"`
}

// CalendarSource is an external calendar import source. Busy blocks from
// disabled sources are excluded from planning.
type CalendarSource struct {
	Name    string `json:"name"`
	Enabled bool   `json:"enabled"`
}
