package storage

import (
	"time"

	"github.com/julianstephens/weekwise/internal/models"
)

// Provider is the persistence boundary. It satisfies the scheduler's
// CandidateSource, SettingsSource, and BusySource interfaces.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Calendar settings
	GetCalendarSettings(userID string) (models.CalendarSettings, error)
	SaveCalendarSettings(userID string, settings models.CalendarSettings) error

	// Entries
	AddEntry(userID string, entry models.Entry) error
	GetEntry(userID, path string) (models.Entry, error)
	GetAllEntries(userID string) ([]models.Entry, error)
	UpdateEntryStatus(userID, path string, status models.EntryStatus) error
	DeleteEntry(userID, path string) error
	// ListCandidates returns schedulable snapshots: pending tasks plus
	// active, waiting, or blocked projects.
	ListCandidates(userID, startDate, endDate string) ([]models.Candidate, error)

	// Busy blocks
	AddBusyBlock(userID string, block models.BusyBlock) error
	// ListBusyBlocks returns blocks from enabled sources intersecting
	// [start, end).
	ListBusyBlocks(userID string, start, end time.Time) ([]models.BusyBlock, error)
	ListSources(userID string) ([]models.CalendarSource, error)
	SetSourceEnabled(userID, name string, enabled bool) error

	// Utils
	GetConfigPath() string
}
