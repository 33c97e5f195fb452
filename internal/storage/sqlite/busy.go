package sqlite

import (
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/weekwise/internal/models"
)

func (s *Store) AddBusyBlock(userID string, block models.BusyBlock) error {
	allDay := 0
	if block.AllDay {
		allDay = 1
	}
	_, err := s.db.Exec(
		`INSERT INTO busy_blocks (id, user_id, source_name, start_at, end_at, all_day)
		VALUES (?, ?, ?, ?, ?, ?)`,
		uuid.NewString(), userID, block.SourceName,
		block.StartAt.UTC().Format(time.RFC3339), block.EndAt.UTC().Format(time.RFC3339), allDay,
	)
	return err
}

// ListBusyBlocks returns blocks intersecting [start, end) from enabled
// sources. Blocks whose source has no row default to enabled.
func (s *Store) ListBusyBlocks(userID string, start, end time.Time) ([]models.BusyBlock, error) {
	rows, err := s.db.Query(
		`SELECT b.source_name, b.start_at, b.end_at, b.all_day
		FROM busy_blocks b
		LEFT JOIN calendar_sources cs ON cs.user_id = b.user_id AND cs.name = b.source_name
		WHERE b.user_id = ?
		  AND b.start_at < ?
		  AND b.end_at > ?
		  AND (cs.enabled IS NULL OR cs.enabled = 1)
		ORDER BY b.start_at`,
		userID, end.UTC().Format(time.RFC3339), start.UTC().Format(time.RFC3339))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var blocks []models.BusyBlock
	for rows.Next() {
		var (
			block          models.BusyBlock
			startAt, endAt string
			allDay         int
		)
		if err := rows.Scan(&block.SourceName, &startAt, &endAt, &allDay); err != nil {
			return nil, err
		}
		if block.StartAt, err = time.Parse(time.RFC3339, startAt); err != nil {
			return nil, err
		}
		if block.EndAt, err = time.Parse(time.RFC3339, endAt); err != nil {
			return nil, err
		}
		block.AllDay = allDay == 1
		blocks = append(blocks, block)
	}
	return blocks, rows.Err()
}

func (s *Store) ListSources(userID string) ([]models.CalendarSource, error) {
	rows, err := s.db.Query(
		"SELECT name, enabled FROM calendar_sources WHERE user_id = ? ORDER BY name", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sources []models.CalendarSource
	for rows.Next() {
		var src models.CalendarSource
		var enabled int
		if err := rows.Scan(&src.Name, &enabled); err != nil {
			return nil, err
		}
		src.Enabled = enabled == 1
		sources = append(sources, src)
	}
	return sources, rows.Err()
}

func (s *Store) SetSourceEnabled(userID, name string, enabled bool) error {
	val := 0
	if enabled {
		val = 1
	}
	_, err := s.db.Exec(
		"INSERT OR REPLACE INTO calendar_sources (user_id, name, enabled) VALUES (?, ?, ?)",
		userID, name, val)
	return err
}
