package postgres

import (
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/weekwise/internal/models"
)

func (s *Store) AddBusyBlock(userID string, block models.BusyBlock) error {
	_, err := s.db.Exec(
		`INSERT INTO busy_blocks (id, user_id, source_name, start_at, end_at, all_day)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		uuid.NewString(), userID, block.SourceName, block.StartAt.UTC(), block.EndAt.UTC(), block.AllDay,
	)
	return err
}

func (s *Store) ListBusyBlocks(userID string, start, end time.Time) ([]models.BusyBlock, error) {
	rows, err := s.db.Query(
		`SELECT b.source_name, b.start_at, b.end_at, b.all_day
		FROM busy_blocks b
		LEFT JOIN calendar_sources cs ON cs.user_id = b.user_id AND cs.name = b.source_name
		WHERE b.user_id = $1
		  AND b.start_at < $2
		  AND b.end_at > $3
		  AND (cs.enabled IS NULL OR cs.enabled)
		ORDER BY b.start_at`,
		userID, end.UTC(), start.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var blocks []models.BusyBlock
	for rows.Next() {
		var block models.BusyBlock
		if err := rows.Scan(&block.SourceName, &block.StartAt, &block.EndAt, &block.AllDay); err != nil {
			return nil, err
		}
		block.StartAt = block.StartAt.UTC()
		block.EndAt = block.EndAt.UTC()
		blocks = append(blocks, block)
	}
	return blocks, rows.Err()
}

func (s *Store) ListSources(userID string) ([]models.CalendarSource, error) {
	rows, err := s.db.Query(
		"SELECT name, enabled FROM calendar_sources WHERE user_id = $1 ORDER BY name", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sources []models.CalendarSource
	for rows.Next() {
		var src models.CalendarSource
		if err := rows.Scan(&src.Name, &src.Enabled); err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}
	return sources, rows.Err()
}

func (s *Store) SetSourceEnabled(userID, name string, enabled bool) error {
	_, err := s.db.Exec(
		`INSERT INTO calendar_sources (user_id, name, enabled) VALUES ($1, $2, $3)
		ON CONFLICT (user_id, name) DO UPDATE SET enabled = EXCLUDED.enabled`,
		userID, name, enabled)
	return err
}
