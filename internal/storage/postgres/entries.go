package postgres

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/julianstephens/weekwise/internal/models"
)

func (s *Store) AddEntry(userID string, entry models.Entry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.Exec(
		`INSERT INTO entries
		(user_id, path, category, title, status, duration_min, due_at, due_date, fixed_at, priority, source_name, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (user_id, path) DO UPDATE SET
			category = EXCLUDED.category, title = EXCLUDED.title, status = EXCLUDED.status,
			duration_min = EXCLUDED.duration_min, due_at = EXCLUDED.due_at, due_date = EXCLUDED.due_date,
			fixed_at = EXCLUDED.fixed_at, priority = EXCLUDED.priority, source_name = EXCLUDED.source_name`,
		userID, entry.Path, string(entry.Category), entry.Title, string(entry.Status),
		entry.DurationMin, entry.DueAt, nullableString(entry.DueDate), entry.FixedAt,
		entry.Priority, entry.SourceName, entry.CreatedAt,
	)
	return err
}

func (s *Store) GetEntry(userID, path string) (models.Entry, error) {
	row := s.db.QueryRow(
		`SELECT path, category, title, status, duration_min, due_at, due_date, fixed_at, priority, source_name, created_at
		FROM entries WHERE user_id = $1 AND path = $2`, userID, path)
	entry, err := scanEntry(row)
	if err == sql.ErrNoRows {
		return models.Entry{}, fmt.Errorf("entry not found: %s", path)
	}
	return entry, err
}

func (s *Store) GetAllEntries(userID string) ([]models.Entry, error) {
	rows, err := s.db.Query(
		`SELECT path, category, title, status, duration_min, due_at, due_date, fixed_at, priority, source_name, created_at
		FROM entries WHERE user_id = $1 ORDER BY created_at, path`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (s *Store) UpdateEntryStatus(userID, path string, status models.EntryStatus) error {
	res, err := s.db.Exec(
		"UPDATE entries SET status = $1 WHERE user_id = $2 AND path = $3",
		string(status), userID, path)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("entry not found: %s", path)
	}
	return nil
}

func (s *Store) DeleteEntry(userID, path string) error {
	res, err := s.db.Exec("DELETE FROM entries WHERE user_id = $1 AND path = $2", userID, path)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("entry not found: %s", path)
	}
	return nil
}

func (s *Store) ListCandidates(userID, startDate, endDate string) ([]models.Candidate, error) {
	rows, err := s.db.Query(
		`SELECT path, category, title, status, duration_min, due_at, due_date, fixed_at, priority, source_name, created_at
		FROM entries
		WHERE user_id = $1
		  AND ((category = 'task' AND status = 'pending')
		    OR (category = 'project' AND status IN ('active', 'waiting', 'blocked')))
		ORDER BY created_at, path`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var candidates []models.Candidate
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, models.Candidate{
			EntryPath:    entry.Path,
			Category:     entry.Category,
			Title:        entry.Title,
			SourceName:   entry.SourceName,
			DurationMin:  entry.DurationMin,
			DueAt:        entry.DueAt,
			DueDate:      entry.DueDate,
			FixedAt:      entry.FixedAt,
			TaskPriority: entry.Priority,
		})
	}
	return candidates, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEntry(row rowScanner) (models.Entry, error) {
	var (
		entry    models.Entry
		category string
		status   string
		dueAt    sql.NullTime
		dueDate  sql.NullString
		fixedAt  sql.NullTime
	)
	err := row.Scan(&entry.Path, &category, &entry.Title, &status, &entry.DurationMin,
		&dueAt, &dueDate, &fixedAt, &entry.Priority, &entry.SourceName, &entry.CreatedAt)
	if err != nil {
		return models.Entry{}, err
	}

	entry.Category = models.Category(category)
	entry.Status = models.EntryStatus(status)
	if dueDate.Valid {
		entry.DueDate = dueDate.String
	}
	if dueAt.Valid {
		t := dueAt.Time.UTC()
		entry.DueAt = &t
	}
	if fixedAt.Valid {
		t := fixedAt.Time.UTC()
		entry.FixedAt = &t
	}
	entry.CreatedAt = entry.CreatedAt.UTC()
	return entry, nil
}

func nullableString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
