package sqlite

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
		`INSERT OR REPLACE INTO entries
		(user_id, path, category, title, status, duration_min, due_at, due_date, fixed_at, priority, source_name, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		userID, entry.Path, string(entry.Category), entry.Title, string(entry.Status),
		entry.DurationMin, nullableTime(entry.DueAt), nullableString(entry.DueDate),
		nullableTime(entry.FixedAt), entry.Priority, entry.SourceName,
		entry.CreatedAt.Format(time.RFC3339),
	)
	return err
}

func (s *Store) GetEntry(userID, path string) (models.Entry, error) {
	row := s.db.QueryRow(
		`SELECT path, category, title, status, duration_min, due_at, due_date, fixed_at, priority, source_name, created_at
		FROM entries WHERE user_id = ? AND path = ?`, userID, path)
	entry, err := scanEntry(row)
	if err == sql.ErrNoRows {
		return models.Entry{}, fmt.Errorf("entry not found: %s", path)
	}
	return entry, err
}

func (s *Store) GetAllEntries(userID string) ([]models.Entry, error) {
	rows, err := s.db.Query(
		`SELECT path, category, title, status, duration_min, due_at, due_date, fixed_at, priority, source_name, created_at
		FROM entries WHERE user_id = ? ORDER BY created_at, path`, userID)
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
		"UPDATE entries SET status = ? WHERE user_id = ? AND path = ?",
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
	res, err := s.db.Exec("DELETE FROM entries WHERE user_id = ? AND path = ?", userID, path)
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

// ListCandidates builds fresh schedulable snapshots: pending tasks plus
// active, waiting, or blocked projects.
func (s *Store) ListCandidates(userID, startDate, endDate string) ([]models.Candidate, error) {
	rows, err := s.db.Query(
		`SELECT path, category, title, status, duration_min, due_at, due_date, fixed_at, priority, source_name, created_at
		FROM entries
		WHERE user_id = ?
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
		candidates = append(candidates, entryToCandidate(entry))
	}
	return candidates, rows.Err()
}

func entryToCandidate(entry models.Entry) models.Candidate {
	return models.Candidate{
		EntryPath:    entry.Path,
		Category:     entry.Category,
		Title:        entry.Title,
		SourceName:   entry.SourceName,
		DurationMin:  entry.DurationMin,
		DueAt:        entry.DueAt,
		DueDate:      entry.DueDate,
		FixedAt:      entry.FixedAt,
		TaskPriority: entry.Priority,
	}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEntry(row rowScanner) (models.Entry, error) {
	var (
		entry     models.Entry
		category  string
		status    string
		dueAt     sql.NullString
		dueDate   sql.NullString
		fixedAt   sql.NullString
		createdAt string
	)
	err := row.Scan(&entry.Path, &category, &entry.Title, &status, &entry.DurationMin,
		&dueAt, &dueDate, &fixedAt, &entry.Priority, &entry.SourceName, &createdAt)
	if err != nil {
		return models.Entry{}, err
	}

	entry.Category = models.Category(category)
	entry.Status = models.EntryStatus(status)
	if dueDate.Valid {
		entry.DueDate = dueDate.String
	}
	if entry.DueAt, err = parseNullableTime(dueAt); err != nil {
		return models.Entry{}, err
	}
	if entry.FixedAt, err = parseNullableTime(fixedAt); err != nil {
		return models.Entry{}, err
	}
	if entry.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return models.Entry{}, fmt.Errorf("parsing created_at: %w", err)
	}
	return entry, nil
}

func nullableTime(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}

func nullableString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func parseNullableTime(ns sql.NullString) (*time.Time, error) {
	if !ns.Valid || ns.String == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, ns.String)
	if err != nil {
		return nil, fmt.Errorf("parsing timestamp %q: %w", ns.String, err)
	}
	return &t, nil
}
