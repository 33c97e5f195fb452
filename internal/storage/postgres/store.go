package postgres

import (
	"database/sql"
	"fmt"
	"net/url"
	"strings"

	_ "github.com/lib/pq"

	"github.com/julianstephens/weekwise/internal/constants"
	"github.com/julianstephens/weekwise/internal/logger"
)

type Store struct {
	connStr string
	db      *sql.DB
}

func New(connStr string) *Store {
	s := &Store{
		connStr: connStr,
	}
	s.ensureSearchPath()
	return s
}

// ensureSearchPath pins the schema search_path to the application schema
// unless the caller already set one.
func (s *Store) ensureSearchPath() {
	u, err := url.Parse(s.connStr)
	if err != nil {
		logger.Warn("failed to parse postgres connection string", "error", err)
		return
	}
	q := u.Query()
	if q.Get("search_path") == "" {
		q.Set("search_path", constants.AppName)
		u.RawQuery = q.Encode()
		s.connStr = u.String()
	}
}

var schema = []string{
	`CREATE SCHEMA IF NOT EXISTS ` + constants.AppName,
	`CREATE TABLE IF NOT EXISTS settings (
		user_id TEXT NOT NULL,
		key     TEXT NOT NULL,
		value   TEXT NOT NULL,
		PRIMARY KEY (user_id, key)
	)`,
	`CREATE TABLE IF NOT EXISTS entries (
		user_id      TEXT NOT NULL,
		path         TEXT NOT NULL,
		category     TEXT NOT NULL,
		title        TEXT NOT NULL,
		status       TEXT NOT NULL,
		duration_min INTEGER NOT NULL,
		due_at       TIMESTAMPTZ,
		due_date     TEXT,
		fixed_at     TIMESTAMPTZ,
		priority     INTEGER NOT NULL DEFAULT 0,
		source_name  TEXT NOT NULL DEFAULT '',
		created_at   TIMESTAMPTZ NOT NULL,
		PRIMARY KEY (user_id, path)
	)`,
	`CREATE TABLE IF NOT EXISTS busy_blocks (
		id          TEXT PRIMARY KEY,
		user_id     TEXT NOT NULL,
		source_name TEXT NOT NULL DEFAULT '',
		start_at    TIMESTAMPTZ NOT NULL,
		end_at      TIMESTAMPTZ NOT NULL,
		all_day     BOOLEAN NOT NULL DEFAULT FALSE
	)`,
	`CREATE INDEX IF NOT EXISTS idx_busy_blocks_user_start ON busy_blocks (user_id, start_at)`,
	`CREATE TABLE IF NOT EXISTS calendar_sources (
		user_id TEXT NOT NULL,
		name    TEXT NOT NULL,
		enabled BOOLEAN NOT NULL DEFAULT TRUE,
		PRIMARY KEY (user_id, name)
	)`,
}

func (s *Store) Init() error {
	if err := s.open(); err != nil {
		return err
	}

	for _, stmt := range schema {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}

	return nil
}

func (s *Store) Load() error {
	if s.db != nil {
		return nil
	}
	if err := s.open(); err != nil {
		return err
	}
	// Verify the schema exists before commands start issuing queries
	var exists bool
	err := s.db.QueryRow(
		"SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = 'entries')",
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check schema: %w", err)
	}
	if !exists {
		return fmt.Errorf("storage not initialized, run '%s init' first", constants.AppName)
	}
	return nil
}

func (s *Store) open() error {
	db, err := sql.Open("postgres", s.connStr)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	s.db = db
	return nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) GetConfigPath() string {
	// Redact any userinfo before exposing the connection string
	if u, err := url.Parse(s.connStr); err == nil && u.User != nil {
		u.User = url.User(u.User.Username())
		return u.String()
	}
	if i := strings.Index(s.connStr, "@"); i >= 0 {
		return "postgres://" + s.connStr[i+1:]
	}
	return s.connStr
}
