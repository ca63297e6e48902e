package waitlist

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using modernc.org/sqlite (pure Go, no CGO).
type SQLiteStore struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewSQLiteStore opens or creates a SQLite database at the given path.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode for better concurrent read performance
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS signups (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		email      TEXT NOT NULL COLLATE NOCASE UNIQUE,
		source_url TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_signups_created ON signups(created_at DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveSignup inserts a signup and fills in its ID. CreatedAt is set to now
// when unset. A duplicate email returns ErrDuplicateEmail.
func (s *SQLiteStore) SaveSignup(ctx context.Context, signup *Signup) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if signup.CreatedAt.IsZero() {
		signup.CreatedAt = time.Now().UTC()
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO signups (email, source_url, created_at) VALUES (?, ?, ?)`,
		signup.Email, signup.SourceURL, signup.CreatedAt.UTC().Format(time.RFC3339))
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateEmail
		}
		return err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	signup.ID = id
	return nil
}

// ListSignups returns signups newest first. limit <= 0 returns all.
func (s *SQLiteStore) ListSignups(ctx context.Context, limit int) ([]Signup, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// id breaks ties between same-second inserts
	query := `SELECT id, email, source_url, created_at FROM signups ORDER BY created_at DESC, id DESC`
	var args []interface{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var signups []Signup
	for rows.Next() {
		var su Signup
		var createdAt string
		if err := rows.Scan(&su.ID, &su.Email, &su.SourceURL, &createdAt); err != nil {
			return nil, err
		}
		su.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		signups = append(signups, su)
	}
	return signups, rows.Err()
}

// CountSignups returns the number of collected signups.
func (s *SQLiteStore) CountSignups(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM signups`).Scan(&count)
	return count, err
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
