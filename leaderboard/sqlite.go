package leaderboard

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore persists win counts in a SQLite database. Selected with the
// SCORES_DB config; the flat-file store remains the default.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLiteStore opens (and creates if missing) the score database at dsn.
func OpenSQLiteStore(dsn string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dsn); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", dsn+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS scores (
		name TEXT PRIMARY KEY,
		wins INTEGER NOT NULL DEFAULT 0
	);`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create scores table: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// RecordWin increments the win count for name.
func (s *SQLiteStore) RecordWin(name string) error {
	_, err := s.db.Exec(
		`INSERT INTO scores (name, wins) VALUES (?, 1)
		 ON CONFLICT(name) DO UPDATE SET wins = wins + 1`, name)
	if err != nil {
		return fmt.Errorf("record win for %s: %w", name, err)
	}
	return nil
}

// TopScores returns the top n entries.
func (s *SQLiteStore) TopScores(n int) ([]Score, error) {
	rows, err := s.db.Query(
		`SELECT name, wins FROM scores ORDER BY wins DESC, name ASC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("query scores: %w", err)
	}
	defer rows.Close()

	var scores []Score
	for rows.Next() {
		var sc Score
		if err := rows.Scan(&sc.Name, &sc.Wins); err != nil {
			return nil, err
		}
		scores = append(scores, sc)
	}
	return scores, rows.Err()
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
