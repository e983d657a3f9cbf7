// Package leaderboard tracks cumulative win counts for players across games.
//
// The Store interface decouples game outcomes from storage timing: games call
// RecordWin when a match ends and never touch files or databases directly.
// Three implementations exist: a flat-file store (the default, compatible with
// the classic "name:wins" score file), a SQLite-backed store, and an in-memory
// store used by tests.
package leaderboard

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Score is a single leaderboard entry.
type Score struct {
	Name string `json:"name"`
	Wins int    `json:"wins"`
}

// Store is the narrow interface games depend on.
type Store interface {
	// RecordWin increments the win count for the given player.
	RecordWin(name string) error
	// TopScores returns up to n entries sorted by wins descending,
	// ties broken by name.
	TopScores(n int) ([]Score, error)
}

// FormatScores renders scores in the "alice (3 Wins), bob (1 Wins)" form used
// by the /leaderboard reply. An empty slice renders as "NO SCORES YET".
func FormatScores(scores []Score) string {
	if len(scores) == 0 {
		return "NO SCORES YET"
	}
	parts := make([]string, 0, len(scores))
	for _, s := range scores {
		parts = append(parts, fmt.Sprintf("%s (%d Wins)", s.Name, s.Wins))
	}
	return strings.Join(parts, ", ")
}

// sortScores orders entries by wins descending, then name ascending, and
// truncates to n.
func sortScores(scores []Score, n int) []Score {
	sort.Slice(scores, func(i, j int) bool {
		if scores[i].Wins != scores[j].Wins {
			return scores[i].Wins > scores[j].Wins
		}
		return scores[i].Name < scores[j].Name
	})
	if n > 0 && len(scores) > n {
		scores = scores[:n]
	}
	return scores
}

// MemoryStore is a Store kept entirely in memory. Used in tests and as a
// fallback when no persistence is configured.
type MemoryStore struct {
	mu    sync.Mutex
	wins  map[string]int
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{wins: make(map[string]int)}
}

// RecordWin increments the win count for name.
func (m *MemoryStore) RecordWin(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.wins[name]++
	return nil
}

// TopScores returns the top n entries.
func (m *MemoryStore) TopScores(n int) ([]Score, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	scores := make([]Score, 0, len(m.wins))
	for name, wins := range m.wins {
		scores = append(scores, Score{Name: name, Wins: wins})
	}
	return sortScores(scores, n), nil
}
