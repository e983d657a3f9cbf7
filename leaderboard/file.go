package leaderboard

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
)

// FileStore persists win counts in a flat text file, one "name:wins" line per
// player. The whole file is rewritten on every win.
type FileStore struct {
	path string

	mu   sync.Mutex
	wins map[string]int
}

// NewFileStore opens (or creates on first win) the score file at path and
// loads any existing entries. A missing file is not an error: the store just
// starts empty.
func NewFileStore(path string) (*FileStore, error) {
	fs := &FileStore{
		path: path,
		wins: make(map[string]int),
	}
	if err := fs.load(); err != nil {
		return nil, err
	}
	return fs, nil
}

func (f *FileStore) load() error {
	file, err := os.Open(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("open score file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		name, winsStr, ok := strings.Cut(scanner.Text(), ":")
		if !ok {
			continue
		}
		wins, err := strconv.Atoi(strings.TrimSpace(winsStr))
		if err != nil {
			continue
		}
		f.wins[name] = wins
	}
	return scanner.Err()
}

// RecordWin increments the win count for name and rewrites the score file.
func (f *FileStore) RecordWin(name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.wins[name]++
	return f.save()
}

// save rewrites the full score file. Caller must hold f.mu.
func (f *FileStore) save() error {
	var sb strings.Builder
	for name, wins := range f.wins {
		fmt.Fprintf(&sb, "%s:%d\n", name, wins)
	}
	if err := os.WriteFile(f.path, []byte(sb.String()), 0644); err != nil {
		return fmt.Errorf("write score file: %w", err)
	}
	return nil
}

// TopScores returns the top n entries.
func (f *FileStore) TopScores(n int) ([]Score, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	scores := make([]Score, 0, len(f.wins))
	for name, wins := range f.wins {
		scores = append(scores, Score{Name: name, Wins: wins})
	}
	return sortScores(scores, n), nil
}
