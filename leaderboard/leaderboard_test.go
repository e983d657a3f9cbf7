package leaderboard

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFormatScores(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		if got := FormatScores(nil); got != "NO SCORES YET" {
			t.Errorf("Expected 'NO SCORES YET', got %q", got)
		}
	})

	t.Run("multiple entries", func(t *testing.T) {
		scores := []Score{{Name: "alice", Wins: 3}, {Name: "bob", Wins: 1}}
		want := "alice (3 Wins), bob (1 Wins)"
		if got := FormatScores(scores); got != want {
			t.Errorf("Expected %q, got %q", want, got)
		}
	})
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()

	for i := 0; i < 3; i++ {
		if err := store.RecordWin("alice"); err != nil {
			t.Fatalf("RecordWin failed: %v", err)
		}
	}
	if err := store.RecordWin("bob"); err != nil {
		t.Fatalf("RecordWin failed: %v", err)
	}

	scores, err := store.TopScores(5)
	if err != nil {
		t.Fatalf("TopScores failed: %v", err)
	}
	if len(scores) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(scores))
	}
	if scores[0].Name != "alice" || scores[0].Wins != 3 {
		t.Errorf("Expected alice with 3 wins first, got %+v", scores[0])
	}

	t.Run("truncates to n", func(t *testing.T) {
		scores, err := store.TopScores(1)
		if err != nil {
			t.Fatalf("TopScores failed: %v", err)
		}
		if len(scores) != 1 {
			t.Errorf("Expected 1 entry, got %d", len(scores))
		}
	})

	t.Run("ties broken by name", func(t *testing.T) {
		store := NewMemoryStore()
		store.RecordWin("zoe")
		store.RecordWin("amy")
		scores, _ := store.TopScores(5)
		if scores[0].Name != "amy" {
			t.Errorf("Expected amy first on tie, got %s", scores[0].Name)
		}
	})
}

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.txt")

	t.Run("missing file starts empty", func(t *testing.T) {
		store, err := NewFileStore(path)
		if err != nil {
			t.Fatalf("NewFileStore failed: %v", err)
		}
		scores, err := store.TopScores(5)
		if err != nil {
			t.Fatalf("TopScores failed: %v", err)
		}
		if len(scores) != 0 {
			t.Errorf("Expected no scores, got %d", len(scores))
		}
	})

	t.Run("wins survive reopen", func(t *testing.T) {
		store, err := NewFileStore(path)
		if err != nil {
			t.Fatalf("NewFileStore failed: %v", err)
		}
		store.RecordWin("alice")
		store.RecordWin("alice")
		store.RecordWin("bob")

		reopened, err := NewFileStore(path)
		if err != nil {
			t.Fatalf("Reopen failed: %v", err)
		}
		scores, err := reopened.TopScores(5)
		if err != nil {
			t.Fatalf("TopScores failed: %v", err)
		}
		if len(scores) != 2 {
			t.Fatalf("Expected 2 entries, got %d", len(scores))
		}
		if scores[0].Name != "alice" || scores[0].Wins != 2 {
			t.Errorf("Expected alice with 2 wins first, got %+v", scores[0])
		}
	})

	t.Run("malformed lines are skipped", func(t *testing.T) {
		bad := filepath.Join(t.TempDir(), "scores.txt")
		if err := os.WriteFile(bad, []byte("alice:2\ngarbage\nbob:notanumber\n"), 0644); err != nil {
			t.Fatal(err)
		}
		store, err := NewFileStore(bad)
		if err != nil {
			t.Fatalf("NewFileStore failed: %v", err)
		}
		scores, _ := store.TopScores(5)
		if len(scores) != 1 || scores[0].Name != "alice" {
			t.Errorf("Expected only alice, got %+v", scores)
		}
	})
}

func TestSQLiteStore(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "scores.db")
	store, err := OpenSQLiteStore(dsn)
	if err != nil {
		t.Fatalf("OpenSQLiteStore failed: %v", err)
	}
	defer store.Close()

	store.RecordWin("alice")
	store.RecordWin("alice")
	store.RecordWin("bob")

	scores, err := store.TopScores(5)
	if err != nil {
		t.Fatalf("TopScores failed: %v", err)
	}
	if len(scores) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(scores))
	}
	if scores[0].Name != "alice" || scores[0].Wins != 2 {
		t.Errorf("Expected alice with 2 wins first, got %+v", scores[0])
	}
}
