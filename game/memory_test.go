package game

import (
	"fmt"
	"strings"
	"testing"
)

// newMemory builds a game with no peek delay so mismatches resolve inline.
func newMemory(t *testing.T) (*memoryGame, *fakePlayer, *fakePlayer) {
	t.Helper()
	p1, p2 := newFakePlayer("alice"), newFakePlayer("bob")
	g := newMemoryGame(p1, p2, Options{Rand: seeded(3).Rand})
	return g, p1, p2
}

// findPair returns two indices holding the same icon; findMismatch returns a
// second index holding a different icon than first.
func findPair(g *memoryGame) (int, int) {
	for i := 0; i < 16; i++ {
		for j := i + 1; j < 16; j++ {
			if g.board[i] == g.board[j] {
				return i, j
			}
		}
	}
	panic("no pair on board")
}

func findMismatch(g *memoryGame, first int) int {
	for j := 0; j < 16; j++ {
		if j != first && g.board[j] != g.board[first] {
			return j
		}
	}
	panic("no mismatch on board")
}

func TestMemoryFirstPick(t *testing.T) {
	g, p1, _ := newMemory(t)
	i, _ := findPair(g)

	g.MakeMove("alice", fmt.Sprintf("%d", i))

	if g.firstPick != i {
		t.Errorf("firstPick = %d, want %d", g.firstPick, i)
	}
	board := p1.last("BOARD:")
	if !strings.Contains(board, g.board[i]) {
		t.Errorf("picked card should be visible in %q", board)
	}

	t.Run("same index twice is a no-op", func(t *testing.T) {
		p1.reset()
		g.MakeMove("alice", fmt.Sprintf("%d", i))
		if g.firstPick != i || p1.received("BOARD:") {
			t.Error("repeating the first pick must change nothing")
		}
	})
}

func TestMemoryMatchKeepsTurn(t *testing.T) {
	g, p1, _ := newMemory(t)
	i, j := findPair(g)

	g.MakeMove("alice", fmt.Sprintf("%d", i))
	g.MakeMove("alice", fmt.Sprintf("%d", j))

	if !g.revealed[i] || !g.revealed[j] {
		t.Error("matched cards must be permanently revealed")
	}
	if g.score1 != 1 {
		t.Errorf("score1 = %d, want 1", g.score1)
	}
	if g.turn != g.p1 {
		t.Error("a match must retain the turn")
	}
	if !p1.received("INFO: MATCH FOUND!") {
		t.Error("match notice missing")
	}
	if !p1.received("INFO: Go again!") {
		t.Error("go-again notice missing")
	}

	t.Run("solved cell is ignored afterwards", func(t *testing.T) {
		g.MakeMove("alice", fmt.Sprintf("%d", i))
		if g.firstPick != -1 {
			t.Error("picking a solved cell must not start a turn")
		}
	})
}

func TestMemoryMismatchSwitchesTurn(t *testing.T) {
	g, p1, p2 := newMemory(t)
	i, _ := findPair(g)
	k := findMismatch(g, i)

	g.MakeMove("alice", fmt.Sprintf("%d", i))
	g.MakeMove("alice", fmt.Sprintf("%d", k))

	if g.revealed[i] || g.revealed[k] {
		t.Error("mismatched cards must not stay revealed")
	}
	if g.tempRevealed[i] || g.tempRevealed[k] {
		t.Error("mismatched cards must be hidden again")
	}
	if g.turn != g.p2 {
		t.Error("a mismatch must switch the turn")
	}
	if g.score1 != 0 || g.score2 != 0 {
		t.Error("a mismatch must not score")
	}
	_ = p1
	if !p2.received("INFO: It is bob's turn.") {
		t.Error("turn notice missing after switch")
	}
}

func TestMemoryCompletion(t *testing.T) {
	g, p1, p2 := newMemory(t)

	// Alice clears the whole board by always picking known pairs.
	for !g.allRevealed() {
		i, j := -1, -1
		for a := 0; a < 16 && i == -1; a++ {
			if g.revealed[a] {
				continue
			}
			for b := a + 1; b < 16; b++ {
				if !g.revealed[b] && g.board[a] == g.board[b] {
					i, j = a, b
					break
				}
			}
		}
		g.MakeMove("alice", fmt.Sprintf("%d", i))
		g.MakeMove("alice", fmt.Sprintf("%d", j))
	}

	if !g.Over() {
		t.Fatal("game must end when all cells are revealed")
	}
	if got := p1.last("GAME_OVER:"); got != "GAME_OVER: Game Finished! Winner: alice" {
		t.Errorf("GAME_OVER = %q", got)
	}
	if g.score1 != 8 || g.score2 != 0 {
		t.Errorf("scores = %d/%d, want 8/0", g.score1, g.score2)
	}
	_ = p2
}
