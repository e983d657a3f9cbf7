package game

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Eight icon pairs on a 16-cell board.
var memoryIcons = [16]string{
	"🚀", "🚀", "💎", "💎", "🔥", "🔥", "🍀", "🍀",
	"👑", "👑", "🍕", "🍕", "🎸", "🎸", "💀", "💀",
}

// memoryGame is the turn-gated two-phase pair matching game. A matched pair
// keeps the turn; a mismatch stays visible for peekDelay before both cards
// are hidden again and the turn switches.
type memoryGame struct {
	match
	board        [16]string
	revealed     [16]bool // solved, face up permanently
	tempRevealed [16]bool // flipped for the current turn
	score1       int
	score2       int
	turn         Player
	firstPick    int  // -1 when no card is flipped yet
	peeking      bool // mismatch visible, waiting for the re-hide timer
	peekDelay    time.Duration
}

func newMemoryGame(p1, p2 Player, opts Options) *memoryGame {
	g := &memoryGame{
		match:     match{p1: p1, p2: p2},
		board:     memoryIcons,
		turn:      p1,
		firstPick: -1,
		peekDelay: opts.PeekDelay,
	}
	rng := opts.rng()
	rng.Shuffle(len(g.board), func(i, j int) {
		g.board[i], g.board[j] = g.board[j], g.board[i]
	})

	g.broadcast("GAME_START: Memory Matrix! Find the matching pairs.")
	g.sendTurnInfo()
	g.broadcast("BOARD:" + g.boardState())
	return g
}

func (g *memoryGame) MakeMove(username, payload string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.finished || g.peeking || username != g.turn.Name() {
		return nil
	}

	index, err := strconv.Atoi(payload)
	if err != nil {
		return nil
	}
	// A repeat of the first pick or an already-solved card is a no-op.
	if index < 0 || index >= 16 || g.revealed[index] || index == g.firstPick {
		return nil
	}

	if g.firstPick == -1 {
		g.firstPick = index
		g.tempRevealed[index] = true
		g.broadcast("BOARD:" + g.boardState())
		g.turn.Send("INFO: Pick the second card.")
		return nil
	}

	g.tempRevealed[index] = true
	g.broadcast("BOARD:" + g.boardState())

	if g.board[g.firstPick] == g.board[index] {
		g.revealed[g.firstPick] = true
		g.revealed[index] = true

		if g.turn == g.p1 {
			g.score1++
		} else {
			g.score2++
		}
		g.broadcast("INFO: MATCH FOUND! " + g.board[index])

		g.firstPick = -1
		g.tempRevealed = [16]bool{}

		if g.allRevealed() {
			g.endGame()
		} else {
			g.broadcast("BOARD:" + g.boardState())
			g.turn.Send("INFO: Go again!")
		}
		return nil
	}

	// Mismatch: leave both cards visible for the peek window, then hide them
	// and switch turns. The timer re-acquires the lock; moves that arrive
	// during the window are ignored via the peeking flag.
	first := g.firstPick
	if g.peekDelay <= 0 {
		g.concealLocked(first, index)
		return nil
	}
	g.peeking = true
	time.AfterFunc(g.peekDelay, func() {
		g.mu.Lock()
		defer g.mu.Unlock()
		g.peeking = false
		if g.finished {
			return
		}
		g.concealLocked(first, index)
	})
	return nil
}

// concealLocked hides a mismatched pair and passes the turn. Caller holds mu.
func (g *memoryGame) concealLocked(i, j int) {
	g.tempRevealed[i] = false
	g.tempRevealed[j] = false
	g.firstPick = -1
	g.switchTurn()
	g.broadcast("BOARD:" + g.boardState())
}

func (g *memoryGame) switchTurn() {
	if g.turn == g.p1 {
		g.turn = g.p2
	} else {
		g.turn = g.p1
	}
	g.sendTurnInfo()
}

func (g *memoryGame) sendTurnInfo() {
	g.p1.Send(fmt.Sprintf("SCORE: You %d - %d Opponent", g.score1, g.score2))
	g.p2.Send(fmt.Sprintf("SCORE: You %d - %d Opponent", g.score2, g.score1))
	g.broadcast("INFO: It is " + g.turn.Name() + "'s turn.")
}

// boardState renders the 16 cells, hidden cells as "?", each followed by a
// comma (trailing comma included, as clients expect).
func (g *memoryGame) boardState() string {
	var sb strings.Builder
	for i := 0; i < 16; i++ {
		if g.revealed[i] || g.tempRevealed[i] {
			sb.WriteString(g.board[i])
		} else {
			sb.WriteString("?")
		}
		sb.WriteString(",")
	}
	return sb.String()
}

func (g *memoryGame) allRevealed() bool {
	for _, r := range g.revealed {
		if !r {
			return false
		}
	}
	return true
}

func (g *memoryGame) endGame() {
	g.finished = true
	winner := "Draw"
	if g.score1 > g.score2 {
		winner = g.p1.Name()
	} else if g.score2 > g.score1 {
		winner = g.p2.Name()
	}
	g.broadcast("GAME_OVER: Game Finished! Winner: " + winner)
}
