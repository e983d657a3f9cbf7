// Package game implements the match engines for the eight arcade game
// variants. A Game is one active match: it owns the full rule set and mutable
// world state for that match and serializes every mutating entry point behind
// a single per-instance mutex, since moves arrive concurrently from both
// players' connection goroutines (and, for SnakeBattle, from the tick driver).
package game

import (
	"math/rand"
	"sync"
	"time"

	"github.com/hoysala26/multiplayer-gaming-server/leaderboard"
)

// Player is the narrow view a Game has of a connected participant. Sends are
// best-effort: a player whose socket has failed simply stops receiving.
type Player interface {
	Name() string
	Send(line string)
}

// Game is the contract every variant satisfies.
type Game interface {
	// MakeMove applies one move payload on behalf of username. Invalid input
	// is reported to the sender in-band (INVALID:/HINT: lines) or silently
	// ignored; an error is returned only for unexpected conditions.
	MakeMove(username, payload string) error
	// Over reports whether the match has reached a terminal state.
	Over() bool
	// HandleDisconnect ends the match when one participant's connection is
	// torn down, awarding a forfeit win to the remaining player.
	HandleDisconnect(username string)
}

// Type identifies one of the eight game variants.
type Type int

const (
	TypeTicTacToe Type = iota
	TypeRockPaperScissors
	TypeGuessNumber
	TypeMemory
	TypeSprint
	TypeGalactic
	TypeSnake
	TypeRogue
)

// ParseType maps a /play type token to a Type. Unrecognized tokens fall back
// to TicTacToe, the explicit default.
func ParseType(s string) Type {
	switch s {
	case "rps":
		return TypeRockPaperScissors
	case "guess":
		return TypeGuessNumber
	case "memory":
		return TypeMemory
	case "sprint":
		return TypeSprint
	case "space":
		return TypeGalactic
	case "snake":
		return TypeSnake
	case "rogue":
		return TypeRogue
	default:
		return TypeTicTacToe
	}
}

// String returns the wire token for the type.
func (t Type) String() string {
	switch t {
	case TypeRockPaperScissors:
		return "rps"
	case TypeGuessNumber:
		return "guess"
	case TypeMemory:
		return "memory"
	case TypeSprint:
		return "sprint"
	case TypeGalactic:
		return "space"
	case TypeSnake:
		return "snake"
	case TypeRogue:
		return "rogue"
	default:
		return "tictactoe"
	}
}

// SoloCapable reports whether the variant can be played without an opponent.
func (t Type) SoloCapable() bool {
	return t == TypeSnake || t == TypeRogue
}

// Options carries tunables shared by the variant constructors.
type Options struct {
	// SnakeTick is the interval of the snake world tick. Zero or negative
	// disables the background driver (tests step the world manually).
	SnakeTick time.Duration
	// PeekDelay is how long a mismatched memory pair stays visible before it
	// is hidden again. Zero hides immediately.
	PeekDelay time.Duration
	// Rand is the randomness source for secret numbers, shuffles, dungeon
	// carving and enemy movement. Nil means a time-seeded source.
	Rand *rand.Rand
}

func (o Options) rng() *rand.Rand {
	if o.Rand != nil {
		return o.Rand
	}
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// New constructs the variant for t. p2 is nil for solo matches (only snake
// and rogue support that; callers enforce it). The leaderboard store is
// invoked from win paths of the variants that record wins.
func New(t Type, p1, p2 Player, scores leaderboard.Store, opts Options) Game {
	switch t {
	case TypeRockPaperScissors:
		return newRockPaperScissors(p1, p2)
	case TypeGuessNumber:
		return newGuessNumber(p1, p2, opts)
	case TypeMemory:
		return newMemoryGame(p1, p2, opts)
	case TypeSprint:
		return newCyberSprint(p1, p2, opts)
	case TypeGalactic:
		return newGalacticWar(p1, p2)
	case TypeSnake:
		return newSnakeBattle(p1, p2, scores, opts)
	case TypeRogue:
		return newShadowRogue(p1, p2, scores, opts)
	default:
		return newTicTacToe(p1, p2)
	}
}

// match holds the state every variant shares: the participants, the one-way
// terminal flag, and the mutex that serializes all mutation. Variants embed it
// and take mu at the top of every mutating entry point.
type match struct {
	mu       sync.Mutex
	p1, p2   Player // p2 is nil in solo matches
	finished bool
}

// broadcast sends a line to both participants. Caller holds mu.
func (m *match) broadcast(line string) {
	m.p1.Send(line)
	if m.p2 != nil {
		m.p2.Send(line)
	}
}

// player returns the participant with the given username, or nil.
func (m *match) player(username string) Player {
	if m.p1.Name() == username {
		return m.p1
	}
	if m.p2 != nil && m.p2.Name() == username {
		return m.p2
	}
	return nil
}

// opponent returns the other participant, or nil in solo matches.
func (m *match) opponent(username string) Player {
	if m.p1.Name() == username {
		return m.p2
	}
	return m.p1
}

// Over reports whether the match has finished.
func (m *match) Over() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.finished
}

// HandleDisconnect ends the match with a forfeit notice to the remaining
// player. Variants with extra teardown (snake's ticker) or win recording
// shadow this with their own method.
func (m *match) HandleDisconnect(username string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.forfeitLocked(username)
}

// forfeitLocked marks the match finished and notifies the remaining player.
// Caller holds mu. Returns the forfeit winner, or nil if the match was
// already over or had no other participant.
func (m *match) forfeitLocked(username string) Player {
	if m.finished {
		return nil
	}
	m.finished = true
	opp := m.opponent(username)
	if opp == nil || opp.Name() == username {
		return nil
	}
	opp.Send("GAME_OVER: " + opp.Name() + " wins by forfeit! " + username + " disconnected.")
	return opp
}
