package game

import (
	"fmt"
	"strings"
)

// rockPaperScissors is a single simultaneous round: each player submits one
// move, and the round resolves once both slots are filled.
type rockPaperScissors struct {
	match
	move1, move2 string // "" until the player has moved
}

func newRockPaperScissors(p1, p2 Player) *rockPaperScissors {
	g := &rockPaperScissors{match: match{p1: p1, p2: p2}}
	g.broadcast("GAME_START: Rock-Paper-Scissors! Type /move rock, /move paper, or /move scissors")
	return g
}

func (g *rockPaperScissors) MakeMove(username, payload string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.finished {
		return nil
	}

	move := strings.ToLower(payload)
	if move != "rock" && move != "paper" && move != "scissors" {
		if p := g.player(username); p != nil {
			p.Send("INVALID: Use rock, paper, or scissors.")
		}
		return nil
	}

	if g.p1.Name() == username {
		g.move1 = move
		g.p1.Send("You chose: " + move)
		g.p2.Send("Opponent has made a move...")
	} else {
		g.move2 = move
		g.p2.Send("You chose: " + move)
		g.p1.Send("Opponent has made a move...")
	}

	if g.move1 != "" && g.move2 != "" {
		g.resolve()
	}
	return nil
}

// beats reports whether move a defeats move b under the standard relation.
func beats(a, b string) bool {
	return (a == "rock" && b == "scissors") ||
		(a == "paper" && b == "rock") ||
		(a == "scissors" && b == "paper")
}

// resolve settles the round. Caller holds mu.
func (g *rockPaperScissors) resolve() {
	var result string
	switch {
	case g.move1 == g.move2:
		result = "It's a DRAW!"
	case beats(g.move1, g.move2):
		result = g.p1.Name() + " WINS!"
	default:
		result = g.p2.Name() + " WINS!"
	}

	g.broadcast(fmt.Sprintf("RESULT: %s (%s) vs %s (%s)", g.p1.Name(), g.move1, g.p2.Name(), g.move2))
	g.broadcast("GAME_OVER: " + result)
	g.finished = true
}
