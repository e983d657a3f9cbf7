package game

import (
	"fmt"
	"strconv"
	"strings"
)

// guessNumber is a turn-gated number guessing duel over a secret in [1,100].
type guessNumber struct {
	match
	target int
	turn   Player
}

func newGuessNumber(p1, p2 Player, opts Options) *guessNumber {
	g := &guessNumber{
		match:  match{p1: p1, p2: p2},
		target: opts.rng().Intn(100) + 1,
		turn:   p1,
	}
	g.broadcast("GAME_START: Guess the Number! I have picked a number between 1 and 100.")
	p1.Send("INFO: It is your turn. Type /move 50 (to guess 50).")
	p2.Send("INFO: Waiting for opponent...")
	return g
}

func (g *guessNumber) MakeMove(username, payload string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.finished || username != g.turn.Name() {
		return nil
	}

	guess, err := strconv.Atoi(strings.TrimSpace(payload))
	if err != nil {
		// A bad guess does not consume the turn.
		g.turn.Send("INVALID: Please enter a number. Example: /move 42")
		return nil
	}

	g.broadcast(fmt.Sprintf("%s guessed: %d", username, guess))

	switch {
	case guess == g.target:
		g.broadcast("GAME_OVER: Correct! " + username + " WINS!")
		g.finished = true
	case guess < g.target:
		g.broadcast("HINT: Too Low!")
		g.switchTurn()
	default:
		g.broadcast("HINT: Too High!")
		g.switchTurn()
	}
	return nil
}

func (g *guessNumber) switchTurn() {
	if g.turn == g.p1 {
		g.turn = g.p2
	} else {
		g.turn = g.p1
	}
	g.turn.Send("It is your turn.")
}
