package game

import (
	"fmt"
	"strings"
)

// galacticWar is a low-latency relay dogfight. The server does not simulate
// positions or shots; it forwards them to the opponent as-is and only tracks
// health through explicit HIT admissions from the player who was hit.
type galacticWar struct {
	match
	hp1, hp2 int
}

func newGalacticWar(p1, p2 Player) *galacticWar {
	g := &galacticWar{
		match: match{p1: p1, p2: p2},
		hp1:   100,
		hp2:   100,
	}
	g.broadcast("GAME_START: Galactic War! Use W,A,S,D to Fly and SPACE to Shoot.")
	p1.Send("SETUP:LEFT")
	p2.Send("SETUP:RIGHT")
	return g
}

func (g *galacticWar) MakeMove(username, payload string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.finished {
		return nil
	}

	sender := g.player(username)
	if sender == nil {
		return nil
	}
	opponent := g.p2
	if sender == g.p2 {
		opponent = g.p1
	}

	switch {
	case strings.HasPrefix(payload, "POS:"):
		opponent.Send("ENEMY_POS:" + payload[len("POS:"):])
	case payload == "SHOOT":
		opponent.Send("ENEMY_SHOOT")
	case payload == "HIT":
		if sender == g.p1 {
			g.hp1 -= 5
		} else {
			g.hp2 -= 5
		}
		g.broadcast(fmt.Sprintf("HP:%d:%d", g.hp1, g.hp2))
		opponent.Send("ENEMY_HIT_CONFIRM")

		if g.hp1 <= 0 || g.hp2 <= 0 {
			g.finished = true
			winner := g.p2.Name()
			if g.hp1 > 0 {
				winner = g.p1.Name()
			}
			g.broadcast("GAME_OVER: " + winner + " Dominates the Galaxy!")
		}
	}
	return nil
}
