package game

import (
	"fmt"
	"math/rand"
	"strings"
)

const sprintWinDistance = 100

var sprintActions = [3]string{"RUN", "JUMP", "SLIDE"}

// cyberSprint is the reaction race: a required action is broadcast, a
// matching move advances the sender by 5m, a mismatch is a stumble. First to
// 100m wins. RUN rounds are mashable: a fresh action is drawn after every
// non-RUN success but only with 1-in-5 odds after a RUN.
type cyberSprint struct {
	match
	dist1, dist2 int
	obstacle     string
	rng          *rand.Rand
}

func newCyberSprint(p1, p2 Player, opts Options) *cyberSprint {
	g := &cyberSprint{
		match:    match{p1: p1, p2: p2},
		obstacle: "RUN",
		rng:      opts.rng(),
	}
	g.broadcast("GAME_START: Cyber Sprint! Watch the commands and react fast!")
	g.broadcast("SPRINT_UPDATE:0:0")
	g.nextObstacle()
	return g
}

// nextObstacle draws and broadcasts the next required action. Caller holds mu
// (or is the constructor).
func (g *cyberSprint) nextObstacle() {
	if g.finished {
		return
	}
	g.obstacle = sprintActions[g.rng.Intn(len(sprintActions))]
	g.broadcast("OBSTACLE:" + g.obstacle)
}

func (g *cyberSprint) MakeMove(username, payload string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.finished {
		return nil
	}

	player := g.player(username)
	if player == nil {
		return nil
	}

	if !strings.EqualFold(payload, g.obstacle) {
		player.Send("HINT: Wrong move! You stumbled!")
		return nil
	}

	wasRun := g.obstacle == "RUN"
	if player == g.p1 {
		g.dist1 += 5
	} else {
		g.dist2 += 5
	}
	player.Send("INFO: Correct! +5m")

	if g.dist1 >= sprintWinDistance || g.dist2 >= sprintWinDistance {
		g.finished = true
		g.broadcast(fmt.Sprintf("SPRINT_UPDATE:%d:%d", g.dist1, g.dist2))
		g.broadcast("GAME_OVER: " + username + " Won the Race!")
		return nil
	}

	g.broadcast(fmt.Sprintf("SPRINT_UPDATE:%d:%d", g.dist1, g.dist2))
	if !wasRun || g.rng.Intn(5) == 0 {
		g.nextObstacle()
	}
	return nil
}
