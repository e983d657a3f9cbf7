package game

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/hoysala26/multiplayer-gaming-server/leaderboard"
)

const (
	rogueWidth  = 20
	rogueHeight = 20
	rogueCarves = 200
	rogueFoes   = 8
)

// Tile kinds in the rogue map.
const (
	tileWall = iota
	tileFloor
	tileExit
)

// shadowRogue is a procedurally dug dungeon race: up to two players step
// through a random-walk carved map toward the exit while skeletons shamble
// toward whichever player is nearer. The world advances synchronously on each
// player move; there is no tick driver.
type shadowRogue struct {
	match
	grid    [rogueWidth][rogueHeight]int
	pos1    cell
	pos2    cell // meaningful only when !solo
	enemies []cell
	solo    bool
	rng     *rand.Rand
	scores  leaderboard.Store
}

func newShadowRogue(p1, p2 Player, scores leaderboard.Store, opts Options) *shadowRogue {
	g := &shadowRogue{
		match:  match{p1: p1, p2: p2},
		solo:   p2 == nil,
		rng:    opts.rng(),
		scores: scores,
	}
	g.generateDungeon()

	if g.solo {
		g.broadcast("GAME_START: SHADOW ROGUE (SOLO)! Find the Chalice (Yellow) to escape.")
	} else {
		g.broadcast("GAME_START: ROGUE RACE! First to the Chalice wins!")
	}
	g.broadcast(g.stateLine())
	return g
}

// generateDungeon carves a fixed number of floor tiles by random walk from
// the grid center, marks the final carve position as the exit, and scatters
// enemies on floor tiles away from the start.
func (g *shadowRogue) generateDungeon() {
	x, y := rogueWidth/2, rogueHeight/2
	g.pos1 = cell{x, y}
	if !g.solo {
		g.pos2 = cell{x, y}
	}

	for i := 0; i < rogueCarves; i++ {
		g.grid[x][y] = tileFloor
		switch g.rng.Intn(4) {
		case 0:
			if y > 1 {
				y--
			}
		case 1:
			if x < rogueWidth-2 {
				x++
			}
		case 2:
			if y < rogueHeight-2 {
				y++
			}
		case 3:
			if x > 1 {
				x--
			}
		}
	}
	g.grid[x][y] = tileExit

	for i := 0; i < rogueFoes; i++ {
		ex, ey := g.rng.Intn(rogueWidth), g.rng.Intn(rogueHeight)
		if g.grid[ex][ey] == tileFloor && abs(ex-g.pos1.x) > 4 {
			g.enemies = append(g.enemies, cell{ex, ey})
		}
	}
}

func (g *shadowRogue) MakeMove(username, payload string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.finished {
		return nil
	}

	pos := &g.pos1
	if g.p1.Name() != username {
		if g.solo {
			return nil
		}
		pos = &g.pos2
	}

	dx, dy, ok := parseDirection(payload)
	if ok {
		nx, ny := pos.x+dx, pos.y+dy
		// Off-grid or wall: the step is rejected and the position is kept.
		if nx >= 0 && nx < rogueWidth && ny >= 0 && ny < rogueHeight && g.grid[nx][ny] != tileWall {
			pos.x, pos.y = nx, ny

			if g.grid[nx][ny] == tileExit {
				g.finished = true
				g.broadcast("GAME_OVER: " + username + " found the Golden Chalice!")
				if err := g.scores.RecordWin(username); err != nil {
					log.Error().Err(err).Str("user", username).Msg("failed to record rogue win")
				}
			}
		}
	}

	// Enemies take their step after every player move, even a rejected one.
	g.moveEnemies()
	g.checkDamage()
	g.broadcast(g.stateLine())
	return nil
}

// moveEnemies gives each enemy a 1-in-3 chance to take one step toward the
// nearer player, never through walls.
func (g *shadowRogue) moveEnemies() {
	for i := range g.enemies {
		e := &g.enemies[i]

		target := g.pos1
		if !g.solo && distSq(*e, g.pos2) < distSq(*e, g.pos1) {
			target = g.pos2
		}

		if g.rng.Intn(3) != 0 {
			continue
		}
		switch {
		case e.x < target.x && g.grid[e.x+1][e.y] != tileWall:
			e.x++
		case e.x > target.x && g.grid[e.x-1][e.y] != tileWall:
			e.x--
		case e.y < target.y && g.grid[e.x][e.y+1] != tileWall:
			e.y++
		case e.y > target.y && g.grid[e.x][e.y-1] != tileWall:
			e.y--
		}
	}
}

// checkDamage notifies any player sharing a cell with an enemy. Contact hurts
// but does not end the game.
func (g *shadowRogue) checkDamage() {
	for _, e := range g.enemies {
		if e == g.pos1 {
			g.p1.Send("HINT: Ouch! A Skeleton attacked you!")
		}
		if !g.solo && e == g.pos2 {
			g.p2.Send("HINT: Ouch! A Skeleton attacked you!")
		}
	}
}

// stateLine renders "ROGUE:W,H:mapBits:p1x,p1y:p2x,p2y:ex,ey,..." with the
// map flattened row by row and -1,-1 for the absent second player.
func (g *shadowRogue) stateLine() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "ROGUE:%d,%d:", rogueWidth, rogueHeight)
	for y := 0; y < rogueHeight; y++ {
		for x := 0; x < rogueWidth; x++ {
			fmt.Fprintf(&sb, "%d", g.grid[x][y])
		}
	}
	fmt.Fprintf(&sb, ":%d,%d:", g.pos1.x, g.pos1.y)
	if g.solo {
		sb.WriteString("-1,-1:")
	} else {
		fmt.Fprintf(&sb, "%d,%d:", g.pos2.x, g.pos2.y)
	}
	for _, e := range g.enemies {
		fmt.Fprintf(&sb, "%d,%d,", e.x, e.y)
	}
	return sb.String()
}

// HandleDisconnect awards the remaining player a forfeit win on the
// leaderboard, matching the win recording of a normal rogue finish.
func (g *shadowRogue) HandleDisconnect(username string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if winner := g.forfeitLocked(username); winner != nil {
		if err := g.scores.RecordWin(winner.Name()); err != nil {
			log.Error().Err(err).Str("user", winner.Name()).Msg("failed to record rogue win")
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func distSq(a, b cell) int {
	dx, dy := a.x-b.x, a.y-b.y
	return dx*dx + dy*dy
}
