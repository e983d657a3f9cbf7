package game

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hoysala26/multiplayer-gaming-server/leaderboard"
)

const (
	snakeWidth  = 40
	snakeHeight = 30
)

// Headings, clockwise from up.
const (
	headingUp = iota
	headingRight
	headingDown
	headingLeft
)

// snakeBattle is the continuously-simulated variant: a tick driver advances
// both snakes on a fixed interval regardless of player input. Heading changes
// from MakeMove and the tick loop share the per-match mutex, so the world is
// never mutated from two goroutines at once.
type snakeBattle struct {
	match
	snake1, snake2 []cell // head first
	dir1, dir2     int
	food           cell
	solo           bool
	rng            *rand.Rand
	scores         leaderboard.Store
}

func newSnakeBattle(p1, p2 Player, scores leaderboard.Store, opts Options) *snakeBattle {
	g := &snakeBattle{
		match:  match{p1: p1, p2: p2},
		snake1: []cell{{5, 5}, {4, 5}},
		dir1:   headingRight,
		dir2:   headingLeft,
		solo:   p2 == nil,
		rng:    opts.rng(),
		scores: scores,
	}
	if !g.solo {
		g.snake2 = []cell{{35, 25}, {36, 25}}
	}
	g.spawnFood()

	if g.solo {
		g.broadcast("GAME_START: CLASSIC SNAKE! Eat food to grow.")
	} else {
		g.broadcast("GAME_START: SNAKE BATTLE! Green vs Orange.")
	}

	if opts.SnakeTick > 0 {
		go g.run(opts.SnakeTick)
	}
	return g
}

// run is the tick driver. It exits when the match finishes.
func (g *snakeBattle) run(tick time.Duration) {
	ticker := time.NewTicker(tick)
	defer ticker.Stop()
	for range ticker.C {
		if !g.step() {
			return
		}
	}
}

// step advances the world one tick and broadcasts the new state. It returns
// false once the match is over.
func (g *snakeBattle) step() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.finished {
		return false
	}

	g.snake1 = g.advance(g.snake1, g.dir1, g.p1.Name())
	if !g.finished && !g.solo {
		g.snake2 = g.advance(g.snake2, g.dir2, g.p2.Name())
	}
	g.checkCollisions()

	g.broadcast(g.stateLine())
	return !g.finished
}

// advance moves one snake a single cell along its heading, growing on food
// and dropping the tail otherwise. A wall crash ends the match against the
// snake's owner.
func (g *snakeBattle) advance(snake []cell, dir int, owner string) []cell {
	head := snake[0]
	switch dir {
	case headingUp:
		head.y--
	case headingRight:
		head.x++
	case headingDown:
		head.y++
	case headingLeft:
		head.x--
	}

	if head.x < 0 || head.x >= snakeWidth || head.y < 0 || head.y >= snakeHeight {
		g.endGame(owner)
		return snake
	}

	snake = append([]cell{head}, snake...)
	if head == g.food {
		g.spawnFood()
	} else {
		snake = snake[:len(snake)-1]
	}
	return snake
}

func (g *snakeBattle) checkCollisions() {
	if g.finished {
		return
	}
	h1 := g.snake1[0]

	if containsCell(g.snake1[1:], h1) {
		g.endGame(g.p1.Name())
		return
	}

	if g.solo {
		return
	}
	h2 := g.snake2[0]
	if containsCell(g.snake2[1:], h2) {
		g.endGame(g.p2.Name())
	}
	if containsCell(g.snake2, h1) {
		g.endGame(g.p1.Name())
	}
	if containsCell(g.snake1, h2) {
		g.endGame(g.p2.Name())
	}
}

func containsCell(cells []cell, c cell) bool {
	for _, e := range cells {
		if e == c {
			return true
		}
	}
	return false
}

func (g *snakeBattle) spawnFood() {
	g.food = cell{g.rng.Intn(snakeWidth), g.rng.Intn(snakeHeight)}
}

// endGame finishes the match against loser. Caller holds mu.
func (g *snakeBattle) endGame(loser string) {
	if g.finished {
		return
	}
	g.finished = true

	if g.solo {
		g.broadcast(fmt.Sprintf("GAME_OVER: You Crashed! Score: %d", len(g.snake1)-2))
		g.recordWin(g.p1.Name())
		return
	}
	winner := g.p1.Name()
	if loser == winner {
		winner = g.p2.Name()
	}
	g.broadcast("GAME_OVER: " + winner + " WINS THE BATTLE!")
	g.recordWin(winner)
}

func (g *snakeBattle) recordWin(name string) {
	if err := g.scores.RecordWin(name); err != nil {
		log.Error().Err(err).Str("user", name).Msg("failed to record snake win")
	}
}

// stateLine renders "SNAKE:foodX,foodY:x,y,x,y,...:x,y,..." with the second
// snake section empty in solo mode.
func (g *snakeBattle) stateLine() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "SNAKE:%d,%d:", g.food.x, g.food.y)
	for _, c := range g.snake1 {
		fmt.Fprintf(&sb, "%d,%d,", c.x, c.y)
	}
	sb.WriteString(":")
	if !g.solo {
		for _, c := range g.snake2 {
			fmt.Fprintf(&sb, "%d,%d,", c.x, c.y)
		}
	}
	return sb.String()
}

func (g *snakeBattle) MakeMove(username, payload string) error {
	dx, dy, ok := parseDirection(payload)
	if !ok {
		return nil
	}
	newDir := headingFor(dx, dy)

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.finished {
		return nil
	}
	// A 180-degree reversal is rejected; the previous heading persists.
	switch {
	case g.p1.Name() == username:
		if !oppositeHeadings(g.dir1, newDir) {
			g.dir1 = newDir
		}
	case !g.solo && g.p2.Name() == username:
		if !oppositeHeadings(g.dir2, newDir) {
			g.dir2 = newDir
		}
	}
	return nil
}

func headingFor(dx, dy int) int {
	switch {
	case dy < 0:
		return headingUp
	case dy > 0:
		return headingDown
	case dx < 0:
		return headingLeft
	default:
		return headingRight
	}
}

func oppositeHeadings(a, b int) bool {
	return (a+2)%4 == b
}

// HandleDisconnect finishes the match, which also stops the tick driver on
// its next tick. The remaining player gets a forfeit win on the leaderboard.
func (g *snakeBattle) HandleDisconnect(username string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if winner := g.forfeitLocked(username); winner != nil {
		g.recordWin(winner.Name())
	}
}
