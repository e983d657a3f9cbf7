package session

import (
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/hoysala26/multiplayer-gaming-server/game"
	"github.com/hoysala26/multiplayer-gaming-server/leaderboard"
)

// Client owns one connection's lifetime: the username handshake, the command
// loop, and teardown. It implements game.Player so games can message it
// directly. A client is in exactly one of three states at any time: idle,
// waiting for a match, or in a game.
type Client struct {
	conn   LineConn
	reg    *Registry
	scores leaderboard.Store
	opts   game.Options

	name string // fixed at handshake

	mu          sync.Mutex
	active      game.Game
	waiting     bool
	waitingType game.Type
}

// NewClient wires a connection to the registry and leaderboard. Run drives it.
func NewClient(conn LineConn, reg *Registry, scores leaderboard.Store, opts game.Options) *Client {
	return &Client{
		conn:   conn,
		reg:    reg,
		scores: scores,
		opts:   opts,
	}
}

// Name returns the username established during the handshake.
func (c *Client) Name() string {
	return c.name
}

// Send writes one protocol line. Best-effort: write failures are logged and
// otherwise ignored; the read loop notices the dead connection.
func (c *Client) Send(line string) {
	if err := c.conn.WriteLine(line); err != nil {
		log.Debug().Err(err).Str("user", c.name).Msg("dropped outbound line")
	}
}

// Run performs the handshake and processes commands until the connection
// drops, then tears the client down. It blocks for the connection's lifetime.
func (c *Client) Run() {
	if err := c.handshake(); err != nil {
		c.conn.Close()
		return
	}

	c.reg.Register(c)
	log.Info().Str("user", c.name).Str("remote", c.conn.RemoteAddr()).Msg("client connected")
	c.reg.Broadcast("SERVER: "+c.name+" has joined the lobby!", c)

	defer c.teardown()

	for {
		input, err := c.conn.ReadLine()
		if err != nil {
			log.Info().Str("user", c.name).Msg("client lost connection")
			return
		}
		c.dispatch(input)
	}
}

func (c *Client) handshake() error {
	if err := c.conn.WriteLine("SERVER: Enter your username:"); err != nil {
		return err
	}
	name, err := c.conn.ReadLine()
	if err != nil {
		return err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = "User-" + uuid.NewString()[:8]
	}
	c.name = name
	return nil
}

// dispatch routes one input line. Anything that is not a command is public
// chat.
func (c *Client) dispatch(input string) {
	switch {
	case strings.HasPrefix(input, "/play"):
		c.handlePlay(input)
	case strings.HasPrefix(input, "/move "):
		c.handleMove(strings.TrimSpace(input[len("/move "):]))
	case strings.EqualFold(input, "/leaderboard"):
		c.handleLeaderboard()
	case strings.EqualFold(input, "/cancel"):
		c.handleCancel()
	default:
		c.reg.Broadcast(c.name+": "+input, c)
	}
}

// handlePlay parses "/play <type> [solo]" and either starts a solo game,
// claims a waiting opponent, or parks this client in matchmaking.
func (c *Client) handlePlay(input string) {
	parts := strings.Fields(input)
	typeToken := "tictactoe"
	if len(parts) > 1 {
		typeToken = strings.ToLower(parts[1])
	}
	mode := "pvp"
	if len(parts) > 2 {
		mode = strings.ToLower(parts[2])
	}
	gameType := game.ParseType(typeToken)

	if c.Game() != nil {
		c.Send("SERVER: You are already in a game.")
		return
	}

	if mode == "solo" {
		if !gameType.SoloCapable() {
			c.Send("SERVER: Solo mode not available for " + typeToken)
			return
		}
		c.setGame(game.New(gameType, c, nil, c.scores, c.opts))
		log.Info().Str("user", c.name).Str("game", gameType.String()).Msg("solo game started")
		return
	}

	opponent := c.reg.FindAndClaimOpponent(c, gameType)
	if opponent == nil {
		c.setWaiting(gameType)
		c.Send("SERVER: Waiting for an opponent for " + gameType.String() + "...")
		return
	}

	g := game.New(gameType, c, opponent, c.scores, c.opts)
	c.setGame(g)
	opponent.setGame(g)
	log.Info().
		Str("game", gameType.String()).
		Str("user", c.name).
		Str("opponent", opponent.Name()).
		Msg("match started")
}

// handleMove forwards the payload to the active game. A move with no active
// game is silently ignored; a move the game reports as broken is bounced back
// to the sender without tearing down the connection.
func (c *Client) handleMove(payload string) {
	g := c.Game()
	if g == nil {
		return
	}
	if err := g.MakeMove(c.name, payload); err != nil {
		log.Warn().Err(err).Str("user", c.name).Msg("move rejected")
		c.Send("INVALID: Error processing move.")
	}
}

func (c *Client) handleLeaderboard() {
	scores, err := c.scores.TopScores(5)
	if err != nil {
		log.Error().Err(err).Msg("failed to read leaderboard")
		c.Send("SERVER: Leaderboard is unavailable.")
		return
	}
	c.Send("SERVER: TOP PLAYERS: " + leaderboard.FormatScores(scores))
}

func (c *Client) handleCancel() {
	if c.cancelWaiting() {
		c.Send("SERVER: Matchmaking cancelled.")
	} else {
		c.Send("SERVER: You are not waiting for a game.")
	}
}

// teardown removes the client from the registry first, so it can no longer be
// matched, then forfeits any game still in progress and closes the socket.
func (c *Client) teardown() {
	c.reg.Unregister(c)
	if g := c.takeGame(); g != nil {
		g.HandleDisconnect(c.name)
	}
	c.conn.Close()
}

// Game returns the active game, clearing it first if it has finished: a
// client whose match ended is idle again and eligible for matchmaking.
func (c *Client) Game() game.Game {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active != nil && c.active.Over() {
		c.active = nil
	}
	return c.active
}

func (c *Client) setGame(g game.Game) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.active = g
	c.waiting = false
}

func (c *Client) takeGame() game.Game {
	c.mu.Lock()
	defer c.mu.Unlock()
	g := c.active
	c.active = nil
	return g
}

func (c *Client) setWaiting(t game.Type) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.waiting = true
	c.waitingType = t
}

// cancelWaiting clears the waiting state, reporting whether it was set.
func (c *Client) cancelWaiting() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	was := c.waiting
	c.waiting = false
	return was
}

// claimWaiting atomically consumes the waiting state if this client is idle
// and parked for game type t. Used by the registry's matchmaking scan.
func (c *Client) claimWaiting(t game.Type) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active != nil && c.active.Over() {
		c.active = nil
	}
	if c.active == nil && c.waiting && c.waitingType == t {
		c.waiting = false
		return true
	}
	return false
}

// State reports the client's lifecycle state for the HTTP status API.
func (c *Client) State() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch {
	case c.active != nil && !c.active.Over():
		return "in-game"
	case c.waiting:
		return "waiting"
	default:
		return "idle"
	}
}
