// Command arcade-server runs the multiplayer arcade session server: a TCP
// line-protocol listener that matches connected players into two-party (or
// solo) game sessions across eight game variants, alongside a small HTTP
// surface with a status API and a WebSocket carrying the same protocol.
package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/hoysala26/multiplayer-gaming-server/api"
	"github.com/hoysala26/multiplayer-gaming-server/config"
	"github.com/hoysala26/multiplayer-gaming-server/game"
	"github.com/hoysala26/multiplayer-gaming-server/leaderboard"
	"github.com/hoysala26/multiplayer-gaming-server/session"
	"github.com/hoysala26/multiplayer-gaming-server/transport/tcpserver"
	"github.com/hoysala26/multiplayer-gaming-server/transport/ws"
)

const (
	Version = "1.0.0"
	AppName = "arcade-server"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	cmd := &cli.Command{
		Name:    AppName,
		Usage:   "multiplayer arcade session server",
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "addr", Value: cfg.TCPAddr, Usage: "game protocol listen address"},
			&cli.StringFlag{Name: "http-addr", Value: cfg.HTTPAddr, Usage: "status API / WebSocket listen address"},
			&cli.StringFlag{Name: "scores", Value: cfg.ScoresFile, Usage: "leaderboard score file"},
			&cli.StringFlag{Name: "db", Value: cfg.ScoresDB, Usage: "SQLite leaderboard database (overrides --scores)"},
			&cli.BoolFlag{Name: "debug", Usage: "enable debug logging"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg.TCPAddr = cmd.String("addr")
			cfg.HTTPAddr = cmd.String("http-addr")
			cfg.ScoresFile = cmd.String("scores")
			cfg.ScoresDB = cmd.String("db")
			if cmd.Bool("debug") {
				cfg.LogLevel = "debug"
			}
			return run(ctx, cfg)
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	scores, err := openScores(cfg)
	if err != nil {
		return err
	}

	reg := session.NewRegistry()
	opts := game.Options{
		SnakeTick: cfg.SnakeTick,
		PeekDelay: cfg.PeekDelay,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	serve := func(conn session.LineConn) {
		session.NewClient(conn, reg, scores, opts).Run()
	}

	tcp := tcpserver.New(cfg.TCPAddr, int64(cfg.MaxConns), func(ctx context.Context, conn net.Conn) {
		serve(session.NewNetConn(conn))
	})

	httpSrv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: api.New(reg, scores, ws.Handler(serve)),
	}

	errc := make(chan error, 2)
	go func() { errc <- tcp.Serve(ctx) }()
	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("http server listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
			return
		}
		errc <- nil
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down")
	case err := <-errc:
		if err != nil {
			stop()
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	httpSrv.Shutdown(shutdownCtx)
	return nil
}

// openScores picks the leaderboard backend: SQLite when a database path is
// configured, the flat score file otherwise.
func openScores(cfg *config.Config) (leaderboard.Store, error) {
	if cfg.ScoresDB != "" {
		log.Info().Str("db", cfg.ScoresDB).Msg("using sqlite leaderboard")
		return leaderboard.OpenSQLiteStore(cfg.ScoresDB)
	}
	log.Info().Str("file", cfg.ScoresFile).Msg("using file leaderboard")
	return leaderboard.NewFileStore(cfg.ScoresFile)
}
