// Package tcpserver accepts raw TCP connections for the line protocol and
// hands each one to a handler goroutine, bounded by a semaphore so a flood of
// connections cannot exhaust the process.
package tcpserver

import (
	"context"
	"errors"
	"net"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"
)

// Handler serves one accepted connection and returns when it is done. The
// handler owns closing the connection.
type Handler func(ctx context.Context, conn net.Conn)

// Server is the TCP connection listener.
type Server struct {
	addr    string
	conns   *semaphore.Weighted
	handler Handler
}

// New creates a server listening on addr that serves at most maxConns
// connections concurrently.
func New(addr string, maxConns int64, handler Handler) *Server {
	return &Server{
		addr:    addr,
		conns:   semaphore.NewWeighted(maxConns),
		handler: handler,
	}
}

// Serve listens and accepts until ctx is cancelled. A failure to bind the
// port is returned to the caller; accept errors on live listeners are logged
// and skipped.
func (s *Server) Serve(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}

	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	log.Info().Str("addr", s.addr).Msg("game server listening")

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			log.Warn().Err(err).Msg("accept failed")
			continue
		}

		if err := s.conns.Acquire(ctx, 1); err != nil {
			conn.Close()
			return nil
		}
		go func() {
			defer s.conns.Release(1)
			s.handler(ctx, conn)
		}()
	}
}
