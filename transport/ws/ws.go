// Package ws carries the newline-delimited game protocol over WebSocket, so
// browser clients join the same registry and matchmaking pool as raw TCP
// clients. Each text message is one protocol line.
package ws

import (
	"net/http"
	"strings"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/hoysala26/multiplayer-gaming-server/session"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// The protocol has no cookie-based auth to protect.
		return true
	},
}

// Handler returns an http.HandlerFunc that upgrades the request and serves
// the connection through connect, which blocks for the connection's lifetime.
func Handler(connect func(conn session.LineConn)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Warn().Err(err).Msg("websocket upgrade failed")
			return
		}
		connect(&lineConn{conn: conn})
	}
}

// lineConn adapts a websocket connection to session.LineConn.
type lineConn struct {
	conn *websocket.Conn
	wmu  sync.Mutex
}

func (c *lineConn) ReadLine() (string, error) {
	for {
		msgType, data, err := c.conn.ReadMessage()
		if err != nil {
			return "", err
		}
		if msgType != websocket.TextMessage {
			continue
		}
		return strings.TrimRight(string(data), "\r\n"), nil
	}
}

func (c *lineConn) WriteLine(line string) error {
	c.wmu.Lock()
	defer c.wmu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, []byte(line))
}

func (c *lineConn) Close() error {
	return c.conn.Close()
}

func (c *lineConn) RemoteAddr() string {
	return c.conn.RemoteAddr().String()
}
