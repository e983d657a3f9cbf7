package session

import (
	"bufio"
	"net"
	"strings"
	"sync"
)

// LineConn abstracts a newline-delimited text connection so the client loop
// works identically over raw TCP and WebSocket transports. WriteLine must be
// safe for concurrent use: broadcasts, game messages and the client's own
// loop all write to the same connection.
type LineConn interface {
	// ReadLine blocks for the next line, with the terminator stripped.
	ReadLine() (string, error)
	WriteLine(line string) error
	Close() error
	RemoteAddr() string
}

// netLineConn adapts a net.Conn to LineConn.
type netLineConn struct {
	conn net.Conn
	r    *bufio.Reader

	wmu sync.Mutex
}

// NewNetConn wraps a net.Conn in a LineConn.
func NewNetConn(conn net.Conn) LineConn {
	return &netLineConn{
		conn: conn,
		r:    bufio.NewReader(conn),
	}
}

func (c *netLineConn) ReadLine() (string, error) {
	line, err := c.r.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (c *netLineConn) WriteLine(line string) error {
	c.wmu.Lock()
	defer c.wmu.Unlock()
	_, err := c.conn.Write([]byte(line + "\n"))
	return err
}

func (c *netLineConn) Close() error {
	return c.conn.Close()
}

func (c *netLineConn) RemoteAddr() string {
	return c.conn.RemoteAddr().String()
}
