package tcpserver

import (
	"bufio"
	"context"
	"net"
	"testing"
	"time"
)

func TestServeHandlesConnections(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	srv := New("127.0.0.1:0", 2, func(ctx context.Context, conn net.Conn) {
		defer conn.Close()
		conn.Write([]byte("SERVER: hello\n"))
	})

	// Listen on an ephemeral port directly so the test can learn the address.
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := ln.Addr().String()
	ln.Close()
	srv.addr = addr

	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx) }()

	var conn net.Conn
	deadline := time.Now().Add(2 * time.Second)
	for {
		conn, err = net.Dial("tcp", addr)
		if err == nil {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("dial: %v", err)
		}
		time.Sleep(5 * time.Millisecond)
	}
	defer conn.Close()

	line, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if line != "SERVER: hello\n" {
		t.Errorf("line = %q", line)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve returned %v after cancel", err)
		}
	case <-time.After(2 * time.Second):
		t.Error("Serve did not stop after cancel")
	}
}

func TestServeBindFailure(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()

	srv := New(ln.Addr().String(), 1, func(context.Context, net.Conn) {})
	if err := srv.Serve(context.Background()); err == nil {
		t.Error("Serve on an occupied port must return an error")
	}
}
