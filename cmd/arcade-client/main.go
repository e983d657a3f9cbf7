// Command arcade-client is a bare-bones console client for the arcade server:
// it relays stdin lines to the server and prints every server line as it
// arrives. Handy for trying games and for poking at the protocol by hand.
package main

import (
	"bufio"
	"fmt"
	"io"
	"net"
	"os"
)

func main() {
	addr := "localhost:5000"
	if len(os.Args) > 1 {
		addr = os.Args[1]
	}

	conn, err := net.Dial("tcp", addr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "connect to %s: %v\n", addr, err)
		os.Exit(1)
	}
	defer conn.Close()

	// Server lines go straight to stdout.
	done := make(chan struct{})
	go func() {
		defer close(done)
		io.Copy(os.Stdout, conn)
	}()

	// Stdin lines go straight to the server.
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		if _, err := fmt.Fprintln(conn, scanner.Text()); err != nil {
			break
		}
	}
	conn.Close()
	<-done
}
