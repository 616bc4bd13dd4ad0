package mudclient

import (
	"context"
	"fmt"
	"log"
	"net"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ambonmud/swarm/internal/prompt"
)

// Conn is one bot's websocket connection to the game server, paired with the
// prompt tracker that stands in for message framing. Conn is owned by exactly
// one bot and is not safe for concurrent use.
type Conn struct {
	ws      *websocket.Conn
	state   prompt.State
	logger  *log.Logger
	prefix  string
	verbose bool
}

// Dial opens a websocket connection to url. The handshake must complete
// within connectTimeout.
func Dial(ctx context.Context, url string, connectTimeout time.Duration, logger *log.Logger, prefix string, verbose bool) (*Conn, error) {
	dialer := websocket.Dialer{HandshakeTimeout: connectTimeout}
	ws, _, err := dialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", url, err)
	}
	return &Conn{ws: ws, logger: logger, prefix: prefix, verbose: verbose}, nil
}

// Close releases the underlying websocket.
func (c *Conn) Close() error {
	return c.ws.Close()
}

// AtPrompt reports whether the server is idle and ready for a command.
func (c *Conn) AtPrompt() bool {
	return c.state.AtPrompt()
}

// recvOne returns the next text frame, or an error once deadline passes or
// ctx is cancelled. Non-text frames are skipped.
//
// gorilla read errors are permanent: once a read fails, every later read on
// the same connection fails too. So each wait issues reads against the full
// deadline, any read error is terminal, and prompt cancellation comes from a
// watcher that collapses the read deadline when ctx fires, waking the
// blocked read.
func (c *Conn) recvOne(ctx context.Context, deadline time.Time) (string, error) {
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		if !time.Now().Before(deadline) {
			return "", &TimeoutError{Waiting: "frame"}
		}
		if err := c.ws.SetReadDeadline(deadline); err != nil {
			return "", fmt.Errorf("connection failed: %w", err)
		}

		readDone := make(chan struct{})
		go func() {
			select {
			case <-ctx.Done():
				_ = c.ws.SetReadDeadline(time.Now())
			case <-readDone:
			}
		}()

		msgType, data, err := c.ws.ReadMessage()
		close(readDone)

		if err != nil {
			// The watcher may have expired the deadline; the ctx error wins.
			if ctxErr := ctx.Err(); ctxErr != nil {
				return "", ctxErr
			}
			if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
				return "", &TimeoutError{Waiting: "frame"}
			}
			return "", fmt.Errorf("connection failed: %w", err)
		}
		if msgType != websocket.TextMessage {
			continue
		}

		msg := string(data)
		if c.verbose {
			// %q so hidden characters and ANSI codes stay visible.
			c.logger.Printf("%s << %q", c.prefix, msg)
		}
		return msg, nil
	}
}

// RecvUntilContains receives frames, updating prompt state on each, until
// their concatenation contains needle. On timeout the accumulated tail is
// carried in the error for diagnostics.
func (c *Conn) RecvUntilContains(ctx context.Context, needle string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	var buf strings.Builder

	for {
		msg, err := c.recvOne(ctx, deadline)
		if err != nil {
			if _, ok := err.(*TimeoutError); ok {
				return newTimeoutError(fmt.Sprintf("%q", needle), buf.String())
			}
			return err
		}

		c.state.ObserveIncoming(msg)
		buf.WriteString(msg)

		if strings.Contains(buf.String(), needle) {
			return nil
		}
	}
}

// RecvUntilPrompt waits until the server is at its prompt. If the prompt was
// already observed it returns immediately without touching the wire; waiting
// for a second prompt here would deadlock every send/wait pair after the
// first.
func (c *Conn) RecvUntilPrompt(ctx context.Context, timeout time.Duration) error {
	if c.state.AtPrompt() {
		return nil
	}

	deadline := time.Now().Add(timeout)
	for {
		msg, err := c.recvOne(ctx, deadline)
		if err != nil {
			if _, ok := err.(*TimeoutError); ok {
				return &TimeoutError{Waiting: "prompt"}
			}
			return err
		}

		c.state.ObserveIncoming(msg)
		if c.state.AtPrompt() {
			return nil
		}
	}
}

// SendLine transmits one newline-terminated command and marks the connection
// busy. It never waits for a reply.
func (c *Conn) SendLine(line string) error {
	c.state.SentCommand()
	if err := c.ws.WriteMessage(websocket.TextMessage, []byte(line+"\n")); err != nil {
		return fmt.Errorf("connection failed: %w", err)
	}
	if c.verbose {
		c.logger.Printf("%s >> %q", c.prefix, line)
	}
	return nil
}

// SendAndWaitPrompt is the request/response unit for every in-game command:
// make sure the server is idle, send, then wait for the prompt that follows
// the command's output.
func (c *Conn) SendAndWaitPrompt(ctx context.Context, cmd string, timeout time.Duration) error {
	if err := c.RecvUntilPrompt(ctx, timeout); err != nil {
		return err
	}
	if err := c.SendLine(cmd); err != nil {
		return err
	}
	return c.RecvUntilPrompt(ctx, timeout)
}
