package mudclient

import (
	"context"
	"time"
)

// Login needles, exact and case-sensitive. The server prints each of these
// somewhere in one or more frames before it is ready for the reply.
const (
	needleEnterName      = "Enter your name:"
	needleCreateUser     = "Create a new user? (yes/no)"
	needleCreatePassword = "Create a password:"
)

// Login runs the new-user handshake: name, "yes" to create, password. After
// it returns the connection is in-game and sitting at a prompt.
func (c *Conn) Login(ctx context.Context, name, password string, timeout time.Duration) error {
	if err := c.RecvUntilContains(ctx, needleEnterName, timeout); err != nil {
		return err
	}
	if err := c.RecvUntilPrompt(ctx, timeout); err != nil {
		return err
	}
	if err := c.SendAndWaitPrompt(ctx, name, timeout); err != nil {
		return err
	}

	if err := c.RecvUntilContains(ctx, needleCreateUser, timeout); err != nil {
		return err
	}
	if err := c.RecvUntilPrompt(ctx, timeout); err != nil {
		return err
	}
	if err := c.SendAndWaitPrompt(ctx, "yes", timeout); err != nil {
		return err
	}

	if err := c.RecvUntilContains(ctx, needleCreatePassword, timeout); err != nil {
		return err
	}
	if err := c.RecvUntilPrompt(ctx, timeout); err != nil {
		return err
	}
	if err := c.SendAndWaitPrompt(ctx, password, timeout); err != nil {
		return err
	}

	return c.RecvUntilPrompt(ctx, timeout)
}
