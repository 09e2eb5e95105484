package sms

import (
	"context"
	"log/slog"
)

// Console is an SMS implementation that logs messages instead of sending
// them. Used for local development and tests.
type Console struct{}

// NewConsole constructs a console SMS sender.
func NewConsole() *Console {
	return &Console{}
}

// Send logs the message.
func (c *Console) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	slog.InfoContext(ctx, "sms sent", "to", msg.To, "body", msg.Body)

	return nil
}

// Close implements io.Closer for interface compatibility.
func (c *Console) Close() error {
	return nil
}
