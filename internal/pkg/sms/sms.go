// Package sms defines the contract for sending short text messages.
//
// Use cases depend on the SMS interface; the concrete gateway (console for
// local runs, a provider API in production) is chosen at wiring time.
package sms

import (
	"context"
	"io"
)

// Message represents an SMS payload.
type Message struct {
	// To is the destination phone number in E.164 form.
	To string
	// Body is the message text.
	Body string
}

// SMS abstracts an SMS gateway.
type SMS interface {
	io.Closer
	// Send dispatches the given message using the underlying gateway.
	Send(ctx context.Context, msg Message) error
}
