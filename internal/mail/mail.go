// Package mail delivers outbound email through a relay.
package mail

import (
	"context"
	"errors"
)

var (
	ErrNotConfigured = errors.New("mail relay is not configured")
	ErrSend          = errors.New("failed to send email")
)

type Message struct {
	To      []string
	ReplyTo string
	Subject string
	HTML    string
}

// Receipt identifies a message accepted by the relay.
type Receipt struct {
	ID       string
	Accepted []string
}

type Mailer interface {
	Send(ctx context.Context, msg Message) (Receipt, error)
}

// Disabled rejects every message; used when no relay credentials are configured.
type Disabled struct{}

func (Disabled) Send(context.Context, Message) (Receipt, error) {
	return Receipt{}, ErrNotConfigured
}
