// Package mail sends outbound email for the church, currently only through
// SendGrid's v3 mail send API.
package mail

import (
	"context"
	"errors"
	"time"
)

// ErrNotConfigured is returned by the sender used when no API key is set.
var ErrNotConfigured = errors.New("mail sender not configured")

type Address struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type Message struct {
	From    Address
	ReplyTo *Address
	To      []Address
	Subject string
	Text    string
	HTML    string
	// Categories tag the message at the provider for reporting.
	Categories []string
}

type Result struct {
	StatusCode int
	MessageID  string
}

type Sender interface {
	Send(ctx context.Context, msg Message) (*Result, error)
}

type Config struct {
	APIKey           string
	BaseURL          string
	DefaultFromEmail string
	DefaultFromName  string
	Timeout          time.Duration
	MaxRetries       int
}

type notConfigured struct{}

func (notConfigured) Send(context.Context, Message) (*Result, error) {
	return nil, ErrNotConfigured
}

// NotConfigured returns a Sender that always fails with ErrNotConfigured.
func NotConfigured() Sender { return notConfigured{} }
