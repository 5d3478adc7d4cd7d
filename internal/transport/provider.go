package transport

import (
	"fmt"
)

// Provider delivers one outbound SMS and returns the carrier's confirmation
// text. Providers carry their own sender address from configuration; the
// router never retries a failed send.
type Provider interface {
	Send(to, body string) (string, error)
}

// Config holds the provider credentials and sender address. Only the fields
// for the selected provider need to be set.
type Config struct {
	From             string
	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioAPIURL     string
}

// New selects a provider implementation by the configured name. Selection
// happens once at startup, not per message.
func New(name string, cfg Config) (Provider, error) {
	switch name {
	case "twilio":
		return NewTwilioProvider(cfg)
	case "log", "":
		return NewLogProvider(cfg.From), nil
	default:
		return nil, fmt.Errorf("unknown sms provider %q", name)
	}
}
