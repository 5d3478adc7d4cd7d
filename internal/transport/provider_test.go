package transport

import (
	"strings"
	"testing"
)

func TestNewProviderSelection(t *testing.T) {
	tests := []struct {
		name     string
		provider string
		cfg      Config
		wantErr  bool
	}{
		{"log provider", "log", Config{From: "HELPTEXT"}, false},
		{"empty defaults to log", "", Config{}, false},
		{"twilio with credentials", "twilio", Config{
			From: "+15550100", TwilioAccountSID: "ACtest", TwilioAuthToken: "secret",
		}, false},
		{"twilio without credentials", "twilio", Config{}, true},
		{"unknown provider", "carrier-pigeon", Config{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider, err := New(tt.provider, tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("New(%q) error = %v, wantErr %v", tt.provider, err, tt.wantErr)
			}
			if !tt.wantErr && provider == nil {
				t.Errorf("New(%q) returned nil provider", tt.provider)
			}
		})
	}
}

func TestLogProviderSend(t *testing.T) {
	provider := NewLogProvider("HELPTEXT")

	ack, err := provider.Send("+15551212", "hello")
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if !strings.Contains(ack, "+15551212") {
		t.Errorf("Send() ack = %q, want destination mentioned", ack)
	}

	if _, err := provider.Send("", "hello"); err == nil {
		t.Error("Send() without destination should fail")
	}
}
