package transport

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultTwilioAPIURL = "https://api.twilio.com"

// TwilioProvider sends messages through the Twilio Messages REST endpoint.
type TwilioProvider struct {
	accountSID string
	authToken  string
	from       string
	apiURL     string
	client     *http.Client
}

// NewTwilioProvider creates a new TwilioProvider
func NewTwilioProvider(cfg Config) (*TwilioProvider, error) {
	if cfg.TwilioAccountSID == "" || cfg.TwilioAuthToken == "" {
		return nil, errors.New("twilio account SID and auth token are required")
	}
	if cfg.From == "" {
		return nil, errors.New("twilio sender address is required")
	}

	apiURL := cfg.TwilioAPIURL
	if apiURL == "" {
		apiURL = defaultTwilioAPIURL
	}

	return &TwilioProvider{
		accountSID: cfg.TwilioAccountSID,
		authToken:  cfg.TwilioAuthToken,
		from:       cfg.From,
		apiURL:     strings.TrimRight(apiURL, "/"),
		client:     &http.Client{Timeout: 15 * time.Second},
	}, nil
}

type twilioResponse struct {
	SID     string `json:"sid"`
	Status  string `json:"status"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// Send posts one message to Twilio and returns "<sid> <status>" as the
// confirmation text.
func (p *TwilioProvider) Send(to, body string) (string, error) {
	if to == "" {
		return "", errors.New("destination phone number is required")
	}
	if body == "" {
		return "", errors.New("message body is required")
	}

	form := url.Values{}
	form.Set("From", p.from)
	form.Set("To", to)
	form.Set("Body", body)

	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", p.apiURL, p.accountSID)
	req, err := http.NewRequest(http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to build twilio request: %w", err)
	}
	req.SetBasicAuth(p.accountSID, p.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("twilio request failed: %w", err)
	}
	defer resp.Body.Close()

	var decoded twilioResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("failed to decode twilio response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		if decoded.Message != "" {
			return "", fmt.Errorf("twilio rejected message (code %d): %s", decoded.Code, decoded.Message)
		}
		return "", fmt.Errorf("twilio rejected message: HTTP %d", resp.StatusCode)
	}

	return fmt.Sprintf("%s %s", decoded.SID, decoded.Status), nil
}
