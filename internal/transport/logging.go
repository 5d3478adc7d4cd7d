package transport

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/open-ecommerce/helptext-sub000/pkg/logger"
)

// LogProvider writes outbound messages to the log instead of a carrier. It
// is the default provider for development and test installs.
type LogProvider struct {
	from string
}

// NewLogProvider creates a new LogProvider
func NewLogProvider(from string) *LogProvider {
	return &LogProvider{from: from}
}

func (p *LogProvider) Send(to, body string) (string, error) {
	if to == "" {
		return "", errors.New("destination phone number is required")
	}

	logger.Info("Outbound SMS (log provider)",
		zap.String("from", p.from),
		zap.String("to", to),
		zap.Int("body_length", len(body)),
	)

	return fmt.Sprintf("logged message to %s", to), nil
}
