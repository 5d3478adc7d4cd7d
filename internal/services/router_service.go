package services

import (
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/open-ecommerce/helptext-sub000/internal/models"
	"github.com/open-ecommerce/helptext-sub000/pkg/logger"
)

// MessageStore is the slice of the message repository the router needs.
type MessageStore interface {
	Add(msg *models.Message) error
}

// SettingsSource provides the per-request settings snapshot.
type SettingsSource interface {
	Snapshot() (*models.Settings, error)
}

// TransportProvider delivers outbound SMS. Implementations carry their own
// sender address; failures are captured per message, never retried here.
type TransportProvider interface {
	Send(to, body string) (string, error)
}

// RouterService orchestrates one inbound event: resolve identity, resolve or
// create the case thread, decide dispatch, persist, send. Requests are
// stateless; everything lives in the stores.
type RouterService struct {
	identities *IdentityService
	threads    *ThreadService
	messages   MessageStore
	settings   SettingsSource
	provider   TransportProvider
}

// NewRouterService creates a new RouterService
func NewRouterService(
	identities *IdentityService,
	threads *ThreadService,
	messages MessageStore,
	settings SettingsSource,
	provider TransportProvider,
) *RouterService {
	return &RouterService{
		identities: identities,
		threads:    threads,
		messages:   messages,
		settings:   settings,
		provider:   provider,
	}
}

// Route processes one inbound event and returns the transport result. Store
// failures abort the event and propagate; transport failures are captured in
// the result because inbound persistence and outbound dispatch are
// independent legs.
func (s *RouterService) Route(event *models.InboundEvent) (*models.RouteResult, error) {
	if event == nil {
		return nil, fmt.Errorf("event cannot be nil")
	}
	if event.Body == "" {
		return nil, fmt.Errorf("message body is required")
	}

	phone := event.PhoneNumber
	if phone == "" {
		phone = SyntheticPhone()
		logger.Info("No originating phone, generated synthetic number",
			zap.String("phone", phone),
			zap.String("provider_message_id", event.ProviderMessageID),
		)
	}

	settings, err := s.settings.Snapshot()
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	identity, err := s.identities.Resolve(phone)
	if err != nil {
		return nil, err
	}

	caseCtx, err := s.threads.ResolveOrCreate(identity, phone, event.Body, event.CaseID)
	if err != nil {
		return nil, err
	}

	dispatch := DecideDispatch(identity, caseCtx, phone, event.Body, settings, time.Now())

	if caseCtx.CaseID == 0 && identity.Kind != models.IdentityHelper {
		// Best effort: the message has no thread to live in. It is not
		// persisted, but it must not vanish silently.
		logger.Warn("Inbound message could not be attached to a case",
			zap.String("phone", phone),
			zap.String("identity", identity.Kind.String()),
			zap.String("provider_message_id", event.ProviderMessageID),
		)
	}

	for _, msg := range dispatch.Persist {
		if err := s.messages.Add(msg); err != nil {
			return nil, fmt.Errorf("failed to persist message: %w", err)
		}
	}

	result := &models.RouteResult{CaseID: caseCtx.CaseID}

	if dispatch.AutoReply != nil {
		ack, err := s.provider.Send(dispatch.AutoReply.To, dispatch.AutoReply.Body)
		if err != nil {
			result.TransportError = err.Error()
			logger.Error("Auto-reply send failed",
				zap.String("to", dispatch.AutoReply.To),
				zap.Error(err),
			)
		} else {
			result.AutoReplyAck = ack
		}
	}

	if dispatch.Forward != nil {
		ack, err := s.provider.Send(dispatch.Forward.To, dispatch.Forward.Body)
		if err != nil {
			result.TransportError = err.Error()
			logger.Error("Forward send failed",
				zap.String("to", dispatch.Forward.To),
				zap.Int64("case_id", caseCtx.CaseID),
				zap.Error(err),
			)
		} else {
			result.ForwardAck = ack
		}
	}

	logger.Info("Routed inbound message",
		zap.String("identity", identity.Kind.String()),
		zap.Int64("case_id", caseCtx.CaseID),
		zap.Bool("case_created", caseCtx.Created),
		zap.Bool("forwarded", dispatch.Forward != nil),
		zap.Bool("auto_replied", dispatch.AutoReply != nil),
	)

	return result, nil
}

// SyntheticPhone generates a placeholder number for internally composed
// messages that have no originator: "+" followed by ten random digits.
func SyntheticPhone() string {
	digits := make([]byte, 10)
	for i := range digits {
		digits[i] = byte('0' + rand.Intn(10))
	}
	return "+" + string(digits)
}
