package models

// InboundEvent is a normalized inbound message, either from the transport
// webhook or from the internal compose path. CaseID is non-zero only for
// internally generated messages that are already bound to a case.
type InboundEvent struct {
	PhoneNumber       string `json:"phoneNumber"`
	Body              string `json:"body"`
	ProviderMessageID string `json:"providerMessageId"`
	CaseID            int64  `json:"caseId"`
}

// RouteResult is what one routed event produced: the case it attached to and
// the transport acknowledgements for each outbound leg. TransportError holds
// the reason when a send failed; the inbound message is persisted regardless.
type RouteResult struct {
	CaseID         int64  `json:"caseId"`
	AutoReplyAck   string `json:"autoReplyAck,omitempty"`
	ForwardAck     string `json:"forwardAck,omitempty"`
	TransportError string `json:"transportError,omitempty"`
}
