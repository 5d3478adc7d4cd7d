package models

// SenderTypeAutomatedResponse is the fixed sender type id recorded on
// auto-replies the router persists to a thread. The contact and helper ids
// come from settings because the surrounding CRUD system owns that table.
const SenderTypeAutomatedResponse int64 = 1

// MessageTypeSMS tags persisted messages that arrived or left over SMS.
const MessageTypeSMS int64 = 1

// Message is one stored utterance in a case thread. Messages are append-only;
// the router never updates or deletes them.
type Message struct {
	ID            int64  `json:"id"`
	PhoneNumber   string `json:"phoneNumber"`
	CaseID        int64  `json:"caseId"`
	SenderTypeID  int64  `json:"senderTypeId"`
	MessageTypeID int64  `json:"messageTypeId"`
	Body          string `json:"body"`
	Sent          int64  `json:"sent"`
}
