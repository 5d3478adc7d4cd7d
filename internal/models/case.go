package models

// Case states. The router never transitions a case; opening happens on first
// contact and closing is done by staff through the case UI.
const (
	CaseStateOpen   = "open"
	CaseStateClosed = "closed"
)

// Case is a conversation thread between one contact and one assigned helper.
type Case struct {
	ID          int64  `json:"id"`
	ContactID   int64  `json:"contactId"`
	PhoneNumber string `json:"phoneNumber"`
	HelperID    int64  `json:"helperId"`
	State       string `json:"state"`
	StartDate   int64  `json:"startDate"`
	CloseDate   *int64 `json:"closeDate"`
	Comments    string `json:"comments"`
}

// IsOpen reports whether the case still accepts forwarded traffic.
func (c *Case) IsOpen() bool {
	return c.State == CaseStateOpen
}

// CaseContext is the resolved thread for one inbound message. A zero CaseID
// means no case could be resolved (or created) for the message.
type CaseContext struct {
	CaseID      int64
	IsOpen      bool
	HelperID    int64
	HelperPhone string
	PhoneNumber string
	Created     bool
}
