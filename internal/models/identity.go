package models

// IdentityKind classifies an inbound phone number.
type IdentityKind int

const (
	IdentityUnknown IdentityKind = iota
	IdentityContact
	IdentityHelper
)

func (k IdentityKind) String() string {
	switch k {
	case IdentityContact:
		return "contact"
	case IdentityHelper:
		return "helper"
	default:
		return "unknown"
	}
}

// Identity is the router's classification of a sender. Exactly one of the
// id fields is meaningful, selected by Kind.
type Identity struct {
	Kind        IdentityKind
	ContactID   int64
	HelperID    int64
	HelperPhone string
}
